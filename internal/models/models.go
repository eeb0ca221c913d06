package models

import (
	"time"

	"github.com/lib/pq"
)

// Candidate statuses form a fixed set but no transition graph: HR can move a
// candidate from any status to any other by direct assignment.
const (
	StatusNew       = "new"
	StatusScreening = "screening"
	StatusInterview = "interview"
	StatusTest      = "test"
	StatusOffer     = "offer"
	StatusHired     = "hired"
	StatusRejected  = "rejected"
)

// Statuses returns the pipeline statuses in their conventional order.
func Statuses() []string {
	return []string{
		StatusNew,
		StatusScreening,
		StatusInterview,
		StatusTest,
		StatusOffer,
		StatusHired,
		StatusRejected,
	}
}

// ValidStatus reports whether s is one of the fixed pipeline statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusScreening, StatusInterview, StatusTest,
		StatusOffer, StatusHired, StatusRejected:
		return true
	}
	return false
}

// NormalizeStatus maps an absent status to "new".
func NormalizeStatus(s string) string {
	if s == "" {
		return StatusNew
	}
	return s
}

// Candidate is one applicant record as stored in the candidates table.
type Candidate struct {
	ID                string         `db:"id" json:"id"`
	Name              string         `db:"name" json:"name"`
	Email             string         `db:"email" json:"email"`
	Phone             *string        `db:"phone" json:"phone"`
	JobRoleApplied    string         `db:"job_role_applied" json:"job_role_applied"`
	ResumeURL         *string        `db:"resume_url" json:"resume_url"`
	ResumeText        *string        `db:"resume_text" json:"resume_text"`
	ExperienceYears   *float64       `db:"experience_years" json:"experience_years"`
	Skills            pq.StringArray `db:"skills" json:"skills"`
	AIFitScore        *int           `db:"ai_fit_score" json:"ai_fit_score"`
	AISummary         *string        `db:"ai_summary" json:"ai_summary"`
	Status            string         `db:"status" json:"status"`
	TestLink          *string        `db:"test_link" json:"test_link"`
	TestScore         *int           `db:"test_score" json:"test_score"`
	InterviewDateTime *time.Time     `db:"interview_date_time" json:"interview_date_time"`
	Notes             *string        `db:"notes" json:"notes"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
}

// FitScore returns the AI fit score, treating a missing score as 0.
func (c *Candidate) FitScore() int {
	if c.AIFitScore == nil {
		return 0
	}
	return *c.AIFitScore
}

// Experience returns the estimated years of experience, missing as 0.
func (c *Candidate) Experience() float64 {
	if c.ExperienceYears == nil {
		return 0
	}
	return *c.ExperienceYears
}

// CurrentStatus returns the pipeline status, missing as "new".
func (c *Candidate) CurrentStatus() string {
	return NormalizeStatus(c.Status)
}

// Date range selectors for FilterCriteria.DateRange.
const (
	RangeAll     = "all"
	RangeToday   = "today"
	RangeWeek    = "week"
	RangeMonth   = "month"
	RangeQuarter = "quarter"
)

// SelectorAll is the all-inclusive value for status and job-role selectors.
const SelectorAll = "all"

// ExperienceCap is the ceiling of the experience range selector. A criteria
// maximum at or above the cap reads as "cap and above": no upper bound.
const ExperienceCap = 20

// FilterCriteria describes the active dashboard query. It lives only in the
// dashboard session and is never persisted.
type FilterCriteria struct {
	Query         string   `json:"query"`
	MinScore      int      `json:"minScore"`
	MaxScore      int      `json:"maxScore"`
	Status        string   `json:"status"`
	JobRole       string   `json:"jobRole"`
	ExperienceMin float64  `json:"experienceMin"`
	ExperienceMax float64  `json:"experienceMax"`
	Skills        []string `json:"skills"`
	DateRange     string   `json:"dateRange"`
}

// DefaultCriteria returns the all-inclusive criteria every candidate matches.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		Query:         "",
		MinScore:      0,
		MaxScore:      100,
		Status:        SelectorAll,
		JobRole:       SelectorAll,
		ExperienceMin: 0,
		ExperienceMax: ExperienceCap,
		Skills:        nil,
		DateRange:     RangeAll,
	}
}

// Reset restores the all-inclusive defaults in place.
func (f *FilterCriteria) Reset() {
	*f = DefaultCriteria()
}

// ActivityRecord is one append-only audit entry. Written as a side effect of
// mutations; consumed through the activity feed, never re-derived.
type ActivityRecord struct {
	ID         string          `db:"id" json:"id"`
	UserID     string          `db:"user_id" json:"user_id"`
	UserName   string          `db:"user_name" json:"user_name"`
	Action     string          `db:"action" json:"action"`
	EntityType string          `db:"entity_type" json:"entity_type"`
	EntityID   string          `db:"entity_id" json:"entity_id"`
	Details    ActivityDetails `db:"details" json:"details"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// Comment is a team note attached to one candidate.
type Comment struct {
	ID          string    `db:"id" json:"id"`
	CandidateID string    `db:"candidate_id" json:"candidate_id"`
	UserID      string    `db:"user_id" json:"user_id"`
	UserName    string    `db:"user_name" json:"user_name"`
	Content     string    `db:"content" json:"content"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ResumeAnalysis is the structured assessment produced by the scoring model.
type ResumeAnalysis struct {
	FitScore             int      `json:"fitScore"`
	Skills               []string `json:"skills"`
	ExperienceYears      float64  `json:"experienceYears"`
	Summary              string   `json:"summary"`
	Strengths            []string `json:"strengths"`
	Concerns             []string `json:"concerns"`
	RecommendedQuestions []string `json:"recommendedQuestions"`
}

// Change event types emitted on the realtime feed.
const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

// ChangeEvent notifies subscribers that rows in a table changed. Consumers
// react by re-fetching the affected collection rather than patching state.
type ChangeEvent struct {
	Table     string `json:"table"`
	EventType string `json:"event_type"`
}
