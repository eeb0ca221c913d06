package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/gocraft/dbr/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"talent-track/internal/models"
)

const candidatesTable = "candidates"

var candidateColumns = []string{
	"id", "name", "email", "phone", "job_role_applied",
	"resume_url", "resume_text", "experience_years", "skills",
	"ai_fit_score", "ai_summary", "status", "test_link", "test_score",
	"interview_date_time", "notes", "created_at", "updated_at",
}

// ListCandidates returns the whole candidate set, newest first.
func (s *Store) ListCandidates(ctx context.Context) ([]*models.Candidate, error) {
	var candidates []*models.Candidate

	_, err := s.sess.
		Select("*").
		From(candidatesTable).
		OrderDesc("created_at").
		LoadContext(ctx, &candidates)

	if err != nil {
		s.logger.Error("failed to list candidates", zap.Error(err))
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	return candidates, nil
}

// GetCandidate returns one candidate by id, or nil when absent.
func (s *Store) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	var candidate models.Candidate

	err := s.sess.
		Select("*").
		From(candidatesTable).
		Where("id = ?", id).
		LoadOneContext(ctx, &candidate)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get candidate",
			zap.String("candidate_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get candidate: %w", err)
	}

	return &candidate, nil
}

// CreateCandidate inserts a new applicant record. The id and timestamps are
// assigned here; created_at never changes afterwards. A caller-set created_at
// is honored so tooling can backdate records.
func (s *Store) CreateCandidate(ctx context.Context, c *models.Candidate) error {
	now := time.Now().UTC()
	c.ID = uuid.New().String()
	c.Status = models.NormalizeStatus(c.Status)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	_, err := s.sess.
		InsertInto(candidatesTable).
		Columns(candidateColumns...).
		Record(c).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to create candidate",
			zap.String("email", c.Email),
			zap.Error(err),
		)
		return fmt.Errorf("create candidate: %w", err)
	}

	s.logger.Info("candidate created",
		zap.String("candidate_id", c.ID),
		zap.String("job_role", c.JobRoleApplied),
	)

	s.feed.Publish(ctx, models.ChangeEvent{Table: candidatesTable, EventType: models.EventInsert})
	return nil
}

// UpdateStatus moves every candidate in ids to status with one statement.
func (s *Store) UpdateStatus(ctx context.Context, ids []string, status string) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := s.sess.
		Update(candidatesTable).
		Set("status", status).
		Set("updated_at", time.Now().UTC()).
		Where("id IN ?", ids).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update status",
			zap.Int("count", len(ids)),
			zap.String("status", status),
			zap.Error(err),
		)
		return fmt.Errorf("update status: %w", err)
	}

	s.logger.Info("status updated",
		zap.Int("count", len(ids)),
		zap.String("status", status),
	)

	s.feed.Publish(ctx, models.ChangeEvent{Table: candidatesTable, EventType: models.EventUpdate})
	return nil
}

// Delete removes every candidate in ids, along with their comments, in one
// transaction. Irreversible; the schema carries no FK cascade, so orphan
// cleanup happens here.
func (s *Store) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("delete candidates: %w", err)
	}
	defer tx.RollbackUnlessCommitted()

	if _, err := tx.
		DeleteFrom(commentsTable).
		Where("candidate_id IN ?", ids).
		ExecContext(ctx); err != nil {
		s.logger.Error("failed to delete candidate comments",
			zap.Int("count", len(ids)),
			zap.Error(err),
		)
		return fmt.Errorf("delete candidate comments: %w", err)
	}

	if _, err := tx.
		DeleteFrom(candidatesTable).
		Where("id IN ?", ids).
		ExecContext(ctx); err != nil {
		s.logger.Error("failed to delete candidates",
			zap.Int("count", len(ids)),
			zap.Error(err),
		)
		return fmt.Errorf("delete candidates: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete candidates: %w", err)
	}

	s.logger.Info("candidates deleted", zap.Int("count", len(ids)))

	s.feed.Publish(ctx, models.ChangeEvent{Table: candidatesTable, EventType: models.EventDelete})
	return nil
}

// ApplyAnalysis writes the AI assessment onto the candidate and advances a
// fresh application to screening.
func (s *Store) ApplyAnalysis(ctx context.Context, id string, analysis *models.ResumeAnalysis) error {
	_, err := s.sess.
		Update(candidatesTable).
		Set("ai_fit_score", analysis.FitScore).
		Set("ai_summary", analysis.Summary).
		Set("skills", pq.StringArray(analysis.Skills)).
		Set("experience_years", analysis.ExperienceYears).
		Set("status", models.StatusScreening).
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", id).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to apply analysis",
			zap.String("candidate_id", id),
			zap.Error(err),
		)
		return fmt.Errorf("apply analysis: %w", err)
	}

	s.logger.Info("analysis applied",
		zap.String("candidate_id", id),
		zap.Int("fit_score", analysis.FitScore),
	)

	s.feed.Publish(ctx, models.ChangeEvent{Table: candidatesTable, EventType: models.EventUpdate})
	return nil
}

// ReviewUpdate carries the HR-entered fields. Nil fields are left untouched.
type ReviewUpdate struct {
	Status            *string    `json:"status"`
	Notes             *string    `json:"notes"`
	TestLink          *string    `json:"test_link"`
	TestScore         *int       `json:"test_score"`
	InterviewDateTime *time.Time `json:"interview_date_time"`
}

// HasFields reports whether the update would change anything.
func (u ReviewUpdate) HasFields() bool {
	return u.Status != nil || u.Notes != nil || u.TestLink != nil ||
		u.TestScore != nil || u.InterviewDateTime != nil
}

// UpdateReview applies the HR dashboard edits to one candidate.
func (s *Store) UpdateReview(ctx context.Context, id string, update ReviewUpdate) error {
	if !update.HasFields() {
		return nil
	}

	stmt := s.sess.
		Update(candidatesTable).
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", id)

	if update.Status != nil {
		stmt.Set("status", *update.Status)
	}
	if update.Notes != nil {
		stmt.Set("notes", *update.Notes)
	}
	if update.TestLink != nil {
		stmt.Set("test_link", *update.TestLink)
	}
	if update.TestScore != nil {
		stmt.Set("test_score", *update.TestScore)
	}
	if update.InterviewDateTime != nil {
		stmt.Set("interview_date_time", *update.InterviewDateTime)
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		s.logger.Error("failed to update review",
			zap.String("candidate_id", id),
			zap.Error(err),
		)
		return fmt.Errorf("update review: %w", err)
	}

	s.logger.Info("review updated", zap.String("candidate_id", id))

	s.feed.Publish(ctx, models.ChangeEvent{Table: candidatesTable, EventType: models.EventUpdate})
	return nil
}
