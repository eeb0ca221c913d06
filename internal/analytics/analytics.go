// Package analytics derives reporting views from the candidate set: pipeline
// counts, daily application trend, role ranking, score distribution, and
// period-over-period metrics. Pure functions of the input set and a window.
package analytics

import (
	"time"

	"talent-track/internal/models"
)

// TrendPoint is one calendar day in the application trend.
type TrendPoint struct {
	Date         string `json:"date"` // YYYY-MM-DD
	Applications int    `json:"applications"`
	Hired        int    `json:"hired"`
}

// RoleCount is one entry of the job-role ranking.
type RoleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

// HistogramBucket is one fixed AI-score range.
type HistogramBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// PeriodMetrics summarizes the current window against the preceding one.
type PeriodMetrics struct {
	Total       int     `json:"total"`
	Hired       int     `json:"hired"`
	AvgScore    float64 `json:"avg_score"`
	StrongCount int     `json:"strong_count"` // score >= 70
	Change      float64 `json:"change"`       // percent vs previous window
}

// Report is the full aggregate view for one trailing window.
type Report struct {
	WindowDays     int               `json:"window_days"`
	PipelineCounts map[string]int    `json:"pipeline_counts"`
	DailyTrend     []TrendPoint      `json:"daily_trend"`
	TopRoles       []RoleCount       `json:"top_roles"`
	ScoreHistogram []HistogramBucket `json:"score_histogram"`
	Metrics        PeriodMetrics     `json:"metrics"`
}

var scoreRanges = []struct {
	label    string
	min, max int
}{
	{"0-20", 0, 20},
	{"21-40", 21, 40},
	{"41-60", 41, 60},
	{"61-80", 61, 80},
	{"81-100", 81, 100},
}

// Aggregate computes the report over candidates created within the trailing
// windowDays ending at now. The preceding window of equal length supplies
// the period-over-period change.
func Aggregate(candidates []*models.Candidate, windowDays int, now time.Time) Report {
	if windowDays < 1 {
		windowDays = 1
	}

	// The window starts at the same day boundary as the oldest trend bucket,
	// so every windowed candidate lands in exactly one bucket.
	windowStart := startOfDay(now.AddDate(0, 0, -(windowDays - 1)))
	prevStart := windowStart.AddDate(0, 0, -windowDays)

	var windowed, previous []*models.Candidate
	for _, c := range candidates {
		switch {
		case inInterval(c.CreatedAt, windowStart, now):
			windowed = append(windowed, c)
		case inInterval(c.CreatedAt, prevStart, windowStart):
			previous = append(previous, c)
		}
	}

	return Report{
		WindowDays:     windowDays,
		PipelineCounts: pipelineCounts(windowed),
		DailyTrend:     dailyTrend(candidates, windowDays, now),
		TopRoles:       topRoles(windowed, 5),
		ScoreHistogram: scoreHistogram(windowed),
		Metrics:        periodMetrics(windowed, previous),
	}
}

func inInterval(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

func pipelineCounts(candidates []*models.Candidate) map[string]int {
	counts := make(map[string]int, 7)
	for _, s := range models.Statuses() {
		counts[s] = 0
	}
	for _, c := range candidates {
		status := c.CurrentStatus()
		if _, ok := counts[status]; ok {
			counts[status]++
		}
	}
	return counts
}

// dailyTrend walks the window oldest to newest, one bucket per local
// calendar day, counting applications created that day and how many of
// those ended up hired.
func dailyTrend(candidates []*models.Candidate, windowDays int, now time.Time) []TrendPoint {
	points := make([]TrendPoint, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		day := startOfDay(now.AddDate(0, 0, -i))
		next := day.AddDate(0, 0, 1)

		point := TrendPoint{Date: day.Format("2006-01-02")}
		for _, c := range candidates {
			if c.CreatedAt.Before(day) || !c.CreatedAt.Before(next) {
				continue
			}
			point.Applications++
			if c.CurrentStatus() == models.StatusHired {
				point.Hired++
			}
		}
		points = append(points, point)
	}
	return points
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// topRoles ranks distinct roles by descending count, ties kept in
// first-encountered order, truncated to limit.
func topRoles(candidates []*models.Candidate, limit int) []RoleCount {
	counts := make(map[string]int)
	var order []string
	for _, c := range candidates {
		role := c.JobRoleApplied
		if role == "" {
			continue
		}
		if _, seen := counts[role]; !seen {
			order = append(order, role)
		}
		counts[role]++
	}

	ranked := make([]RoleCount, 0, len(order))
	for _, role := range order {
		ranked = append(ranked, RoleCount{Role: role, Count: counts[role]})
	}
	// Stable insertion sort preserves first-encountered order on ties.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].Count > ranked[j-1].Count; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func scoreHistogram(candidates []*models.Candidate) []HistogramBucket {
	buckets := make([]HistogramBucket, len(scoreRanges))
	for i, r := range scoreRanges {
		buckets[i].Range = r.label
	}
	for _, c := range candidates {
		score := c.FitScore()
		for i, r := range scoreRanges {
			if score >= r.min && score <= r.max {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}

func periodMetrics(windowed, previous []*models.Candidate) PeriodMetrics {
	m := PeriodMetrics{Total: len(windowed)}

	var scoreSum int
	for _, c := range windowed {
		if c.CurrentStatus() == models.StatusHired {
			m.Hired++
		}
		score := c.FitScore()
		scoreSum += score
		if score >= 70 {
			m.StrongCount++
		}
	}
	if m.Total > 0 {
		m.AvgScore = float64(scoreSum) / float64(m.Total)
	}

	if len(previous) > 0 {
		m.Change = float64(m.Total-len(previous)) / float64(len(previous)) * 100
	}
	return m
}
