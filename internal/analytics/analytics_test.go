package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent-track/internal/models"
)

func scored(score int, status string, created time.Time) *models.Candidate {
	return &models.Candidate{
		ID:         "c",
		Name:       "Candidate",
		AIFitScore: &score,
		Status:     status,
		CreatedAt:  created,
	}
}

func TestAggregate_DailyTrendBuckets(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.Local)
	set := []*models.Candidate{
		scored(50, models.StatusNew, now.AddDate(0, 0, -3)),
		scored(60, models.StatusHired, now.AddDate(0, 0, -3)),
		scored(70, models.StatusNew, now.AddDate(0, 0, -1)),
	}

	report := Aggregate(set, 7, now)
	require.Len(t, report.DailyTrend, 7)

	byDate := make(map[string]TrendPoint)
	for _, p := range report.DailyTrend {
		byDate[p.Date] = p
	}

	dMinus3 := now.AddDate(0, 0, -3).Format("2006-01-02")
	dMinus1 := now.AddDate(0, 0, -1).Format("2006-01-02")

	assert.Equal(t, 2, byDate[dMinus3].Applications)
	assert.Equal(t, 1, byDate[dMinus3].Hired)
	assert.Equal(t, 1, byDate[dMinus1].Applications)

	var total int
	for _, p := range report.DailyTrend {
		total += p.Applications
	}
	assert.Equal(t, 3, total, "all other days must count 0")

	// Oldest to newest.
	assert.Equal(t, now.AddDate(0, 0, -6).Format("2006-01-02"), report.DailyTrend[0].Date)
	assert.Equal(t, now.Format("2006-01-02"), report.DailyTrend[6].Date)
}

func TestAggregate_ScoreHistogramBoundaries(t *testing.T) {
	now := time.Now()
	set := []*models.Candidate{
		scored(20, models.StatusNew, now.Add(-time.Hour)),
		scored(21, models.StatusNew, now.Add(-time.Hour)),
		{ID: "nil-score", Status: models.StatusNew, CreatedAt: now.Add(-time.Hour)},
	}

	report := Aggregate(set, 7, now)
	require.Len(t, report.ScoreHistogram, 5)

	assert.Equal(t, "0-20", report.ScoreHistogram[0].Range)
	assert.Equal(t, 2, report.ScoreHistogram[0].Count, "score 20 and missing score both land in 0-20")
	assert.Equal(t, "21-40", report.ScoreHistogram[1].Range)
	assert.Equal(t, 1, report.ScoreHistogram[1].Count)
}

func TestAggregate_PipelineCountsHasAllBuckets(t *testing.T) {
	now := time.Now()
	set := []*models.Candidate{
		scored(80, models.StatusHired, now.Add(-time.Hour)),
		{ID: "no-status", CreatedAt: now.Add(-time.Hour)},
		// Outside the window, must not be counted.
		scored(90, models.StatusHired, now.AddDate(0, 0, -30)),
	}

	report := Aggregate(set, 7, now)
	assert.Len(t, report.PipelineCounts, 7)
	assert.Equal(t, 1, report.PipelineCounts[models.StatusHired])
	assert.Equal(t, 1, report.PipelineCounts[models.StatusNew], "missing status normalizes to new")
	assert.Equal(t, 0, report.PipelineCounts[models.StatusOffer])
}

func TestAggregate_TopRolesRankingAndTies(t *testing.T) {
	now := time.Now()
	mk := func(role string) *models.Candidate {
		c := scored(50, models.StatusNew, now.Add(-time.Hour))
		c.JobRoleApplied = role
		return c
	}
	set := []*models.Candidate{
		mk("Designer"), mk("Backend"), mk("Backend"),
		mk("Frontend"), mk("QA"), mk("Data"), mk("Support"),
	}

	report := Aggregate(set, 7, now)
	require.Len(t, report.TopRoles, 5, "truncated to top 5")
	assert.Equal(t, RoleCount{Role: "Backend", Count: 2}, report.TopRoles[0])
	// Remaining all count 1; first-encountered order breaks the tie.
	assert.Equal(t, "Designer", report.TopRoles[1].Role)
	assert.Equal(t, "Frontend", report.TopRoles[2].Role)
}

func TestAggregate_PeriodMetrics(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.Local)
	set := []*models.Candidate{
		scored(80, models.StatusHired, now.AddDate(0, 0, -1)),
		scored(60, models.StatusNew, now.AddDate(0, 0, -2)),
		// Previous window of equal length.
		scored(40, models.StatusNew, now.AddDate(0, 0, -10)),
	}

	report := Aggregate(set, 7, now)
	m := report.Metrics
	assert.Equal(t, 2, m.Total)
	assert.Equal(t, 1, m.Hired)
	assert.InDelta(t, 70.0, m.AvgScore, 0.001)
	assert.Equal(t, 1, m.StrongCount)
	assert.InDelta(t, 100.0, m.Change, 0.001, "2 vs 1 in previous window")
}

func TestAggregate_WindowAlignsWithTrendBuckets(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.Local)
	windowBoundary := time.Date(2025, 6, 8, 0, 0, 0, 0, time.Local)
	set := []*models.Candidate{
		scored(50, models.StatusNew, windowBoundary), // oldest instant still in window
		scored(60, models.StatusNew, now.AddDate(0, 0, -1)),
		// Evening before the window's first day; belongs to the previous period.
		scored(40, models.StatusNew, windowBoundary.Add(-6*time.Hour)),
	}

	report := Aggregate(set, 3, now)

	assert.Equal(t, 2, report.Metrics.Total)
	assert.InDelta(t, 100.0, report.Metrics.Change, 0.001, "2 vs 1 in previous window")

	var trendTotal int
	for _, p := range report.DailyTrend {
		trendTotal += p.Applications
	}
	assert.Equal(t, report.Metrics.Total, trendTotal,
		"every windowed candidate lands in exactly one trend bucket")
}

func TestAggregate_ChangeZeroWhenPreviousEmpty(t *testing.T) {
	now := time.Now()
	set := []*models.Candidate{
		scored(50, models.StatusNew, now.Add(-time.Hour)),
		scored(50, models.StatusNew, now.Add(-2*time.Hour)),
	}

	report := Aggregate(set, 7, now)
	assert.Zero(t, report.Metrics.Change)
}

func TestAggregate_EmptySet(t *testing.T) {
	report := Aggregate(nil, 7, time.Now())
	assert.Zero(t, report.Metrics.Total)
	assert.Zero(t, report.Metrics.AvgScore)
	assert.Empty(t, report.TopRoles)
	assert.Len(t, report.DailyTrend, 7)
}
