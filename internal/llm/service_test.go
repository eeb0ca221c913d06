package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const wellFormed = `{
  "fitScore": 78,
  "skills": ["Go", "PostgreSQL"],
  "experienceYears": 5.5,
  "summary": "Solid backend engineer.",
  "strengths": ["APIs"],
  "concerns": [],
  "recommendedQuestions": ["Tell me about a production incident."]
}`

func TestParseAnalysis_PlainJSON(t *testing.T) {
	analysis := parseAnalysis(wellFormed)
	require.NotNil(t, analysis)
	assert.Equal(t, 78, analysis.FitScore)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, analysis.Skills)
	assert.InDelta(t, 5.5, analysis.ExperienceYears, 0.001)
}

func TestParseAnalysis_StripsCodeFences(t *testing.T) {
	fenced := "```json\n" + wellFormed + "\n```"
	analysis := parseAnalysis(fenced)
	require.NotNil(t, analysis)
	assert.Equal(t, 78, analysis.FitScore)

	bare := "```\n" + wellFormed + "\n```"
	analysis = parseAnalysis(bare)
	require.NotNil(t, analysis)
	assert.Equal(t, 78, analysis.FitScore)
}

func TestParseAnalysis_ClampsScoreRange(t *testing.T) {
	high := parseAnalysis(`{"fitScore": 250, "skills": []}`)
	require.NotNil(t, high)
	assert.Equal(t, 100, high.FitScore)

	low := parseAnalysis(`{"fitScore": -10, "experienceYears": -2}`)
	require.NotNil(t, low)
	assert.Equal(t, 0, low.FitScore)
	assert.Zero(t, low.ExperienceYears)
}

func TestParseAnalysis_MalformedReturnsNil(t *testing.T) {
	assert.Nil(t, parseAnalysis("I'm sorry, I can't analyze this resume."))
	assert.Nil(t, parseAnalysis("{truncated"))
	assert.Nil(t, parseAnalysis(""))
}

func TestFallbackAnalysis_IsValidAndDistinguishable(t *testing.T) {
	fb := FallbackAnalysis()
	assert.Equal(t, 50, fb.FitScore)
	assert.Empty(t, fb.Strengths)
	assert.Len(t, fb.Concerns, 1)
	assert.NotEmpty(t, fb.Summary)
}

func TestConfigured(t *testing.T) {
	log := zap.NewNop()

	assert.True(t, NewService("openai", "sk-test", "gpt-4o-mini", log).Configured())
	assert.False(t, NewService("none", "", "gpt-4o-mini", log).Configured())
	assert.False(t, NewService("openai", "", "gpt-4o-mini", log).Configured())

	var nilSvc *Service
	assert.False(t, nilSvc.Configured())
}
