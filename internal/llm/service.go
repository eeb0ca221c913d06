// Package llm scores resumes against a job role through a hosted chat model.
// Malformed model output is recovered locally with a fixed low-confidence
// analysis; callers never see a parse failure.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"talent-track/internal/models"
)

type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGroq   Provider = "groq"
	ProviderNone   Provider = "none"
)

const (
	openAIEndpoint = "https://api.openai.com/v1/chat/completions"
	groqEndpoint   = "https://api.groq.com/openai/v1/chat/completions"
)

const systemPrompt = `You are an expert HR AI assistant specialized in resume analysis and candidate screening.
Analyze resumes objectively and provide structured assessments.
Be fair, unbiased, and focus on skills, experience, and qualifications.
Always provide actionable insights for hiring managers.`

type Service struct {
	provider Provider
	apiKey   string
	model    string
	timeout  time.Duration
	logger   *zap.Logger
}

func NewService(provider, apiKey, model string, logger *zap.Logger) *Service {
	return &Service{
		provider: Provider(provider),
		apiKey:   apiKey,
		model:    model,
		timeout:  120 * time.Second,
		logger:   logger,
	}
}

// Configured reports whether a provider is set up for scoring.
func (s *Service) Configured() bool {
	return s != nil && s.provider != ProviderNone && s.provider != "" && s.apiKey != ""
}

// Analyze scores the resume text for the given role. The returned analysis
// is always usable: upstream parse problems degrade to FallbackAnalysis,
// not to an error.
func (s *Service) Analyze(ctx context.Context, resumeText, jobRole, candidateName string) (*models.ResumeAnalysis, error) {
	if !s.Configured() {
		return nil, fmt.Errorf("LLM provider not configured")
	}

	s.logger.Info("scoring resume",
		zap.String("candidate", candidateName),
		zap.String("job_role", jobRole),
	)

	response, err := s.chat(ctx, buildPrompt(resumeText, jobRole))
	if err != nil {
		return nil, err
	}

	analysis := parseAnalysis(response)
	if analysis == nil {
		s.logger.Warn("unparseable model output, using fallback analysis",
			zap.String("candidate", candidateName),
		)
		analysis = FallbackAnalysis()
	}

	return analysis, nil
}

func (s *Service) chat(ctx context.Context, prompt string) (string, error) {
	var endpoint string
	switch s.provider {
	case ProviderOpenAI:
		endpoint = openAIEndpoint
	case ProviderGroq:
		endpoint = groqEndpoint
	default:
		return "", fmt.Errorf("unknown provider: %s", s.provider)
	}

	reqBody := map[string]interface{}{
		"model": s.model,
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": systemPrompt,
			},
			{
				"role":    "user",
				"content": prompt,
			},
		},
		"temperature": 0.1,
	}

	jsonData, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: s.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s API error: %d", s.provider, resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	if result.Error.Message != "" {
		return "", fmt.Errorf("%s error: %s", s.provider, result.Error.Message)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from %s", s.provider)
	}

	return result.Choices[0].Message.Content, nil
}

func buildPrompt(resumeText, jobRole string) string {
	return fmt.Sprintf(`Analyze this resume for the position of "%s":

%s

Provide a comprehensive analysis in the following JSON format:
{
  "fitScore": <number between 0-100 representing overall fit for the role>,
  "skills": [<array of key technical and soft skills identified>],
  "experienceYears": <estimated total years of relevant experience as a number>,
  "summary": "<2-3 sentence executive summary of the candidate's profile and fit>",
  "strengths": [<array of 3-5 key strengths for this role>],
  "concerns": [<array of any potential concerns or gaps>],
  "recommendedQuestions": [<array of 3-5 interview questions specific to this candidate>]
}

Return ONLY valid JSON, no additional text.`, jobRole, resumeText)
}

// parseAnalysis strips markdown code fences and decodes the model's JSON.
// Returns nil when the payload is not well-formed.
func parseAnalysis(response string) *models.ResumeAnalysis {
	cleaned := strings.TrimSpace(response)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[len("```json"):]
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[len("```"):]
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	cleaned = strings.TrimSpace(cleaned)

	var analysis models.ResumeAnalysis
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		return nil
	}
	if analysis.FitScore < 0 {
		analysis.FitScore = 0
	}
	if analysis.FitScore > 100 {
		analysis.FitScore = 100
	}
	if analysis.ExperienceYears < 0 {
		analysis.ExperienceYears = 0
	}
	return &analysis
}

// FallbackAnalysis is the fixed low-confidence result substituted when the
// model output cannot be parsed. Valid and distinguishable, not an error.
func FallbackAnalysis() *models.ResumeAnalysis {
	return &models.ResumeAnalysis{
		FitScore:        50,
		Skills:          []string{"Unable to parse - manual review required"},
		ExperienceYears: 0,
		Summary:         "AI analysis encountered an issue. Please review the resume manually.",
		Strengths:       []string{},
		Concerns:        []string{"AI parsing error - manual review recommended"},
		RecommendedQuestions: []string{
			"Please describe your relevant experience for this role.",
		},
	}
}
