package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"talent-track/internal/llm"
	"talent-track/internal/models"
	"talent-track/internal/resume"
)

type applyRequest struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	JobRole         string   `json:"job_role"`
	ExperienceYears *float64 `json:"experience_years"`
	Skills          []string `json:"skills"`
	ResumeText      string   `json:"resume_text"`
	ResumeURL       string   `json:"resume_url"`
}

// ApplyHandler accepts a public job application
// @Summary Submit a job application
// @Description Create a candidate record and, when resume text is present, score it asynchronously-safe: scoring failures never fail the application
// @Tags apply
// @Accept json
// @Produce json
// @Success 201 {object} models.Candidate
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /apply [post]
func (a *API) ApplyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.JobRole = strings.TrimSpace(req.JobRole)
	if req.Name == "" || req.Email == "" || req.JobRole == "" {
		a.writeError(w, http.StatusBadRequest, "name, email and job_role are required")
		return
	}

	candidate := &models.Candidate{
		Name:            req.Name,
		Email:           req.Email,
		JobRoleApplied:  req.JobRole,
		ExperienceYears: req.ExperienceYears,
		Skills:          req.Skills,
		Status:          models.StatusNew,
	}
	if req.Phone != "" {
		candidate.Phone = &req.Phone
	}
	if req.ResumeText != "" {
		candidate.ResumeText = &req.ResumeText
	}
	if req.ResumeURL != "" {
		candidate.ResumeURL = &req.ResumeURL
	}

	if err := a.store.CreateCandidate(r.Context(), candidate); err != nil {
		a.logger.Error("failed to create candidate", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "failed to save application")
		return
	}

	if req.ResumeText != "" {
		a.scoreResume(r, candidate, req.ResumeText)
	}

	if a.cache != nil {
		a.cache.InvalidateCandidates(r.Context())
	}

	a.writeJSON(w, http.StatusCreated, candidate)
}

// scoreResume runs AI scoring for a freshly created candidate. Every failure
// path degrades: the application has already been accepted.
func (a *API) scoreResume(r *http.Request, candidate *models.Candidate, resumeText string) {
	if a.analyzer == nil || !a.analyzer.Configured() {
		return
	}

	analysis, err := a.analyzer.Analyze(r.Context(), resumeText, candidate.JobRoleApplied, candidate.Name)
	if err != nil {
		a.logger.Warn("resume scoring failed, using fallback",
			zap.String("candidate_id", candidate.ID),
			zap.Error(err),
		)
		analysis = llm.FallbackAnalysis()
	}

	if err := a.store.ApplyAnalysis(r.Context(), candidate.ID, analysis); err != nil {
		a.logger.Warn("failed to persist analysis",
			zap.String("candidate_id", candidate.ID),
			zap.Error(err),
		)
		return
	}

	// Reflect the scoring in the response payload.
	candidate.AIFitScore = &analysis.FitScore
	candidate.AISummary = &analysis.Summary
	if len(analysis.Skills) > 0 {
		candidate.Skills = analysis.Skills
	}
	if analysis.ExperienceYears > 0 {
		years := analysis.ExperienceYears
		candidate.ExperienceYears = &years
	}
	candidate.Status = models.StatusScreening
}

// ResumeUploadHandler stores an uploaded resume file
// @Summary Upload a resume file
// @Description Store a PDF/DOC/DOCX resume (max 10MB) and return its URL plus extracted text
// @Tags apply
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Resume file"
// @Success 200 {object} resume.Stored
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /apply/resume [post]
func (a *API) ResumeUploadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := r.ParseMultipartForm(resume.MaxFileSize); err != nil {
		a.writeError(w, http.StatusBadRequest, "file too large or invalid (max 10MB)")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		a.writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	stored, err := a.parser.Store(header.Filename, header.Size, file)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	a.logger.Info("resume stored",
		zap.String("filename", stored.Filename),
		zap.Int64("size", stored.FileSize),
	)
	a.writeJSON(w, http.StatusOK, stored)
}
