package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"talent-track/internal/filter"
	"talent-track/internal/models"
	"talent-track/internal/storage/postgres"
)

type candidateListResponse struct {
	Candidates  []*models.Candidate `json:"candidates"`
	Total       int                 `json:"total"`
	JobRoles    []string            `json:"job_roles"`
	KnownSkills []string            `json:"known_skills"`
}

// CandidatesHandler lists candidates for the dashboard
// @Summary List candidates
// @Description Full candidate list, newest first, with the role and skill vocabularies for the filter selectors
// @Tags candidates
// @Produce json
// @Success 200 {object} candidateListResponse
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /dashboard/candidates [get]
func (a *API) CandidatesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	list, err := a.candidates(r.Context())
	if err != nil {
		a.logger.Error("failed to list candidates", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "failed to load candidates")
		return
	}

	a.writeJSON(w, http.StatusOK, candidateListResponse{
		Candidates:  list,
		Total:       len(list),
		JobRoles:    filter.JobRoles(list),
		KnownSkills: filter.KnownSkills(list),
	})
}

// SearchHandler filters candidates by criteria
// @Summary Search candidates
// @Description Apply filter criteria to the candidate set. Omitted criteria fields keep their all-inclusive defaults
// @Tags candidates
// @Accept json
// @Produce json
// @Param criteria body models.FilterCriteria true "Filter criteria"
// @Success 200 {object} candidateListResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /dashboard/candidates/search [post]
func (a *API) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// Start from defaults so omitted fields stay all-inclusive.
	crit := models.DefaultCriteria()
	if err := json.NewDecoder(r.Body).Decode(&crit); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid criteria")
		return
	}

	list, err := a.candidates(r.Context())
	if err != nil {
		a.logger.Error("failed to list candidates", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "failed to load candidates")
		return
	}

	matched := filter.Apply(list, crit, a.now())
	a.writeJSON(w, http.StatusOK, candidateListResponse{
		Candidates:  matched,
		Total:       len(matched),
		JobRoles:    filter.JobRoles(list),
		KnownSkills: filter.KnownSkills(list),
	})
}

// CandidateHandler fetches one candidate
// @Summary Get a candidate
// @Tags candidates
// @Produce json
// @Param id query string true "Candidate ID"
// @Success 200 {object} models.Candidate
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /dashboard/candidate [get]
func (a *API) CandidateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		a.writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	candidate, err := a.store.GetCandidate(r.Context(), id)
	if err != nil {
		a.logger.Error("failed to get candidate", zap.String("id", id), zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "failed to load candidate")
		return
	}
	if candidate == nil {
		a.writeError(w, http.StatusNotFound, "candidate not found")
		return
	}

	a.writeJSON(w, http.StatusOK, candidate)
}

type reviewRequest struct {
	ID     string                `json:"id"`
	Fields postgres.ReviewUpdate `json:"fields"`
}

// ReviewHandler applies HR review edits to one candidate
// @Summary Update candidate review fields
// @Description Set status, notes, test link/score or interview datetime. Omitted fields are left untouched
// @Tags candidates
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /dashboard/candidates/review [post]
func (a *API) ReviewHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == "" {
		a.writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	if req.Fields.Status != nil && !models.ValidStatus(*req.Fields.Status) {
		a.writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	if err := a.store.UpdateReview(r.Context(), req.ID, req.Fields); err != nil {
		a.logger.Error("failed to update review", zap.String("id", req.ID), zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "failed to update candidate")
		return
	}

	if a.cache != nil {
		a.cache.InvalidateCandidates(r.Context())
	}
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type statusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// StatusHandler moves one candidate to a new status
// @Summary Change a candidate's status
// @Description Single-candidate status change with an audit entry, same path as the bulk operation
// @Tags candidates
// @Accept json
// @Produce json
// @Success 200 {object} bulk.Outcome
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /dashboard/candidates/status [post]
func (a *API) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == "" {
		a.writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	candidate, err := a.store.GetCandidate(r.Context(), req.ID)
	if err != nil {
		a.writeError(w, http.StatusInternalServerError, "failed to load candidate")
		return
	}
	if candidate == nil {
		a.writeError(w, http.StatusNotFound, "candidate not found")
		return
	}

	outcome, err := a.coordinator.SetStatus(r.Context(), a.actor(r), []*models.Candidate{candidate}, req.Status)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if a.cache != nil {
		a.cache.InvalidateCandidates(r.Context())
	}
	a.writeJSON(w, http.StatusOK, outcome)
}
