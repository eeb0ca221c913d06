package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"talent-track/internal/models"
)

// ActivityHandler returns the team activity feed
// @Summary Recent activity
// @Description Latest audit entries, newest first
// @Tags collaboration
// @Produce json
// @Param limit query int false "Max entries (default 20)"
// @Success 200 {array} models.ActivityRecord
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /dashboard/activity [get]
func (a *API) ActivityHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	records, err := a.store.RecentActivities(r.Context(), limit)
	if err != nil {
		a.logger.Error("failed to load activity feed", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "failed to load activity")
		return
	}
	a.writeJSON(w, http.StatusOK, records)
}

type commentRequest struct {
	CandidateID string `json:"candidate_id"`
	Content     string `json:"content"`
}

// CommentsHandler lists or adds candidate comments
// @Summary Candidate comments
// @Description GET lists a candidate's comments oldest first; POST appends one authored by the current session
// @Tags collaboration
// @Accept json
// @Produce json
// @Param candidate_id query string false "Candidate ID (GET)"
// @Success 200 {array} models.Comment
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /dashboard/comments [get]
func (a *API) CommentsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listComments(w, r)
	case http.MethodPost:
		a.addComment(w, r)
	default:
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (a *API) listComments(w http.ResponseWriter, r *http.Request) {
	candidateID := r.URL.Query().Get("candidate_id")
	if candidateID == "" {
		a.writeError(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	comments, err := a.store.CommentsForCandidate(r.Context(), candidateID)
	if err != nil {
		a.logger.Error("failed to load comments", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "failed to load comments")
		return
	}
	a.writeJSON(w, http.StatusOK, comments)
}

func (a *API) addComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.CandidateID == "" || req.Content == "" {
		a.writeError(w, http.StatusBadRequest, "candidate_id and content are required")
		return
	}

	actor := a.actor(r)
	comment := &models.Comment{
		CandidateID: req.CandidateID,
		UserID:      actor.ID,
		UserName:    actor.Name,
		Content:     req.Content,
	}
	if err := a.store.AddComment(r.Context(), comment); err != nil {
		a.logger.Error("failed to add comment", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "failed to add comment")
		return
	}
	a.writeJSON(w, http.StatusCreated, comment)
}
