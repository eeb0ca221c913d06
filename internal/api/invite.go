package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"talent-track/internal/models"
	"talent-track/internal/notify"
	"talent-track/internal/storage/postgres"
)

// Inviter sends one interview invite synchronously. Implemented by
// *notify.Client.
type Inviter interface {
	Configured() bool
	SendInvite(ctx context.Context, invite notify.Invite) error
}

type inviteRequest struct {
	CandidateID       string    `json:"candidate_id"`
	InterviewDateTime time.Time `json:"interview_date_time"`
	Notes             string    `json:"notes"`
}

// InviteHandler emails an interview invite to one candidate
// @Summary Send an interview invite
// @Description Deliver the invite email, then move the candidate to the interview status with the scheduled datetime. The email send is the gate: nothing is persisted when delivery fails
// @Tags collaboration
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Security BearerAuth
// @Router /dashboard/invite [post]
func (a *API) InviteHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if a.inviter == nil || !a.inviter.Configured() {
		a.writeError(w, http.StatusBadRequest, "email service not configured")
		return
	}

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CandidateID == "" || req.InterviewDateTime.IsZero() {
		a.writeError(w, http.StatusBadRequest, "candidate_id and interview_date_time are required")
		return
	}

	candidate, err := a.store.GetCandidate(r.Context(), req.CandidateID)
	if err != nil {
		a.writeError(w, http.StatusInternalServerError, "failed to load candidate")
		return
	}
	if candidate == nil {
		a.writeError(w, http.StatusNotFound, "candidate not found")
		return
	}

	invite := notify.Invite{
		CandidateName:  candidate.Name,
		CandidateEmail: candidate.Email,
		InterviewDate:  req.InterviewDateTime.Format("Jan 2, 2006 at 3:04 PM"),
		Notes:          req.Notes,
	}
	if err := a.inviter.SendInvite(r.Context(), invite); err != nil {
		a.logger.Error("invite send failed",
			zap.String("candidate_id", candidate.ID),
			zap.Error(err),
		)
		a.writeError(w, http.StatusBadGateway, "failed to send invite")
		return
	}

	status := models.StatusInterview
	update := postgres.ReviewUpdate{
		Status:            &status,
		InterviewDateTime: &req.InterviewDateTime,
	}
	if err := a.store.UpdateReview(r.Context(), candidate.ID, update); err != nil {
		a.logger.Warn("invite sent but candidate update failed",
			zap.String("candidate_id", candidate.ID),
			zap.Error(err),
		)
	}

	actor := a.actor(r)
	rec := &models.ActivityRecord{
		UserID:     actor.ID,
		UserName:   actor.Name,
		Action:     "sent_invite",
		EntityType: "candidate",
		EntityID:   candidate.ID,
		Details: models.ActivityDetails{
			"candidate_name":     candidate.Name,
			"interview_datetime": req.InterviewDateTime.Format(time.RFC3339),
		},
	}
	if err := a.store.LogActivity(r.Context(), rec); err != nil {
		a.logger.Warn("activity log write failed", zap.Error(err))
	}

	if a.cache != nil {
		a.cache.InvalidateCandidates(r.Context())
	}
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
