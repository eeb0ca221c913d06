package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

type bulkRequest struct {
	IDs     []string `json:"ids"`
	Status  string   `json:"status,omitempty"`
	Confirm bool     `json:"confirm,omitempty"`
}

func (a *API) decodeBulkRequest(w http.ResponseWriter, r *http.Request) (bulkRequest, bool) {
	if r.Method != http.MethodPost {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return bulkRequest{}, false
	}

	var req bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return bulkRequest{}, false
	}
	// Omitted ids mean "whatever is currently selected on the dashboard".
	if len(req.IDs) == 0 {
		req.IDs = a.selected.selected("bulk")
	}
	if len(req.IDs) == 0 {
		a.writeError(w, http.StatusBadRequest, "nothing selected")
		return bulkRequest{}, false
	}
	return req, true
}

// BulkStatusHandler moves every selected candidate to one status
// @Summary Bulk status change
// @Description One status applied across the whole selection, with a per-candidate audit entry
// @Tags bulk
// @Accept json
// @Produce json
// @Success 200 {object} bulk.Outcome
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /dashboard/bulk/status [post]
func (a *API) BulkStatusHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := a.decodeBulkRequest(w, r)
	if !ok {
		return
	}

	candidates, err := a.candidatesByID(r.Context(), req.IDs)
	if err != nil {
		a.logger.Error("failed to resolve selection", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "failed to load candidates")
		return
	}

	outcome, err := a.coordinator.SetStatus(r.Context(), a.actor(r), candidates, req.Status)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	a.selected.clear("bulk")
	if a.cache != nil {
		a.cache.InvalidateCandidates(r.Context())
	}
	a.writeJSON(w, http.StatusOK, outcome)
}

// BulkDeleteHandler removes every selected candidate
// @Summary Bulk delete
// @Description Irreversible removal of the whole selection. Requires confirm=true; the UI confirmation dialog maps to this flag
// @Tags bulk
// @Accept json
// @Produce json
// @Success 200 {object} bulk.Outcome
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /dashboard/bulk/delete [post]
func (a *API) BulkDeleteHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := a.decodeBulkRequest(w, r)
	if !ok {
		return
	}
	if !req.Confirm {
		a.writeError(w, http.StatusBadRequest, "delete requires confirm=true")
		return
	}

	candidates, err := a.candidatesByID(r.Context(), req.IDs)
	if err != nil {
		a.logger.Error("failed to resolve selection", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "failed to load candidates")
		return
	}

	outcome, err := a.coordinator.Delete(r.Context(), a.actor(r), candidates)
	if err != nil {
		a.logger.Error("bulk delete failed", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.selected.clear("bulk")
	if a.cache != nil {
		a.cache.InvalidateCandidates(r.Context())
	}
	a.writeJSON(w, http.StatusOK, outcome)
}

// BulkExportHandler downloads the selection as CSV
// @Summary Bulk CSV export
// @Description Encode exactly the selected candidates as a CSV attachment. Read-only: no mutation, no audit entries
// @Tags bulk
// @Accept json
// @Produce text/csv
// @Success 200 {string} string "CSV content"
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /dashboard/bulk/export [post]
func (a *API) BulkExportHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := a.decodeBulkRequest(w, r)
	if !ok {
		return
	}

	candidates, err := a.candidatesByID(r.Context(), req.IDs)
	if err != nil {
		a.logger.Error("failed to resolve selection", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "failed to load candidates")
		return
	}

	artifact := a.coordinator.ExportCSV(candidates, a.now())
	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Content); err != nil {
		a.logger.Warn("failed to stream export", zap.Error(err))
	}
}

// BulkNotifyHandler queues interview emails for the selection
// @Summary Bulk email queue
// @Description Hand the selection to the deferred email dispatcher. The response reports how many were queued, not delivered
// @Tags bulk
// @Accept json
// @Produce json
// @Success 200 {object} bulk.Outcome
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /dashboard/bulk/notify [post]
func (a *API) BulkNotifyHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := a.decodeBulkRequest(w, r)
	if !ok {
		return
	}

	candidates, err := a.candidatesByID(r.Context(), req.IDs)
	if err != nil {
		a.logger.Error("failed to resolve selection", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "failed to load candidates")
		return
	}

	outcome, err := a.coordinator.QueueEmails(r.Context(), candidates)
	if err != nil {
		a.logger.Error("bulk notify failed", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.writeJSON(w, http.StatusOK, outcome)
}
