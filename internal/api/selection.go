package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"talent-track/internal/selection"
)

// selections holds the dashboard's server-side selection state: one
// unbounded set for bulk actions and one capped set for the side-by-side
// comparison view. Guarded here because trackers are not safe for
// concurrent use.
type selections struct {
	mu      sync.Mutex
	bulk    *selection.Tracker
	compare *selection.Tracker
}

func newSelections() *selections {
	return &selections{
		bulk:    selection.NewTracker(selection.ModeBulk),
		compare: selection.NewTracker(selection.ModeCompare),
	}
}

func (s *selections) tracker(mode string) *selection.Tracker {
	if mode == "compare" {
		return s.compare
	}
	return s.bulk
}

func (s *selections) toggle(mode, id string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tracker(mode)
	t.Toggle(id)
	return t.Selected()
}

func (s *selections) clear(mode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker(mode).Clear()
}

func (s *selections) selected(mode string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker(mode).Selected()
}

type selectionRequest struct {
	Mode string `json:"mode"`
	ID   string `json:"id"`
}

type selectionResponse struct {
	Mode  string   `json:"mode"`
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
}

// SelectionHandler returns the current selection
// @Summary Current selection
// @Description Selected candidate ids for the given mode: "bulk" (unbounded) or "compare" (newest three)
// @Tags selection
// @Produce json
// @Param mode query string false "Selection mode (bulk or compare, default bulk)"
// @Success 200 {object} selectionResponse
// @Security BearerAuth
// @Router /dashboard/selection [get]
func (a *API) SelectionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	mode := selectionMode(r.URL.Query().Get("mode"))
	ids := a.selected.selected(mode)
	a.writeJSON(w, http.StatusOK, selectionResponse{Mode: mode, IDs: ids, Count: len(ids)})
}

// SelectionToggleHandler flips one candidate in or out of the selection
// @Summary Toggle a selection
// @Description Add the id when absent, remove it when present. Compare mode keeps only the newest three, evicting the oldest
// @Tags selection
// @Accept json
// @Produce json
// @Success 200 {object} selectionResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /dashboard/selection/toggle [post]
func (a *API) SelectionToggleHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == "" {
		a.writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	mode := selectionMode(req.Mode)
	ids := a.selected.toggle(mode, req.ID)
	a.logger.Debug("selection toggled",
		zap.String("mode", mode),
		zap.String("id", req.ID),
		zap.Int("count", len(ids)),
	)
	a.writeJSON(w, http.StatusOK, selectionResponse{Mode: mode, IDs: ids, Count: len(ids)})
}

// SelectionClearHandler empties the selection
// @Summary Clear the selection
// @Tags selection
// @Accept json
// @Produce json
// @Success 200 {object} selectionResponse
// @Security BearerAuth
// @Router /dashboard/selection/clear [post]
func (a *API) SelectionClearHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req selectionRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	mode := selectionMode(req.Mode)
	a.selected.clear(mode)
	a.writeJSON(w, http.StatusOK, selectionResponse{Mode: mode, IDs: []string{}, Count: 0})
}

func selectionMode(mode string) string {
	if mode == "compare" {
		return "compare"
	}
	return "bulk"
}
