package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"talent-track/internal/auth"
	"talent-track/internal/bulk"
	"talent-track/internal/models"
	"talent-track/internal/resume"
	"talent-track/internal/storage/postgres"
)

// Store is the storage collaborator surface the handlers need. Implemented
// by *postgres.Store; substituted with fakes in tests.
type Store interface {
	ListCandidates(ctx context.Context) ([]*models.Candidate, error)
	GetCandidate(ctx context.Context, id string) (*models.Candidate, error)
	CreateCandidate(ctx context.Context, c *models.Candidate) error
	UpdateStatus(ctx context.Context, ids []string, status string) error
	Delete(ctx context.Context, ids []string) error
	ApplyAnalysis(ctx context.Context, id string, analysis *models.ResumeAnalysis) error
	UpdateReview(ctx context.Context, id string, update postgres.ReviewUpdate) error
	LogActivity(ctx context.Context, rec *models.ActivityRecord) error
	RecentActivities(ctx context.Context, limit int) ([]models.ActivityRecord, error)
	AddComment(ctx context.Context, comment *models.Comment) error
	CommentsForCandidate(ctx context.Context, candidateID string) ([]models.Comment, error)
}

// CandidateCache is the optional read-through cache for the candidate list.
type CandidateCache interface {
	GetCandidates(ctx context.Context) ([]*models.Candidate, error)
	SetCandidates(ctx context.Context, candidates []*models.Candidate) error
	InvalidateCandidates(ctx context.Context)
}

// Analyzer scores resumes. Implemented by *llm.Service.
type Analyzer interface {
	Configured() bool
	Analyze(ctx context.Context, resumeText, jobRole, candidateName string) (*models.ResumeAnalysis, error)
}

// ChangeSource yields realtime change events. Implemented by *redis.Feed.
type ChangeSource interface {
	Subscribe(ctx context.Context) <-chan models.ChangeEvent
}

type API struct {
	store       Store
	cache       CandidateCache // may be nil
	coordinator *bulk.Coordinator
	analyzer    Analyzer // may be nil when no provider is configured
	inviter     Inviter  // may be nil when email is not configured
	parser      *resume.Parser
	selected    *selections
	logger      *zap.Logger
	now         func() time.Time
}

func NewAPI(store Store, cache CandidateCache, coordinator *bulk.Coordinator, analyzer Analyzer, inviter Inviter, parser *resume.Parser, logger *zap.Logger) *API {
	return &API{
		store:       store,
		cache:       cache,
		coordinator: coordinator,
		analyzer:    analyzer,
		inviter:     inviter,
		parser:      parser,
		selected:    newSelections(),
		logger:      logger,
		now:         time.Now,
	}
}

// candidates reads through the cache when one is wired.
func (a *API) candidates(ctx context.Context) ([]*models.Candidate, error) {
	if a.cache != nil {
		if cached, err := a.cache.GetCandidates(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	list, err := a.store.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}

	if a.cache != nil {
		if err := a.cache.SetCandidates(ctx, list); err != nil {
			a.logger.Warn("failed to populate candidates cache", zap.Error(err))
		}
	}
	return list, nil
}

// candidatesByID joins a selection id set against the current candidate set,
// preserving the id order and skipping ids that no longer exist.
func (a *API) candidatesByID(ctx context.Context, ids []string) ([]*models.Candidate, error) {
	list, err := a.candidates(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Candidate, len(list))
	for _, c := range list {
		byID[c.ID] = c
	}

	out := make([]*models.Candidate, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// actor resolves the audit identity from the request's verified session.
func (a *API) actor(r *http.Request) bulk.Actor {
	if session := auth.FromContext(r.Context()); session != nil {
		return bulk.Actor{ID: session.UserID, Name: session.Name}
	}
	return bulk.Actor{ID: "system", Name: "System"}
}

func (a *API) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.logger.Warn("failed to encode response", zap.Error(err))
	}
}

func (a *API) writeError(w http.ResponseWriter, status int, message string) {
	a.writeJSON(w, status, map[string]string{"error": message})
}
