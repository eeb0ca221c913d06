// Package bulk applies one operation across every selected candidate. The
// storage mutation is issued once for the whole id set; audit entries are
// emitted per candidate afterwards. Collaborators are injected so tests can
// substitute doubles.
package bulk

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"talent-track/internal/export"
	"talent-track/internal/models"
)

// CandidateStore is the slice of the storage collaborator the coordinator
// needs: id-batched status updates and deletes.
type CandidateStore interface {
	UpdateStatus(ctx context.Context, ids []string, status string) error
	Delete(ctx context.Context, ids []string) error
}

// ActivityLogger records audit entries. Failures here are best-effort: the
// primary mutation has already succeeded and is never rolled back.
type ActivityLogger interface {
	LogActivity(ctx context.Context, rec *models.ActivityRecord) error
}

// EmailQueuer accepts candidates for deferred email dispatch. Queuing gives
// no delivery receipt; it is deliberately distinct from the synchronous
// single-candidate invite send.
type EmailQueuer interface {
	Queue(ctx context.Context, candidates []*models.Candidate) (int, error)
}

// Actor identifies who triggered the operation, for the audit trail.
type Actor struct {
	ID   string
	Name string
}

// Outcome is the aggregate result of one bulk operation. A batch either
// applies to every target or to none; there is no per-id breakdown.
type Outcome struct {
	Affected int `json:"affected"`
	Queued   int `json:"queued,omitempty"`
}

// Artifact is a downloadable export produced from the target set.
type Artifact struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Coordinator fans one operation out over the selected candidates.
type Coordinator struct {
	store      CandidateStore
	activities ActivityLogger
	queuer     EmailQueuer
	logger     *zap.Logger
}

// NewCoordinator wires the coordinator to its collaborators.
func NewCoordinator(store CandidateStore, activities ActivityLogger, queuer EmailQueuer, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		store:      store,
		activities: activities,
		queuer:     queuer,
		logger:     logger,
	}
}

// SetStatus moves every target candidate to newStatus with a single
// id-batched mutation, then writes one audit entry per candidate.
func (c *Coordinator) SetStatus(ctx context.Context, actor Actor, candidates []*models.Candidate, newStatus string) (Outcome, error) {
	if len(candidates) == 0 {
		return Outcome{}, nil
	}
	if !models.ValidStatus(newStatus) {
		return Outcome{}, fmt.Errorf("invalid status %q", newStatus)
	}

	ids := collectIDs(candidates)
	if err := c.store.UpdateStatus(ctx, ids, newStatus); err != nil {
		return Outcome{}, fmt.Errorf("bulk status update: %w", err)
	}

	for _, candidate := range candidates {
		c.logActivity(ctx, actor, "updated_status", candidate.ID, models.ActivityDetails{
			"candidate_name": candidate.Name,
			"new_status":     newStatus,
		})
	}

	c.logger.Info("bulk status update applied",
		zap.Int("count", len(ids)),
		zap.String("status", newStatus),
	)
	return Outcome{Affected: len(ids)}, nil
}

// Delete removes every target candidate with a single id-batched mutation.
// Irreversible; the confirmation gate lives with the caller.
func (c *Coordinator) Delete(ctx context.Context, actor Actor, candidates []*models.Candidate) (Outcome, error) {
	if len(candidates) == 0 {
		return Outcome{}, nil
	}

	ids := collectIDs(candidates)
	if err := c.store.Delete(ctx, ids); err != nil {
		return Outcome{}, fmt.Errorf("bulk delete: %w", err)
	}

	for _, candidate := range candidates {
		c.logActivity(ctx, actor, "deleted", candidate.ID, models.ActivityDetails{
			"candidate_name": candidate.Name,
		})
	}

	c.logger.Info("bulk delete applied", zap.Int("count", len(ids)))
	return Outcome{Affected: len(ids)}, nil
}

// ExportCSV encodes exactly the target set. Read-only: no mutation, no
// audit entries.
func (c *Coordinator) ExportCSV(candidates []*models.Candidate, now time.Time) Artifact {
	return Artifact{
		Filename:    export.Filename("candidates-export", now),
		ContentType: "text/csv",
		Content:     []byte(export.EncodeCandidatesCSV(candidates)),
	}
}

// QueueEmails hands the target set to the deferred dispatcher. The outcome
// reports how many were queued, not how many were delivered.
func (c *Coordinator) QueueEmails(ctx context.Context, candidates []*models.Candidate) (Outcome, error) {
	if len(candidates) == 0 {
		return Outcome{}, nil
	}

	queued, err := c.queuer.Queue(ctx, candidates)
	if err != nil {
		return Outcome{}, fmt.Errorf("queue emails: %w", err)
	}
	return Outcome{Queued: queued}, nil
}

// logActivity writes one audit entry, swallowing failures: the mutation
// already succeeded, so a dead audit write must not fail the batch.
func (c *Coordinator) logActivity(ctx context.Context, actor Actor, action, candidateID string, details models.ActivityDetails) {
	rec := &models.ActivityRecord{
		UserID:     actor.ID,
		UserName:   actor.Name,
		Action:     action,
		EntityType: "candidate",
		EntityID:   candidateID,
		Details:    details,
	}
	if err := c.activities.LogActivity(ctx, rec); err != nil {
		c.logger.Warn("activity log write failed",
			zap.String("action", action),
			zap.String("candidate_id", candidateID),
			zap.Error(err),
		)
	}
}

func collectIDs(candidates []*models.Candidate) []string {
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}
	return ids
}
