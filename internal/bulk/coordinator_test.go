package bulk

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"talent-track/internal/models"
)

type fakeStore struct {
	updateCalls [][]string
	deleteCalls [][]string
	lastStatus  string
	failWith    error
}

func (f *fakeStore) UpdateStatus(_ context.Context, ids []string, status string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.updateCalls = append(f.updateCalls, ids)
	f.lastStatus = status
	return nil
}

func (f *fakeStore) Delete(_ context.Context, ids []string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.deleteCalls = append(f.deleteCalls, ids)
	return nil
}

type fakeActivities struct {
	entries  []*models.ActivityRecord
	failWith error
}

func (f *fakeActivities) LogActivity(_ context.Context, rec *models.ActivityRecord) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.entries = append(f.entries, rec)
	return nil
}

type fakeQueuer struct {
	queued   int
	failWith error
}

func (f *fakeQueuer) Queue(_ context.Context, candidates []*models.Candidate) (int, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	f.queued += len(candidates)
	return len(candidates), nil
}

func testCandidates(n int) []*models.Candidate {
	out := make([]*models.Candidate, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &models.Candidate{
			ID:        string(rune('a' + i)),
			Name:      "Candidate " + string(rune('A'+i)),
			CreatedAt: time.Now(),
		})
	}
	return out
}

func newTestCoordinator(store *fakeStore, acts *fakeActivities, q *fakeQueuer) *Coordinator {
	return NewCoordinator(store, acts, q, zap.NewNop())
}

func TestSetStatus_OneMutationManyAuditEntries(t *testing.T) {
	store := &fakeStore{}
	acts := &fakeActivities{}
	coord := newTestCoordinator(store, acts, &fakeQueuer{})

	outcome, err := coord.SetStatus(context.Background(), Actor{ID: "u1", Name: "HR"}, testCandidates(3), models.StatusHired)
	require.NoError(t, err)

	assert.Equal(t, 3, outcome.Affected)
	require.Len(t, store.updateCalls, 1, "exactly one storage mutation for the whole batch")
	assert.Equal(t, []string{"a", "b", "c"}, store.updateCalls[0])
	assert.Equal(t, models.StatusHired, store.lastStatus)

	require.Len(t, acts.entries, 3, "one audit entry per candidate")
	for _, e := range acts.entries {
		assert.Equal(t, "updated_status", e.Action)
		assert.Equal(t, "candidate", e.EntityType)
		assert.Equal(t, "HR", e.UserName)
		assert.Equal(t, models.StatusHired, e.Details["new_status"])
	}
}

func TestSetStatus_RejectsUnknownStatus(t *testing.T) {
	store := &fakeStore{}
	coord := newTestCoordinator(store, &fakeActivities{}, &fakeQueuer{})

	_, err := coord.SetStatus(context.Background(), Actor{}, testCandidates(1), "promoted")
	require.Error(t, err)
	assert.Empty(t, store.updateCalls, "no mutation attempted on validation failure")
}

func TestSetStatus_StorageFailureAbortsBatch(t *testing.T) {
	store := &fakeStore{failWith: errors.New("connection reset")}
	acts := &fakeActivities{}
	coord := newTestCoordinator(store, acts, &fakeQueuer{})

	_, err := coord.SetStatus(context.Background(), Actor{}, testCandidates(3), models.StatusOffer)
	require.Error(t, err)
	assert.Empty(t, acts.entries, "no audit entries when the mutation fails")
}

func TestSetStatus_AuditFailureDoesNotFailBatch(t *testing.T) {
	store := &fakeStore{}
	acts := &fakeActivities{failWith: errors.New("activity table gone")}
	coord := newTestCoordinator(store, acts, &fakeQueuer{})

	outcome, err := coord.SetStatus(context.Background(), Actor{}, testCandidates(2), models.StatusRejected)
	require.NoError(t, err, "audit writes are best-effort")
	assert.Equal(t, 2, outcome.Affected)
	require.Len(t, store.updateCalls, 1)
}

func TestSetStatus_EmptySelectionIsNoop(t *testing.T) {
	store := &fakeStore{}
	coord := newTestCoordinator(store, &fakeActivities{}, &fakeQueuer{})

	outcome, err := coord.SetStatus(context.Background(), Actor{}, nil, models.StatusHired)
	require.NoError(t, err)
	assert.Zero(t, outcome.Affected)
	assert.Empty(t, store.updateCalls)
}

func TestDelete_OneMutationManyAuditEntries(t *testing.T) {
	store := &fakeStore{}
	acts := &fakeActivities{}
	coord := newTestCoordinator(store, acts, &fakeQueuer{})

	outcome, err := coord.Delete(context.Background(), Actor{Name: "HR"}, testCandidates(2))
	require.NoError(t, err)

	assert.Equal(t, 2, outcome.Affected)
	require.Len(t, store.deleteCalls, 1)
	assert.Equal(t, []string{"a", "b"}, store.deleteCalls[0])
	require.Len(t, acts.entries, 2)
	assert.Equal(t, "deleted", acts.entries[0].Action)
}

func TestDelete_StorageFailureAbortsBatch(t *testing.T) {
	store := &fakeStore{failWith: errors.New("permission denied")}
	acts := &fakeActivities{}
	coord := newTestCoordinator(store, acts, &fakeQueuer{})

	_, err := coord.Delete(context.Background(), Actor{}, testCandidates(2))
	require.Error(t, err)
	assert.Empty(t, acts.entries)
}

func TestExportCSV_ReadOnly(t *testing.T) {
	store := &fakeStore{}
	acts := &fakeActivities{}
	coord := newTestCoordinator(store, acts, &fakeQueuer{})

	now := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	artifact := coord.ExportCSV(testCandidates(2), now)

	assert.Equal(t, "candidates-export-2025-06-10.csv", artifact.Filename)
	assert.Equal(t, "text/csv", artifact.ContentType)
	assert.True(t, strings.HasPrefix(string(artifact.Content), `"Name","Email"`))
	assert.Len(t, strings.Split(string(artifact.Content), "\n"), 3)

	assert.Empty(t, store.updateCalls)
	assert.Empty(t, store.deleteCalls)
	assert.Empty(t, acts.entries, "export writes no audit entries")
}

func TestQueueEmails_ReportsQueuedCountOnly(t *testing.T) {
	q := &fakeQueuer{}
	coord := newTestCoordinator(&fakeStore{}, &fakeActivities{}, q)

	outcome, err := coord.QueueEmails(context.Background(), testCandidates(4))
	require.NoError(t, err)
	assert.Equal(t, 4, outcome.Queued)
	assert.Zero(t, outcome.Affected, "queuing mutates nothing")
}

func TestQueueEmails_Failure(t *testing.T) {
	q := &fakeQueuer{failWith: errors.New("queue full")}
	coord := newTestCoordinator(&fakeStore{}, &fakeActivities{}, q)

	_, err := coord.QueueEmails(context.Background(), testCandidates(1))
	require.Error(t, err)
}
