package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"talent-track/internal/models"
)

func TestSendInvite_PostsTemplateParams(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient("svc", "tpl", "user", "Acme", zap.NewNop())
	client.endpoint = srv.URL

	err := client.SendInvite(context.Background(), Invite{
		CandidateName:  "Ada Lovelace",
		CandidateEmail: "ada@example.com",
		InterviewDate:  "2025-06-12 10:00",
		Notes:          "Bring portfolio",
	})
	require.NoError(t, err)

	assert.Equal(t, "svc", received["service_id"])
	assert.Equal(t, "tpl", received["template_id"])
	assert.Equal(t, "user", received["user_id"])

	params, ok := received["template_params"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", params["to_name"])
	assert.Equal(t, "ada@example.com", params["to_email"])
	assert.Equal(t, "Acme", params["company_name"])
	assert.Equal(t, "2025-06-12 10:00", params["interview_datetime"])
}

func TestSendInvite_ProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid template", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient("svc", "tpl", "user", "Acme", zap.NewNop())
	client.endpoint = srv.URL

	err := client.SendInvite(context.Background(), Invite{CandidateEmail: "x@example.com"})
	require.Error(t, err)
}

func TestSendInvite_NotConfigured(t *testing.T) {
	client := NewClient("", "", "", "Acme", zap.NewNop())
	err := client.SendInvite(context.Background(), Invite{})
	require.Error(t, err)
}

func TestQueue_ReportsQueuedCount(t *testing.T) {
	q := NewQueue(zap.NewNop())

	queued, err := q.Queue(context.Background(), []*models.Candidate{
		{ID: "a", Email: "a@example.com"},
		{ID: "b", Email: "b@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, queued)

	queued, err = q.Queue(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, queued)
}
