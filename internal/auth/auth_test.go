package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedHandler(t *testing.T, wantName string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := FromContext(r.Context())
		require.NotNil(t, session)
		assert.Equal(t, wantName, session.Name)
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_ValidToken(t *testing.T) {
	verifier := NewTokenVerifier("secret-token")
	handler := Middleware(verifier, protectedHandler(t, "HR Team"))

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/candidates", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddleware_RejectsMissingOrWrongToken(t *testing.T) {
	verifier := NewTokenVerifier("secret-token")
	handler := Middleware(verifier, protectedHandler(t, "HR Team"))

	for _, header := range []string{"", "Bearer wrong", "secret-token"} {
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard/candidates", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestTokenVerifier_EmptyConfiguredTokenDeniesAll(t *testing.T) {
	verifier := NewTokenVerifier("")
	session, err := verifier.Verify(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, session, "empty configured token must not allow empty credentials")
}
