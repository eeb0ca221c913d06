// Package auth is the boundary to the session collaborator. Dashboard
// routes require a verified session; the public application surface does
// not. The Verifier interface keeps the HTTP layer substitutable in tests.
package auth

import (
	"context"
	"net/http"
	"strings"
)

// Session is the current HR user's identity.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// Verifier resolves a bearer credential to a session, or nil when invalid.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Session, error)
}

// TokenVerifier accepts a single shared dashboard token from configuration.
type TokenVerifier struct {
	token   string
	session Session
}

func NewTokenVerifier(token string) *TokenVerifier {
	return &TokenVerifier{
		token: token,
		session: Session{
			UserID: "hr-dashboard",
			Email:  "hr@talent-track.local",
			Name:   "HR Team",
		},
	}
}

func (v *TokenVerifier) Verify(_ context.Context, token string) (*Session, error) {
	if v.token == "" || token == "" || token != v.token {
		return nil, nil
	}
	s := v.session
	return &s, nil
}

type contextKey struct{}

// FromContext returns the session attached by Middleware, or nil.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(contextKey{}).(*Session)
	return s
}

// WithSession attaches a session to the context. Exposed for handler tests.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// Middleware rejects requests without a valid session with 401. The SPA
// redirect-to-login behavior becomes a plain unauthorized response here.
func Middleware(verifier Verifier, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		session, err := verifier.Verify(r.Context(), token)
		if err != nil {
			http.Error(w, `{"error":"auth check failed"}`, http.StatusInternalServerError)
			return
		}
		if session == nil {
			w.Header().Set("Content-Type", "application/json")
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
