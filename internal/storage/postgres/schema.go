package postgres

import (
	"context"
	"fmt"
)

// Schema statements are idempotent so startup can run them unconditionally.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS candidates (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT,
		job_role_applied TEXT NOT NULL,
		resume_url TEXT,
		resume_text TEXT,
		experience_years DOUBLE PRECISION,
		skills TEXT[] NOT NULL DEFAULT '{}',
		ai_fit_score INTEGER,
		ai_summary TEXT,
		status TEXT NOT NULL DEFAULT 'new',
		test_link TEXT,
		test_score INTEGER,
		interview_date_time TIMESTAMPTZ,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_candidates_created_at ON candidates (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_candidates_status ON candidates (status)`,

	`CREATE TABLE IF NOT EXISTS activity_log (
		id UUID PRIMARY KEY,
		user_id TEXT NOT NULL,
		user_name TEXT NOT NULL,
		action TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		details JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activity_log_created_at ON activity_log (created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS candidate_comments (
		id UUID PRIMARY KEY,
		candidate_id UUID NOT NULL,
		user_id TEXT NOT NULL,
		user_name TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_candidate_comments_candidate ON candidate_comments (candidate_id, created_at)`,
}

// EnsureSchema creates the tables and indexes when they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
