// Package postgres persists candidates, audit entries, and comments. After
// every mutation the store publishes a change event so subscribed sessions
// re-fetch instead of patching local state.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gocraft/dbr/v2"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"talent-track/internal/models"
)

// EventPublisher delivers change notifications to the realtime feed.
// Publishing is best-effort: a dead feed never fails a mutation.
type EventPublisher interface {
	Publish(ctx context.Context, event models.ChangeEvent)
}

// NopPublisher discards events. Used when no feed is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, models.ChangeEvent) {}

type Store struct {
	conn   *dbr.Connection
	sess   *dbr.Session
	feed   EventPublisher
	logger *zap.Logger
}

func New(dsn string, feed EventPublisher, logger *zap.Logger) (*Store, error) {
	conn, err := dbr.Open("postgres", dsn, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// set up connection pool
	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	// check connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if feed == nil {
		feed = NopPublisher{}
	}

	logger.Info("successfully connected to PostgreSQL")

	return &Store{
		conn:   conn,
		sess:   conn.NewSession(nil),
		feed:   feed,
		logger: logger,
	}, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

func (s *Store) BeginTx(ctx context.Context) (*dbr.Tx, error) {
	return s.sess.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
}
