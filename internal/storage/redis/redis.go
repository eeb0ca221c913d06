// Package redis carries the two session-shared concerns: a short-lived cache
// of the candidate list and the realtime change feed that tells dashboard
// sessions to re-fetch after any mutation, by any actor.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"talent-track/internal/models"
)

const (
	candidatesKey = "tt:candidates"
	candidatesTTL = 60 * time.Second
)

// Cache wraps the redis client.
type Cache struct {
	client *redis.Client
	logger *zap.Logger
}

func New(addr, password string, db int, logger *zap.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	// check connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("successfully connected to Redis")

	return &Cache{
		client: client,
		logger: logger,
	}, nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

// GetCandidates returns the cached candidate list, or nil on a miss.
func (c *Cache) GetCandidates(ctx context.Context) ([]*models.Candidate, error) {
	data, err := c.client.Get(ctx, candidatesKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get candidates cache: %w", err)
	}

	var candidates []*models.Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		// A corrupt entry behaves like a miss; the next fetch rewrites it.
		c.logger.Warn("corrupt candidates cache entry", zap.Error(err))
		return nil, nil
	}
	return candidates, nil
}

// SetCandidates stores the candidate list with a short TTL.
func (c *Cache) SetCandidates(ctx context.Context, candidates []*models.Candidate) error {
	data, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("marshal candidates: %w", err)
	}

	if err := c.client.Set(ctx, candidatesKey, data, candidatesTTL).Err(); err != nil {
		return fmt.Errorf("set candidates cache: %w", err)
	}
	return nil
}

// InvalidateCandidates drops the cached list so the next read hits Postgres.
func (c *Cache) InvalidateCandidates(ctx context.Context) {
	if err := c.client.Del(ctx, candidatesKey).Err(); err != nil {
		c.logger.Warn("failed to invalidate candidates cache", zap.Error(err))
	}
}
