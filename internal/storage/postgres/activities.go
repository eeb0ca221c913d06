package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"talent-track/internal/models"
)

const activityTable = "activity_log"

// LogActivity appends one audit entry. Entries are append-only and never
// updated or re-derived.
func (s *Store) LogActivity(ctx context.Context, rec *models.ActivityRecord) error {
	rec.ID = uuid.New().String()
	rec.CreatedAt = time.Now().UTC()

	_, err := s.sess.
		InsertInto(activityTable).
		Columns("id", "user_id", "user_name", "action", "entity_type", "entity_id", "details", "created_at").
		Record(rec).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to log activity",
			zap.String("action", rec.Action),
			zap.String("entity_id", rec.EntityID),
			zap.Error(err),
		)
		return fmt.Errorf("log activity: %w", err)
	}

	s.feed.Publish(ctx, models.ChangeEvent{Table: activityTable, EventType: models.EventInsert})
	return nil
}

// RecentActivities returns the newest audit entries, newest first.
func (s *Store) RecentActivities(ctx context.Context, limit int) ([]models.ActivityRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var records []models.ActivityRecord
	_, err := s.sess.
		Select("*").
		From(activityTable).
		OrderDesc("created_at").
		Limit(uint64(limit)).
		LoadContext(ctx, &records)

	if err != nil {
		s.logger.Error("failed to load activities", zap.Error(err))
		return nil, fmt.Errorf("recent activities: %w", err)
	}

	return records, nil
}
