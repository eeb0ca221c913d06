package redis

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"talent-track/internal/models"
)

const changesChannel = "tt:changes"

// Feed is the realtime change stream. Mutating stores publish here; each
// dashboard session subscribes and reacts by re-fetching the affected
// collection. The feed is decoupled from fetch-and-render so tests can drive
// events by hand through a plain channel.
type Feed struct {
	cache  *Cache
	logger *zap.Logger
}

func NewFeed(cache *Cache, logger *zap.Logger) *Feed {
	return &Feed{cache: cache, logger: logger}
}

// Publish broadcasts one change event. Best-effort: a publish failure is
// logged and dropped, never surfaced to the mutation path.
func (f *Feed) Publish(ctx context.Context, event models.ChangeEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		f.logger.Warn("failed to marshal change event", zap.Error(err))
		return
	}

	if err := f.cache.client.Publish(ctx, changesChannel, data).Err(); err != nil {
		f.logger.Warn("failed to publish change event",
			zap.String("table", event.Table),
			zap.Error(err),
		)
	}
}

// Subscribe returns a channel of change events. The channel closes when ctx
// is canceled. Malformed payloads are logged and skipped.
func (f *Feed) Subscribe(ctx context.Context) <-chan models.ChangeEvent {
	sub := f.cache.client.Subscribe(ctx, changesChannel)
	out := make(chan models.ChangeEvent)

	go func() {
		defer close(out)
		defer sub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var event models.ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					f.logger.Warn("malformed change event", zap.Error(err))
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
