package api

import (
	"context"

	"go.uber.org/zap"
)

// StartChangeWatcher consumes the realtime change feed and drops the
// candidate cache whenever candidate rows change, so the next dashboard read
// re-fetches instead of serving a stale list. Runs until ctx is cancelled.
func (a *API) StartChangeWatcher(ctx context.Context, source ChangeSource) {
	if source == nil || a.cache == nil {
		return
	}

	events := source.Subscribe(ctx)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				if event.Table != "candidates" {
					continue
				}
				a.logger.Debug("change event received",
					zap.String("table", event.Table),
					zap.String("event_type", event.EventType),
				)
				a.cache.InvalidateCandidates(ctx)
			}
		}
	}()
}
