package notify

import (
	"context"

	"go.uber.org/zap"

	"talent-track/internal/models"
)

// Queue is the deferred bulk dispatcher. It accepts candidates for later
// delivery and answers with a queued count only — there is no delivery
// receipt on this path, unlike SendInvite.
type Queue struct {
	logger *zap.Logger
}

func NewQueue(logger *zap.Logger) *Queue {
	return &Queue{logger: logger}
}

// Queue records each candidate for deferred dispatch and returns how many
// were accepted.
func (q *Queue) Queue(ctx context.Context, candidates []*models.Candidate) (int, error) {
	for _, c := range candidates {
		q.logger.Info("email queued for delivery",
			zap.String("candidate_id", c.ID),
			zap.String("to", c.Email),
		)
	}
	return len(candidates), nil
}
