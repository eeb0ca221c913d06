package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"talent-track/internal/models"
)

const commentsTable = "candidate_comments"

// AddComment attaches a team note to one candidate.
func (s *Store) AddComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = uuid.New().String()
	comment.CreatedAt = time.Now().UTC()

	_, err := s.sess.
		InsertInto(commentsTable).
		Columns("id", "candidate_id", "user_id", "user_name", "content", "created_at").
		Record(comment).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to add comment",
			zap.String("candidate_id", comment.CandidateID),
			zap.Error(err),
		)
		return fmt.Errorf("add comment: %w", err)
	}

	s.feed.Publish(ctx, models.ChangeEvent{Table: commentsTable, EventType: models.EventInsert})
	return nil
}

// CommentsForCandidate returns a candidate's notes, oldest first.
func (s *Store) CommentsForCandidate(ctx context.Context, candidateID string) ([]models.Comment, error) {
	var comments []models.Comment

	_, err := s.sess.
		Select("*").
		From(commentsTable).
		Where("candidate_id = ?", candidateID).
		OrderAsc("created_at").
		LoadContext(ctx, &comments)

	if err != nil {
		s.logger.Error("failed to load comments",
			zap.String("candidate_id", candidateID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("comments for candidate: %w", err)
	}

	return comments, nil
}
