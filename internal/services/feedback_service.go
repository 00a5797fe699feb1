// Package services – FeedbackService
//
// This file implements FeedbackService, which records user ratings ("up" or
// "down") on chat exchanges. It enforces business rules (valid rating,
// referenced chat log exists) and persists the row atomically. Service-level
// sentinel errors are returned for predictable cases so handlers can map
// them to HTTP results consistently.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-support-backend/internal/domain"
	"github.com/tbourn/go-support-backend/internal/repo"
)

// FeedbackService implements the use-cases around exchange feedback.
type FeedbackService struct {
	// DB is the database handle used for all feedback operations.
	DB *gorm.DB
}

// Leave records a rating for chatLogID.
//
// Semantics and validation:
//   - rating must be exactly "up" or "down"; otherwise ErrInvalidRating.
//   - chatLogID must reference an existing exchange; otherwise
//     ErrChatLogNotFound.
//   - The existence check and the insert run inside one transaction.
//
// On success the persisted feedback row (with its ID) is returned.
func (s *FeedbackService) Leave(ctx context.Context, chatLogID int64, rating string, comment *string) (*domain.Feedback, error) {
	if rating != domain.FeedbackRatingUp && rating != domain.FeedbackRatingDown {
		return nil, ErrInvalidRating
	}

	var fb *domain.Feedback
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetChatLog(ctx, tx, chatLogID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrChatLogNotFound
			}
			return err
		}
		row, err := repo.CreateFeedback(ctx, tx, chatLogID, rating, comment)
		if err != nil {
			return err
		}
		fb = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fb, nil
}
