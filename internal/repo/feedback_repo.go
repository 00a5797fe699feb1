// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Feedback
// model.
//
// The repository follows a "thin" approach: it performs persistence and
// simple query composition, leaving business rules (rating validation,
// chat-log existence) to the services package.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-support-backend/internal/domain"
)

// CreateFeedback inserts a rating for the given chat log row. The rating
// value and the existence of the referenced chat log are expected to be
// validated at higher layers; the schema additionally enforces the rating
// check constraint. On success the persisted row (with its ID) is returned.
func CreateFeedback(ctx context.Context, db *gorm.DB, chatLogID int64, rating string, comment *string) (*domain.Feedback, error) {
	fb := &domain.Feedback{
		ChatLogID: chatLogID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(fb).Error; err != nil {
		return nil, err
	}
	return fb, nil
}
