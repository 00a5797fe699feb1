// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the ChatLog
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a chat log is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-support-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateChatLog appends one chat exchange for sessionID. The autoincrement
// ID assigned by the insert is the canonical conversation order; CreatedAt
// is set to UTC. On success the persisted row (with its ID) is returned.
func CreateChatLog(ctx context.Context, db *gorm.DB, userMessage, botResponse, intentLabel string, confidence float64, sessionID string) (*domain.ChatLog, error) {
	row := &domain.ChatLog{
		UserMessage: userMessage,
		BotResponse: botResponse,
		Intent:      intentLabel,
		Confidence:  confidence,
		SessionID:   sessionID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// RecentChatLogs returns up to limit exchanges for sessionID, most recent
// first (ORDER BY id DESC). An empty slice is returned when the session has
// no history.
func RecentChatLogs(ctx context.Context, db *gorm.DB, sessionID string, limit int) ([]domain.ChatLog, error) {
	var out []domain.ChatLog
	q := db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

// GetChatLog fetches a single exchange by ID, or ErrNotFound if missing.
func GetChatLog(ctx context.Context, db *gorm.DB, id int64) (*domain.ChatLog, error) {
	var row domain.ChatLog
	if err := db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// CountChatLogs returns the total number of exchanges stored for sessionID.
func CountChatLogs(ctx context.Context, db *gorm.DB, sessionID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.ChatLog{}).
		Where("session_id = ?", sessionID).
		Count(&total).Error
	return total, err
}
