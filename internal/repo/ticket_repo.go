// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Ticket
// model.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-support-backend/internal/domain"
)

// CreateTicket inserts an open ticket carrying the triggering user message
// and the bot's confidence at decision time. CreatedAt is set to UTC.
func CreateTicket(ctx context.Context, db *gorm.DB, userMessage, priority string, botConfidence float64) (*domain.Ticket, error) {
	t := &domain.Ticket{
		UserMessage:   userMessage,
		Status:        domain.TicketStatusOpen,
		Priority:      priority,
		CreatedAt:     time.Now().UTC(),
		BotConfidence: botConfidence,
	}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// ListTickets returns all tickets, most recent first by creation time.
func ListTickets(ctx context.Context, db *gorm.DB) ([]domain.Ticket, error) {
	var out []domain.Ticket
	err := db.WithContext(ctx).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
