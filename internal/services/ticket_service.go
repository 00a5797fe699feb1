// Package services – TicketService
//
// Tickets are created by the decision engine (see ChatService); this service
// only exposes read access for the listing endpoint. Status lifecycle
// management is out of scope.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-support-backend/internal/domain"
	"github.com/tbourn/go-support-backend/internal/repo"
)

// TicketService provides read access to support tickets.
type TicketService struct {
	DB *gorm.DB
}

// List returns all tickets, most recent first.
func (s *TicketService) List(ctx context.Context) ([]domain.Ticket, error) {
	return repo.ListTickets(ctx, s.DB)
}
