package repo

import (
	"context"
	"testing"
	"time"

	"github.com/tbourn/go-support-backend/internal/domain"
)

func TestCreateTicket_DefaultsToOpen(t *testing.T) {
	db := newTestDB(t, &domain.Ticket{})

	tk, err := CreateTicket(context.Background(), db, "I need help", domain.TicketPriorityNormal, 0.2)
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	if tk.ID == 0 {
		t.Fatalf("ticket id not assigned")
	}
	if tk.Status != domain.TicketStatusOpen {
		t.Fatalf("status = %q, want %q", tk.Status, domain.TicketStatusOpen)
	}
	if tk.Priority != domain.TicketPriorityNormal || tk.BotConfidence != 0.2 {
		t.Fatalf("unexpected ticket: %+v", tk)
	}
	if tk.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt not set")
	}
}

func TestListTickets_NewestFirst(t *testing.T) {
	db := newTestDB(t, &domain.Ticket{})
	ctx := context.Background()

	// Distinct timestamps so ordering by created_at is unambiguous.
	old := &domain.Ticket{UserMessage: "old", Status: domain.TicketStatusOpen, Priority: "normal", CreatedAt: time.Now().UTC().Add(-time.Hour)}
	if err := db.Create(old).Error; err != nil {
		t.Fatalf("seed old: %v", err)
	}
	if _, err := CreateTicket(ctx, db, "new", "normal", 0.3); err != nil {
		t.Fatalf("seed new: %v", err)
	}

	rows, err := ListTickets(ctx, db)
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}
	if rows[0].UserMessage != "new" || rows[1].UserMessage != "old" {
		t.Fatalf("wrong order: %q then %q", rows[0].UserMessage, rows[1].UserMessage)
	}
}

func TestListTickets_Empty(t *testing.T) {
	db := newTestDB(t, &domain.Ticket{})
	rows, err := ListTickets(context.Background(), db)
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no tickets, got %d", len(rows))
	}
}

func TestCreateTicket_Error_NoTable(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	_, err := CreateTicket(context.Background(), db, "x", "normal", 0.1)
	if err == nil {
		t.Fatalf("expected error when tickets table is missing")
	}
}
