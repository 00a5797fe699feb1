package repo

import (
	"context"
	"testing"
	"time"

	"github.com/tbourn/go-support-backend/internal/domain"
)

func TestSessionStats_EmptySession(t *testing.T) {
	db := newTestDB(t, &domain.ChatLog{})
	count, maxTS, err := SessionStats(context.Background(), db, "none")
	if err != nil {
		t.Fatalf("SessionStats: %v", err)
	}
	if count != 0 || maxTS != nil {
		t.Fatalf("empty session: count=%d maxTS=%v", count, maxTS)
	}
}

func TestSessionStats_CountsAndLatest(t *testing.T) {
	db := newTestDB(t, &domain.ChatLog{})
	ctx := context.Background()

	earlier := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	latest := time.Now().UTC().Truncate(time.Second)

	rows := []domain.ChatLog{
		{UserMessage: "q1", BotResponse: "a1", Intent: "general", SessionID: "s1", CreatedAt: earlier},
		{UserMessage: "q2", BotResponse: "a2", Intent: "general", SessionID: "s1", CreatedAt: latest},
		{UserMessage: "q3", BotResponse: "a3", Intent: "general", SessionID: "other", CreatedAt: latest},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	count, maxTS, err := SessionStats(ctx, db, "s1")
	if err != nil {
		t.Fatalf("SessionStats: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	if maxTS == nil || !maxTS.Equal(latest) {
		t.Fatalf("maxTS = %v, want %v", maxTS, latest)
	}
}

func TestTicketsStats(t *testing.T) {
	db := newTestDB(t, &domain.Ticket{})
	ctx := context.Background()

	count, maxTS, err := TicketsStats(ctx, db)
	if err != nil {
		t.Fatalf("TicketsStats: %v", err)
	}
	if count != 0 || maxTS != nil {
		t.Fatalf("no tickets: count=%d maxTS=%v", count, maxTS)
	}

	if _, err := CreateTicket(ctx, db, "x", "normal", 0.3); err != nil {
		t.Fatalf("seed: %v", err)
	}
	count, maxTS, err = TicketsStats(ctx, db)
	if err != nil {
		t.Fatalf("TicketsStats: %v", err)
	}
	if count != 1 || maxTS == nil {
		t.Fatalf("after seed: count=%d maxTS=%v", count, maxTS)
	}
}
