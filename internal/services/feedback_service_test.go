package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/go-support-backend/internal/domain"
	"github.com/tbourn/go-support-backend/internal/repo"
)

func TestLeave_Success(t *testing.T) {
	db := newServiceDB(t)
	ctx := context.Background()

	row, err := repo.CreateChatLog(ctx, db, "q", "a", "general", 0.4, "s1")
	if err != nil {
		t.Fatalf("seed chat log: %v", err)
	}

	s := &FeedbackService{DB: db}
	comment := "spot on"
	fb, err := s.Leave(ctx, row.ID, "up", &comment)
	if err != nil {
		t.Fatalf("Leave: %v", err)
	}
	if fb.ID == 0 || fb.ChatLogID != row.ID || fb.Rating != domain.FeedbackRatingUp {
		t.Fatalf("unexpected feedback: %+v", fb)
	}
}

func TestLeave_InvalidRating(t *testing.T) {
	s := &FeedbackService{}
	for _, rating := range []string{"", "UP", "thumbs_up", "sideways", "1"} {
		if _, err := s.Leave(context.Background(), 1, rating, nil); !errors.Is(err, ErrInvalidRating) {
			t.Errorf("rating %q: err = %v, want ErrInvalidRating", rating, err)
		}
	}
}

func TestLeave_ChatLogMissing(t *testing.T) {
	db := newServiceDB(t)
	s := &FeedbackService{DB: db}

	_, err := s.Leave(context.Background(), 9999, "down", nil)
	if !errors.Is(err, ErrChatLogNotFound) {
		t.Fatalf("err = %v, want ErrChatLogNotFound", err)
	}

	// The failed transaction must not leave a row behind.
	var n int64
	if err := db.Model(&domain.Feedback{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("feedback rows after failed Leave: %d", n)
	}
}

func TestLeave_BothRatingsAccepted(t *testing.T) {
	db := newServiceDB(t)
	ctx := context.Background()
	s := &FeedbackService{DB: db}

	row, err := repo.CreateChatLog(ctx, db, "q", "a", "general", 0.4, "s1")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	for _, rating := range []string{domain.FeedbackRatingUp, domain.FeedbackRatingDown} {
		if _, err := s.Leave(ctx, row.ID, rating, nil); err != nil {
			t.Errorf("rating %q: %v", rating, err)
		}
	}
}
