package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-support-backend/internal/domain"
)

func newTicketRouter(ts TicketService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New(stubChatSvc{}, ts, stubFeedbackSvc{})
	r.GET("/tickets", h.GetTickets)
	return r
}

func TestGetTickets_ReturnsList(t *testing.T) {
	now := time.Now().UTC()
	ts := stubTicketSvc{list: func(ctx context.Context) ([]domain.Ticket, error) {
		return []domain.Ticket{
			{ID: 2, UserMessage: "newer", Status: "open", Priority: "normal", BotConfidence: 0.2, CreatedAt: now},
			{ID: 1, UserMessage: "older", Status: "open", Priority: "normal", BotConfidence: 0.3, CreatedAt: now.Add(-time.Hour)},
		}, nil
	}}
	r := newTicketRouter(ts)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tickets", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var items []TicketItem
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(items) != 2 || items[0].ID != 2 || items[0].UserMessage != "newer" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if items[0].Status != "open" || items[0].BotConfidence != 0.2 {
		t.Fatalf("fields not mapped: %+v", items[0])
	}
}

func TestGetTickets_Empty(t *testing.T) {
	r := newTicketRouter(stubTicketSvc{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tickets", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Body.String(); got != "[]" {
		t.Fatalf("body = %q, want []", got)
	}
}

func TestGetTickets_ServiceError(t *testing.T) {
	ts := stubTicketSvc{list: func(ctx context.Context) ([]domain.Ticket, error) {
		return nil, context.DeadlineExceeded
	}}
	r := newTicketRouter(ts)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tickets", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("json: %v", err)
	}
	if er.Code != ErrCodeListFailed {
		t.Fatalf("code = %q, want %q", er.Code, ErrCodeListFailed)
	}
}
