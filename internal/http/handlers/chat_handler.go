// Chat HTTP handlers.
//
// This file exposes the REST endpoints for the chat pipeline:
//   - POST /chat                       (decide and answer one message)
//   - GET  /chat/history/{session_id}  (recent exchanges, most recent first)
//
// Handlers are transport-thin: they validate input, call the decision
// engine, and translate results into HTTP responses (including conditional
// responses and idempotent replays).
package handlers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-support-backend/internal/domain"
	"github.com/tbourn/go-support-backend/internal/http/middleware"
	"github.com/tbourn/go-support-backend/internal/repo"
	"github.com/tbourn/go-support-backend/internal/services"
	"github.com/tbourn/go-support-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// ChatService defines the decision-engine operations consumed by HTTP
// handlers. Implementations must be safe for concurrent use and must honor
// the provided context for cancellation and timeouts.
type ChatService interface {
	// Decide runs the full response pipeline for one inbound message.
	Decide(ctx context.Context, message, sessionID string) (*services.ChatResult, error)
	// History returns recent exchanges for a session, most recent first.
	History(ctx context.Context, sessionID string, limit int) ([]domain.ChatLog, error)
}

// TicketService defines read access to support tickets.
type TicketService interface {
	List(ctx context.Context) ([]domain.Ticket, error)
}

// FeedbackService defines operations to capture user feedback on exchanges.
type FeedbackService interface {
	Leave(ctx context.Context, chatLogID int64, rating string, comment *string) (*domain.Feedback, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for chat, history, tickets, and
// feedback. It depends on abstract service interfaces to keep transport
// concerns separate from business logic.
type Handlers struct {
	chatSvc   ChatService
	ticketSvc TicketService
	fbSvc     FeedbackService

	// IdempotencyTTL bounds how long a stored Idempotency-Key outcome can be
	// replayed; zero means 24h.
	IdempotencyTTL time.Duration
}

// New constructs a Handlers instance bound to the given services.
func New(chatSvc ChatService, ticketSvc TicketService, fbSvc FeedbackService) *Handlers {
	return &Handlers{chatSvc: chatSvc, ticketSvc: ticketSvc, fbSvc: fbSvc}
}

// idemTTL returns the configured replay window or the default.
func (h *Handlers) idemTTL() time.Duration {
	if h.IdempotencyTTL > 0 {
		return h.IdempotencyTTL
	}
	return 24 * time.Hour
}

//
// DTOs
//

// ChatRequest is the JSON payload for answering one user message.
type ChatRequest struct {
	// Message is the user's question. It must be non-empty.
	Message string `json:"message" binding:"required,min=1" example:"How do I reset my password?"`
	// SessionID groups messages into a conversation; defaults to "default".
	SessionID string `json:"session_id" example:"web-7f3a"`
}

// ChatResponse is the JSON envelope for a decided chat exchange. Confidence
// is rounded to two decimal places.
type ChatResponse struct {
	Response       string  `json:"response"`
	Intent         string  `json:"intent"`
	Confidence     float64 `json:"confidence"`
	CreatedTicket  bool    `json:"created_ticket"`
	TicketID       *int64  `json:"ticket_id,omitempty"`
	ChatLogID      int64   `json:"chat_log_id"`
	SessionID      string  `json:"session_id"`
	ContextSummary string  `json:"context_summary,omitempty"`
}

// ChatHistoryItem is one exchange in a history listing.
type ChatHistoryItem struct {
	ID          int64     `json:"id"`
	UserMessage string    `json:"user_message"`
	BotResponse string    `json:"bot_response"`
	CreatedAt   time.Time `json:"created_at"`
}

//
// Helpers
//

// nlCollapseRE collapses runs of 3+ newlines to two, preserving paragraphs.
var nlCollapseRE = regexp.MustCompile(`\n{3,}`)

// sanitizeMessage normalizes user text for consistent downstream behavior:
// CRLF/CR to LF, runs of 3+ LFs to exactly two, surrounding whitespace
// trimmed.
func sanitizeMessage(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = nlCollapseRE.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// round2 rounds a confidence to two decimal places for the response body.
// Internal computation and persistence keep full precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// chatResponseFrom maps a decision result to its transport shape.
func chatResponseFrom(res *services.ChatResult) ChatResponse {
	return ChatResponse{
		Response:       res.Response,
		Intent:         string(res.Intent),
		Confidence:     round2(res.Confidence),
		CreatedTicket:  res.CreatedTicket,
		TicketID:       res.TicketID,
		ChatLogID:      res.ChatLogID,
		SessionID:      res.SessionID,
		ContextSummary: res.ContextSummary,
	}
}

// serviceDB exposes the concrete service's DB handle for ETag and
// idempotency lookups. Best effort: returns nil for test doubles.
func (h *Handlers) serviceDB() *gorm.DB {
	if svc, ok := h.chatSvc.(*services.ChatService); ok {
		return svc.DB
	}
	return nil
}

//
// Handlers
//

// PostChat godoc
// @ID          postChat
// @Summary     Answer a user message
// @Description Classifies intent, matches the FAQ corpus, optionally asks the
// @Description generative backend, persists the exchange, and opens a ticket
// @Description when the escalation policy triggers.
// @Description Supports idempotency via the Idempotency-Key header (same key → same result).
// @Tags        Chat
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries (UUID recommended)"
// @Param       body             body    handlers.ChatRequest  true  "User message payload"
//
// @Success     200  {object}  handlers.ChatResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /chat [post]
func (h *Handlers) PostChat(c *gin.Context) {
	ctx := c.Request.Context()

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message required")
		return
	}

	message := sanitizeMessage(req.Message)
	if message == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message required")
		return
	}
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = domain.DefaultSessionID
	}

	// Idempotency (replay path): return the recorded outcome without
	// re-running the pipeline.
	idemKey, _ := middleware.GetIdempotencyKey(c)
	if idemKey != "" {
		if db := h.serviceDB(); db != nil {
			if rec, err := repo.GetIdempotency(ctx, db, sessionID, idemKey, time.Now().UTC()); err == nil && rec != nil {
				if row, err2 := repo.GetChatLog(ctx, db, rec.ChatLogID); err2 == nil {
					c.Header("Idempotency-Replayed", "true")
					ok(c, rec.Status, ChatResponse{
						Response:      row.BotResponse,
						Intent:        row.Intent,
						Confidence:    round2(row.Confidence),
						CreatedTicket: rec.TicketID != nil,
						TicketID:      rec.TicketID,
						ChatLogID:     row.ID,
						SessionID:     row.SessionID,
					})
					return
				}
			}
		}
	}

	res, err := h.chatSvc.Decide(ctx, message, sessionID)
	if err != nil {
		switch err {
		case services.ErrEmptyMessage:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message required")
		case services.ErrTooLong:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message too long")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeAnswerFailed, err.Error())
		}
		return
	}

	// Idempotency (store path) – best effort.
	if idemKey != "" {
		if db := h.serviceDB(); db != nil {
			_, _ = repo.CreateIdempotency(ctx, db, sessionID, idemKey, res.ChatLogID, res.TicketID, http.StatusOK, h.idemTTL())
		}
	}

	ok(c, http.StatusOK, chatResponseFrom(res))
}

// GetHistory godoc
// @ID          getHistory
// @Summary     List recent exchanges for a session
// @Description Returns up to `limit` exchanges, most recent first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Chat
// @Produce     json
//
// @Param       session_id     path    string  true  "Session identifier"          example(default)
// @Param       limit          query   int     false "Maximum items"               minimum(1) maximum(100) default(10)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {array}  handlers.ChatHistoryItem
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /chat/history/{session_id} [get]
func (h *Handlers) GetHistory(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := c.Param("session_id")
	limit := utils.AtoiDefault(c.Query("limit"), 10)

	// ETag pre-check (best effort).
	if db := h.serviceDB(); db != nil {
		count, maxTS, err := repo.SessionStats(ctx, db, sessionID)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"history:%s:%d:%d"`, sessionID, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	rows, err := h.chatSvc.History(ctx, sessionID, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	items := make([]ChatHistoryItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, ChatHistoryItem{
			ID:          r.ID,
			UserMessage: r.UserMessage,
			BotResponse: r.BotResponse,
			CreatedAt:   r.CreatedAt,
		})
	}
	ok(c, http.StatusOK, items)
}
