// Package services – ChatService
//
// This file implements ChatService, the response decision engine. Per
// request it combines the intent classifier's signal with the FAQ matcher's
// best hit, chooses between the high-confidence FAQ branch and the
// generative fallback branch, applies the ticket-escalation policy, and
// persists the exchange. All cross-request state lives in the database;
// a single Decide call is otherwise a pure pipeline.
//
// Observability: public methods are OpenTelemetry-instrumented, and decision
// outcomes feed Prometheus counters.
package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-support-backend/internal/domain"
	"github.com/tbourn/go-support-backend/internal/faq"
	"github.com/tbourn/go-support-backend/internal/intent"
	"github.com/tbourn/go-support-backend/internal/llm"
	"github.com/tbourn/go-support-backend/internal/repo"
)

const (
	// faqAnswerThreshold is the similarity above which a FAQ answer is
	// returned verbatim, skipping the generative path entirely.
	faqAnswerThreshold = 0.5

	// fallbackConfidenceFloor guarantees every fallback response carries a
	// non-trivial minimum confidence even when both signals are weak.
	fallbackConfidenceFloor = 0.35

	// DefaultLowConfidenceThreshold is the escalation cutoff applied when no
	// threshold is configured: any decision below it opens a ticket.
	DefaultLowConfidenceThreshold = 0.4

	// defaultHistoryLimit bounds the recent turns supplied to the fallback
	// generator as conversational context.
	defaultHistoryLimit = 5
)

var (
	chatDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_decisions_total",
			Help: "Chat decisions by branch (faq or fallback).",
		},
		[]string{"branch"},
	)
	ticketsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_tickets_created_total",
			Help: "Support tickets opened by the escalation policy.",
		},
	)
)

func init() {
	prometheus.MustRegister(chatDecisions, ticketsCreated)
}

// Generator produces the fallback reply when the FAQ cannot answer
// confidently. *llm.Responder satisfies it; tests substitute doubles that
// return canned completions.
type Generator interface {
	Generate(ctx context.Context, message, faqContext string, history []llm.Turn) string
}

// ChatService is the response decision engine. All dependencies are
// injected; the FAQ store is read-only and safe for concurrent use.
type ChatService struct {
	DB        *gorm.DB
	FAQ       *faq.Store
	Responder Generator

	// Threshold is the low-confidence escalation cutoff; nil means
	// DefaultLowConfidenceThreshold. An explicit zero disables
	// low-confidence escalation (escalation intent still tickets).
	Threshold *float64

	// HistoryLimit bounds fallback context; zero means defaultHistoryLimit.
	HistoryLimit int

	// MaxMessageRunes optionally caps inbound message length.
	MaxMessageRunes int
}

// ChatResult is the outcome of one decision: the reply, the signals that
// produced it, and the rows persisted along the way. Confidence is kept at
// full precision; rounding happens at the transport layer.
type ChatResult struct {
	Response       string
	Intent         intent.Intent
	Confidence     float64
	ChatLogID      int64
	SessionID      string
	CreatedTicket  bool
	TicketID       *int64
	ContextSummary string
}

// Decide runs the full pipeline for one inbound message:
//
//  1. Intent classification and FAQ matching (independent signals).
//  2. FAQ answer at similarity >= 0.5 → verbatim answer, confidence = score.
//  3. Otherwise → generative fallback over recent history, confidence =
//     max(intent score, faq score, 0.35).
//  4. Persist the exchange, then apply the escalation policy: a ticket is
//     opened iff intent is escalation or confidence is below the threshold.
//
// The chat log insert precedes the ticket insert. Persistence failures are
// returned to the caller: the chat log id is part of the response contract
// and cannot be fabricated.
func (s *ChatService) Decide(ctx context.Context, message, sessionID string) (*ChatResult, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "Decide",
		trace.WithAttributes(attribute.String("session.id", sessionID)),
	)
	defer span.End()

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	if s.MaxMessageRunes > 0 && utf8.RuneCountInString(message) > s.MaxMessageRunes {
		return nil, ErrTooLong
	}
	if strings.TrimSpace(sessionID) == "" {
		sessionID = domain.DefaultSessionID
	}

	// Independent signals: no ordering dependency between the two.
	label, intentScore := intent.Detect(message)
	faqAnswer, faqScore, faqOK := s.FAQ.BestMatch(message)

	var response string
	var confidence float64
	if faqOK && faqScore >= faqAnswerThreshold {
		// High-confidence FAQ branch: the stored answer verbatim, no
		// generative call.
		response = faqAnswer
		confidence = faqScore
		chatDecisions.WithLabelValues("faq").Inc()
	} else {
		history, err := s.recentTurns(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		response = s.Responder.Generate(ctx, message, faqAnswer, history)
		confidence = max3(intentScore, faqScore, fallbackConfidenceFloor)
		chatDecisions.WithLabelValues("fallback").Inc()
	}

	row, err := repo.CreateChatLog(ctx, s.DB, message, response, string(label), confidence, sessionID)
	if err != nil {
		return nil, err
	}

	result := &ChatResult{
		Response:       response,
		Intent:         label,
		Confidence:     confidence,
		ChatLogID:      row.ID,
		SessionID:      sessionID,
		ContextSummary: faqAnswer,
	}

	// Escalation policy. The threshold comparison uses full precision.
	if label == intent.Escalation || confidence < s.threshold() {
		t, err := repo.CreateTicket(ctx, s.DB, message, domain.TicketPriorityNormal, confidence)
		if err != nil {
			return nil, err
		}
		ticketsCreated.Inc()
		result.CreatedTicket = true
		result.TicketID = &t.ID
	}

	span.SetAttributes(
		attribute.String("chat.intent", string(label)),
		attribute.Float64("chat.confidence", confidence),
		attribute.Bool("chat.ticket", result.CreatedTicket),
	)
	return result, nil
}

// History returns up to limit recent exchanges for sessionID, most recent
// first. A non-positive limit falls back to 10; the cap protects against
// unbounded reads.
func (s *ChatService) History(ctx context.Context, sessionID string, limit int) ([]domain.ChatLog, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "History",
		trace.WithAttributes(
			attribute.String("session.id", sessionID),
			attribute.Int("limit", limit),
		),
	)
	defer span.End()

	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return repo.RecentChatLogs(ctx, s.DB, sessionID, limit)
}

// recentTurns loads the bounded conversational context for the fallback
// generator, most recent first.
func (s *ChatService) recentTurns(ctx context.Context, sessionID string) ([]llm.Turn, error) {
	limit := s.HistoryLimit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	rows, err := repo.RecentChatLogs(ctx, s.DB, sessionID, limit)
	if err != nil {
		return nil, err
	}
	turns := make([]llm.Turn, 0, len(rows))
	for _, r := range rows {
		turns = append(turns, llm.Turn{User: r.UserMessage, Bot: r.BotResponse})
	}
	return turns, nil
}

// threshold returns the configured escalation cutoff or the default.
func (s *ChatService) threshold() float64 {
	if s.Threshold != nil {
		return *s.Threshold
	}
	return DefaultLowConfidenceThreshold
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
