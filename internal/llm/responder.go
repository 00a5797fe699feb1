package llm

import (
	"context"
	"strings"
	"time"
)

// systemInstruction is the fixed tone/behavior contract sent to the backend.
const systemInstruction = "You are a customer support assistant. " +
	"Be concise and polite. If you are uncertain, ask a clarifying question. " +
	"Mention that the user can escalate to a human agent at any time. " +
	"Keep your answer under 120 words."

// defaultTimeout bounds the backend call when no timeout is configured.
// Timeouts are treated like every other failure: fall back to the template.
const defaultTimeout = 10 * time.Second

// Turn is one prior exchange supplied as conversational context,
// most-recent-first.
type Turn struct {
	User string
	Bot  string
}

// Responder produces the fallback reply for messages the FAQ could not
// answer confidently. With a configured Client it asks the generative
// backend; without one, or on any backend failure (network, timeout,
// malformed or empty response), it renders a deterministic template.
//
// The broad catch is deliberate: the product requirement is that a chat
// request never fails because the generative backend is unavailable. The
// backend is attempted exactly once per request, never retried.
type Responder struct {
	Client  Client
	Timeout time.Duration
}

// Generate returns a reply for message. faqContext optionally carries the
// best (sub-threshold) FAQ answer; history carries recent turns,
// most-recent-first. Generate never returns an error.
func (r *Responder) Generate(ctx context.Context, message, faqContext string, history []Turn) string {
	if r == nil || r.Client == nil {
		return fallbackTemplate(message, faqContext, history)
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := r.Client.Complete(cctx, buildPrompt(message, faqContext, history))
	if err != nil || strings.TrimSpace(out) == "" {
		return fallbackTemplate(message, faqContext, history)
	}
	return out
}

// buildPrompt assembles the structured chat completion request: the fixed
// system instruction plus a user section with the question, the optional FAQ
// context, and the rendered history.
func buildPrompt(message, faqContext string, history []Turn) []Message {
	var b strings.Builder
	b.WriteString("Customer question: ")
	b.WriteString(message)
	if faqContext != "" {
		b.WriteString("\n\nPossibly related FAQ answer: ")
		b.WriteString(faqContext)
	}
	if len(history) > 0 {
		b.WriteString("\n\nRecent conversation (most recent first):\n")
		b.WriteString(renderHistory(history))
	}

	return []Message{
		{Role: RoleSystem, Content: systemInstruction},
		{Role: RoleUser, Content: b.String()},
	}
}

// fallbackTemplate renders the deterministic non-generative reply. Identical
// inputs yield byte-identical output (no randomness, no timestamps), so the
// template is usable as a golden test fixture.
func fallbackTemplate(message, faqContext string, history []Turn) string {
	var b strings.Builder
	b.WriteString("Thanks for your question!")
	if faqContext != "" {
		b.WriteString("\nContext: ")
		b.WriteString(faqContext)
	}
	if len(history) > 0 {
		b.WriteString("\nRecent conversation:\n")
		b.WriteString(renderHistory(history))
	}
	b.WriteString("\nHere's a helpful response based on the information we have: ")
	b.WriteString(message)
	b.WriteString("\nIf this doesn't solve your problem, let me know and I can create a ticket for our team.")
	return b.String()
}

// renderHistory formats turns as alternating User/Assistant lines, preserving
// the given (most-recent-first) order. No trailing newline.
func renderHistory(history []Turn) string {
	lines := make([]string, 0, len(history)*2)
	for _, t := range history {
		lines = append(lines, "User: "+t.User, "Assistant: "+t.Bot)
	}
	return strings.Join(lines, "\n")
}
