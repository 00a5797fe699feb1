// Package llm contains the generative fallback adapter: an abstract chat
// completion client, an OpenAI-backed implementation, and the Responder that
// turns (message, FAQ context, history) into a reply. The Responder never
// fails: any backend problem degrades to a deterministic template so the
// chat request itself cannot be broken by generative-backend availability.
package llm

import "context"

// Message is a single prompt message in a chat completion request.
type Message struct {
	Role    string
	Content string
}

// Chat roles understood by generative backends.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Client is the minimal contract for a generative chat backend. A nil Client
// means the generative path is disabled (not an error).
type Client interface {
	// Complete produces a completion for the ordered prompt messages. It must
	// honor ctx for cancellation and timeouts.
	Complete(ctx context.Context, messages []Message) (string, error)
}
