// Package intent implements a keyword-frequency intent classifier over a
// fixed taxonomy. It is intentionally simple and dependency-light, but keeps
// a stable contract (message → intent + score) so a model-based classifier
// can replace it without touching the decision engine.
//
// Scoring: for each intent, score = hits / len(trigger phrases), where a hit
// is a trigger phrase contained in the case-folded message. The intent with
// the strictly highest score wins; ties keep the earliest-registered intent.
// A message that triggers nothing classifies as General with score 0.
package intent

import (
	"strings"

	"golang.org/x/text/cases"
)

// Intent is a coarse category of user request.
type Intent string

// The fixed taxonomy. General is the catch-all when nothing triggers.
const (
	Refund        Intent = "refund"
	OrderTracking Intent = "order_tracking"
	AccountHelp   Intent = "account_help"
	Escalation    Intent = "escalation"
	General       Intent = "general"
)

// rule binds an intent to its ordered trigger phrases.
type rule struct {
	intent  Intent
	phrases []string
}

// rules is evaluated in declaration order; earlier intents win ties because
// later candidates must exceed, not equal, the current best score.
var rules = []rule{
	{Refund, []string{"refund", "return", "money back"}},
	{OrderTracking, []string{"track", "tracking", "where is my order"}},
	{AccountHelp, []string{"account", "login", "password"}},
	{Escalation, []string{"agent", "human", "representative", "escalate"}},
}

// folder performs Unicode case folding, which is stricter than ToLower for
// caseless matching (e.g. ß vs ss).
var folder = cases.Fold()

// Detect classifies message and returns the winning intent with its score in
// [0,1]. It is a pure function: deterministic and free of side effects.
func Detect(message string) (Intent, float64) {
	text := folder.String(message)

	best := General
	bestScore := 0.0

	for _, r := range rules {
		hits := 0
		for _, p := range r.phrases {
			if strings.Contains(text, folder.String(p)) {
				hits++
			}
		}
		score := float64(hits) / float64(len(r.phrases))
		if score > bestScore {
			bestScore = score
			best = r.intent
		}
	}
	return best, bestScore
}

// Valid reports whether s is one of the defined intent labels.
func Valid(s string) bool {
	switch Intent(s) {
	case Refund, OrderTracking, AccountHelp, Escalation, General:
		return true
	}
	return false
}
