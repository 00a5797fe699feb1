// Package services defines the business logic for chat decisions, tickets,
// and feedback. This file centralizes common service-level error values so
// that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import "errors"

var (
	// ErrEmptyMessage is returned when a chat request contains an empty or
	// whitespace-only message.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrTooLong is returned when a chat message exceeds the maximum
	// configured length limit.
	ErrTooLong = errors.New("message too long")

	// ErrInvalidRating is returned when a feedback rating is outside the
	// allowed set ("up" or "down").
	ErrInvalidRating = errors.New("rating must be \"up\" or \"down\"")

	// ErrChatLogNotFound indicates that the chat log row referenced by a
	// feedback request does not exist.
	ErrChatLogNotFound = errors.New("chat log not found")
)
