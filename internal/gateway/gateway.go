// Package gateway wraps the external completion backend behind a narrow
// interface. The backend is an opaque text-completion service: the rest
// of the system only hands it a system instruction and a message history
// and gets text back or a service error.
package gateway

import (
	"context"
	"errors"
)

// Message roles on the conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of the forwarded conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer produces a reply for a message history under fixed system
// instructions.
type Completer interface {
	Complete(ctx context.Context, system string, history []Message) (string, error)
}

var (
	// ErrMissingCredential indicates no API key was configured. Detected
	// at startup, before any turn is processed.
	ErrMissingCredential = errors.New("gateway credential not configured")

	// ErrUnavailable indicates the completion backend failed or was
	// unreachable.
	ErrUnavailable = errors.New("completion backend unavailable")

	// ErrTimeout indicates the completion call exceeded its deadline.
	ErrTimeout = errors.New("completion request timed out")

	// ErrEmptyCompletion indicates the backend answered without usable text.
	ErrEmptyCompletion = errors.New("completion response contained no text")
)
