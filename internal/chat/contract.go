package chat

import (
	"errors"

	"github.com/alexanderramin/apaise/internal/gateway"
	"github.com/alexanderramin/apaise/internal/safety"
)

// ErrNoUtterance indicates the request carried no user message at all;
// such a turn is rejected before any session state is touched.
var ErrNoUtterance = errors.New("no user utterance in request")

// TurnRequest is one inbound turn from the chat UI. Messages is the
// ordered conversation history; Message is a bare latest-utterance
// fallback for minimal clients. Origin is filled by the transport layer
// and used as the session key when the client supplies none.
type TurnRequest struct {
	SessionID string            `json:"sessionId,omitempty"`
	Messages  []gateway.Message `json:"messages,omitempty"`
	Message   string            `json:"message,omitempty"`

	Origin string `json:"-"`
}

// ClientAction instructs the calling UI to disable or refocus its input
// control.
type ClientAction struct {
	LockInput  bool `json:"lockInput,omitempty"`
	FocusInput bool `json:"focusInput,omitempty"`
}

// TurnResponse is the outcome of one turn: generated or gate-authored
// text plus the crisis marker the UI reacts to.
type TurnResponse struct {
	Message      string           `json:"message"`
	Crisis       safety.CrisisTag `json:"crisis"`
	Reason       safety.Reason    `json:"reason,omitempty"`
	ClientAction *ClientAction    `json:"clientAction,omitempty"`
}
