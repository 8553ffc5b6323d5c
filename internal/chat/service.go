// Package chat orchestrates one conversation turn: the safety gate runs
// first on every inbound utterance, and only clean turns are forwarded to
// the completion backend.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/alexanderramin/apaise/internal/gateway"
	"github.com/alexanderramin/apaise/internal/safety"
	"github.com/alexanderramin/apaise/internal/session"
)

// anonymousKey is the last-resort session key when the request carries
// neither a client identifier nor an origin.
const anonymousKey = "anonymous"

// updateRetries bounds the optimistic read-modify-write loop on the
// session store. Conflicts only happen when duplicate requests race on
// one key, so a couple of retries is plenty.
const updateRetries = 3

// Service runs the per-turn control flow.
type Service struct {
	store   session.Store
	backend gateway.Completer
	log     *zap.Logger
}

// NewService creates the turn service.
func NewService(store session.Store, backend gateway.Completer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, backend: backend, log: log}
}

// HandleTurn processes one inbound turn. The safety gate decides first:
// intercepted turns are answered from the gate's fixed messages and never
// reach the backend; forwarded turns go to the completion backend with
// the fixed system instructions plus deterministic prompt enrichment.
func (s *Service) HandleTurn(ctx context.Context, req TurnRequest) (*TurnResponse, error) {
	utterance, ok := latestUserUtterance(req)
	if !ok {
		return nil, ErrNoUtterance
	}
	key := sessionKey(req)

	decision, err := s.transition(ctx, key, utterance)
	if err != nil {
		return nil, err
	}

	if decision.Intercepted {
		s.log.Info("turn intercepted",
			zap.String("session", key),
			zap.String("state", string(decision.Next)),
			zap.String("crisis", string(decision.Crisis)))
		return &TurnResponse{
			Message:      decision.Message,
			Crisis:       decision.Crisis,
			Reason:       decision.Reason,
			ClientAction: clientAction(decision),
		}, nil
	}

	text, err := s.backend.Complete(ctx, buildSystemPrompt(utterance), forwardHistory(req, utterance))
	if err != nil {
		return nil, fmt.Errorf("completing turn: %w", err)
	}
	return &TurnResponse{Message: text, Crisis: safety.CrisisNone}, nil
}

// transition runs the gate against the stored session state and persists
// the resulting state atomically: the version check makes the
// read-evaluate-write loop safe against duplicate requests racing on the
// same key, and a conflict re-evaluates from the fresh state.
func (s *Service) transition(ctx context.Context, key, utterance string) (safety.Decision, error) {
	var lastErr error
	for i := 0; i < updateRetries; i++ {
		sess, err := s.store.GetOrCreate(ctx, key)
		if err != nil {
			return safety.Decision{}, fmt.Errorf("loading session: %w", err)
		}

		decision := safety.Evaluate(sess.State, sess.Reason, utterance)
		if decision.Next == sess.State && decision.Reason == sess.Reason {
			return decision, nil
		}

		sess.State = decision.Next
		sess.Reason = decision.Reason
		err = s.store.Update(ctx, sess)
		if err == nil {
			return decision, nil
		}
		if errors.Is(err, session.ErrVersionConflict) || errors.Is(err, session.ErrNotFound) {
			lastErr = err
			continue
		}
		return safety.Decision{}, fmt.Errorf("storing session: %w", err)
	}
	return safety.Decision{}, fmt.Errorf("storing session: %w", lastErr)
}

// latestUserUtterance returns the newest user-authored message, falling
// back to the bare message field.
func latestUserUtterance(req TurnRequest) (string, bool) {
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == gateway.RoleUser {
			if text := strings.TrimSpace(req.Messages[i].Content); text != "" {
				return text, true
			}
		}
	}
	if text := strings.TrimSpace(req.Message); text != "" {
		return text, true
	}
	return "", false
}

func sessionKey(req TurnRequest) string {
	if req.SessionID != "" {
		return req.SessionID
	}
	if req.Origin != "" {
		return req.Origin
	}
	return anonymousKey
}

func forwardHistory(req TurnRequest, utterance string) []gateway.Message {
	if len(req.Messages) > 0 {
		return req.Messages
	}
	return []gateway.Message{{Role: gateway.RoleUser, Content: utterance}}
}

func clientAction(d safety.Decision) *ClientAction {
	if !d.LockInput && !d.FocusInput {
		return nil
	}
	return &ClientAction{LockInput: d.LockInput, FocusInput: d.FocusInput}
}
