package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// openaiGateway implements Completer using the OpenAI chat completions API.
type openaiGateway struct {
	client   openai.Client
	cfg      Config
	observer Observer
}

// NewOpenAIGateway creates a Completer backed by the OpenAI SDK.
// Returns ErrMissingCredential when no API key is configured, so a
// misconfigured deployment fails before the first turn.
func NewOpenAIGateway(cfg Config, observer Observer) (Completer, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}
	if observer == nil {
		observer = NoopObserver{}
	}

	// Retries are handled here, one attempt per SDK call.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &openaiGateway{
		client:   openai.NewClient(opts...),
		cfg:      cfg,
		observer: observer,
	}, nil
}

func (g *openaiGateway) Complete(ctx context.Context, system string, history []Message) (string, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(g.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	messages = append(messages, openai.SystemMessage(system))
	for _, m := range history {
		if m.Role == RoleAssistant {
			messages = append(messages, openai.AssistantMessage(m.Content))
		} else {
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(g.cfg.Model),
		Messages: messages,
	}

	var lastErr error
	attempts := 1 + g.cfg.MaxRetries
	for i := 0; i < attempts; i++ {
		text, err := g.doRequest(ctx, params)
		if err == nil {
			g.observer.OnCallComplete(CallEvent{
				Model:     g.cfg.Model,
				LatencyMs: time.Since(start).Milliseconds(),
				Success:   true,
			})
			return text, nil
		}
		lastErr = err

		// No point retrying once the deadline is gone.
		if ctx.Err() != nil {
			break
		}
	}

	finalErr := classifyFailure(ctx, lastErr)
	g.observer.OnCallComplete(CallEvent{
		Model:     g.cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: errorCode(finalErr),
	})
	return "", finalErr
}

func (g *openaiGateway) doRequest(ctx context.Context, params openai.ChatCompletionNewParams) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat.completions.new: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}

func classifyFailure(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ErrTimeout
	}
	if errors.Is(err, ErrEmptyCompletion) {
		return ErrEmptyCompletion
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrEmptyCompletion):
		return "EMPTY"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	default:
		return "UNKNOWN"
	}
}
