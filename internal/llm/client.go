package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Relay failure kinds. Callers decide retryability from these; nothing in
// this package retries on its own.
var (
	ErrTimeout           = errors.New("provider request timed out")
	ErrNetwork           = errors.New("provider unreachable")
	ErrProvider          = errors.New("provider returned an error")
	ErrMalformedResponse = errors.New("provider returned a malformed response")
)

// Completion is a single reply from the provider plus the usage the provider
// reported for the call.
type Completion struct {
	Text             string
	Model            string
	PromptTokens     int64
	CompletionTokens int64
}

// Client wraps the OpenAI chat-completions endpoint. One message in, one
// reply out; no streaming, no conversation state on the provider side.
type Client struct {
	client openai.Client
	model  string
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (c *Client) Complete(ctx context.Context, prompt string) (*Completion, error) {
	res, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		slog.Error("openai chat completion failed", "error", err)
		return nil, classify(err)
	}

	if len(res.Choices) == 0 || res.Choices[0].Message.Content == "" {
		slog.Error("openai returned no usable choices", "model", res.Model)
		return nil, ErrMalformedResponse
	}

	return &Completion{
		Text:             res.Choices[0].Message.Content,
		Model:            res.Model,
		PromptTokens:     res.Usage.PromptTokens,
		CompletionTokens: res.Usage.CompletionTokens,
	}, nil
}

func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return fmt.Errorf("%w: status %d", ErrProvider, apierr.StatusCode)
	}

	return fmt.Errorf("%w: %v", ErrNetwork, err)
}
