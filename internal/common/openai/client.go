// internal/common/openai/client.go
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"isabella-notion/internal/common/config"
	apperrors "isabella-notion/internal/common/errors"
)

// Client wraps the OpenAI chat completions API behind the small surface the
// extraction tasks need: a system instruction, a user prompt, and per-task
// token and temperature overrides.
type Client struct {
	api   *openai.Client
	model string
}

// New creates a client from the service configuration. Extra request options
// (for example option.WithBaseURL in tests) are appended after the API key.
func New(cfg config.OpenAIConfig, opts ...option.RequestOption) *Client {
	reqOpts := append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	api := openai.NewClient(reqOpts...)
	return &Client{
		api:   &api,
		model: cfg.Model,
	}
}

// Complete sends a single system+user chat completion and returns the raw
// text of the first choice.
func (c *Client) Complete(ctx context.Context, system, prompt string, maxTokens int, temperature float64) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(int64(maxTokens)),
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", apperrors.NewModelTimeoutError()
		}
		return "", apperrors.NewModelCallFailedError(err)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.NewModelCallFailedError(fmt.Errorf("chat completion returned no choices"))
	}
	return resp.Choices[0].Message.Content, nil
}
