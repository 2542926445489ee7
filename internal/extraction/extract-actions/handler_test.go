package extractactions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"isabella-notion/internal/common/logger"
	"isabella-notion/internal/extraction"
)

func newTestHandler(t *testing.T, completer extraction.Completer) *Handler {
	return NewHandler(LoadConfig(), completer, logger.NewTestLogger(t))
}

func TestExecute(t *testing.T) {
	completer := extraction.CompleterFunc(func(ctx context.Context, system, prompt string, maxTokens int, temperature float64) (string, error) {
		assert.Equal(t, 600, maxTokens)
		assert.Equal(t, 0.2, temperature)
		return `["book the venue", "email the caterer"]`, nil
	})

	items := newTestHandler(t, completer).Execute(context.Background(), "some text")

	assert.Equal(t, []string{"book the venue", "email the caterer"}, items)
}

func TestExecuteModelFailure(t *testing.T) {
	completer := extraction.CompleterFunc(func(ctx context.Context, system, prompt string, maxTokens int, temperature float64) (string, error) {
		return "", errors.New("auth failure")
	})

	items := newTestHandler(t, completer).Execute(context.Background(), "some text")

	assert.Equal(t, []string{}, items)
}

func TestExecuteMalformedReply(t *testing.T) {
	completer := extraction.CompleterFunc(func(ctx context.Context, system, prompt string, maxTokens int, temperature float64) (string, error) {
		return "Sorry, I could not find any action items.", nil
	})

	items := newTestHandler(t, completer).Execute(context.Background(), "some text")

	assert.Equal(t, []string{}, items)
}
