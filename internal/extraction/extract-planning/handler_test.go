package extractplanning

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"isabella-notion/internal/common/logger"
	"isabella-notion/internal/extraction"
	"isabella-notion/internal/models"
)

func newTestHandler(t *testing.T, completer extraction.Completer) *Handler {
	return NewHandler(LoadConfig(), completer, logger.NewTestLogger(t))
}

func TestExecute(t *testing.T) {
	completer := extraction.CompleterFunc(func(ctx context.Context, system, prompt string, maxTokens int, temperature float64) (string, error) {
		assert.Equal(t, 800, maxTokens)
		assert.Equal(t, 0.3, temperature)
		return `{"schedules": ["weekly posting"], "checklists": ["pack bags"], "trackers": [], "workflows": []}`, nil
	})

	elements := newTestHandler(t, completer).Execute(context.Background(), "some text")

	assert.Equal(t, []string{"weekly posting"}, elements.Schedules)
	assert.Equal(t, []string{"pack bags"}, elements.Checklists)
	assert.Equal(t, []string{}, elements.Trackers)
	assert.Equal(t, []string{}, elements.Workflows)
}

func TestExecutePartialReply(t *testing.T) {
	completer := extraction.CompleterFunc(func(ctx context.Context, system, prompt string, maxTokens int, temperature float64) (string, error) {
		return `{"schedules": ["x"]}`, nil
	})

	elements := newTestHandler(t, completer).Execute(context.Background(), "some text")

	assert.Equal(t, []string{"x"}, elements.Schedules)
	assert.Equal(t, []string{}, elements.Checklists)
	assert.Equal(t, []string{}, elements.Trackers)
	assert.Equal(t, []string{}, elements.Workflows)
}

func TestExecuteReplyWrappedInProse(t *testing.T) {
	completer := extraction.CompleterFunc(func(ctx context.Context, system, prompt string, maxTokens int, temperature float64) (string, error) {
		return "Here is your analysis:\n{\"workflows\": [\"review loop\"]}\nHope that helps!", nil
	})

	elements := newTestHandler(t, completer).Execute(context.Background(), "some text")

	assert.Equal(t, []string{"review loop"}, elements.Workflows)
}

func TestExecuteModelFailure(t *testing.T) {
	completer := extraction.CompleterFunc(func(ctx context.Context, system, prompt string, maxTokens int, temperature float64) (string, error) {
		return "", errors.New("rate limited")
	})

	elements := newTestHandler(t, completer).Execute(context.Background(), "some text")

	assert.Equal(t, models.EmptyPlanningElements(), elements)
}

func TestExecuteMalformedReply(t *testing.T) {
	completer := extraction.CompleterFunc(func(ctx context.Context, system, prompt string, maxTokens int, temperature float64) (string, error) {
		return "no json at all", nil
	})

	elements := newTestHandler(t, completer).Execute(context.Background(), "some text")

	assert.Equal(t, models.EmptyPlanningElements(), elements)
}
