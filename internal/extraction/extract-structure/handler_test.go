package extractstructure

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
		return `{"main_categories": ["Content"], "database_types": ["content calendar"], "view_types": ["calendar", "kanban"], "page_types": ["dashboard"]}`, nil
	})

	structure := newTestHandler(t, completer).Execute(context.Background(), "some text")

	assert.Equal(t, []string{"Content"}, structure.MainCategories)
	assert.Equal(t, []string{"content calendar"}, structure.DatabaseTypes)
	assert.Equal(t, []string{"calendar", "kanban"}, structure.ViewTypes)
	assert.Equal(t, []string{"dashboard"}, structure.PageTypes)
}

func TestExecutePartialReplyKeepsPresentFields(t *testing.T) {
	completer := extraction.CompleterFunc(func(ctx context.Context, system, prompt string, maxTokens int, temperature float64) (string, error) {
		return `{"view_types": ["gallery"]}`, nil
	})

	structure := newTestHandler(t, completer).Execute(context.Background(), "some text")

	// Field-level defaulting, not the whole-task fallback.
	assert.Equal(t, []string{}, structure.MainCategories)
	assert.Equal(t, []string{}, structure.DatabaseTypes)
	assert.Equal(t, []string{"gallery"}, structure.ViewTypes)
	assert.Equal(t, []string{}, structure.PageTypes)
}

func TestExecuteModelFailure(t *testing.T) {
	completer := extraction.CompleterFunc(func(ctx context.Context, system, prompt string, maxTokens int, temperature float64) (string, error) {
		return "", errors.New("provider error")
	})

	structure := newTestHandler(t, completer).Execute(context.Background(), "some text")

	assert.Equal(t, models.FallbackStructure(), structure)
}

func TestExecuteMalformedReply(t *testing.T) {
	completer := extraction.CompleterFunc(func(ctx context.Context, system, prompt string, maxTokens int, temperature float64) (string, error) {
		return "I could not produce JSON this time.", nil
	})

	structure := newTestHandler(t, completer).Execute(context.Background(), "some text")

	assert.Equal(t, models.FallbackStructure(), structure)
}
