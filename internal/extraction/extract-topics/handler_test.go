package extracttopics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isabella-notion/internal/common/logger"
	"isabella-notion/internal/extraction"
)

func newTestHandler(t *testing.T, completer extraction.Completer) *Handler {
	return NewHandler(LoadConfig(), completer, logger.NewTestLogger(t))
}

func TestExecute(t *testing.T) {
	var gotPrompt, gotSystem string
	var gotMaxTokens int
	var gotTemperature float64

	completer := extraction.CompleterFunc(func(ctx context.Context, system, prompt string, maxTokens int, temperature float64) (string, error) {
		gotSystem = system
		gotPrompt = prompt
		gotMaxTokens = maxTokens
		gotTemperature = temperature
		return `["content calendar", "branding"]`, nil
	})

	topics := newTestHandler(t, completer).Execute(context.Background(), "We need a content calendar for the brand.")

	assert.Equal(t, []string{"content calendar", "branding"}, topics)
	assert.Equal(t, extraction.SystemInstruction, gotSystem)
	assert.Contains(t, gotPrompt, "We need a content calendar for the brand.")
	assert.Equal(t, 500, gotMaxTokens)
	assert.Equal(t, 0.2, gotTemperature)
}

func TestExecuteModelFailure(t *testing.T) {
	completer := extraction.CompleterFunc(func(ctx context.Context, system, prompt string, maxTokens int, temperature float64) (string, error) {
		return "", errors.New("connection refused")
	})

	topics := newTestHandler(t, completer).Execute(context.Background(), "some text")

	assert.Equal(t, []string{"General Planning"}, topics)
}

type recordingLogger struct {
	warnings []map[string]interface{}
}

func (r *recordingLogger) Debug(msg string, fields map[string]interface{}) {}
func (r *recordingLogger) Info(msg string, fields map[string]interface{})  {}
func (r *recordingLogger) Warn(msg string, fields map[string]interface{}) {
	r.warnings = append(r.warnings, fields)
}
func (r *recordingLogger) Error(msg string, fields map[string]interface{}) {}
func (r *recordingLogger) With(fields map[string]interface{}) logger.Logger { return r }
func (r *recordingLogger) WithError(err error) logger.Logger                { return r }

func TestExecuteMalformedReply(t *testing.T) {
	completer := extraction.CompleterFunc(func(ctx context.Context, system, prompt string, maxTokens int, temperature float64) (string, error) {
		return `["A","B"`, nil
	})

	rec := &recordingLogger{}
	topics := NewHandler(LoadConfig(), completer, rec).Execute(context.Background(), "some text")

	assert.Equal(t, []string{"General Planning"}, topics)

	require.Len(t, rec.warnings, 1)
	assert.Equal(t, "malformed_reply", rec.warnings[0]["reason"])
	assert.Contains(t, rec.warnings[0]["error"], "RESPONSE_MALFORMED")
}

func TestExecuteEmptyArrayIsNotFallback(t *testing.T) {
	completer := extraction.CompleterFunc(func(ctx context.Context, system, prompt string, maxTokens int, temperature float64) (string, error) {
		return `[]`, nil
	})

	topics := newTestHandler(t, completer).Execute(context.Background(), "some text")

	assert.Equal(t, []string{}, topics)
}
