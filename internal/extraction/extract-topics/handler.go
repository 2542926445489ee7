// internal/extraction/extract-topics/handler.go
package extracttopics

import (
	"context"
	"fmt"
	"time"

	apperrors "isabella-notion/internal/common/errors"
	"isabella-notion/internal/common/logger"
	"isabella-notion/internal/common/metrics"
	"isabella-notion/internal/extraction"
	"isabella-notion/internal/models"
)

type Handler struct {
	config    *Config
	completer extraction.Completer
	logger    logger.Logger
}

func NewHandler(config *Config, completer extraction.Completer, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		completer: completer,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

// Execute extracts the main topics discussed in the conversation. It never
// returns an error: any model or parse failure degrades to the fallback.
func (h *Handler) Execute(ctx context.Context, conversation string) []string {
	start := time.Now()
	defer func() {
		metrics.ExtractionDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	}()

	raw, err := h.completer.Complete(ctx, extraction.SystemInstruction, buildPrompt(conversation), h.config.MaxTokens, h.config.Temperature)
	if err != nil {
		h.recordFallback("model_call", err)
		return models.FallbackTopics()
	}

	topics, ok := extraction.ParseStringArray(raw)
	if !ok {
		h.recordFallback("malformed_reply", apperrors.NewResponseMalformedError(TaskType, "reply was not a JSON array of strings"))
		return models.FallbackTopics()
	}

	return topics
}

func (h *Handler) recordFallback(reason string, err error) {
	metrics.ExtractionFallbacks.WithLabelValues(TaskType, reason).Inc()
	fields := map[string]interface{}{"reason": reason}
	if err != nil {
		fields["error"] = err.Error()
	}
	h.logger.Warn("extraction degraded to fallback", fields)
}

func buildPrompt(conversation string) string {
	return fmt.Sprintf(`Analyze the following conversation and extract the main topics discussed (at most 10).

Return your answer as a JSON array of strings, for example: ["topic one", "topic two"]

Conversation to analyze:
%s

IMPORTANT: Return ONLY the JSON array, no additional text or explanation.`, conversation)
}
