// internal/extraction/extract-preferences/handler.go
package extractpreferences

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

// Execute extracts style and organization preferences from the conversation.
func (h *Handler) Execute(ctx context.Context, conversation string) models.UserPreferences {
	start := time.Now()
	defer func() {
		metrics.ExtractionDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	}()

	raw, err := h.completer.Complete(ctx, extraction.SystemInstruction, buildPrompt(conversation), h.config.MaxTokens, h.config.Temperature)
	if err != nil {
		h.recordFallback("model_call", err)
		return models.EmptyUserPreferences()
	}

	obj, ok := extraction.ParseObject(raw)
	if !ok {
		h.recordFallback("malformed_reply", apperrors.NewResponseMalformedError(TaskType, "reply contained no parseable JSON object"))
		return models.EmptyUserPreferences()
	}

	return models.UserPreferencesFromMap(obj)
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
	return fmt.Sprintf(`Analyze the following conversation and extract the user's preferences.

Return your answer as a JSON object with exactly these keys:

{
    "aesthetic_style": ["style preferences like 'dreamy', 'colorful', 'minimal', etc."],
    "colors": ["specific colors mentioned"],
    "organization_style": ["how they prefer to organize things"],
    "features_requested": ["specific features or functionality requested"]
}

Conversation to analyze:
%s

IMPORTANT: Return ONLY the JSON object, no additional text or explanation.`, conversation)
}
