// internal/extraction/extract-structure/handler.go
package extractstructure

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

// Execute extracts the workspace structure the conversation calls for.
// Outright failure degrades to a non-empty fallback layout so template
// generation always has something to build.
func (h *Handler) Execute(ctx context.Context, conversation string) models.StructureRequirements {
	start := time.Now()
	defer func() {
		metrics.ExtractionDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	}()

	raw, err := h.completer.Complete(ctx, extraction.SystemInstruction, buildPrompt(conversation), h.config.MaxTokens, h.config.Temperature)
	if err != nil {
		h.recordFallback("model_call", err)
		return models.FallbackStructure()
	}

	obj, ok := extraction.ParseObject(raw)
	if !ok {
		h.recordFallback("malformed_reply", apperrors.NewResponseMalformedError(TaskType, "reply contained no parseable JSON object"))
		return models.FallbackStructure()
	}

	return models.StructureFromMap(obj)
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
	return fmt.Sprintf(`Analyze the following conversation and extract the organizational structure a workspace template would need.

Return your answer as a JSON object with exactly these keys:

{
    "main_categories": ["main organizational categories needed"],
    "database_types": ["types of databases needed like 'content calendar', 'task tracker', etc."],
    "view_types": ["types of views needed like 'calendar', 'kanban', 'gallery', etc."],
    "page_types": ["types of pages needed like 'dashboard', 'templates', 'archives', etc."]
}

Conversation to analyze:
%s

IMPORTANT: Return ONLY the JSON object, no additional text or explanation.`, conversation)
}
