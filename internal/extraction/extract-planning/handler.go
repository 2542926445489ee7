// internal/extraction/extract-planning/handler.go
package extractplanning

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

// Execute extracts scheduling, checklist, tracking and workflow items. A
// partially present reply keeps its present fields; each missing field
// defaults to empty independently.
func (h *Handler) Execute(ctx context.Context, conversation string) models.PlanningElements {
	start := time.Now()
	defer func() {
		metrics.ExtractionDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	}()

	raw, err := h.completer.Complete(ctx, extraction.SystemInstruction, buildPrompt(conversation), h.config.MaxTokens, h.config.Temperature)
	if err != nil {
		h.recordFallback("model_call", err)
		return models.EmptyPlanningElements()
	}

	obj, ok := extraction.ParseObject(raw)
	if !ok {
		h.recordFallback("malformed_reply", apperrors.NewResponseMalformedError(TaskType, "reply contained no parseable JSON object"))
		return models.EmptyPlanningElements()
	}

	return models.PlanningElementsFromMap(obj)
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
	return fmt.Sprintf(`Analyze the following conversation and extract planning elements.

Return your answer as a JSON object with exactly these keys:

{
    "schedules": ["any scheduling or calendar items mentioned"],
    "checklists": ["any checklist or task items mentioned"],
    "trackers": ["any tracking or monitoring items mentioned"],
    "workflows": ["any workflow or process descriptions"]
}

Conversation to analyze:
%s

IMPORTANT: Return ONLY the JSON object, no additional text or explanation.`, conversation)
}
