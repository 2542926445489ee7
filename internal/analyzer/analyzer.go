// internal/analyzer/analyzer.go
package analyzer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"isabella-notion/internal/common/config"
	"isabella-notion/internal/common/logger"
	"isabella-notion/internal/common/metrics"
	"isabella-notion/internal/extraction"
	extractactions "isabella-notion/internal/extraction/extract-actions"
	extractplanning "isabella-notion/internal/extraction/extract-planning"
	extractpreferences "isabella-notion/internal/extraction/extract-preferences"
	extractstructure "isabella-notion/internal/extraction/extract-structure"
	extracttopics "isabella-notion/internal/extraction/extract-topics"
	"isabella-notion/internal/models"
)

// Analyzer runs the five extraction tasks concurrently against normalized
// conversation text and merges their results. It performs no parsing and no
// fallback logic itself; every task guarantees a typed result, so Analyze
// cannot fail.
type Analyzer struct {
	topics      *extracttopics.Handler
	planning    *extractplanning.Handler
	preferences *extractpreferences.Handler
	actions     *extractactions.Handler
	structure   *extractstructure.Handler

	// singleCall switches to the legacy one-shot analysis that extracts
	// everything with one combined prompt.
	singleCall  bool
	completer   extraction.Completer
	maxTokens   int
	temperature float64
	logger      logger.Logger
}

// applyTaskOverride replaces a task package's default budget with the values
// configured under analysis.tasks, when any are set. The packages own their
// defaults; config only overrides them.
func applyTaskOverride(cfg *config.Config, name string, maxTokens *int, temperature *float64) {
	task, ok := cfg.Analysis.Tasks[name]
	if !ok {
		return
	}
	if task.MaxTokens > 0 {
		*maxTokens = task.MaxTokens
	}
	if task.Temperature > 0 {
		*temperature = task.Temperature
	}
}

func New(cfg *config.Config, completer extraction.Completer, log logger.Logger) *Analyzer {
	topicsCfg := extracttopics.LoadConfig()
	applyTaskOverride(cfg, config.TaskTopics, &topicsCfg.MaxTokens, &topicsCfg.Temperature)

	planningCfg := extractplanning.LoadConfig()
	applyTaskOverride(cfg, config.TaskPlanning, &planningCfg.MaxTokens, &planningCfg.Temperature)

	preferencesCfg := extractpreferences.LoadConfig()
	applyTaskOverride(cfg, config.TaskPreferences, &preferencesCfg.MaxTokens, &preferencesCfg.Temperature)

	actionsCfg := extractactions.LoadConfig()
	applyTaskOverride(cfg, config.TaskActions, &actionsCfg.MaxTokens, &actionsCfg.Temperature)

	structureCfg := extractstructure.LoadConfig()
	applyTaskOverride(cfg, config.TaskStructure, &structureCfg.MaxTokens, &structureCfg.Temperature)

	return &Analyzer{
		topics:      extracttopics.NewHandler(topicsCfg, completer, log),
		planning:    extractplanning.NewHandler(planningCfg, completer, log),
		preferences: extractpreferences.NewHandler(preferencesCfg, completer, log),
		actions:     extractactions.NewHandler(actionsCfg, completer, log),
		structure:   extractstructure.NewHandler(structureCfg, completer, log),
		singleCall:  cfg.Analysis.SingleCall,
		completer:   completer,
		maxTokens:   cfg.OpenAI.MaxTokens,
		temperature: cfg.OpenAI.Temperature,
		logger:      log.With(map[string]interface{}{"component": "analyzer"}),
	}
}

// Analyze normalizes the conversation, fans out the five extraction tasks,
// waits for all of them, and assembles the composite result. The result is
// always structurally complete regardless of how many tasks degraded.
func (a *Analyzer) Analyze(ctx context.Context, conversation string) models.AnalysisResult {
	start := time.Now()
	metrics.AnalysisRequests.Inc()
	defer func() {
		metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	}()

	normalized := Normalize(conversation)

	if a.singleCall {
		return a.analyzeCombined(ctx, normalized)
	}

	var result models.AnalysisResult
	var wg sync.WaitGroup
	wg.Add(5)

	// Each goroutine writes exactly one field of the result; there is no
	// shared mutable state between the tasks themselves.
	go func() {
		defer wg.Done()
		result.Topics = a.topics.Execute(ctx, normalized)
	}()
	go func() {
		defer wg.Done()
		result.PlanningElements = a.planning.Execute(ctx, normalized)
	}()
	go func() {
		defer wg.Done()
		result.UserPreferences = a.preferences.Execute(ctx, normalized)
	}()
	go func() {
		defer wg.Done()
		result.ActionItems = a.actions.Execute(ctx, normalized)
	}()
	go func() {
		defer wg.Done()
		result.Structure = a.structure.Execute(ctx, normalized)
	}()

	wg.Wait()

	a.logger.Info("conversation analyzed", map[string]interface{}{
		"topics":     len(result.Topics),
		"durationMs": time.Since(start).Milliseconds(),
	})

	return result
}

// analyzeCombined extracts everything with a single combined prompt. Kept
// for cost-sensitive deployments; the parallel path is the default.
func (a *Analyzer) analyzeCombined(ctx context.Context, normalized string) models.AnalysisResult {
	raw, err := a.completer.Complete(ctx, extraction.SystemInstruction, buildCombinedPrompt(normalized), a.maxTokens, a.temperature)
	if err != nil {
		a.logger.Warn("combined analysis degraded to fallback", map[string]interface{}{
			"reason": "model_call",
			"error":  err.Error(),
		})
		return models.FallbackAnalysisResult()
	}

	obj, ok := extraction.ParseObject(raw)
	if !ok {
		a.logger.Warn("combined analysis degraded to fallback", map[string]interface{}{
			"reason": "malformed_reply",
		})
		return models.FallbackAnalysisResult()
	}

	return models.AnalysisResultFromMap(obj)
}

func buildCombinedPrompt(conversation string) string {
	return fmt.Sprintf(`Analyze the following conversation and extract structured information for creating a workspace template.

Return your analysis as a JSON object with these exact keys:

{
    "topics": ["list of main topics discussed"],
    "planning_elements": {
        "schedules": ["any scheduling or calendar items mentioned"],
        "checklists": ["any checklist or task items mentioned"],
        "trackers": ["any tracking or monitoring items mentioned"],
        "workflows": ["any workflow or process descriptions"]
    },
    "user_preferences": {
        "aesthetic_style": ["style preferences like 'dreamy', 'colorful', 'minimal', etc."],
        "colors": ["specific colors mentioned"],
        "organization_style": ["how they prefer to organize things"],
        "features_requested": ["specific features or functionality requested"]
    },
    "action_items": ["concrete action items or tasks mentioned"],
    "structure": {
        "main_categories": ["main organizational categories needed"],
        "database_types": ["types of databases needed like 'content calendar', 'task tracker', etc."],
        "view_types": ["types of views needed like 'calendar', 'kanban', 'gallery', etc."],
        "page_types": ["types of pages needed like 'dashboard', 'templates', 'archives', etc."]
    }
}

Conversation to analyze:
%s

IMPORTANT: Return ONLY the JSON object, no additional text or explanation.`, conversation)
}
