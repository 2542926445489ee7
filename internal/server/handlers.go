// internal/server/handlers.go
package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "isabella-notion/internal/common/errors"
	"isabella-notion/internal/common/notion"
	"isabella-notion/internal/generator"
	"isabella-notion/internal/models"
)

const defaultTemplateName = "Generated Template"

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Message: "Isabella Notion API is running",
		Version: s.cfg.App.Version,
		Status:  "healthy",
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Version: s.cfg.App.Version,
		Status:  "healthy",
	})
}

func (s *Server) handleAnalyzeConversation(c echo.Context) error {
	var req models.AnalyzeConversationRequest
	if err := bindAndValidate(c, analyzeConversationSchema, &req); err != nil {
		status, resp := apperrors.ToResponse(err)
		return c.JSON(status, resp)
	}

	result := s.analyzer.Analyze(c.Request().Context(), req.Conversation)

	if s.obs != nil {
		s.obs.RecordAnalysis(c.Request().Context(), "success")
	}

	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleGenerateTemplate(c echo.Context) error {
	ctx := c.Request().Context()
	start := time.Now()

	var req models.GenerateTemplateRequest
	if err := bindAndValidate(c, generateTemplateSchema, &req); err != nil {
		status, resp := apperrors.ToResponse(err)
		return c.JSON(status, resp)
	}

	templateName := req.TemplateName
	if templateName == "" {
		templateName = defaultTemplateName
	}

	analysis := s.analyzer.Analyze(ctx, req.Conversation)

	// The Notion client is built per request: the integration token belongs
	// to the caller, not the service.
	client := notion.NewClient(req.NotionAPIKey, s.cfg.Notion)
	gen := generator.New(client, s.logger)

	result, err := gen.CreateTemplate(ctx, analysis, templateName)
	if err != nil {
		if s.obs != nil {
			s.obs.RecordTemplate(ctx, "failed")
		}
		status, resp := apperrors.ToResponse(err)
		return c.JSON(status, resp)
	}

	if s.obs != nil {
		s.obs.RecordTemplate(ctx, "success")
		s.obs.RecordTemplateDuration(ctx, time.Since(start), "success")
	}

	// History and notifications are best effort; the response does not wait
	// on either being healthy.
	if s.store != nil {
		record := &models.TemplateRecord{
			TemplateID:   result.TemplateID,
			TemplateName: templateName,
			TemplateURL:  result.TemplateURL,
			Topics:       analysis.Topics,
		}
		if err := s.store.Save(ctx, record); err != nil {
			s.logger.Warn("failed to record template history", map[string]interface{}{
				"templateId": result.TemplateID,
				"error":      err.Error(),
			})
		}
	}
	if s.notifier != nil {
		s.notifier.TemplateCreated(ctx, templateName, result.TemplateURL)
	}

	return c.JSON(http.StatusOK, models.GenerateTemplateResponse{
		TemplateURL: result.TemplateURL,
		Analysis:    analysis,
		TemplateID:  result.TemplateID,
		Status:      "success",
	})
}

func (s *Server) handleListTemplates(c echo.Context) error {
	if s.store == nil {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"templates": []models.TemplateRecord{},
		})
	}

	records, err := s.store.List(c.Request().Context(), 50)
	if err != nil {
		status, resp := apperrors.ToResponse(err)
		return c.JSON(status, resp)
	}
	if records == nil {
		records = []models.TemplateRecord{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"templates": records,
	})
}
