// internal/generator/generator.go
package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "isabella-notion/internal/common/errors"
	"isabella-notion/internal/common/logger"
	"isabella-notion/internal/common/metrics"
	"isabella-notion/internal/common/notion"
	"isabella-notion/internal/models"
)

// Generator translates an analysis result into a sequence of Notion API
// calls: one main page, inline databases picked by keyword from the
// requested database types, and supporting pages.
type Generator struct {
	notion *notion.Client
	logger logger.Logger
}

func New(client *notion.Client, log logger.Logger) *Generator {
	return &Generator{
		notion: client,
		logger: log.With(map[string]interface{}{"component": "generator"}),
	}
}

// CreateTemplate builds the full workspace template and returns its
// shareable URL and page identifiers.
func (g *Generator) CreateTemplate(ctx context.Context, analysis models.AnalysisResult, templateName string) (*models.TemplateResult, error) {
	parentID, err := g.notion.FindParentPage(ctx)
	if err != nil {
		metrics.TemplatesGenerated.WithLabelValues("failed").Inc()
		return nil, err
	}

	mainPage, err := g.createMainPage(ctx, parentID, templateName, analysis)
	if err != nil {
		metrics.TemplatesGenerated.WithLabelValues("failed").Inc()
		return nil, apperrors.NewTemplateCreationFailedError("main_page", err)
	}

	databaseIDs, err := g.createDatabases(ctx, mainPage.ID, analysis)
	if err != nil {
		metrics.TemplatesGenerated.WithLabelValues("failed").Inc()
		return nil, apperrors.NewTemplateCreationFailedError("databases", err)
	}

	pageIDs, err := g.createAdditionalPages(ctx, mainPage.ID, analysis)
	if err != nil {
		metrics.TemplatesGenerated.WithLabelValues("failed").Inc()
		return nil, apperrors.NewTemplateCreationFailedError("pages", err)
	}

	metrics.TemplatesGenerated.WithLabelValues("success").Inc()
	g.logger.Info("template created", map[string]interface{}{
		"templateId": mainPage.ID,
		"databases":  len(databaseIDs),
		"pages":      len(pageIDs),
	})

	return &models.TemplateResult{
		TemplateURL: ShareableURL(mainPage.ID),
		TemplateID:  mainPage.ID,
		DatabaseIDs: databaseIDs,
		PageIDs:     pageIDs,
	}, nil
}

// ShareableURL is the public URL form for a page: dashes stripped from the
// page ID.
func ShareableURL(pageID string) string {
	return "https://notion.so/" + strings.ReplaceAll(pageID, "-", "")
}

func (g *Generator) createMainPage(ctx context.Context, parentID, templateName string, analysis models.AnalysisResult) (*notion.Page, error) {
	overview := "General planning and organization"
	if len(analysis.Topics) > 0 {
		topics := analysis.Topics
		if len(topics) > 5 {
			topics = topics[:5]
		}
		overview = strings.Join(topics, ", ")
	}

	children := []map[string]interface{}{
		heading1(templateName),
		paragraph(fmt.Sprintf("Generated on %s", time.Now().Format("January 2, 2006"))),
		heading2("📋 Overview"),
		paragraph("This template covers: " + overview),
	}

	if len(analysis.Structure.MainCategories) > 0 {
		children = append(children, heading2("🗂️ Main Categories"))
		categories := analysis.Structure.MainCategories
		if len(categories) > 10 {
			categories = categories[:10]
		}
		for _, category := range categories {
			children = append(children, bulletedItem(category))
		}
	}

	return g.notion.CreatePage(ctx, notion.CreatePageRequest{
		ParentPageID: parentID,
		Properties:   titleProperty(templateName),
		Children:     children,
	})
}

func (g *Generator) createDatabases(ctx context.Context, parentID string, analysis models.AnalysisResult) ([]string, error) {
	var ids []string

	for _, dbType := range analysis.Structure.DatabaseTypes {
		lower := strings.ToLower(dbType)
		var req *notion.CreateDatabaseRequest
		switch {
		case strings.Contains(lower, "content") || strings.Contains(lower, "calendar"):
			req = contentDatabase(parentID)
		case strings.Contains(lower, "task") || strings.Contains(lower, "todo"):
			req = taskDatabase(parentID)
		case strings.Contains(lower, "tracker") || strings.Contains(lower, "analytics"):
			req = trackerDatabase(parentID)
		}
		if req == nil {
			continue
		}
		db, err := g.notion.CreateDatabase(ctx, *req)
		if err != nil {
			return nil, err
		}
		ids = append(ids, db.ID)
	}

	// No recognized database type: fall back to one general planning board
	// so the template is never database-free.
	if len(ids) == 0 {
		db, err := g.notion.CreateDatabase(ctx, *generalDatabase(parentID))
		if err != nil {
			return nil, err
		}
		ids = append(ids, db.ID)
	}

	return ids, nil
}

func (g *Generator) createAdditionalPages(ctx context.Context, parentID string, analysis models.AnalysisResult) ([]string, error) {
	var ids []string

	if mentionsAny(analysis, "moodboard", "inspiration") {
		page, err := g.notion.CreatePage(ctx, notion.CreatePageRequest{
			ParentPageID: parentID,
			Properties:   titleProperty("🎨 Moodboard & Inspiration"),
			Children: []map[string]interface{}{
				heading2("Visual Inspiration"),
				paragraph("Drag and drop images, colors, and inspiration here."),
			},
		})
		if err != nil {
			return nil, err
		}
		ids = append(ids, page.ID)
	}

	if mentionsAny(analysis, "reflection", "journal") {
		page, err := g.notion.CreatePage(ctx, notion.CreatePageRequest{
			ParentPageID: parentID,
			Properties:   titleProperty("💭 Reflection Journal"),
			Children: []map[string]interface{}{
				heading2("Weekly Reflections"),
				paragraph("Use this space for weekly reflection prompts and thoughts."),
			},
		})
		if err != nil {
			return nil, err
		}
		ids = append(ids, page.ID)
	}

	if len(analysis.PlanningElements.Checklists) > 0 || mentionsAny(analysis, "checklist") {
		page, err := g.createChecklistPage(ctx, parentID, analysis)
		if err != nil {
			return nil, err
		}
		ids = append(ids, page.ID)
	}

	return ids, nil
}

func (g *Generator) createChecklistPage(ctx context.Context, parentID string, analysis models.AnalysisResult) (*notion.Page, error) {
	children := []map[string]interface{}{
		heading2("Checklist Items"),
	}

	items := analysis.PlanningElements.Checklists
	if len(items) > 10 {
		items = items[:10]
	}
	for _, item := range items {
		children = append(children, todoItem(item))
	}

	return g.notion.CreatePage(ctx, notion.CreatePageRequest{
		ParentPageID: parentID,
		Properties:   titleProperty("✅ Checklists"),
		Children:     children,
	})
}

// mentionsAny reports whether any of the words appears in the analysis
// fields that drive page selection.
func mentionsAny(analysis models.AnalysisResult, words ...string) bool {
	var haystack []string
	haystack = append(haystack, analysis.Topics...)
	haystack = append(haystack, analysis.Structure.PageTypes...)
	haystack = append(haystack, analysis.UserPreferences.FeaturesRequested...)
	haystack = append(haystack, analysis.UserPreferences.AestheticStyle...)

	for _, field := range haystack {
		lower := strings.ToLower(field)
		for _, word := range words {
			if strings.Contains(lower, word) {
				return true
			}
		}
	}
	return false
}

func contentDatabase(parentID string) *notion.CreateDatabaseRequest {
	return &notion.CreateDatabaseRequest{
		ParentPageID: parentID,
		Title:        "📅 Content Calendar",
		Properties: map[string]interface{}{
			"Name": map[string]interface{}{"title": map[string]interface{}{}},
			"Status": selectOptions(
				[2]string{"Idea", "yellow"},
				[2]string{"Planned", "blue"},
				[2]string{"In Progress", "orange"},
				[2]string{"Complete", "green"},
			),
			"Date": map[string]interface{}{"date": map[string]interface{}{}},
			"Type": selectOptions(
				[2]string{"Video", "red"},
				[2]string{"Post", "blue"},
				[2]string{"Article", "green"},
			),
			"Priority": selectOptions(
				[2]string{"High", "red"},
				[2]string{"Medium", "yellow"},
				[2]string{"Low", "gray"},
			),
		},
	}
}

func taskDatabase(parentID string) *notion.CreateDatabaseRequest {
	return &notion.CreateDatabaseRequest{
		ParentPageID: parentID,
		Title:        "✅ Task Tracker",
		Properties: map[string]interface{}{
			"Task": map[string]interface{}{"title": map[string]interface{}{}},
			"Status": selectOptions(
				[2]string{"Not Started", "default"},
				[2]string{"In Progress", "blue"},
				[2]string{"Completed", "green"},
				[2]string{"Blocked", "red"},
			),
			"Due Date": map[string]interface{}{"date": map[string]interface{}{}},
			"Priority": selectOptions(
				[2]string{"High", "red"},
				[2]string{"Medium", "yellow"},
				[2]string{"Low", "gray"},
			),
			"Category": map[string]interface{}{
				"multi_select": map[string]interface{}{"options": []interface{}{}},
			},
		},
	}
}

func trackerDatabase(parentID string) *notion.CreateDatabaseRequest {
	return &notion.CreateDatabaseRequest{
		ParentPageID: parentID,
		Title:        "📊 Analytics Tracker",
		Properties: map[string]interface{}{
			"Item":  map[string]interface{}{"title": map[string]interface{}{}},
			"Date":  map[string]interface{}{"date": map[string]interface{}{}},
			"Value": map[string]interface{}{"number": map[string]interface{}{}},
			"Notes": map[string]interface{}{"rich_text": map[string]interface{}{}},
			"Category": selectOptions(
				[2]string{"Views", "blue"},
				[2]string{"Engagement", "green"},
				[2]string{"Growth", "purple"},
			),
		},
	}
}

func generalDatabase(parentID string) *notion.CreateDatabaseRequest {
	return &notion.CreateDatabaseRequest{
		ParentPageID: parentID,
		Title:        "📋 Planning Board",
		Properties: map[string]interface{}{
			"Name": map[string]interface{}{"title": map[string]interface{}{}},
			"Status": selectOptions(
				[2]string{"Idea", "yellow"},
				[2]string{"Planning", "blue"},
				[2]string{"In Progress", "orange"},
				[2]string{"Done", "green"},
			),
			"Date":  map[string]interface{}{"date": map[string]interface{}{}},
			"Notes": map[string]interface{}{"rich_text": map[string]interface{}{}},
			"Priority": selectOptions(
				[2]string{"High", "red"},
				[2]string{"Medium", "yellow"},
				[2]string{"Low", "gray"},
			),
		},
	}
}
