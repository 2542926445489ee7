// internal/models/api.go
package models

// AnalyzeConversationRequest is the body of POST /analyze-conversation.
type AnalyzeConversationRequest struct {
	Conversation string `json:"conversation"`
}

// GenerateTemplateRequest is the body of POST /generate-template. The Notion
// integration token is supplied per request, not from service configuration.
type GenerateTemplateRequest struct {
	Conversation     string                 `json:"conversation"`
	NotionAPIKey     string                 `json:"notion_api_key"`
	StylePreferences map[string]interface{} `json:"style_preferences,omitempty"`
	TemplateName     string                 `json:"template_name,omitempty"`
}

// GenerateTemplateResponse is returned by POST /generate-template.
type GenerateTemplateResponse struct {
	TemplateURL string         `json:"template_url"`
	Analysis    AnalysisResult `json:"analysis"`
	TemplateID  string         `json:"template_id"`
	Status      string         `json:"status"`
}

// HealthResponse is returned by GET / and GET /health.
type HealthResponse struct {
	Message string `json:"message,omitempty"`
	Version string `json:"version"`
	Status  string `json:"status"`
}
