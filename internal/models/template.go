// internal/models/template.go
package models

import "time"

// TemplateResult is the output of a template generation run.
type TemplateResult struct {
	TemplateURL string   `json:"template_url"`
	TemplateID  string   `json:"template_id"`
	DatabaseIDs []string `json:"database_ids"`
	PageIDs     []string `json:"page_ids"`
}

// TemplateRecord is the persisted history row for a generated template.
type TemplateRecord struct {
	ID           string    `json:"id" db:"id"`
	TemplateID   string    `json:"templateId" db:"template_id"`
	TemplateName string    `json:"templateName" db:"template_name"`
	TemplateURL  string    `json:"templateUrl" db:"template_url"`
	Topics       []string  `json:"topics" db:"topics"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
