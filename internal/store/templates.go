// internal/store/templates.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	apperrors "isabella-notion/internal/common/errors"
	"isabella-notion/internal/common/logger"
	"isabella-notion/internal/models"
)

// TemplateStore persists a history row per generated template. The store is
// optional: when Postgres is not configured the service runs without it and
// generation succeeds regardless.
type TemplateStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewTemplateStore(db *sql.DB, log logger.Logger) *TemplateStore {
	return &TemplateStore{
		db:     db,
		logger: log.With(map[string]interface{}{"component": "template-store"}),
	}
}

// Migrate creates the history table when it does not exist yet.
func (s *TemplateStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS templates (
			id UUID PRIMARY KEY,
			template_id TEXT NOT NULL,
			template_name TEXT NOT NULL,
			template_url TEXT NOT NULL,
			topics TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return apperrors.NewDatabaseConnectionFailedError(fmt.Errorf("migrate templates: %w", err))
	}
	return nil
}

// Save records a generated template. Failures are returned but callers
// treat the write as best effort.
func (s *TemplateStore) Save(ctx context.Context, record *models.TemplateRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO templates (id, template_id, template_name, template_url, topics, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		record.ID,
		record.TemplateID,
		record.TemplateName,
		record.TemplateURL,
		pq.Array(record.Topics),
		record.CreatedAt,
	)
	if err != nil {
		return apperrors.NewDatabaseInsertFailedError(fmt.Errorf("insert template: %w", err))
	}

	return nil
}

// List returns the most recent template records, newest first.
func (s *TemplateStore) List(ctx context.Context, limit int) ([]models.TemplateRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, template_id, template_name, template_url, topics, created_at
		FROM templates
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, apperrors.NewDatabaseConnectionFailedError(fmt.Errorf("list templates: %w", err))
	}
	defer rows.Close()

	var records []models.TemplateRecord
	for rows.Next() {
		var record models.TemplateRecord
		if err := rows.Scan(
			&record.ID,
			&record.TemplateID,
			&record.TemplateName,
			&record.TemplateURL,
			pq.Array(&record.Topics),
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan template row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate template rows: %w", err)
	}

	return records, nil
}
