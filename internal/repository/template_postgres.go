package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/Leadpulse/leadpulse/internal/domain"
)

var templatePsql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// TemplateRepository implements domain.TemplateRepository
type TemplateRepository struct {
	db *sql.DB
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db *sql.DB) domain.TemplateRepository {
	return &TemplateRepository{db: db}
}

// GetByID retrieves a template by ID
func (r *TemplateRepository) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	query, args, err := templatePsql.
		Select("id", "name", "subject", "body", "created_at", "updated_at").
		From("templates").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var template domain.Template
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&template.ID, &template.Name, &template.Subject, &template.Body,
		&template.CreatedAt, &template.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return &template, nil
}
