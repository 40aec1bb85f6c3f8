package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/Leadpulse/leadpulse/internal/domain"
)

var subjectPsql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// SubjectRepository implements domain.SubjectRepository
type SubjectRepository struct {
	db *sql.DB
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(db *sql.DB) domain.SubjectRepository {
	return &SubjectRepository{db: db}
}

const subjectColumns = "id, email, name, lead_stage, tags, engagement_score, last_contacted_at, fields, created_at, updated_at"

// GetByID retrieves a subject by ID
func (r *SubjectRepository) GetByID(ctx context.Context, id string) (*domain.Subject, error) {
	query, args, err := subjectPsql.
		Select(
			"id", "email", "name", "lead_stage", "tags", "engagement_score",
			"last_contacted_at", "fields", "created_at", "updated_at",
		).
		From("subjects").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	subject, err := scanSubject(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, domain.ErrSubjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}
	return subject, nil
}

// UpdateWithLock runs fn on the current subject state inside a transaction
// holding a row-level lock, then writes the mutated state back. Concurrent
// workflows touching the same subject serialize here instead of losing
// updates.
func (r *SubjectRepository) UpdateWithLock(ctx context.Context, id string, fn func(*domain.Subject) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := fmt.Sprintf("SELECT %s FROM subjects WHERE id = $1 FOR UPDATE", subjectColumns)
	subject, err := scanSubject(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return domain.ErrSubjectNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock subject %s: %w", id, err)
	}

	if err := fn(subject); err != nil {
		return err
	}

	fieldsJSON, err := json.Marshal(subject.Fields)
	if err != nil {
		return fmt.Errorf("failed to marshal subject fields: %w", err)
	}

	subject.UpdatedAt = time.Now().UTC()

	updateQuery := `
		UPDATE subjects
		SET email = $1, name = $2, lead_stage = $3, tags = $4,
			engagement_score = $5, last_contacted_at = $6, fields = $7, updated_at = $8
		WHERE id = $9
	`
	_, err = tx.ExecContext(ctx, updateQuery,
		subject.Email, subject.Name, subject.LeadStage, pq.Array(subject.Tags),
		subject.EngagementScore, subject.LastContactedAt, fieldsJSON,
		subject.UpdatedAt, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update subject %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit subject update: %w", err)
	}
	return nil
}

// SetLastContactedAt stamps the subject's last outbound contact time
func (r *SubjectRepository) SetLastContactedAt(ctx context.Context, id string, at time.Time) error {
	query, args, err := subjectPsql.
		Update("subjects").
		Set("last_contacted_at", at).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to set last_contacted_at: %w", err)
	}
	return nil
}

func scanSubject(row rowScanner) (*domain.Subject, error) {
	var subject domain.Subject
	var name sql.NullString
	var lastContactedAt sql.NullTime
	var fieldsJSON []byte

	err := row.Scan(
		&subject.ID, &subject.Email, &name, &subject.LeadStage,
		pq.Array(&subject.Tags), &subject.EngagementScore, &lastContactedAt,
		&fieldsJSON, &subject.CreatedAt, &subject.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if name.Valid {
		subject.Name = name.String
	}
	if lastContactedAt.Valid {
		subject.LastContactedAt = &lastContactedAt.Time
	}
	if len(fieldsJSON) > 0 {
		if err := json.Unmarshal(fieldsJSON, &subject.Fields); err != nil {
			return nil, fmt.Errorf("failed to unmarshal subject fields: %w", err)
		}
	}

	return &subject, nil
}
