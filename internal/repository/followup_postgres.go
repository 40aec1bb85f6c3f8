package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Leadpulse/leadpulse/internal/domain"
)

var followupPsql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// FollowUpRepository implements domain.FollowUpRepository
type FollowUpRepository struct {
	db *sql.DB
}

// NewFollowUpRepository creates a new FollowUpRepository
func NewFollowUpRepository(db *sql.DB) domain.FollowUpRepository {
	return &FollowUpRepository{db: db}
}

// Create inserts a new pending follow-up
func (r *FollowUpRepository) Create(ctx context.Context, followUp *domain.ScheduledFollowUp) error {
	resultJSON, err := json.Marshal(followUp.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal follow-up result: %w", err)
	}

	query, args, err := followupPsql.
		Insert("scheduled_followups").
		Columns(
			"id", "message_id", "workflow_id", "subject_id", "scheduled_for",
			"days_after_original", "status", "executed_at", "result", "created_at",
		).
		Values(
			followUp.ID, followUp.MessageID, followUp.WorkflowID, followUp.SubjectID,
			followUp.ScheduledFor, followUp.DaysAfterOriginal, followUp.Status,
			followUp.ExecutedAt, resultJSON, followUp.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create scheduled follow-up: %w", err)
	}
	return nil
}

// GetByID retrieves a scheduled follow-up by ID
func (r *FollowUpRepository) GetByID(ctx context.Context, id string) (*domain.ScheduledFollowUp, error) {
	query, args, err := followupPsql.
		Select(
			"id", "message_id", "workflow_id", "subject_id", "scheduled_for",
			"days_after_original", "status", "executed_at", "result", "created_at",
		).
		From("scheduled_followups").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	followUp, err := r.scanFollowUp(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, domain.ErrFollowUpNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scheduled follow-up: %w", err)
	}
	return followUp, nil
}

// ListDue retrieves pending follow-ups scheduled at or before the given time
func (r *FollowUpRepository) ListDue(ctx context.Context, before time.Time, limit int) ([]*domain.ScheduledFollowUp, error) {
	builder := followupPsql.
		Select(
			"id", "message_id", "workflow_id", "subject_id", "scheduled_for",
			"days_after_original", "status", "executed_at", "result", "created_at",
		).
		From("scheduled_followups").
		Where(sq.Eq{"status": domain.FollowUpStatusPending}).
		Where(sq.LtOrEq{"scheduled_for": before}).
		OrderBy("scheduled_for")

	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list due follow-ups: %w", err)
	}
	defer rows.Close()

	var followUps []*domain.ScheduledFollowUp
	for rows.Next() {
		followUp, err := r.scanFollowUp(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan follow-up row: %w", err)
		}
		followUps = append(followUps, followUp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating follow-up rows: %w", err)
	}

	return followUps, nil
}

// CancelPendingByMessage cancels every pending follow-up tied to the given
// originating message. Rows already in a terminal state are untouched.
func (r *FollowUpRepository) CancelPendingByMessage(ctx context.Context, messageID, reason string) (int64, error) {
	resultJSON, err := json.Marshal(map[string]interface{}{"cancel_reason": reason})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal cancel reason: %w", err)
	}

	query := `
		UPDATE scheduled_followups
		SET status = $1, result = $2
		WHERE message_id = $3 AND status = $4
	`
	result, err := r.db.ExecContext(ctx, query,
		domain.FollowUpStatusCancelled, resultJSON, messageID, domain.FollowUpStatusPending)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel follow-ups for message %s: %w", messageID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected, nil
}

// MarkExecuted transitions one pending follow-up to executed. Returns false
// when the row was already resolved by a concurrent transition.
func (r *FollowUpRepository) MarkExecuted(ctx context.Context, id string, result map[string]interface{}, executedAt time.Time) (bool, error) {
	return r.transition(ctx, id, domain.FollowUpStatusExecuted, result, &executedAt)
}

// MarkCancelled transitions one pending follow-up to cancelled
func (r *FollowUpRepository) MarkCancelled(ctx context.Context, id, reason string) (bool, error) {
	return r.transition(ctx, id, domain.FollowUpStatusCancelled, map[string]interface{}{"cancel_reason": reason}, nil)
}

// MarkFailed transitions one pending follow-up to failed
func (r *FollowUpRepository) MarkFailed(ctx context.Context, id, errMsg string, executedAt time.Time) (bool, error) {
	return r.transition(ctx, id, domain.FollowUpStatusFailed, map[string]interface{}{"error": errMsg}, &executedAt)
}

// transition performs the one-shot pending→terminal compare-and-set. The
// WHERE status = 'pending' guard makes concurrent transitions race-safe:
// exactly one caller observes a row change.
func (r *FollowUpRepository) transition(ctx context.Context, id string, to domain.FollowUpStatus, result map[string]interface{}, executedAt *time.Time) (bool, error) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return false, fmt.Errorf("failed to marshal follow-up result: %w", err)
	}

	query := `
		UPDATE scheduled_followups
		SET status = $1, result = $2, executed_at = $3
		WHERE id = $4 AND status = $5
	`
	res, err := r.db.ExecContext(ctx, query, to, resultJSON, executedAt, id, domain.FollowUpStatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to transition follow-up %s to %s: %w", id, to, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected == 1, nil
}

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *FollowUpRepository) scanFollowUp(row rowScanner) (*domain.ScheduledFollowUp, error) {
	var followUp domain.ScheduledFollowUp
	var workflowID, subjectID sql.NullString
	var executedAt sql.NullTime
	var resultJSON []byte

	err := row.Scan(
		&followUp.ID, &followUp.MessageID, &workflowID, &subjectID,
		&followUp.ScheduledFor, &followUp.DaysAfterOriginal, &followUp.Status,
		&executedAt, &resultJSON, &followUp.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if workflowID.Valid {
		followUp.WorkflowID = &workflowID.String
	}
	if subjectID.Valid {
		followUp.SubjectID = &subjectID.String
	}
	if executedAt.Valid {
		followUp.ExecutedAt = &executedAt.Time
	}
	if len(resultJSON) > 0 {
		if err := json.Unmarshal(resultJSON, &followUp.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal follow-up result: %w", err)
		}
	}

	return &followUp, nil
}
