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

var executionPsql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ExecutionRepository implements domain.ExecutionRepository
type ExecutionRepository struct {
	db *sql.DB
}

// NewExecutionRepository creates a new ExecutionRepository
func NewExecutionRepository(db *sql.DB) domain.ExecutionRepository {
	return &ExecutionRepository{db: db}
}

// CreateExecution inserts a new execution row
func (r *ExecutionRepository) CreateExecution(ctx context.Context, execution *domain.Execution) error {
	query, args, err := executionPsql.
		Insert("executions").
		Columns(
			"id", "workflow_id", "trigger_type", "trigger_data", "status",
			"actions_executed", "actions_total", "started_at", "completed_at", "error",
		).
		Values(
			execution.ID, execution.WorkflowID, execution.TriggerType,
			execution.TriggerData, execution.Status, execution.ActionsExecuted,
			execution.ActionsTotal, execution.StartedAt, execution.CompletedAt,
			execution.Error,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create execution: %w", err)
	}
	return nil
}

// GetExecution retrieves an execution by ID
func (r *ExecutionRepository) GetExecution(ctx context.Context, id string) (*domain.Execution, error) {
	query, args, err := executionPsql.
		Select(
			"id", "workflow_id", "trigger_type", "trigger_data", "status",
			"actions_executed", "actions_total", "started_at", "completed_at", "error",
		).
		From("executions").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var execution domain.Execution
	var completedAt sql.NullTime
	var errMsg sql.NullString

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&execution.ID, &execution.WorkflowID, &execution.TriggerType,
		&execution.TriggerData, &execution.Status, &execution.ActionsExecuted,
		&execution.ActionsTotal, &execution.StartedAt, &completedAt, &errMsg,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrExecutionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get execution: %w", err)
	}

	if completedAt.Valid {
		execution.CompletedAt = &completedAt.Time
	}
	if errMsg.Valid {
		execution.Error = &errMsg.String
	}

	return &execution, nil
}

// MarkExecutionCompleted transitions a running execution to completed
func (r *ExecutionRepository) MarkExecutionCompleted(ctx context.Context, id string, completedAt time.Time) error {
	query, args, err := executionPsql.
		Update("executions").
		Set("status", domain.ExecutionStatusCompleted).
		Set("completed_at", completedAt).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark execution completed: %w", err)
	}
	return nil
}

// MarkExecutionFailed transitions an execution to failed with an error message
func (r *ExecutionRepository) MarkExecutionFailed(ctx context.Context, id string, errMsg string, completedAt time.Time) error {
	query, args, err := executionPsql.
		Update("executions").
		Set("status", domain.ExecutionStatusFailed).
		Set("error", errMsg).
		Set("completed_at", completedAt).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark execution failed: %w", err)
	}
	return nil
}

// IncrementActionsExecuted bumps the attempted-actions counter. The counter
// never exceeds actions_total because each action increments exactly once.
func (r *ExecutionRepository) IncrementActionsExecuted(ctx context.Context, id string) error {
	query := `UPDATE executions SET actions_executed = actions_executed + 1 WHERE id = $1 AND actions_executed < actions_total`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to increment actions_executed: %w", err)
	}
	return nil
}

// CreateActionLog inserts a new action log row. The referenced execution must
// already exist.
func (r *ExecutionRepository) CreateActionLog(ctx context.Context, log *domain.ActionLog) error {
	configJSON, err := json.Marshal(log.ActionConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal action config: %w", err)
	}
	resultJSON, err := json.Marshal(log.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal action result: %w", err)
	}

	query, args, err := executionPsql.
		Insert("action_logs").
		Columns(
			"id", "execution_id", "action_id", "action_type", "action_config",
			"status", "result", "error", "executed_at",
		).
		Values(
			log.ID, log.ExecutionID, log.ActionID, log.ActionType, configJSON,
			log.Status, resultJSON, log.Error, log.ExecutedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create action log: %w", err)
	}
	return nil
}

// UpdateActionLog updates an action log's status, result and error
func (r *ExecutionRepository) UpdateActionLog(ctx context.Context, log *domain.ActionLog) error {
	resultJSON, err := json.Marshal(log.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal action result: %w", err)
	}

	query, args, err := executionPsql.
		Update("action_logs").
		Set("status", log.Status).
		Set("result", resultJSON).
		Set("error", log.Error).
		Where(sq.Eq{"id": log.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update action log: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("action log not found: %s", log.ID)
	}
	return nil
}

// ListActionLogs retrieves all action logs for an execution in attempt order
func (r *ExecutionRepository) ListActionLogs(ctx context.Context, executionID string) ([]*domain.ActionLog, error) {
	query, args, err := executionPsql.
		Select(
			"id", "execution_id", "action_id", "action_type", "action_config",
			"status", "result", "error", "executed_at",
		).
		From("action_logs").
		Where(sq.Eq{"execution_id": executionID}).
		OrderBy("executed_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list action logs: %w", err)
	}
	defer rows.Close()

	var logs []*domain.ActionLog
	for rows.Next() {
		var log domain.ActionLog
		var configJSON, resultJSON []byte
		var errMsg sql.NullString

		err := rows.Scan(
			&log.ID, &log.ExecutionID, &log.ActionID, &log.ActionType,
			&configJSON, &log.Status, &resultJSON, &errMsg, &log.ExecutedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan action log row: %w", err)
		}

		if len(configJSON) > 0 {
			if err := json.Unmarshal(configJSON, &log.ActionConfig); err != nil {
				return nil, fmt.Errorf("failed to unmarshal action config: %w", err)
			}
		}
		if len(resultJSON) > 0 {
			if err := json.Unmarshal(resultJSON, &log.Result); err != nil {
				return nil, fmt.Errorf("failed to unmarshal action result: %w", err)
			}
		}
		if errMsg.Valid {
			log.Error = &errMsg.String
		}

		logs = append(logs, &log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating action log rows: %w", err)
	}

	return logs, nil
}
