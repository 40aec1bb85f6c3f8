package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/Leadpulse/leadpulse/internal/domain"
)

// workflowPsql is a Squirrel StatementBuilder configured for PostgreSQL
var workflowPsql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// WorkflowRepository implements domain.WorkflowRepository
type WorkflowRepository struct {
	db *sql.DB
}

// NewWorkflowRepository creates a new WorkflowRepository
func NewWorkflowRepository(db *sql.DB) domain.WorkflowRepository {
	return &WorkflowRepository{db: db}
}

// GetByID retrieves one workflow, fully hydrated
func (r *WorkflowRepository) GetByID(ctx context.Context, id string) (*domain.Workflow, error) {
	query, args, err := workflowPsql.
		Select("id", "owner_id", "name", "active", "created_at", "updated_at").
		From("workflows").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var workflow domain.Workflow
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&workflow.ID, &workflow.OwnerID, &workflow.Name, &workflow.Active,
		&workflow.CreatedAt, &workflow.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrWorkflowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workflow: %w", err)
	}

	if err := r.hydrate(ctx, []*domain.Workflow{&workflow}); err != nil {
		return nil, err
	}

	return &workflow, nil
}

// ListActiveByTriggerType retrieves all active workflows owning at least one
// trigger of the given type, hydrated with triggers, conditions and ordered
// actions
func (r *WorkflowRepository) ListActiveByTriggerType(ctx context.Context, triggerType domain.TriggerType) ([]*domain.Workflow, error) {
	query, args, err := workflowPsql.
		Select("DISTINCT w.id", "w.owner_id", "w.name", "w.active", "w.created_at", "w.updated_at").
		From("workflows w").
		Join("workflow_triggers t ON t.workflow_id = w.id").
		Where(sq.Eq{"w.active": true, "t.type": string(triggerType)}).
		OrderBy("w.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}
	defer rows.Close()

	var workflows []*domain.Workflow
	for rows.Next() {
		var workflow domain.Workflow
		err := rows.Scan(
			&workflow.ID, &workflow.OwnerID, &workflow.Name, &workflow.Active,
			&workflow.CreatedAt, &workflow.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow row: %w", err)
		}
		workflows = append(workflows, &workflow)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workflow rows: %w", err)
	}

	if err := r.hydrate(ctx, workflows); err != nil {
		return nil, err
	}

	return workflows, nil
}

// hydrate loads triggers, conditions and ordered actions for the given
// workflows in three queries
func (r *WorkflowRepository) hydrate(ctx context.Context, workflows []*domain.Workflow) error {
	if len(workflows) == 0 {
		return nil
	}

	ids := make([]string, len(workflows))
	byID := make(map[string]*domain.Workflow, len(workflows))
	for i, w := range workflows {
		ids[i] = w.ID
		byID[w.ID] = w
	}

	if err := r.loadTriggers(ctx, ids, byID); err != nil {
		return err
	}
	if err := r.loadConditions(ctx, ids, byID); err != nil {
		return err
	}
	if err := r.loadActions(ctx, ids, byID); err != nil {
		return err
	}

	return nil
}

func (r *WorkflowRepository) loadTriggers(ctx context.Context, ids []string, byID map[string]*domain.Workflow) error {
	query, args, err := workflowPsql.
		Select("id", "workflow_id", "type", "config", "created_at").
		From("workflow_triggers").
		Where(sq.Eq{"workflow_id": ids}).
		OrderBy("workflow_id", "id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build triggers query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load triggers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var trigger domain.Trigger
		var configJSON []byte
		if err := rows.Scan(&trigger.ID, &trigger.WorkflowID, &trigger.Type, &configJSON, &trigger.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan trigger row: %w", err)
		}
		if len(configJSON) > 0 {
			if err := json.Unmarshal(configJSON, &trigger.Config); err != nil {
				return fmt.Errorf("failed to unmarshal trigger config: %w", err)
			}
		}
		if w, ok := byID[trigger.WorkflowID]; ok {
			w.Triggers = append(w.Triggers, &trigger)
		}
	}
	return rows.Err()
}

func (r *WorkflowRepository) loadConditions(ctx context.Context, ids []string, byID map[string]*domain.Workflow) error {
	query, args, err := workflowPsql.
		Select("id", "workflow_id", "type", "operator", "value", "created_at").
		From("workflow_conditions").
		Where(sq.Eq{"workflow_id": ids}).
		OrderBy("workflow_id", "id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build conditions query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load conditions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var condition domain.Condition
		if err := rows.Scan(&condition.ID, &condition.WorkflowID, &condition.Type, &condition.Operator, &condition.Value, &condition.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan condition row: %w", err)
		}
		if w, ok := byID[condition.WorkflowID]; ok {
			w.Conditions = append(w.Conditions, &condition)
		}
	}
	return rows.Err()
}

// loadActions orders by execution_order, breaking ties by created_at so
// equal orders run in insertion order, the contract downstream components
// rely on. id last keeps the ordering total.
func (r *WorkflowRepository) loadActions(ctx context.Context, ids []string, byID map[string]*domain.Workflow) error {
	query, args, err := workflowPsql.
		Select("id", "workflow_id", "type", "config", "execution_order", "created_at").
		From("workflow_actions").
		Where(sq.Eq{"workflow_id": ids}).
		OrderBy("workflow_id", "execution_order", "created_at", "id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build actions query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load actions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var action domain.Action
		var configJSON []byte
		if err := rows.Scan(&action.ID, &action.WorkflowID, &action.Type, &configJSON, &action.ExecutionOrder, &action.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan action row: %w", err)
		}
		if len(configJSON) > 0 {
			if err := json.Unmarshal(configJSON, &action.Config); err != nil {
				return fmt.Errorf("failed to unmarshal action config: %w", err)
			}
		}
		if w, ok := byID[action.WorkflowID]; ok {
			w.Actions = append(w.Actions, &action)
		}
	}
	return rows.Err()
}
