package domain

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -destination mocks/mock_execution_repository.go -package mocks github.com/Leadpulse/leadpulse/internal/domain ExecutionRepository

// ExecutionStatus represents the status of a workflow execution
type ExecutionStatus string

const (
	ExecutionStatusRunning   ExecutionStatus = "running"
	ExecutionStatusCompleted ExecutionStatus = "completed"
	ExecutionStatusFailed    ExecutionStatus = "failed"
)

// IsValid checks if the execution status is valid
func (s ExecutionStatus) IsValid() bool {
	switch s {
	case ExecutionStatusRunning, ExecutionStatusCompleted, ExecutionStatusFailed:
		return true
	default:
		return false
	}
}

// ActionLogStatus represents the status of one action attempt
type ActionLogStatus string

const (
	ActionLogStatusRunning   ActionLogStatus = "running"
	ActionLogStatusCompleted ActionLogStatus = "completed"
	ActionLogStatusFailed    ActionLogStatus = "failed"
)

// IsValid checks if the action log status is valid
func (s ActionLogStatus) IsValid() bool {
	switch s {
	case ActionLogStatusRunning, ActionLogStatusCompleted, ActionLogStatusFailed:
		return true
	default:
		return false
	}
}

// Execution is one persisted record of a single workflow firing once for one
// event. TriggerData is an immutable snapshot of the event context, kept for
// audit and replay.
type Execution struct {
	ID              string          `json:"id"`
	WorkflowID      string          `json:"workflow_id"`
	TriggerType     TriggerType     `json:"trigger_type"`
	TriggerData     []byte          `json:"trigger_data,omitempty"`
	Status          ExecutionStatus `json:"status"`
	ActionsExecuted int             `json:"actions_executed"`
	ActionsTotal    int             `json:"actions_total"`
	StartedAt       time.Time       `json:"started_at"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	Error           *string         `json:"error,omitempty"`
}

// Validate validates the execution
func (e *Execution) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("id is required")
	}
	if e.WorkflowID == "" {
		return fmt.Errorf("workflow_id is required")
	}
	if !e.TriggerType.IsValid() {
		return fmt.Errorf("invalid trigger type: %s", e.TriggerType)
	}
	if !e.Status.IsValid() {
		return fmt.Errorf("invalid execution status: %s", e.Status)
	}
	if e.ActionsTotal < 0 {
		return fmt.Errorf("actions_total cannot be negative")
	}
	if e.ActionsExecuted < 0 || e.ActionsExecuted > e.ActionsTotal {
		return fmt.Errorf("actions_executed must be between 0 and actions_total")
	}
	return nil
}

// ActionLog is one persisted record of one action attempt within an execution
type ActionLog struct {
	ID           string                 `json:"id"`
	ExecutionID  string                 `json:"execution_id"`
	ActionID     string                 `json:"action_id"`
	ActionType   ActionType             `json:"action_type"`
	ActionConfig map[string]interface{} `json:"action_config,omitempty"`
	Status       ActionLogStatus        `json:"status"`
	Result       map[string]interface{} `json:"result,omitempty"`
	Error        *string                `json:"error,omitempty"`
	ExecutedAt   time.Time              `json:"executed_at"`
}

// Validate validates the action log
func (l *ActionLog) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("id is required")
	}
	if l.ExecutionID == "" {
		return fmt.Errorf("execution_id is required")
	}
	if l.ActionID == "" {
		return fmt.Errorf("action_id is required")
	}
	// unknown action types are still logged for audit, so only reject empty
	if l.ActionType == "" {
		return fmt.Errorf("action_type is required")
	}
	if !l.Status.IsValid() {
		return fmt.Errorf("invalid action log status: %s", l.Status)
	}
	return nil
}

// ExecutionRepository persists executions and their action logs. An execution
// row must exist before any action log referencing it is written; the caller
// enforces that ordering.
type ExecutionRepository interface {
	CreateExecution(ctx context.Context, execution *Execution) error
	GetExecution(ctx context.Context, id string) (*Execution, error)
	MarkExecutionCompleted(ctx context.Context, id string, completedAt time.Time) error
	MarkExecutionFailed(ctx context.Context, id string, errMsg string, completedAt time.Time) error
	IncrementActionsExecuted(ctx context.Context, id string) error

	CreateActionLog(ctx context.Context, log *ActionLog) error
	UpdateActionLog(ctx context.Context, log *ActionLog) error
	ListActionLogs(ctx context.Context, executionID string) ([]*ActionLog, error)
}
