package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Leadpulse/leadpulse/internal/domain"
)

// ExecutionLedger writes the persisted records that make every workflow run
// auditable. It performs no business logic; ordering (execution row before
// any action log) is enforced by the caller's call sequence.
type ExecutionLedger struct {
	executionRepo domain.ExecutionRepository
}

// NewExecutionLedger creates a new ExecutionLedger
func NewExecutionLedger(executionRepo domain.ExecutionRepository) *ExecutionLedger {
	return &ExecutionLedger{executionRepo: executionRepo}
}

// Begin creates the running execution row with an immutable snapshot of the
// event context
func (l *ExecutionLedger) Begin(ctx context.Context, workflow *domain.Workflow, triggerType domain.TriggerType, event *domain.EventContext) (*domain.Execution, error) {
	snapshot, err := event.Snapshot()
	if err != nil {
		return nil, err
	}

	execution := &domain.Execution{
		ID:           uuid.NewString(),
		WorkflowID:   workflow.ID,
		TriggerType:  triggerType,
		TriggerData:  snapshot,
		Status:       domain.ExecutionStatusRunning,
		ActionsTotal: len(workflow.Actions),
		StartedAt:    time.Now().UTC(),
	}

	if err := l.executionRepo.CreateExecution(ctx, execution); err != nil {
		return nil, fmt.Errorf("failed to begin execution for workflow %s: %w", workflow.ID, err)
	}
	return execution, nil
}

// RecordActionStart writes the running action log for one action attempt
func (l *ExecutionLedger) RecordActionStart(ctx context.Context, executionID string, action *domain.Action) (*domain.ActionLog, error) {
	log := &domain.ActionLog{
		ID:           uuid.NewString(),
		ExecutionID:  executionID,
		ActionID:     action.ID,
		ActionType:   action.Type,
		ActionConfig: action.Config,
		Status:       domain.ActionLogStatusRunning,
		ExecutedAt:   time.Now().UTC(),
	}

	if err := l.executionRepo.CreateActionLog(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to record action attempt %s: %w", action.ID, err)
	}
	return log, nil
}

// RecordActionResult resolves one action attempt. The actions_executed
// counter increments whether the attempt succeeded or failed, because the
// action was attempted either way.
func (l *ExecutionLedger) RecordActionResult(ctx context.Context, log *domain.ActionLog, result map[string]interface{}, actionErr error) error {
	if actionErr != nil {
		errMsg := actionErr.Error()
		log.Status = domain.ActionLogStatusFailed
		log.Error = &errMsg
	} else {
		log.Status = domain.ActionLogStatusCompleted
		log.Result = result
	}

	if err := l.executionRepo.UpdateActionLog(ctx, log); err != nil {
		return fmt.Errorf("failed to resolve action log %s: %w", log.ID, err)
	}
	if err := l.executionRepo.IncrementActionsExecuted(ctx, log.ExecutionID); err != nil {
		return fmt.Errorf("failed to count action attempt for execution %s: %w", log.ExecutionID, err)
	}
	return nil
}

// Complete marks the execution completed
func (l *ExecutionLedger) Complete(ctx context.Context, executionID string) error {
	if err := l.executionRepo.MarkExecutionCompleted(ctx, executionID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to complete execution %s: %w", executionID, err)
	}
	return nil
}

// Fail marks the execution failed with the engine-level error that aborted it
func (l *ExecutionLedger) Fail(ctx context.Context, executionID string, execErr error) error {
	if err := l.executionRepo.MarkExecutionFailed(ctx, executionID, execErr.Error(), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to mark execution %s failed: %w", executionID, err)
	}
	return nil
}
