package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Leadpulse/leadpulse/internal/domain"
	"github.com/Leadpulse/leadpulse/pkg/logger"
)

// ActionExecutor runs a matched workflow's actions strictly in ascending
// execution order. One action's failure never aborts the remaining actions;
// only a ledger write failure (the store becoming unreachable mid-loop)
// escapes the per-action boundary and fails the whole execution.
type ActionExecutor struct {
	ledger        *ExecutionLedger
	handlers      *ActionHandlers
	actionTimeout time.Duration
	logger        logger.Logger
}

// NewActionExecutor creates a new ActionExecutor
func NewActionExecutor(ledger *ExecutionLedger, handlers *ActionHandlers, actionTimeout time.Duration, log logger.Logger) *ActionExecutor {
	return &ActionExecutor{
		ledger:        ledger,
		handlers:      handlers,
		actionTimeout: actionTimeout,
		logger:        log,
	}
}

// Run attempts every action of the workflow for one execution. The caller
// must have created the execution row (ledger.Begin) first.
func (e *ActionExecutor) Run(ctx context.Context, workflow *domain.Workflow, event *domain.EventContext, executionID string) error {
	for _, action := range workflow.Actions {
		actionLog, err := e.ledger.RecordActionStart(ctx, executionID, action)
		if err != nil {
			return e.abort(ctx, executionID, err)
		}

		result, actionErr := e.dispatch(ctx, action, event)
		if actionErr != nil {
			e.logger.WithFields(map[string]interface{}{
				"workflow_id":  workflow.ID,
				"execution_id": executionID,
				"action_id":    action.ID,
				"action_type":  string(action.Type),
				"error":        actionErr.Error(),
			}).Warn("Action failed, continuing with remaining actions")
		}

		if err := e.ledger.RecordActionResult(ctx, actionLog, result, actionErr); err != nil {
			return e.abort(ctx, executionID, err)
		}
	}

	return e.ledger.Complete(ctx, executionID)
}

// abort marks the execution failed after an engine-level fault. Remaining
// actions are abandoned.
func (e *ActionExecutor) abort(ctx context.Context, executionID string, execErr error) error {
	e.logger.WithFields(map[string]interface{}{
		"execution_id": executionID,
		"error":        execErr.Error(),
	}).Error("Execution aborted by engine-level fault")

	if err := e.ledger.Fail(ctx, executionID, execErr); err != nil {
		e.logger.WithField("execution_id", executionID).
			WithField("error", err.Error()).
			Error("Failed to record execution failure")
	}
	return execErr
}

// dispatch decodes the action's config document into its typed variant and
// invokes the matching handler under the bounded action timeout. Unknown
// action types and decode failures are action-level errors, never faults.
func (e *ActionExecutor) dispatch(ctx context.Context, action *domain.Action, event *domain.EventContext) (map[string]interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, e.actionTimeout)
	defer cancel()

	switch action.Type {
	case domain.ActionSendMessage:
		var config domain.SendMessageActionConfig
		if err := decodeConfig(action, &config); err != nil {
			return nil, err
		}
		return e.handlers.SendMessage(ctx, config, event)

	case domain.ActionUpdateLeadStage:
		var config domain.UpdateLeadStageActionConfig
		if err := decodeConfig(action, &config); err != nil {
			return nil, err
		}
		return e.handlers.UpdateLeadStage(ctx, config, event)

	case domain.ActionAddTag:
		var config domain.TagActionConfig
		if err := decodeConfig(action, &config); err != nil {
			return nil, err
		}
		return e.handlers.AddTag(ctx, config, event)

	case domain.ActionRemoveTag:
		var config domain.TagActionConfig
		if err := decodeConfig(action, &config); err != nil {
			return nil, err
		}
		return e.handlers.RemoveTag(ctx, config, event)

	case domain.ActionCreateFollowUpTask:
		var config domain.CreateFollowUpTaskActionConfig
		if err := decodeConfig(action, &config); err != nil {
			return nil, err
		}
		return e.handlers.CreateFollowUpTask(ctx, config, event)

	case domain.ActionNotifyUser:
		var config domain.NotifyUserActionConfig
		if err := decodeConfig(action, &config); err != nil {
			return nil, err
		}
		return e.handlers.NotifyUser(ctx, config, event)

	case domain.ActionMarkEngaged:
		return e.handlers.MarkEngaged(ctx, event)

	case domain.ActionUpdateContactField:
		var config domain.UpdateContactFieldActionConfig
		if err := decodeConfig(action, &config); err != nil {
			return nil, err
		}
		return e.handlers.UpdateContactField(ctx, config, event)

	default:
		return nil, &domain.ActionExecutionError{
			ActionID:   action.ID,
			ActionType: action.Type,
			Err:        fmt.Errorf("unknown action type: %s", action.Type),
		}
	}
}

// decodeConfig decodes and validates an action's typed configuration
func decodeConfig(action *domain.Action, dst interface{ Validate() error }) error {
	if err := domain.DecodeActionConfig(action.Config, dst); err != nil {
		return &domain.ActionExecutionError{ActionID: action.ID, ActionType: action.Type, Err: err}
	}
	if err := dst.Validate(); err != nil {
		return &domain.ActionExecutionError{ActionID: action.ID, ActionType: action.Type, Err: err}
	}
	return nil
}
