package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by repositories
var (
	ErrWorkflowNotFound  = errors.New("workflow not found")
	ErrSubjectNotFound   = errors.New("subject not found")
	ErrMessageNotFound   = errors.New("message not found")
	ErrTemplateNotFound  = errors.New("template not found")
	ErrFollowUpNotFound  = errors.New("follow-up not found")
	ErrExecutionNotFound = errors.New("execution not found")
)

// IsNotFound reports whether err is one of the repository not-found errors
func IsNotFound(err error) bool {
	return errors.Is(err, ErrWorkflowNotFound) ||
		errors.Is(err, ErrSubjectNotFound) ||
		errors.Is(err, ErrMessageNotFound) ||
		errors.Is(err, ErrTemplateNotFound) ||
		errors.Is(err, ErrFollowUpNotFound) ||
		errors.Is(err, ErrExecutionNotFound)
}

// TriggerLookupError wraps a workflow store failure during trigger matching.
// It is fatal for the current event: no workflow executes.
type TriggerLookupError struct {
	TriggerType TriggerType
	Err         error
}

func (e *TriggerLookupError) Error() string {
	return fmt.Sprintf("trigger lookup failed for %s: %s", e.TriggerType, e.Err)
}

func (e *TriggerLookupError) Unwrap() error {
	return e.Err
}

// ActionExecutionError wraps one action's failure. It is caught per action;
// the execution continues with the next action.
type ActionExecutionError struct {
	ActionID   string
	ActionType ActionType
	Err        error
}

func (e *ActionExecutionError) Error() string {
	return fmt.Sprintf("action %s (%s) failed: %s", e.ActionID, e.ActionType, e.Err)
}

func (e *ActionExecutionError) Unwrap() error {
	return e.Err
}
