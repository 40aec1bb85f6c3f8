package domain

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -destination mocks/mock_followup_repository.go -package mocks github.com/Leadpulse/leadpulse/internal/domain FollowUpRepository

// FollowUpStatus represents the state of a scheduled follow-up.
// pending is the only non-terminal state; a row leaves it exactly once.
type FollowUpStatus string

const (
	FollowUpStatusPending   FollowUpStatus = "pending"
	FollowUpStatusExecuted  FollowUpStatus = "executed"
	FollowUpStatusCancelled FollowUpStatus = "cancelled"
	FollowUpStatusFailed    FollowUpStatus = "failed"
)

// IsValid checks if the follow-up status is valid
func (s FollowUpStatus) IsValid() bool {
	switch s {
	case FollowUpStatusPending, FollowUpStatusExecuted,
		FollowUpStatusCancelled, FollowUpStatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status permits no further transitions
func (s FollowUpStatus) IsTerminal() bool {
	return s == FollowUpStatusExecuted || s == FollowUpStatusCancelled || s == FollowUpStatusFailed
}

// ScheduledFollowUp is a delayed, cancelable "no reply after N days" check
// tied to one originating outbound message and one workflow.
type ScheduledFollowUp struct {
	ID                string                 `json:"id"`
	MessageID         string                 `json:"message_id"`
	WorkflowID        *string                `json:"workflow_id,omitempty"` // nil once the workflow is deleted
	SubjectID         *string                `json:"subject_id,omitempty"`
	ScheduledFor      time.Time              `json:"scheduled_for"`
	DaysAfterOriginal int                    `json:"days_after_original"`
	Status            FollowUpStatus         `json:"status"`
	ExecutedAt        *time.Time             `json:"executed_at,omitempty"`
	Result            map[string]interface{} `json:"result,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
}

// Validate validates the scheduled follow-up
func (f *ScheduledFollowUp) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("id is required")
	}
	if f.MessageID == "" {
		return fmt.Errorf("message_id is required")
	}
	if f.ScheduledFor.IsZero() {
		return fmt.Errorf("scheduled_for is required")
	}
	if f.DaysAfterOriginal < 1 {
		return fmt.Errorf("days_after_original must be at least 1")
	}
	if !f.Status.IsValid() {
		return fmt.Errorf("invalid follow-up status: %s", f.Status)
	}
	return nil
}

// FollowUpRepository persists scheduled follow-ups. Every pending→terminal
// transition is a compare-and-set on status = 'pending'; the boolean return
// reports whether this caller won the transition.
type FollowUpRepository interface {
	Create(ctx context.Context, followUp *ScheduledFollowUp) error
	GetByID(ctx context.Context, id string) (*ScheduledFollowUp, error)

	// ListDue returns pending rows with scheduled_for <= before
	ListDue(ctx context.Context, before time.Time, limit int) ([]*ScheduledFollowUp, error)

	// CancelPendingByMessage cancels every pending follow-up for the given
	// originating message and returns the number of rows transitioned
	CancelPendingByMessage(ctx context.Context, messageID, reason string) (int64, error)

	MarkExecuted(ctx context.Context, id string, result map[string]interface{}, executedAt time.Time) (bool, error)
	MarkCancelled(ctx context.Context, id, reason string) (bool, error)
	MarkFailed(ctx context.Context, id, errMsg string, executedAt time.Time) (bool, error)
}
