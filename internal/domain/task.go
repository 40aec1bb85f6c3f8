package domain

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -destination mocks/mock_task_repository.go -package mocks github.com/Leadpulse/leadpulse/internal/domain TaskRepository

// TaskStatus represents the state of a follow-up task
type TaskStatus string

const (
	TaskStatusOpen TaskStatus = "open"
	TaskStatusDone TaskStatus = "done"
)

// IsValid checks if the task status is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusDone:
		return true
	default:
		return false
	}
}

// FollowUpTask is a manual to-do created for a subject by the
// create_followup_task action. Only the contract matters to the engine:
// subject, title, due date.
type FollowUpTask struct {
	ID        string     `json:"id"`
	SubjectID string     `json:"subject_id"`
	Title     string     `json:"title"`
	DueDate   time.Time  `json:"due_date"`
	Status    TaskStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// Validate validates the follow-up task
func (t *FollowUpTask) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("id is required")
	}
	if t.SubjectID == "" {
		return fmt.Errorf("subject_id is required")
	}
	if t.Title == "" {
		return fmt.Errorf("title is required")
	}
	if t.DueDate.IsZero() {
		return fmt.Errorf("due_date is required")
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("invalid task status: %s", t.Status)
	}
	return nil
}

// TaskRepository persists follow-up tasks
type TaskRepository interface {
	Create(ctx context.Context, task *FollowUpTask) error
}
