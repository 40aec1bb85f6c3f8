package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/Leadpulse/leadpulse/internal/domain"
)

var taskPsql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// TaskRepository implements domain.TaskRepository
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *sql.DB) domain.TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a new follow-up task
func (r *TaskRepository) Create(ctx context.Context, task *domain.FollowUpTask) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("invalid follow-up task: %w", err)
	}

	query, args, err := taskPsql.
		Insert("followup_tasks").
		Columns("id", "subject_id", "title", "due_date", "status", "created_at").
		Values(task.ID, task.SubjectID, task.Title, task.DueDate, task.Status, task.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create follow-up task: %w", err)
	}
	return nil
}
