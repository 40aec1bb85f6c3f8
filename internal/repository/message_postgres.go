package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/Leadpulse/leadpulse/internal/domain"
)

var messagePsql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// MessageRepository implements domain.MessageRepository
type MessageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *sql.DB) domain.MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a new message row
func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) error {
	query, args, err := messagePsql.
		Insert("messages").
		Columns(
			"id", "subject_id", "from_address", "to_address", "subject",
			"open_count", "click_count", "reply_count", "sent_at",
		).
		Values(
			message.ID, message.SubjectID, message.FromAddress, message.ToAddress,
			message.Subject, message.OpenCount, message.ClickCount,
			message.ReplyCount, message.SentAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// GetByID retrieves a message by ID
func (r *MessageRepository) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	query, args, err := messagePsql.
		Select(
			"id", "subject_id", "from_address", "to_address", "subject",
			"open_count", "click_count", "reply_count", "sent_at",
		).
		From("messages").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var message domain.Message
	var subjectID, fromAddress, toAddress, subject sql.NullString

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&message.ID, &subjectID, &fromAddress, &toAddress, &subject,
		&message.OpenCount, &message.ClickCount, &message.ReplyCount, &message.SentAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	if subjectID.Valid {
		message.SubjectID = &subjectID.String
	}
	if fromAddress.Valid {
		message.FromAddress = fromAddress.String
	}
	if toAddress.Valid {
		message.ToAddress = toAddress.String
	}
	if subject.Valid {
		message.Subject = subject.String
	}

	return &message, nil
}

// GetReplyCount returns the current reply counter for a message
func (r *MessageRepository) GetReplyCount(ctx context.Context, id string) (int, error) {
	query, args, err := messagePsql.
		Select("reply_count").
		From("messages").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var count int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, domain.ErrMessageNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get reply count: %w", err)
	}
	return count, nil
}

// IncrementOpenCount bumps the open counter
func (r *MessageRepository) IncrementOpenCount(ctx context.Context, id string) error {
	return r.incrementCounter(ctx, id, "open_count")
}

// IncrementClickCount bumps the click counter
func (r *MessageRepository) IncrementClickCount(ctx context.Context, id string) error {
	return r.incrementCounter(ctx, id, "click_count")
}

// IncrementReplyCount bumps the reply counter
func (r *MessageRepository) IncrementReplyCount(ctx context.Context, id string) error {
	return r.incrementCounter(ctx, id, "reply_count")
}

func (r *MessageRepository) incrementCounter(ctx context.Context, id, column string) error {
	query := fmt.Sprintf("UPDATE messages SET %s = %s + 1 WHERE id = $1", column, column)
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to increment %s: %w", column, err)
	}
	return nil
}
