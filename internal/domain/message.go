package domain

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -destination mocks/mock_message_repository.go -package mocks github.com/Leadpulse/leadpulse/internal/domain MessageRepository

// Message is one outbound or inbound message with its engagement counters as
// currently known. Counters update lazily from the event source, so the
// follow-up sweep re-checks reply_count before executing.
type Message struct {
	ID          string    `json:"id"`
	SubjectID   *string   `json:"subject_id,omitempty"`
	FromAddress string    `json:"from_address,omitempty"`
	ToAddress   string    `json:"to_address,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	OpenCount   int       `json:"open_count"`
	ClickCount  int       `json:"click_count"`
	ReplyCount  int       `json:"reply_count"`
	SentAt      time.Time `json:"sent_at"`
}

// Validate validates the message
func (m *Message) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("id is required")
	}
	return nil
}

// MessageRepository persists messages and their engagement counters
type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	GetByID(ctx context.Context, id string) (*Message, error)
	GetReplyCount(ctx context.Context, id string) (int, error)
	IncrementOpenCount(ctx context.Context, id string) error
	IncrementClickCount(ctx context.Context, id string) error
	IncrementReplyCount(ctx context.Context, id string) error
}
