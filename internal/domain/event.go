package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"
)

// EventType identifies a CRM lifecycle event the engine reacts to
type EventType string

const (
	EventMessageReceived EventType = "message_received"
	EventMessageSent     EventType = "message_sent"
	EventMessageOpened   EventType = "message_opened"
	EventMessageClicked  EventType = "message_clicked"
	EventMessageReplied  EventType = "message_replied"
)

// IsValid checks if the event type is valid
func (t EventType) IsValid() bool {
	switch t {
	case EventMessageReceived, EventMessageSent, EventMessageOpened,
		EventMessageClicked, EventMessageReplied:
		return true
	default:
		return false
	}
}

// TriggerType returns the workflow trigger type this event maps to
func (t EventType) TriggerType() TriggerType {
	return TriggerType(t)
}

// EventContext carries everything known about one lifecycle event.
// It is snapshotted verbatim into the execution ledger, so fields here
// must stay JSON-serializable.
type EventContext struct {
	MessageID      string    `json:"message_id"`
	SubjectID      *string   `json:"subject_id,omitempty"`
	FromAddress    string    `json:"from_address,omitempty"`
	ToAddress      string    `json:"to_address,omitempty"`
	MessageSubject string    `json:"message_subject,omitempty"`
	OpenCount      int       `json:"open_count"`
	ClickCount     int       `json:"click_count"`
	ReplyCount     int       `json:"reply_count"`
	ReplyMessageID *string   `json:"reply_message_id,omitempty"`
	DaysElapsed    int       `json:"days_elapsed,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Snapshot serializes the event context for the execution trigger data column
func (c *EventContext) Snapshot() ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot event context: %w", err)
	}
	return data, nil
}

// Validate validates the event context
func (c *EventContext) Validate() error {
	if c.MessageID == "" {
		return fmt.Errorf("message_id is required")
	}
	if c.SubjectID != nil && *c.SubjectID == "" {
		return fmt.Errorf("subject_id cannot be empty when provided")
	}
	return nil
}

//go:generate mockgen -destination mocks/mock_event_service.go -package mocks github.com/Leadpulse/leadpulse/internal/domain EventService

// EventService is the engine's entry point, one method per lifecycle event
type EventService interface {
	OnMessageReceived(ctx context.Context, event *EventContext) error
	OnMessageSent(ctx context.Context, event *EventContext) error
	OnMessageOpened(ctx context.Context, event *EventContext) error
	OnMessageClicked(ctx context.Context, event *EventContext) error
	OnMessageReplied(ctx context.Context, originalMessageID, replyMessageID string) error
}

// HTTP request types for event ingestion

// MessageEventRequest is the payload for message lifecycle event endpoints
type MessageEventRequest struct {
	MessageID      string  `json:"message_id"`
	SubjectID      *string `json:"subject_id,omitempty"`
	FromAddress    string  `json:"from_address,omitempty"`
	ToAddress      string  `json:"to_address,omitempty"`
	MessageSubject string  `json:"message_subject,omitempty"`
	OpenCount      int     `json:"open_count,omitempty"`
	ClickCount     int     `json:"click_count,omitempty"`
	ReplyCount     int     `json:"reply_count,omitempty"`
}

// Validate validates the message event request
func (r *MessageEventRequest) Validate() error {
	if r.MessageID == "" {
		return fmt.Errorf("message_id is required")
	}
	if r.FromAddress != "" && !govalidator.IsEmail(r.FromAddress) {
		return fmt.Errorf("invalid from_address: %s", r.FromAddress)
	}
	if r.ToAddress != "" && !govalidator.IsEmail(r.ToAddress) {
		return fmt.Errorf("invalid to_address: %s", r.ToAddress)
	}
	return nil
}

// ToEventContext converts the request into an event context
func (r *MessageEventRequest) ToEventContext() *EventContext {
	return &EventContext{
		MessageID:      r.MessageID,
		SubjectID:      r.SubjectID,
		FromAddress:    r.FromAddress,
		ToAddress:      r.ToAddress,
		MessageSubject: r.MessageSubject,
		OpenCount:      r.OpenCount,
		ClickCount:     r.ClickCount,
		ReplyCount:     r.ReplyCount,
		OccurredAt:     time.Now().UTC(),
	}
}

// ReplyEventRequest is the payload for the message replied endpoint
type ReplyEventRequest struct {
	OriginalMessageID string `json:"original_message_id"`
	ReplyMessageID    string `json:"reply_message_id"`
}

// Validate validates the reply event request
func (r *ReplyEventRequest) Validate() error {
	if r.OriginalMessageID == "" {
		return fmt.Errorf("original_message_id is required")
	}
	if r.ReplyMessageID == "" {
		return fmt.Errorf("reply_message_id is required")
	}
	return nil
}
