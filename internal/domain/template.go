package domain

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -destination mocks/mock_template_repository.go -package mocks github.com/Leadpulse/leadpulse/internal/domain TemplateRepository

// Template is a reusable message template. Subject and Body are Liquid
// templates rendered against the event and subject variables at send time.
type Template struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate validates the template
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("name is required")
	}
	if t.Body == "" {
		return fmt.Errorf("body is required")
	}
	return nil
}

// TemplateRepository provides read access to message templates
type TemplateRepository interface {
	GetByID(ctx context.Context, id string) (*Template, error)
}
