package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_subject_repository.go -package mocks github.com/Leadpulse/leadpulse/internal/domain SubjectRepository

// LeadStage classifies a subject in the sales funnel
type LeadStage string

const (
	LeadStageNew       LeadStage = "new"
	LeadStageContacted LeadStage = "contacted"
	LeadStageEngaged   LeadStage = "engaged"
	LeadStageQualified LeadStage = "qualified"
	LeadStageCustomer  LeadStage = "customer"
	LeadStageLost      LeadStage = "lost"
)

// IsValid checks if the lead stage is valid
func (s LeadStage) IsValid() bool {
	switch s {
	case LeadStageNew, LeadStageContacted, LeadStageEngaged,
		LeadStageQualified, LeadStageCustomer, LeadStageLost:
		return true
	default:
		return false
	}
}

// EngagementScoreIncrement is the fixed amount mark_engaged adds to a
// subject's engagement score
const EngagementScoreIncrement = 10

// Subject is the CRM contact/lead record that conditions read and actions
// mutate
type Subject struct {
	ID              string                 `json:"id"`
	Email           string                 `json:"email"`
	Name            string                 `json:"name,omitempty"`
	LeadStage       LeadStage              `json:"lead_stage"`
	Tags            []string               `json:"tags,omitempty"`
	EngagementScore int                    `json:"engagement_score"`
	LastContactedAt *time.Time             `json:"last_contacted_at,omitempty"`
	Fields          map[string]interface{} `json:"fields,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// Validate validates the subject
func (s *Subject) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("id is required")
	}
	if s.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !govalidator.IsEmail(s.Email) {
		return fmt.Errorf("invalid email format: %s", s.Email)
	}
	if !s.LeadStage.IsValid() {
		return fmt.Errorf("invalid lead stage: %s", s.LeadStage)
	}
	if s.EngagementScore < 0 {
		return fmt.Errorf("engagement_score cannot be negative")
	}
	return nil
}

// HasTag reports whether the subject carries the tag (case-insensitive)
func (s *Subject) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// AddTag adds the tag if not already present; returns true when added
func (s *Subject) AddTag(tag string) bool {
	if s.HasTag(tag) {
		return false
	}
	s.Tags = append(s.Tags, tag)
	return true
}

// RemoveTag removes the tag if present; returns true when removed
func (s *Subject) RemoveTag(tag string) bool {
	for i, t := range s.Tags {
		if strings.EqualFold(t, tag) {
			s.Tags = append(s.Tags[:i], s.Tags[i+1:]...)
			return true
		}
	}
	return false
}

// DaysSinceLastContact computes whole days between last_contacted_at and now.
// The boolean is false when the subject was never contacted.
func (s *Subject) DaysSinceLastContact(now time.Time) (int, bool) {
	if s.LastContactedAt == nil {
		return 0, false
	}
	days := int(now.Sub(*s.LastContactedAt).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days, true
}

// MarkEngaged promotes new/contacted subjects to engaged and bumps the
// engagement score by the fixed increment. The stage promotion is idempotent:
// subjects already at or past engaged keep their stage. Returns true when the
// stage changed.
func (s *Subject) MarkEngaged() bool {
	s.EngagementScore += EngagementScoreIncrement
	if s.LeadStage == LeadStageNew || s.LeadStage == LeadStageContacted {
		s.LeadStage = LeadStageEngaged
		return true
	}
	return false
}

// SubjectRepository is the engine's view of the subject store. UpdateWithLock
// must run fn inside a transaction holding a row-level lock on the subject so
// that concurrently running workflows cannot lose updates.
type SubjectRepository interface {
	GetByID(ctx context.Context, id string) (*Subject, error)
	UpdateWithLock(ctx context.Context, id string, fn func(*Subject) error) error
	SetLastContactedAt(ctx context.Context, id string, at time.Time) error
}
