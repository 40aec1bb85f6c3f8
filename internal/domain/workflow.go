package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

//go:generate mockgen -destination mocks/mock_workflow_repository.go -package mocks github.com/Leadpulse/leadpulse/internal/domain WorkflowRepository

// TriggerType represents the event type a workflow trigger listens for
type TriggerType string

const (
	TriggerMessageReceived TriggerType = "message_received"
	TriggerMessageSent     TriggerType = "message_sent"
	TriggerMessageOpened   TriggerType = "message_opened"
	TriggerMessageClicked  TriggerType = "message_clicked"
	TriggerMessageReplied  TriggerType = "message_replied"
	TriggerNoReplyAfter    TriggerType = "no_reply_after_days"
)

// IsValid checks if the trigger type is valid
func (t TriggerType) IsValid() bool {
	switch t {
	case TriggerMessageReceived, TriggerMessageSent, TriggerMessageOpened,
		TriggerMessageClicked, TriggerMessageReplied, TriggerNoReplyAfter:
		return true
	default:
		return false
	}
}

// ConditionType represents what a workflow condition inspects
type ConditionType string

const (
	ConditionLeadStage            ConditionType = "lead_stage"
	ConditionContactTag           ConditionType = "contact_tag"
	ConditionSubjectContains      ConditionType = "message_subject_contains"
	ConditionFromDomain           ConditionType = "message_from_domain"
	ConditionDaysSinceLastContact ConditionType = "days_since_last_contact"
)

// IsValid checks if the condition type is valid
func (t ConditionType) IsValid() bool {
	switch t {
	case ConditionLeadStage, ConditionContactTag, ConditionSubjectContains,
		ConditionFromDomain, ConditionDaysSinceLastContact:
		return true
	default:
		return false
	}
}

// ConditionOperator represents the comparison applied by a condition
type ConditionOperator string

const (
	OperatorEquals      ConditionOperator = "equals"
	OperatorNotEquals   ConditionOperator = "not_equals"
	OperatorContains    ConditionOperator = "contains"
	OperatorNotContains ConditionOperator = "not_contains"
	OperatorGreaterThan ConditionOperator = "greater_than"
	OperatorLessThan    ConditionOperator = "less_than"
	OperatorIn          ConditionOperator = "in"
	OperatorNotIn       ConditionOperator = "not_in"
)

// IsValid checks if the operator is valid
func (o ConditionOperator) IsValid() bool {
	switch o {
	case OperatorEquals, OperatorNotEquals, OperatorContains, OperatorNotContains,
		OperatorGreaterThan, OperatorLessThan, OperatorIn, OperatorNotIn:
		return true
	default:
		return false
	}
}

// ActionType represents the kind of side effect a workflow action performs
type ActionType string

const (
	ActionSendMessage        ActionType = "send_message"
	ActionUpdateLeadStage    ActionType = "update_lead_stage"
	ActionAddTag             ActionType = "add_tag"
	ActionRemoveTag          ActionType = "remove_tag"
	ActionCreateFollowUpTask ActionType = "create_followup_task"
	ActionNotifyUser         ActionType = "notify_user"
	ActionMarkEngaged        ActionType = "mark_engaged"
	ActionUpdateContactField ActionType = "update_contact_field"
)

// IsValid checks if the action type is valid
func (t ActionType) IsValid() bool {
	switch t {
	case ActionSendMessage, ActionUpdateLeadStage, ActionAddTag, ActionRemoveTag,
		ActionCreateFollowUpTask, ActionNotifyUser, ActionMarkEngaged,
		ActionUpdateContactField:
		return true
	default:
		return false
	}
}

// Trigger makes a workflow eligible to run for one event type
type Trigger struct {
	ID         string                 `json:"id"`
	WorkflowID string                 `json:"workflow_id"`
	Type       TriggerType            `json:"type"`
	Config     map[string]interface{} `json:"config,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// Validate validates the trigger
func (t *Trigger) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("id is required")
	}
	if t.WorkflowID == "" {
		return fmt.Errorf("workflow_id is required")
	}
	if !t.Type.IsValid() {
		return fmt.Errorf("invalid trigger type: %s", t.Type)
	}
	if t.Type == TriggerNoReplyAfter {
		if _, err := t.NoReplyDays(); err != nil {
			return err
		}
	}
	return nil
}

// NoReplyDays extracts the days setting of a no_reply_after_days trigger
func (t *Trigger) NoReplyDays() (int, error) {
	raw, ok := t.Config["days"]
	if !ok {
		return 0, fmt.Errorf("no_reply_after_days trigger requires a days config")
	}
	// JSON numbers decode as float64
	switch v := raw.(type) {
	case float64:
		if v < 1 {
			return 0, fmt.Errorf("days must be at least 1, got %v", v)
		}
		return int(v), nil
	case int:
		if v < 1 {
			return 0, fmt.Errorf("days must be at least 1, got %d", v)
		}
		return v, nil
	default:
		return 0, fmt.Errorf("days must be a number, got %T", raw)
	}
}

// Condition is one predicate over event or subject state.
// All conditions of a workflow are ANDed.
type Condition struct {
	ID         string            `json:"id"`
	WorkflowID string            `json:"workflow_id"`
	Type       ConditionType     `json:"type"`
	Operator   ConditionOperator `json:"operator"`
	Value      string            `json:"value"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Validate validates the condition
func (c *Condition) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("id is required")
	}
	if c.WorkflowID == "" {
		return fmt.Errorf("workflow_id is required")
	}
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid condition type: %s", c.Type)
	}
	if !c.Operator.IsValid() {
		return fmt.Errorf("invalid condition operator: %s", c.Operator)
	}
	return nil
}

// Action is one ordered side-effecting step of a workflow
type Action struct {
	ID             string                 `json:"id"`
	WorkflowID     string                 `json:"workflow_id"`
	Type           ActionType             `json:"type"`
	Config         map[string]interface{} `json:"config,omitempty"`
	ExecutionOrder int                    `json:"execution_order"`
	CreatedAt      time.Time              `json:"created_at"`
}

// Validate validates the action
func (a *Action) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("id is required")
	}
	if a.WorkflowID == "" {
		return fmt.Errorf("workflow_id is required")
	}
	if !a.Type.IsValid() {
		return fmt.Errorf("invalid action type: %s", a.Type)
	}
	if a.ExecutionOrder < 0 {
		return fmt.Errorf("execution_order cannot be negative")
	}
	return nil
}

// Typed action configurations, decoded from the config document at dispatch time

// SendMessageActionConfig configures a send_message action
type SendMessageActionConfig struct {
	TemplateID string  `json:"template_id"`
	To         *string `json:"to,omitempty"` // overrides subject/event recipient resolution
}

// Validate validates the send_message config
func (c SendMessageActionConfig) Validate() error {
	if c.TemplateID == "" {
		return fmt.Errorf("template_id is required")
	}
	return nil
}

// UpdateLeadStageActionConfig configures an update_lead_stage action
type UpdateLeadStageActionConfig struct {
	Stage string `json:"stage"`
}

// Validate validates the update_lead_stage config
func (c UpdateLeadStageActionConfig) Validate() error {
	if c.Stage == "" {
		return fmt.Errorf("stage is required")
	}
	if !LeadStage(c.Stage).IsValid() {
		return fmt.Errorf("invalid lead stage: %s", c.Stage)
	}
	return nil
}

// TagActionConfig configures add_tag and remove_tag actions
type TagActionConfig struct {
	Tag string `json:"tag"`
}

// Validate validates the tag config
func (c TagActionConfig) Validate() error {
	if c.Tag == "" {
		return fmt.Errorf("tag is required")
	}
	return nil
}

// CreateFollowUpTaskActionConfig configures a create_followup_task action
type CreateFollowUpTaskActionConfig struct {
	Title string `json:"title"`
	Days  int    `json:"days"`
}

// Validate validates the create_followup_task config
func (c CreateFollowUpTaskActionConfig) Validate() error {
	if c.Title == "" {
		return fmt.Errorf("title is required")
	}
	if c.Days < 0 {
		return fmt.Errorf("days cannot be negative")
	}
	return nil
}

// NotifyUserActionConfig configures a notify_user action
type NotifyUserActionConfig struct {
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// Validate validates the notify_user config
func (c NotifyUserActionConfig) Validate() error {
	if c.Message == "" {
		return fmt.Errorf("message is required")
	}
	return nil
}

// UpdateContactFieldActionConfig configures an update_contact_field action
type UpdateContactFieldActionConfig struct {
	Field string      `json:"field"`
	Value interface{} `json:"value"`
}

// Validate validates the update_contact_field config
func (c UpdateContactFieldActionConfig) Validate() error {
	if c.Field == "" {
		return fmt.Errorf("field is required")
	}
	return nil
}

// DecodeActionConfig decodes an action's config document into dst (a pointer
// to one of the typed config structs) via a JSON roundtrip
func DecodeActionConfig(config map[string]interface{}, dst interface{}) error {
	data, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal action config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode action config: %w", err)
	}
	return nil
}

// Workflow is a named, owner-scoped automation rule. The engine treats it as
// read-only: workflows are created and edited by configuration surfaces
// elsewhere.
type Workflow struct {
	ID         string       `json:"id"`
	OwnerID    string       `json:"owner_id"`
	Name       string       `json:"name"`
	Active     bool         `json:"active"`
	Triggers   []*Trigger   `json:"triggers,omitempty"`
	Conditions []*Condition `json:"conditions,omitempty"`
	Actions    []*Action    `json:"actions,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// Validate validates the workflow and its owned triggers/conditions/actions
func (w *Workflow) Validate() error {
	if w.ID == "" {
		return fmt.Errorf("id is required")
	}
	if len(w.ID) > 36 {
		return fmt.Errorf("id cannot exceed 36 characters")
	}
	if w.OwnerID == "" {
		return fmt.Errorf("owner_id is required")
	}
	if w.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(w.Name) > 255 {
		return fmt.Errorf("name cannot exceed 255 characters")
	}
	for _, t := range w.Triggers {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("invalid trigger %s: %w", t.ID, err)
		}
	}
	for _, c := range w.Conditions {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("invalid condition %s: %w", c.ID, err)
		}
	}
	for _, a := range w.Actions {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("invalid action %s: %w", a.ID, err)
		}
	}
	return nil
}

// TriggerOfType returns the first trigger of the given type, or nil
func (w *Workflow) TriggerOfType(triggerType TriggerType) *Trigger {
	for _, t := range w.Triggers {
		if t.Type == triggerType {
			return t
		}
	}
	return nil
}

// WorkflowRepository defines read access to workflow configuration.
// Implementations must return workflows fully hydrated (triggers, conditions
// and actions in ascending execution order) so callers need no further
// lookups.
type WorkflowRepository interface {
	GetByID(ctx context.Context, id string) (*Workflow, error)
	ListActiveByTriggerType(ctx context.Context, triggerType TriggerType) ([]*Workflow, error)
}
