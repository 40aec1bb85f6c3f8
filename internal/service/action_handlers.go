package service

import (
	"context"
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"

	"github.com/Leadpulse/leadpulse/internal/domain"
	"github.com/Leadpulse/leadpulse/pkg/liquid"
	"github.com/Leadpulse/leadpulse/pkg/logger"
	"github.com/Leadpulse/leadpulse/pkg/mailer"
)

// ActionHandlers implements the side effects behind each action type. Every
// handler returns a result document for the action log and an error on
// failure; handlers never touch the ledger themselves.
type ActionHandlers struct {
	subjectRepo       domain.SubjectRepository
	templateRepo      domain.TemplateRepository
	taskRepo          domain.TaskRepository
	mailer            mailer.Mailer
	notificationEmail string
	logger            logger.Logger
}

// NewActionHandlers creates a new ActionHandlers
func NewActionHandlers(
	subjectRepo domain.SubjectRepository,
	templateRepo domain.TemplateRepository,
	taskRepo domain.TaskRepository,
	m mailer.Mailer,
	notificationEmail string,
	log logger.Logger,
) *ActionHandlers {
	return &ActionHandlers{
		subjectRepo:       subjectRepo,
		templateRepo:      templateRepo,
		taskRepo:          taskRepo,
		mailer:            m,
		notificationEmail: notificationEmail,
		logger:            log,
	}
}

// SendMessage renders the configured template and sends it to the resolved
// recipient. Recipient resolution order: explicit config override, then the
// event's subject email, then the counterparty address on the event itself.
func (h *ActionHandlers) SendMessage(ctx context.Context, config domain.SendMessageActionConfig, event *domain.EventContext) (map[string]interface{}, error) {
	template, err := h.templateRepo.GetByID(ctx, config.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load template %s: %w", config.TemplateID, err)
	}

	recipient, variables, err := h.resolveRecipient(ctx, config, event)
	if err != nil {
		return nil, err
	}

	subjectLine, err := liquid.RenderMessageTemplate(template.Subject, variables)
	if err != nil {
		return nil, fmt.Errorf("failed to render subject of template %s: %w", template.ID, err)
	}
	body, err := liquid.RenderMessageTemplate(template.Body, variables)
	if err != nil {
		return nil, fmt.Errorf("failed to render body of template %s: %w", template.ID, err)
	}

	receipt, err := h.mailer.SendMessage(ctx, mailer.OutgoingEmail{
		To:       recipient,
		Subject:  subjectLine,
		HTMLBody: body,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send message to %s: %w", recipient, err)
	}

	return map[string]interface{}{
		"template_id": template.ID,
		"recipient":   recipient,
		"external_id": receipt.ExternalID,
	}, nil
}

func (h *ActionHandlers) resolveRecipient(ctx context.Context, config domain.SendMessageActionConfig, event *domain.EventContext) (string, map[string]interface{}, error) {
	variables := map[string]interface{}{
		"message_subject": event.MessageSubject,
		"from_address":    event.FromAddress,
		"to_address":      event.ToAddress,
	}

	var subject *domain.Subject
	if event.SubjectID != nil {
		s, err := h.subjectRepo.GetByID(ctx, *event.SubjectID)
		if err != nil && !domain.IsNotFound(err) {
			return "", nil, fmt.Errorf("failed to load subject %s: %w", *event.SubjectID, err)
		}
		subject = s
	}
	if subject != nil {
		variables["subject_name"] = subject.Name
		variables["subject_email"] = subject.Email
		variables["lead_stage"] = string(subject.LeadStage)
	}

	recipient := ""
	switch {
	case config.To != nil && *config.To != "":
		recipient = *config.To
	case subject != nil && subject.Email != "":
		recipient = subject.Email
	case event.FromAddress != "":
		recipient = event.FromAddress
	default:
		recipient = event.ToAddress
	}
	if !govalidator.IsEmail(recipient) {
		return "", nil, fmt.Errorf("no valid recipient for message: %q", recipient)
	}
	return recipient, variables, nil
}

// UpdateLeadStage sets the subject's lead stage under a row lock
func (h *ActionHandlers) UpdateLeadStage(ctx context.Context, config domain.UpdateLeadStageActionConfig, event *domain.EventContext) (map[string]interface{}, error) {
	subjectID, err := requireSubject(event)
	if err != nil {
		return nil, err
	}

	var previous domain.LeadStage
	err = h.subjectRepo.UpdateWithLock(ctx, subjectID, func(subject *domain.Subject) error {
		previous = subject.LeadStage
		subject.LeadStage = domain.LeadStage(config.Stage)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update lead stage: %w", err)
	}

	return map[string]interface{}{
		"subject_id":     subjectID,
		"previous_stage": string(previous),
		"lead_stage":     string(config.Stage),
	}, nil
}

// AddTag adds a tag to the subject's tag set. Adding a tag the subject
// already carries is a no-op, not an error.
func (h *ActionHandlers) AddTag(ctx context.Context, config domain.TagActionConfig, event *domain.EventContext) (map[string]interface{}, error) {
	subjectID, err := requireSubject(event)
	if err != nil {
		return nil, err
	}

	var added bool
	err = h.subjectRepo.UpdateWithLock(ctx, subjectID, func(subject *domain.Subject) error {
		added = subject.AddTag(config.Tag)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add tag: %w", err)
	}

	return map[string]interface{}{
		"subject_id": subjectID,
		"tag":        config.Tag,
		"added":      added,
	}, nil
}

// RemoveTag removes a tag from the subject's tag set. Removing an absent tag
// is a no-op, not an error.
func (h *ActionHandlers) RemoveTag(ctx context.Context, config domain.TagActionConfig, event *domain.EventContext) (map[string]interface{}, error) {
	subjectID, err := requireSubject(event)
	if err != nil {
		return nil, err
	}

	var removed bool
	err = h.subjectRepo.UpdateWithLock(ctx, subjectID, func(subject *domain.Subject) error {
		removed = subject.RemoveTag(config.Tag)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to remove tag: %w", err)
	}

	return map[string]interface{}{
		"subject_id": subjectID,
		"tag":        config.Tag,
		"removed":    removed,
	}, nil
}

// CreateFollowUpTask creates a task due the configured number of days from now
func (h *ActionHandlers) CreateFollowUpTask(ctx context.Context, config domain.CreateFollowUpTaskActionConfig, event *domain.EventContext) (map[string]interface{}, error) {
	subjectID, err := requireSubject(event)
	if err != nil {
		return nil, err
	}

	task := &domain.FollowUpTask{
		ID:        uuid.NewString(),
		SubjectID: subjectID,
		Title:     config.Title,
		DueDate:   time.Now().UTC().AddDate(0, 0, config.Days),
		Status:    domain.TaskStatusOpen,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create follow-up task: %w", err)
	}

	return map[string]interface{}{
		"task_id":  task.ID,
		"title":    task.Title,
		"due_date": task.DueDate.Format(time.RFC3339),
	}, nil
}

// NotifyUser emails the configured workspace notification address
func (h *ActionHandlers) NotifyUser(ctx context.Context, config domain.NotifyUserActionConfig, event *domain.EventContext) (map[string]interface{}, error) {
	if h.notificationEmail == "" {
		return nil, fmt.Errorf("no notification email configured")
	}

	body, err := liquid.RenderMessageTemplate(config.Message, map[string]interface{}{
		"message_id":      event.MessageID,
		"message_subject": event.MessageSubject,
		"from_address":    event.FromAddress,
		"to_address":      event.ToAddress,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render notification: %w", err)
	}

	receipt, err := h.mailer.SendMessage(ctx, mailer.OutgoingEmail{
		To:       h.notificationEmail,
		Subject:  config.Subject,
		TextBody: body,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send notification: %w", err)
	}

	return map[string]interface{}{
		"recipient":   h.notificationEmail,
		"external_id": receipt.ExternalID,
	}, nil
}

// MarkEngaged bumps the engagement score and promotes early-stage subjects
// to engaged, all under a row lock
func (h *ActionHandlers) MarkEngaged(ctx context.Context, event *domain.EventContext) (map[string]interface{}, error) {
	subjectID, err := requireSubject(event)
	if err != nil {
		return nil, err
	}

	var stageChanged bool
	var score int
	var stage domain.LeadStage
	err = h.subjectRepo.UpdateWithLock(ctx, subjectID, func(subject *domain.Subject) error {
		stageChanged = subject.MarkEngaged()
		score = subject.EngagementScore
		stage = subject.LeadStage
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mark subject engaged: %w", err)
	}

	return map[string]interface{}{
		"subject_id":       subjectID,
		"engagement_score": score,
		"lead_stage":       string(stage),
		"stage_changed":    stageChanged,
	}, nil
}

// UpdateContactField writes one named field on the subject under a row lock
func (h *ActionHandlers) UpdateContactField(ctx context.Context, config domain.UpdateContactFieldActionConfig, event *domain.EventContext) (map[string]interface{}, error) {
	subjectID, err := requireSubject(event)
	if err != nil {
		return nil, err
	}

	err = h.subjectRepo.UpdateWithLock(ctx, subjectID, func(subject *domain.Subject) error {
		if subject.Fields == nil {
			subject.Fields = map[string]interface{}{}
		}
		subject.Fields[config.Field] = config.Value
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update contact field: %w", err)
	}

	return map[string]interface{}{
		"subject_id": subjectID,
		"field":      config.Field,
		"value":      config.Value,
	}, nil
}

func requireSubject(event *domain.EventContext) (string, error) {
	if event.SubjectID == nil || *event.SubjectID == "" {
		return "", fmt.Errorf("event has no subject")
	}
	return *event.SubjectID, nil
}
