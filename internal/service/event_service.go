package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Leadpulse/leadpulse/internal/domain"
	"github.com/Leadpulse/leadpulse/pkg/logger"
)

// EventService is the engine's front door. Each lifecycle event is matched
// against active workflows and every match runs to its own execution record.
// Matched workflows are independent: one workflow's failure is logged and
// the rest still run.
type EventService struct {
	matcher     *TriggerMatcher
	ledger      *ExecutionLedger
	executor    *ActionExecutor
	followUps   *FollowUpService
	messageRepo domain.MessageRepository
	subjectRepo domain.SubjectRepository
	logger      logger.Logger
}

// NewEventService creates a new EventService
func NewEventService(
	matcher *TriggerMatcher,
	ledger *ExecutionLedger,
	executor *ActionExecutor,
	followUps *FollowUpService,
	messageRepo domain.MessageRepository,
	subjectRepo domain.SubjectRepository,
	log logger.Logger,
) *EventService {
	return &EventService{
		matcher:     matcher,
		ledger:      ledger,
		executor:    executor,
		followUps:   followUps,
		messageRepo: messageRepo,
		subjectRepo: subjectRepo,
		logger:      log,
	}
}

// OnMessageReceived handles an inbound message event
func (s *EventService) OnMessageReceived(ctx context.Context, event *domain.EventContext) error {
	if err := s.recordMessage(ctx, domain.EventMessageReceived, event); err != nil {
		return err
	}
	return s.dispatch(ctx, domain.EventMessageReceived, event)
}

// OnMessageSent handles an outbound message event. Beyond workflow matching
// it records the message, schedules no-reply follow-ups, and stamps the
// subject's last_contacted_at.
func (s *EventService) OnMessageSent(ctx context.Context, event *domain.EventContext) error {
	if err := s.recordMessage(ctx, domain.EventMessageSent, event); err != nil {
		return err
	}

	if err := s.followUps.ScheduleOnMessageSent(ctx, event); err != nil {
		return err
	}

	if event.SubjectID != nil {
		if err := s.subjectRepo.SetLastContactedAt(ctx, *event.SubjectID, event.OccurredAt); err != nil && !domain.IsNotFound(err) {
			return fmt.Errorf("failed to stamp last contact: %w", err)
		}
	}

	return s.dispatch(ctx, domain.EventMessageSent, event)
}

// OnMessageOpened handles an open-tracking event
func (s *EventService) OnMessageOpened(ctx context.Context, event *domain.EventContext) error {
	if err := s.messageRepo.IncrementOpenCount(ctx, event.MessageID); err != nil && !domain.IsNotFound(err) {
		return fmt.Errorf("failed to increment open count: %w", err)
	}
	s.enrichFromMessage(ctx, event)
	return s.dispatch(ctx, domain.EventMessageOpened, event)
}

// OnMessageClicked handles a click-tracking event
func (s *EventService) OnMessageClicked(ctx context.Context, event *domain.EventContext) error {
	if err := s.messageRepo.IncrementClickCount(ctx, event.MessageID); err != nil && !domain.IsNotFound(err) {
		return fmt.Errorf("failed to increment click count: %w", err)
	}
	s.enrichFromMessage(ctx, event)
	return s.dispatch(ctx, domain.EventMessageClicked, event)
}

// OnMessageReplied handles a reply to an earlier outbound message. Pending
// follow-ups for the original message are cancelled before any workflow
// runs, so a reply can never race a no-reply firing into a double send.
func (s *EventService) OnMessageReplied(ctx context.Context, originalMessageID, replyMessageID string) error {
	if _, err := s.followUps.CancelOnReply(ctx, originalMessageID); err != nil {
		return err
	}

	if err := s.messageRepo.IncrementReplyCount(ctx, originalMessageID); err != nil && !domain.IsNotFound(err) {
		return fmt.Errorf("failed to increment reply count: %w", err)
	}

	event := &domain.EventContext{
		MessageID:      originalMessageID,
		ReplyMessageID: &replyMessageID,
		OccurredAt:     time.Now().UTC(),
	}
	s.enrichFromMessage(ctx, event)

	return s.dispatch(ctx, domain.EventMessageReplied, event)
}

// dispatch matches the event against active workflows and runs every match.
func (s *EventService) dispatch(ctx context.Context, eventType domain.EventType, event *domain.EventContext) error {
	triggerType := eventType.TriggerType()

	workflows, err := s.matcher.Match(ctx, triggerType, event)
	if err != nil {
		return err
	}

	for _, workflow := range workflows {
		execution, err := s.ledger.Begin(ctx, workflow, triggerType, event)
		if err != nil {
			s.logger.WithFields(map[string]interface{}{
				"workflow_id": workflow.ID,
				"error":       err.Error(),
			}).Error("Failed to begin execution")
			continue
		}

		if err := s.executor.Run(ctx, workflow, event, execution.ID); err != nil {
			s.logger.WithFields(map[string]interface{}{
				"workflow_id":  workflow.ID,
				"execution_id": execution.ID,
				"error":        err.Error(),
			}).Error("Workflow execution failed")
		}
	}

	return nil
}

// recordMessage upserts the event's message so later counter updates and
// follow-up firings have a row to work against. A duplicate event for an
// already-recorded message is not an error.
func (s *EventService) recordMessage(ctx context.Context, eventType domain.EventType, event *domain.EventContext) error {
	if _, err := s.messageRepo.GetByID(ctx, event.MessageID); err == nil {
		return nil
	} else if !domain.IsNotFound(err) {
		return fmt.Errorf("failed to look up message: %w", err)
	}

	message := &domain.Message{
		ID:          event.MessageID,
		SubjectID:   event.SubjectID,
		FromAddress: event.FromAddress,
		ToAddress:   event.ToAddress,
		Subject:     event.MessageSubject,
		SentAt:      event.OccurredAt,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return fmt.Errorf("failed to record %s message: %w", eventType, err)
	}
	return nil
}

// enrichFromMessage fills context fields the caller did not supply from the
// stored message. Missing messages are tolerated; counters then stay zero.
func (s *EventService) enrichFromMessage(ctx context.Context, event *domain.EventContext) {
	message, err := s.messageRepo.GetByID(ctx, event.MessageID)
	if err != nil {
		if !domain.IsNotFound(err) {
			s.logger.WithField("message_id", event.MessageID).
				WithField("error", err.Error()).
				Warn("Failed to enrich event from message")
		}
		return
	}

	if event.SubjectID == nil {
		event.SubjectID = message.SubjectID
	}
	if event.FromAddress == "" {
		event.FromAddress = message.FromAddress
	}
	if event.ToAddress == "" {
		event.ToAddress = message.ToAddress
	}
	if event.MessageSubject == "" {
		event.MessageSubject = message.Subject
	}
	event.OpenCount = message.OpenCount
	event.ClickCount = message.ClickCount
	event.ReplyCount = message.ReplyCount
}
