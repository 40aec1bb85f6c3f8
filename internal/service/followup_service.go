package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Leadpulse/leadpulse/internal/domain"
	"github.com/Leadpulse/leadpulse/pkg/logger"
)

// FollowUpService schedules delayed "no reply after N days" checks when
// messages go out, cancels them the moment a reply arrives, and processes
// the due ones. Every status transition is a compare-and-set from pending,
// so the reply path and the sweep path can race without double-firing.
type FollowUpService struct {
	followUpRepo  domain.FollowUpRepository
	workflowRepo  domain.WorkflowRepository
	messageRepo   domain.MessageRepository
	evaluator     *ConditionEvaluator
	ledger        *ExecutionLedger
	executor      *ActionExecutor
	batchSize     int
	concurrency   int
	logger        logger.Logger
}

// NewFollowUpService creates a new FollowUpService
func NewFollowUpService(
	followUpRepo domain.FollowUpRepository,
	workflowRepo domain.WorkflowRepository,
	messageRepo domain.MessageRepository,
	evaluator *ConditionEvaluator,
	ledger *ExecutionLedger,
	executor *ActionExecutor,
	batchSize int,
	concurrency int,
	log logger.Logger,
) *FollowUpService {
	return &FollowUpService{
		followUpRepo: followUpRepo,
		workflowRepo: workflowRepo,
		messageRepo:  messageRepo,
		evaluator:    evaluator,
		ledger:       ledger,
		executor:     executor,
		batchSize:    batchSize,
		concurrency:  concurrency,
		logger:       log,
	}
}

// ScheduleOnMessageSent creates one pending follow-up per active workflow
// carrying a no_reply_after_days trigger. Conditions are not evaluated here;
// they are re-checked when the follow-up comes due, against the state of the
// world at that time.
func (s *FollowUpService) ScheduleOnMessageSent(ctx context.Context, event *domain.EventContext) error {
	workflows, err := s.workflowRepo.ListActiveByTriggerType(ctx, domain.TriggerNoReplyAfter)
	if err != nil {
		return fmt.Errorf("failed to list no-reply workflows: %w", err)
	}

	for _, workflow := range workflows {
		trigger := workflow.TriggerOfType(domain.TriggerNoReplyAfter)
		if trigger == nil {
			continue
		}
		days, err := trigger.NoReplyDays()
		if err != nil {
			s.logger.WithFields(map[string]interface{}{
				"workflow_id": workflow.ID,
				"trigger_id":  trigger.ID,
				"error":       err.Error(),
			}).Warn("no_reply_after_days trigger without a valid days value, skipping")
			continue
		}

		workflowID := workflow.ID
		followUp := &domain.ScheduledFollowUp{
			ID:                uuid.NewString(),
			MessageID:         event.MessageID,
			WorkflowID:        &workflowID,
			SubjectID:         event.SubjectID,
			ScheduledFor:      event.OccurredAt.Add(time.Duration(days) * 24 * time.Hour),
			DaysAfterOriginal: days,
			Status:            domain.FollowUpStatusPending,
			CreatedAt:         time.Now().UTC(),
		}
		if err := s.followUpRepo.Create(ctx, followUp); err != nil {
			return fmt.Errorf("failed to schedule follow-up for workflow %s: %w", workflow.ID, err)
		}

		s.logger.WithFields(map[string]interface{}{
			"followup_id":   followUp.ID,
			"workflow_id":   workflow.ID,
			"message_id":    event.MessageID,
			"scheduled_for": followUp.ScheduledFor.Format(time.RFC3339),
		}).Info("Scheduled no-reply follow-up")
	}

	return nil
}

// CancelOnReply cancels every pending follow-up for the replied-to message.
// It runs synchronously on the reply path so a reply arriving just before
// the due time wins the race against the sweep.
func (s *FollowUpService) CancelOnReply(ctx context.Context, originalMessageID string) (int64, error) {
	cancelled, err := s.followUpRepo.CancelPendingByMessage(ctx, originalMessageID, "reply received")
	if err != nil {
		return 0, fmt.Errorf("failed to cancel follow-ups for message %s: %w", originalMessageID, err)
	}
	if cancelled > 0 {
		s.logger.WithFields(map[string]interface{}{
			"message_id": originalMessageID,
			"cancelled":  cancelled,
		}).Info("Cancelled pending follow-ups after reply")
	}
	return cancelled, nil
}

// ProcessPendingFollowUps processes all follow-ups due as of now and returns
// how many rows were picked up. Rows are processed concurrently under a
// bounded group; one row's failure never stops the batch.
func (s *FollowUpService) ProcessPendingFollowUps(ctx context.Context) (int, error) {
	due, err := s.followUpRepo.ListDue(ctx, time.Now().UTC(), s.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list due follow-ups: %w", err)
	}
	if len(due) == 0 {
		return 0, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, followUp := range due {
		followUp := followUp
		g.Go(func() error {
			if err := s.processFollowUp(gctx, followUp); err != nil {
				s.logger.WithFields(map[string]interface{}{
					"followup_id": followUp.ID,
					"error":       err.Error(),
				}).Error("Failed to process follow-up")
			}
			return nil
		})
	}
	_ = g.Wait()

	return len(due), nil
}

// processFollowUp resolves one due follow-up. The final transition is a CAS
// from pending; a CAS that reports zero rows means the reply path (or another
// sweep) already resolved the row, and the outcome here is discarded.
func (s *FollowUpService) processFollowUp(ctx context.Context, followUp *domain.ScheduledFollowUp) error {
	replyCount, err := s.messageRepo.GetReplyCount(ctx, followUp.MessageID)
	if err != nil && !domain.IsNotFound(err) {
		return fmt.Errorf("failed to read reply count: %w", err)
	}
	if err == nil && replyCount > 0 {
		return s.cancel(ctx, followUp, "reply received")
	}

	if followUp.WorkflowID == nil {
		return s.cancel(ctx, followUp, "workflow removed")
	}
	workflow, err := s.workflowRepo.GetByID(ctx, *followUp.WorkflowID)
	if err != nil {
		if domain.IsNotFound(err) {
			return s.cancel(ctx, followUp, "workflow removed")
		}
		return fmt.Errorf("failed to load workflow: %w", err)
	}
	if !workflow.Active {
		return s.cancel(ctx, followUp, "workflow inactive")
	}

	event, err := s.rebuildContext(ctx, followUp)
	if err != nil {
		return err
	}

	if !s.evaluator.EvaluateAll(ctx, workflow.Conditions, event) {
		return s.resolve(ctx, followUp, map[string]interface{}{"matched": false}, nil)
	}

	execution, err := s.ledger.Begin(ctx, workflow, domain.TriggerNoReplyAfter, event)
	if err != nil {
		return s.resolve(ctx, followUp, nil, fmt.Errorf("failed to begin execution: %w", err))
	}
	runErr := s.executor.Run(ctx, workflow, event, execution.ID)

	result := map[string]interface{}{
		"matched":      true,
		"execution_id": execution.ID,
	}
	return s.resolve(ctx, followUp, result, runErr)
}

// rebuildContext reconstructs the event context a no_reply_after_days firing
// runs with: the original message's current state plus the elapsed days.
func (s *FollowUpService) rebuildContext(ctx context.Context, followUp *domain.ScheduledFollowUp) (*domain.EventContext, error) {
	event := &domain.EventContext{
		MessageID:   followUp.MessageID,
		SubjectID:   followUp.SubjectID,
		DaysElapsed: followUp.DaysAfterOriginal,
		OccurredAt:  time.Now().UTC(),
	}

	message, err := s.messageRepo.GetByID(ctx, followUp.MessageID)
	if err != nil {
		if domain.IsNotFound(err) {
			return event, nil
		}
		return nil, fmt.Errorf("failed to load message: %w", err)
	}
	event.FromAddress = message.FromAddress
	event.ToAddress = message.ToAddress
	event.MessageSubject = message.Subject
	event.OpenCount = message.OpenCount
	event.ClickCount = message.ClickCount
	event.ReplyCount = message.ReplyCount
	if event.SubjectID == nil {
		event.SubjectID = message.SubjectID
	}
	return event, nil
}

func (s *FollowUpService) cancel(ctx context.Context, followUp *domain.ScheduledFollowUp, reason string) error {
	transitioned, err := s.followUpRepo.MarkCancelled(ctx, followUp.ID, reason)
	if err != nil {
		return fmt.Errorf("failed to cancel follow-up: %w", err)
	}
	if transitioned {
		s.logger.WithFields(map[string]interface{}{
			"followup_id": followUp.ID,
			"reason":      reason,
		}).Info("Follow-up cancelled")
	}
	return nil
}

func (s *FollowUpService) resolve(ctx context.Context, followUp *domain.ScheduledFollowUp, result map[string]interface{}, runErr error) error {
	now := time.Now().UTC()
	if runErr != nil {
		if _, err := s.followUpRepo.MarkFailed(ctx, followUp.ID, runErr.Error(), now); err != nil {
			return fmt.Errorf("failed to mark follow-up failed: %w", err)
		}
		return runErr
	}

	transitioned, err := s.followUpRepo.MarkExecuted(ctx, followUp.ID, result, now)
	if err != nil {
		return fmt.Errorf("failed to mark follow-up executed: %w", err)
	}
	if !transitioned {
		s.logger.WithField("followup_id", followUp.ID).
			Debug("Follow-up resolved concurrently, discarding result")
	}
	return nil
}
