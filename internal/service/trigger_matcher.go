package service

import (
	"context"

	"github.com/Leadpulse/leadpulse/internal/domain"
	"github.com/Leadpulse/leadpulse/pkg/logger"
)

// TriggerMatcher selects the active workflows that should run for one event
type TriggerMatcher struct {
	workflowRepo domain.WorkflowRepository
	evaluator    *ConditionEvaluator
	logger       logger.Logger
}

// NewTriggerMatcher creates a new TriggerMatcher
func NewTriggerMatcher(workflowRepo domain.WorkflowRepository, evaluator *ConditionEvaluator, log logger.Logger) *TriggerMatcher {
	return &TriggerMatcher{
		workflowRepo: workflowRepo,
		evaluator:    evaluator,
		logger:       log,
	}
}

// Match returns every active workflow owning a trigger of the given type
// whose conditions all pass for the event. Workflows come back fully
// hydrated, so downstream components need no further lookups. An empty
// result is a normal no-op; a store failure is fatal for this event.
func (m *TriggerMatcher) Match(ctx context.Context, triggerType domain.TriggerType, event *domain.EventContext) ([]*domain.Workflow, error) {
	candidates, err := m.workflowRepo.ListActiveByTriggerType(ctx, triggerType)
	if err != nil {
		return nil, &domain.TriggerLookupError{TriggerType: triggerType, Err: err}
	}

	matched := make([]*domain.Workflow, 0, len(candidates))
	for _, workflow := range candidates {
		if !m.evaluator.EvaluateAll(ctx, workflow.Conditions, event) {
			m.logger.WithFields(map[string]interface{}{
				"workflow_id":  workflow.ID,
				"trigger_type": string(triggerType),
				"message_id":   event.MessageID,
			}).Debug("Workflow conditions not met")
			continue
		}
		matched = append(matched, workflow)
	}

	return matched, nil
}
