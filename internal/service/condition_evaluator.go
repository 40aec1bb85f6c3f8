package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Leadpulse/leadpulse/internal/domain"
	"github.com/Leadpulse/leadpulse/pkg/logger"
)

// ConditionEvaluator evaluates workflow conditions against one event context,
// looking up subject state on demand. It has no side effects and is safe for
// concurrent use across unrelated events.
type ConditionEvaluator struct {
	subjectRepo domain.SubjectRepository
	logger      logger.Logger
}

// NewConditionEvaluator creates a new ConditionEvaluator
func NewConditionEvaluator(subjectRepo domain.SubjectRepository, log logger.Logger) *ConditionEvaluator {
	return &ConditionEvaluator{
		subjectRepo: subjectRepo,
		logger:      log,
	}
}

// EvaluateAll returns the AND of all conditions; true on an empty list
func (e *ConditionEvaluator) EvaluateAll(ctx context.Context, conditions []*domain.Condition, event *domain.EventContext) bool {
	for _, condition := range conditions {
		if !e.Evaluate(ctx, condition, event) {
			return false
		}
	}
	return true
}

// Evaluate resolves the condition's actual value from the event context or a
// subject lookup and compares it against the expected value. Any lookup miss
// or malformed input evaluates to false; evaluation never raises.
func (e *ConditionEvaluator) Evaluate(ctx context.Context, condition *domain.Condition, event *domain.EventContext) bool {
	switch condition.Type {
	case domain.ConditionSubjectContains:
		return compare(event.MessageSubject, condition.Operator, condition.Value)

	case domain.ConditionFromDomain:
		at := strings.LastIndex(event.FromAddress, "@")
		if at < 0 || at == len(event.FromAddress)-1 {
			return false
		}
		return compare(event.FromAddress[at+1:], condition.Operator, condition.Value)

	case domain.ConditionLeadStage:
		subject := e.lookupSubject(ctx, condition, event)
		if subject == nil {
			return false
		}
		return compare(string(subject.LeadStage), condition.Operator, condition.Value)

	case domain.ConditionContactTag:
		subject := e.lookupSubject(ctx, condition, event)
		if subject == nil {
			return false
		}
		return compareTags(subject.Tags, condition.Operator, condition.Value)

	case domain.ConditionDaysSinceLastContact:
		subject := e.lookupSubject(ctx, condition, event)
		if subject == nil {
			return false
		}
		days, ok := subject.DaysSinceLastContact(time.Now().UTC())
		if !ok {
			return false
		}
		return compare(strconv.Itoa(days), condition.Operator, condition.Value)

	default:
		e.logger.WithField("condition_type", string(condition.Type)).
			Debug("Unknown condition type evaluates to false")
		return false
	}
}

// lookupSubject resolves the event's subject; nil when the event carries no
// subject id or the lookup fails
func (e *ConditionEvaluator) lookupSubject(ctx context.Context, condition *domain.Condition, event *domain.EventContext) *domain.Subject {
	if event.SubjectID == nil {
		return nil
	}
	subject, err := e.subjectRepo.GetByID(ctx, *event.SubjectID)
	if err != nil {
		e.logger.WithFields(map[string]interface{}{
			"subject_id":   *event.SubjectID,
			"condition_id": condition.ID,
			"error":        err.Error(),
		}).Debug("Subject lookup failed, condition evaluates to false")
		return nil
	}
	return subject
}

// compare applies one operator to an actual and expected value. Strings
// compare case-insensitively; numeric operators fail closed on parse errors.
func compare(actual string, operator domain.ConditionOperator, expected string) bool {
	actualLower := strings.ToLower(strings.TrimSpace(actual))
	expectedLower := strings.ToLower(strings.TrimSpace(expected))

	switch operator {
	case domain.OperatorEquals:
		return actualLower == expectedLower
	case domain.OperatorNotEquals:
		return actualLower != expectedLower
	case domain.OperatorContains:
		return strings.Contains(actualLower, expectedLower)
	case domain.OperatorNotContains:
		return !strings.Contains(actualLower, expectedLower)
	case domain.OperatorGreaterThan, domain.OperatorLessThan:
		actualNum, err := strconv.ParseFloat(strings.TrimSpace(actual), 64)
		if err != nil {
			return false
		}
		expectedNum, err := strconv.ParseFloat(strings.TrimSpace(expected), 64)
		if err != nil {
			return false
		}
		if operator == domain.OperatorGreaterThan {
			return actualNum > expectedNum
		}
		return actualNum < expectedNum
	case domain.OperatorIn:
		return inList(actualLower, expectedLower)
	case domain.OperatorNotIn:
		return !inList(actualLower, expectedLower)
	default:
		return false
	}
}

// inList checks membership of actual in a comma-separated expected list
func inList(actual, expected string) bool {
	for _, item := range strings.Split(expected, ",") {
		if strings.TrimSpace(item) == actual {
			return true
		}
	}
	return false
}

// compareTags evaluates a condition against a subject's tag set. equals and
// contains test membership of the expected tag; not_* invert; in/not_in test
// the tag set against a comma-separated list.
func compareTags(tags []string, operator domain.ConditionOperator, expected string) bool {
	has := func(tag string) bool {
		for _, t := range tags {
			if strings.EqualFold(strings.TrimSpace(t), strings.TrimSpace(tag)) {
				return true
			}
		}
		return false
	}

	switch operator {
	case domain.OperatorEquals, domain.OperatorContains:
		return has(expected)
	case domain.OperatorNotEquals, domain.OperatorNotContains:
		return !has(expected)
	case domain.OperatorIn:
		for _, candidate := range strings.Split(expected, ",") {
			if has(candidate) {
				return true
			}
		}
		return false
	case domain.OperatorNotIn:
		for _, candidate := range strings.Split(expected, ",") {
			if has(candidate) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
