package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leadpulse/leadpulse/internal/domain"
	"github.com/Leadpulse/leadpulse/internal/domain/mocks"
	"github.com/Leadpulse/leadpulse/pkg/logger"
	pkgmocks "github.com/Leadpulse/leadpulse/pkg/mocks"
)

type eventServiceFixture struct {
	workflowRepo  *mocks.MockWorkflowRepository
	executionRepo *mocks.MockExecutionRepository
	followUpRepo  *mocks.MockFollowUpRepository
	subjectRepo   *mocks.MockSubjectRepository
	messageRepo   *mocks.MockMessageRepository
	service       *EventService
}

func newEventServiceFixture(t *testing.T, ctrl *gomock.Controller) *eventServiceFixture {
	f := &eventServiceFixture{
		workflowRepo:  mocks.NewMockWorkflowRepository(ctrl),
		executionRepo: mocks.NewMockExecutionRepository(ctrl),
		followUpRepo:  mocks.NewMockFollowUpRepository(ctrl),
		subjectRepo:   mocks.NewMockSubjectRepository(ctrl),
		messageRepo:   mocks.NewMockMessageRepository(ctrl),
	}
	testLogger := logger.NewTestLogger(t)
	evaluator := NewConditionEvaluator(f.subjectRepo, testLogger)
	matcher := NewTriggerMatcher(f.workflowRepo, evaluator, testLogger)
	ledger := NewExecutionLedger(f.executionRepo)
	handlers := NewActionHandlers(
		f.subjectRepo,
		mocks.NewMockTemplateRepository(ctrl),
		mocks.NewMockTaskRepository(ctrl),
		pkgmocks.NewMockMailer(ctrl),
		"ops@leadpulse.io",
		testLogger,
	)
	executor := NewActionExecutor(ledger, handlers, 5*time.Second, testLogger)
	followUps := NewFollowUpService(
		f.followUpRepo, f.workflowRepo, f.messageRepo,
		evaluator, ledger, executor, 100, 4, testLogger,
	)
	f.service = NewEventService(matcher, ledger, executor, followUps, f.messageRepo, f.subjectRepo, testLogger)
	return f
}

func (f *eventServiceFixture) expectNewMessageRecorded(messageID string) {
	f.messageRepo.EXPECT().GetByID(gomock.Any(), messageID).Return(nil, domain.ErrMessageNotFound)
	f.messageRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
}

func TestEventService_OnMessageReceived_RunsMatchedWorkflow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newEventServiceFixture(t, ctrl)

	subjectID := "subj-1"
	workflow := &domain.Workflow{
		ID: "w1", OwnerID: "o1", Name: "tag inbound", Active: true,
		Triggers: []*domain.Trigger{{ID: "t1", WorkflowID: "w1", Type: domain.TriggerMessageReceived}},
		Actions: []*domain.Action{
			{ID: "a1", WorkflowID: "w1", Type: domain.ActionAddTag, Config: map[string]interface{}{"tag": "inbound"}, ExecutionOrder: 1},
		},
	}

	f.expectNewMessageRecorded("msg-1")
	f.workflowRepo.EXPECT().
		ListActiveByTriggerType(gomock.Any(), domain.TriggerMessageReceived).
		Return([]*domain.Workflow{workflow}, nil)

	f.subjectRepo.EXPECT().
		UpdateWithLock(gomock.Any(), subjectID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, fn func(*domain.Subject) error) error {
			return fn(&domain.Subject{ID: subjectID, Email: "jane@acme.com"})
		})

	f.executionRepo.EXPECT().CreateExecution(gomock.Any(), gomock.Any()).Return(nil)
	f.executionRepo.EXPECT().CreateActionLog(gomock.Any(), gomock.Any()).Return(nil)
	f.executionRepo.EXPECT().UpdateActionLog(gomock.Any(), gomock.Any()).Return(nil)
	f.executionRepo.EXPECT().IncrementActionsExecuted(gomock.Any(), gomock.Any()).Return(nil)
	f.executionRepo.EXPECT().MarkExecutionCompleted(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	event := &domain.EventContext{
		MessageID:   "msg-1",
		SubjectID:   &subjectID,
		FromAddress: "jane@acme.com",
		OccurredAt:  time.Now().UTC(),
	}
	require.NoError(t, f.service.OnMessageReceived(context.Background(), event))
}

func TestEventService_OnMessageReceived_WorkflowsRunIndependently(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newEventServiceFixture(t, ctrl)

	first := &domain.Workflow{ID: "w1", OwnerID: "o1", Name: "first", Active: true}
	second := &domain.Workflow{ID: "w2", OwnerID: "o1", Name: "second", Active: true}

	f.expectNewMessageRecorded("msg-1")
	f.workflowRepo.EXPECT().
		ListActiveByTriggerType(gomock.Any(), domain.TriggerMessageReceived).
		Return([]*domain.Workflow{first, second}, nil)

	// The first workflow cannot even begin its execution record; the second
	// still runs to completion
	gomock.InOrder(
		f.executionRepo.EXPECT().CreateExecution(gomock.Any(), gomock.Any()).Return(errors.New("connection refused")),
		f.executionRepo.EXPECT().CreateExecution(gomock.Any(), gomock.Any()).Return(nil),
	)
	f.executionRepo.EXPECT().MarkExecutionCompleted(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	event := &domain.EventContext{MessageID: "msg-1", OccurredAt: time.Now().UTC()}
	require.NoError(t, f.service.OnMessageReceived(context.Background(), event))
}

func TestEventService_OnMessageSent_SchedulesAndStampsContact(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newEventServiceFixture(t, ctrl)

	subjectID := "subj-1"
	sentAt := time.Now().UTC()
	event := &domain.EventContext{
		MessageID:  "msg-1",
		SubjectID:  &subjectID,
		ToAddress:  "jane@acme.com",
		OccurredAt: sentAt,
	}

	f.expectNewMessageRecorded("msg-1")

	// No-reply scheduling
	f.workflowRepo.EXPECT().
		ListActiveByTriggerType(gomock.Any(), domain.TriggerNoReplyAfter).
		Return([]*domain.Workflow{noReplyWorkflow("w-nudge", 3)}, nil)
	f.followUpRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, followUp *domain.ScheduledFollowUp) error {
			assert.Equal(t, "msg-1", followUp.MessageID)
			assert.Equal(t, domain.FollowUpStatusPending, followUp.Status)
			return nil
		})

	f.subjectRepo.EXPECT().SetLastContactedAt(gomock.Any(), subjectID, sentAt).Return(nil)

	// message_sent matching
	f.workflowRepo.EXPECT().
		ListActiveByTriggerType(gomock.Any(), domain.TriggerMessageSent).
		Return(nil, nil)

	require.NoError(t, f.service.OnMessageSent(context.Background(), event))
}

func TestEventService_OnMessageOpened_BumpsCounterAndEnriches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newEventServiceFixture(t, ctrl)

	subjectID := "subj-1"
	f.messageRepo.EXPECT().IncrementOpenCount(gomock.Any(), "msg-1").Return(nil)
	f.messageRepo.EXPECT().
		GetByID(gomock.Any(), "msg-1").
		Return(&domain.Message{
			ID:        "msg-1",
			SubjectID: &subjectID,
			ToAddress: "jane@acme.com",
			Subject:   "Proposal",
			OpenCount: 2,
		}, nil)
	f.workflowRepo.EXPECT().
		ListActiveByTriggerType(gomock.Any(), domain.TriggerMessageOpened).
		Return(nil, nil)

	event := &domain.EventContext{MessageID: "msg-1", OccurredAt: time.Now().UTC()}
	require.NoError(t, f.service.OnMessageOpened(context.Background(), event))

	assert.Equal(t, &subjectID, event.SubjectID)
	assert.Equal(t, "Proposal", event.MessageSubject)
	assert.Equal(t, 2, event.OpenCount)
}

func TestEventService_OnMessageReplied_CancelsBeforeMatching(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newEventServiceFixture(t, ctrl)

	// Cancellation must happen before the reply workflows are looked up
	gomock.InOrder(
		f.followUpRepo.EXPECT().
			CancelPendingByMessage(gomock.Any(), "msg-1", "reply received").
			Return(int64(1), nil),
		f.messageRepo.EXPECT().IncrementReplyCount(gomock.Any(), "msg-1").Return(nil),
		f.workflowRepo.EXPECT().
			ListActiveByTriggerType(gomock.Any(), domain.TriggerMessageReplied).
			Return(nil, nil),
	)
	f.messageRepo.EXPECT().
		GetByID(gomock.Any(), "msg-1").
		Return(&domain.Message{ID: "msg-1", ToAddress: "jane@acme.com", ReplyCount: 1}, nil)

	require.NoError(t, f.service.OnMessageReplied(context.Background(), "msg-1", "msg-2"))
}

func TestEventService_OnMessageReplied_CancellationFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newEventServiceFixture(t, ctrl)

	f.followUpRepo.EXPECT().
		CancelPendingByMessage(gomock.Any(), "msg-1", "reply received").
		Return(int64(0), errors.New("connection refused"))

	err := f.service.OnMessageReplied(context.Background(), "msg-1", "msg-2")
	require.Error(t, err)
}

func TestEventService_OnMessageReceived_DuplicateMessageTolerated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newEventServiceFixture(t, ctrl)

	// Message already recorded; no second insert
	f.messageRepo.EXPECT().
		GetByID(gomock.Any(), "msg-1").
		Return(&domain.Message{ID: "msg-1"}, nil)
	f.workflowRepo.EXPECT().
		ListActiveByTriggerType(gomock.Any(), domain.TriggerMessageReceived).
		Return(nil, nil)

	event := &domain.EventContext{MessageID: "msg-1", OccurredAt: time.Now().UTC()}
	require.NoError(t, f.service.OnMessageReceived(context.Background(), event))
}

func TestEventService_OnMessageReceived_MatcherFailureSurfaces(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newEventServiceFixture(t, ctrl)

	f.expectNewMessageRecorded("msg-1")
	f.workflowRepo.EXPECT().
		ListActiveByTriggerType(gomock.Any(), domain.TriggerMessageReceived).
		Return(nil, errors.New("connection refused"))

	event := &domain.EventContext{MessageID: "msg-1", OccurredAt: time.Now().UTC()}
	err := f.service.OnMessageReceived(context.Background(), event)
	require.Error(t, err)

	var lookupErr *domain.TriggerLookupError
	assert.ErrorAs(t, err, &lookupErr)
}
