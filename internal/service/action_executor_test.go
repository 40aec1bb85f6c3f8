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

type executorFixture struct {
	executionRepo *mocks.MockExecutionRepository
	subjectRepo   *mocks.MockSubjectRepository
	templateRepo  *mocks.MockTemplateRepository
	taskRepo      *mocks.MockTaskRepository
	mailer        *pkgmocks.MockMailer
	executor      *ActionExecutor
}

func newExecutorFixture(t *testing.T, ctrl *gomock.Controller) *executorFixture {
	f := &executorFixture{
		executionRepo: mocks.NewMockExecutionRepository(ctrl),
		subjectRepo:   mocks.NewMockSubjectRepository(ctrl),
		templateRepo:  mocks.NewMockTemplateRepository(ctrl),
		taskRepo:      mocks.NewMockTaskRepository(ctrl),
		mailer:        pkgmocks.NewMockMailer(ctrl),
	}
	testLogger := logger.NewTestLogger(t)
	ledger := NewExecutionLedger(f.executionRepo)
	handlers := NewActionHandlers(f.subjectRepo, f.templateRepo, f.taskRepo, f.mailer, "ops@leadpulse.io", testLogger)
	f.executor = NewActionExecutor(ledger, handlers, 5*time.Second, testLogger)
	return f
}

// expectActionAttempt wires the ledger writes one attempted action produces
func (f *executorFixture) expectActionAttempt(executionID string) {
	f.executionRepo.EXPECT().CreateActionLog(gomock.Any(), gomock.Any()).Return(nil)
	f.executionRepo.EXPECT().UpdateActionLog(gomock.Any(), gomock.Any()).Return(nil)
	f.executionRepo.EXPECT().IncrementActionsExecuted(gomock.Any(), executionID).Return(nil)
}

func TestActionExecutor_Run_AllActionsSucceed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newExecutorFixture(t, ctrl)

	subjectID := "subj-1"
	workflow := &domain.Workflow{
		ID: "w1", OwnerID: "o1", Name: "tag and engage", Active: true,
		Actions: []*domain.Action{
			{ID: "a1", WorkflowID: "w1", Type: domain.ActionAddTag, Config: map[string]interface{}{"tag": "hot-lead"}, ExecutionOrder: 1},
			{ID: "a2", WorkflowID: "w1", Type: domain.ActionMarkEngaged, ExecutionOrder: 2},
		},
	}
	event := &domain.EventContext{MessageID: "msg-1", SubjectID: &subjectID}

	f.subjectRepo.EXPECT().
		UpdateWithLock(gomock.Any(), subjectID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, fn func(*domain.Subject) error) error {
			return fn(&domain.Subject{ID: subjectID, Email: "jane@acme.com", LeadStage: domain.LeadStageNew})
		}).
		Times(2)

	f.expectActionAttempt("exec-1")
	f.expectActionAttempt("exec-1")
	f.executionRepo.EXPECT().MarkExecutionCompleted(gomock.Any(), "exec-1", gomock.Any()).Return(nil)

	require.NoError(t, f.executor.Run(context.Background(), workflow, event, "exec-1"))
}

func TestActionExecutor_Run_FailedActionContinues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newExecutorFixture(t, ctrl)

	subjectID := "subj-1"
	workflow := &domain.Workflow{
		ID: "w1", OwnerID: "o1", Name: "send then tag", Active: true,
		Actions: []*domain.Action{
			{ID: "a1", WorkflowID: "w1", Type: domain.ActionSendMessage, Config: map[string]interface{}{"template_id": "tpl-1"}, ExecutionOrder: 1},
			{ID: "a2", WorkflowID: "w1", Type: domain.ActionAddTag, Config: map[string]interface{}{"tag": "contacted"}, ExecutionOrder: 2},
		},
	}
	event := &domain.EventContext{MessageID: "msg-1", SubjectID: &subjectID}

	// First action fails at the template lookup
	f.templateRepo.EXPECT().
		GetByID(gomock.Any(), "tpl-1").
		Return(nil, errors.New("connection refused"))

	// Second action still runs
	f.subjectRepo.EXPECT().
		UpdateWithLock(gomock.Any(), subjectID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, fn func(*domain.Subject) error) error {
			return fn(&domain.Subject{ID: subjectID, Email: "jane@acme.com"})
		})

	var statuses []domain.ActionLogStatus
	f.executionRepo.EXPECT().CreateActionLog(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.executionRepo.EXPECT().
		UpdateActionLog(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, log *domain.ActionLog) error {
			statuses = append(statuses, log.Status)
			return nil
		}).
		Times(2)
	// Both attempts count, including the failed one
	f.executionRepo.EXPECT().IncrementActionsExecuted(gomock.Any(), "exec-1").Return(nil).Times(2)
	f.executionRepo.EXPECT().MarkExecutionCompleted(gomock.Any(), "exec-1", gomock.Any()).Return(nil)

	require.NoError(t, f.executor.Run(context.Background(), workflow, event, "exec-1"))
	assert.Equal(t, []domain.ActionLogStatus{domain.ActionLogStatusFailed, domain.ActionLogStatusCompleted}, statuses)
}

func TestActionExecutor_Run_UnknownActionTypeIsActionLevelFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newExecutorFixture(t, ctrl)

	subjectID := "subj-1"
	workflow := &domain.Workflow{
		ID: "w1", OwnerID: "o1", Name: "mystery", Active: true,
		Actions: []*domain.Action{
			{ID: "a1", WorkflowID: "w1", Type: domain.ActionType("launch_rocket"), ExecutionOrder: 1},
			{ID: "a2", WorkflowID: "w1", Type: domain.ActionMarkEngaged, ExecutionOrder: 2},
		},
	}
	event := &domain.EventContext{MessageID: "msg-1", SubjectID: &subjectID}

	f.subjectRepo.EXPECT().
		UpdateWithLock(gomock.Any(), subjectID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, fn func(*domain.Subject) error) error {
			return fn(&domain.Subject{ID: subjectID, Email: "jane@acme.com"})
		})

	f.expectActionAttempt("exec-1")
	f.expectActionAttempt("exec-1")
	f.executionRepo.EXPECT().MarkExecutionCompleted(gomock.Any(), "exec-1", gomock.Any()).Return(nil)

	require.NoError(t, f.executor.Run(context.Background(), workflow, event, "exec-1"))
}

func TestActionExecutor_Run_InvalidConfigIsActionLevelFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newExecutorFixture(t, ctrl)

	workflow := &domain.Workflow{
		ID: "w1", OwnerID: "o1", Name: "bad config", Active: true,
		Actions: []*domain.Action{
			// send_message without a template_id fails typed-config validation
			{ID: "a1", WorkflowID: "w1", Type: domain.ActionSendMessage, Config: map[string]interface{}{}, ExecutionOrder: 1},
		},
	}
	event := &domain.EventContext{MessageID: "msg-1"}

	f.executionRepo.EXPECT().CreateActionLog(gomock.Any(), gomock.Any()).Return(nil)
	f.executionRepo.EXPECT().
		UpdateActionLog(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, log *domain.ActionLog) error {
			assert.Equal(t, domain.ActionLogStatusFailed, log.Status)
			require.NotNil(t, log.Error)
			return nil
		})
	f.executionRepo.EXPECT().IncrementActionsExecuted(gomock.Any(), "exec-1").Return(nil)
	f.executionRepo.EXPECT().MarkExecutionCompleted(gomock.Any(), "exec-1", gomock.Any()).Return(nil)

	require.NoError(t, f.executor.Run(context.Background(), workflow, event, "exec-1"))
}

func TestActionExecutor_Run_LedgerFailureAbortsExecution(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newExecutorFixture(t, ctrl)

	subjectID := "subj-1"
	workflow := &domain.Workflow{
		ID: "w1", OwnerID: "o1", Name: "two tags", Active: true,
		Actions: []*domain.Action{
			{ID: "a1", WorkflowID: "w1", Type: domain.ActionAddTag, Config: map[string]interface{}{"tag": "one"}, ExecutionOrder: 1},
			{ID: "a2", WorkflowID: "w1", Type: domain.ActionAddTag, Config: map[string]interface{}{"tag": "two"}, ExecutionOrder: 2},
		},
	}
	event := &domain.EventContext{MessageID: "msg-1", SubjectID: &subjectID}

	// The very first ledger write fails; no action side effect runs and the
	// execution is marked failed
	f.executionRepo.EXPECT().
		CreateActionLog(gomock.Any(), gomock.Any()).
		Return(errors.New("connection refused"))
	f.executionRepo.EXPECT().
		MarkExecutionFailed(gomock.Any(), "exec-1", gomock.Any(), gomock.Any()).
		Return(nil)

	err := f.executor.Run(context.Background(), workflow, event, "exec-1")
	require.Error(t, err)
}

func TestActionExecutor_Run_NoActions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newExecutorFixture(t, ctrl)

	workflow := &domain.Workflow{ID: "w1", OwnerID: "o1", Name: "empty", Active: true}
	event := &domain.EventContext{MessageID: "msg-1"}

	f.executionRepo.EXPECT().MarkExecutionCompleted(gomock.Any(), "exec-1", gomock.Any()).Return(nil)

	require.NoError(t, f.executor.Run(context.Background(), workflow, event, "exec-1"))
}
