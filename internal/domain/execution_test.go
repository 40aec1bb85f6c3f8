package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExecution_Validate(t *testing.T) {
	execution := &Execution{
		ID:              "exec-1",
		WorkflowID:      "workflow-1",
		TriggerType:     TriggerMessageReceived,
		Status:          ExecutionStatusRunning,
		ActionsExecuted: 0,
		ActionsTotal:    3,
		StartedAt:       time.Now().UTC(),
	}
	assert.NoError(t, execution.Validate())

	execution.ActionsExecuted = 4
	assert.Error(t, execution.Validate(), "counter cannot pass actions_total")
	execution.ActionsExecuted = 3
	assert.NoError(t, execution.Validate())

	execution.TriggerType = TriggerType("unknown")
	assert.Error(t, execution.Validate())
	execution.TriggerType = TriggerMessageReceived

	execution.Status = ExecutionStatus("paused")
	assert.Error(t, execution.Validate())
}

func TestActionLog_Validate(t *testing.T) {
	log := &ActionLog{
		ID:          "log-1",
		ExecutionID: "exec-1",
		ActionID:    "action-1",
		ActionType:  ActionAddTag,
		Status:      ActionLogStatusRunning,
		ExecutedAt:  time.Now().UTC(),
	}
	assert.NoError(t, log.Validate())

	// an unrecognized type still validates, failed attempts are logged too
	log.ActionType = ActionType("launch_rocket")
	assert.NoError(t, log.Validate())

	log.ActionType = ""
	assert.Error(t, log.Validate())
	log.ActionType = ActionAddTag

	log.Status = ActionLogStatus("queued")
	assert.Error(t, log.Validate())
}
