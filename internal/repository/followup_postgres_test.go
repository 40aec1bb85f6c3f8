package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leadpulse/leadpulse/internal/domain"
)

func setupFollowUpMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *FollowUpRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewFollowUpRepository(db).(*FollowUpRepository)
	return db, mock, repo
}

// Helper to create a test scheduled follow-up with default values
func createTestFollowUp(id, messageID string) *domain.ScheduledFollowUp {
	now := time.Now().UTC()
	workflowID := "workflow-123"
	subjectID := "subject-123"
	return &domain.ScheduledFollowUp{
		ID:                id,
		MessageID:         messageID,
		WorkflowID:        &workflowID,
		SubjectID:         &subjectID,
		ScheduledFor:      now.Add(72 * time.Hour),
		DaysAfterOriginal: 3,
		Status:            domain.FollowUpStatusPending,
		CreatedAt:         now,
	}
}

func followUpRows(followUps ...*domain.ScheduledFollowUp) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "message_id", "workflow_id", "subject_id", "scheduled_for",
		"days_after_original", "status", "executed_at", "result", "created_at",
	})
	for _, f := range followUps {
		var workflowID, subjectID interface{}
		if f.WorkflowID != nil {
			workflowID = *f.WorkflowID
		}
		if f.SubjectID != nil {
			subjectID = *f.SubjectID
		}
		var executedAt interface{}
		if f.ExecutedAt != nil {
			executedAt = *f.ExecutedAt
		}
		rows.AddRow(
			f.ID, f.MessageID, workflowID, subjectID, f.ScheduledFor,
			f.DaysAfterOriginal, string(f.Status), executedAt, []byte(`{}`), f.CreatedAt,
		)
	}
	return rows
}

func TestFollowUpRepository_Create(t *testing.T) {
	db, mock, repo := setupFollowUpMock(t)
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	followUp := createTestFollowUp("followup-123", "msg-123")

	mock.ExpectExec("INSERT INTO scheduled_followups").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(ctx, followUp)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowUpRepository_Create_Error(t *testing.T) {
	db, mock, repo := setupFollowUpMock(t)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("INSERT INTO scheduled_followups").
		WillReturnError(fmt.Errorf("connection refused"))

	err := repo.Create(context.Background(), createTestFollowUp("followup-123", "msg-123"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create scheduled follow-up")
}

func TestFollowUpRepository_GetByID(t *testing.T) {
	db, mock, repo := setupFollowUpMock(t)
	defer func() { _ = db.Close() }()

	followUp := createTestFollowUp("followup-123", "msg-123")

	mock.ExpectQuery(`SELECT .* FROM scheduled_followups WHERE id = \$1`).
		WithArgs("followup-123").
		WillReturnRows(followUpRows(followUp))

	got, err := repo.GetByID(context.Background(), "followup-123")
	require.NoError(t, err)
	assert.Equal(t, "followup-123", got.ID)
	assert.Equal(t, "msg-123", got.MessageID)
	require.NotNil(t, got.WorkflowID)
	assert.Equal(t, "workflow-123", *got.WorkflowID)
	assert.Equal(t, domain.FollowUpStatusPending, got.Status)
	assert.Nil(t, got.ExecutedAt)
}

func TestFollowUpRepository_GetByID_NotFound(t *testing.T) {
	db, mock, repo := setupFollowUpMock(t)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`SELECT .* FROM scheduled_followups WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(followUpRows())

	got, err := repo.GetByID(context.Background(), "missing")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrFollowUpNotFound)
}

func TestFollowUpRepository_GetByID_NullForeignKeys(t *testing.T) {
	db, mock, repo := setupFollowUpMock(t)
	defer func() { _ = db.Close() }()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "message_id", "workflow_id", "subject_id", "scheduled_for",
		"days_after_original", "status", "executed_at", "result", "created_at",
	}).AddRow("followup-123", "msg-123", nil, nil, now, 3, "pending", nil, nil, now)

	mock.ExpectQuery(`SELECT .* FROM scheduled_followups`).
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "followup-123")
	require.NoError(t, err)
	assert.Nil(t, got.WorkflowID)
	assert.Nil(t, got.SubjectID)
	assert.Nil(t, got.Result)
}

func TestFollowUpRepository_ListDue(t *testing.T) {
	db, mock, repo := setupFollowUpMock(t)
	defer func() { _ = db.Close() }()

	first := createTestFollowUp("followup-1", "msg-1")
	second := createTestFollowUp("followup-2", "msg-2")
	before := time.Now().UTC()

	mock.ExpectQuery(`SELECT .* FROM scheduled_followups WHERE status = \$1 AND scheduled_for <= \$2 ORDER BY scheduled_for LIMIT 100`).
		WithArgs(string(domain.FollowUpStatusPending), before).
		WillReturnRows(followUpRows(first, second))

	due, err := repo.ListDue(context.Background(), before, 100)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "followup-1", due[0].ID)
	assert.Equal(t, "followup-2", due[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowUpRepository_ListDue_NoLimit(t *testing.T) {
	db, mock, repo := setupFollowUpMock(t)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`SELECT .* FROM scheduled_followups WHERE status = \$1 AND scheduled_for <= \$2 ORDER BY scheduled_for$`).
		WillReturnRows(followUpRows())

	due, err := repo.ListDue(context.Background(), time.Now().UTC(), 0)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestFollowUpRepository_ListDue_QueryError(t *testing.T) {
	db, mock, repo := setupFollowUpMock(t)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`SELECT .* FROM scheduled_followups`).
		WillReturnError(fmt.Errorf("connection refused"))

	due, err := repo.ListDue(context.Background(), time.Now().UTC(), 10)
	assert.Nil(t, due)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list due follow-ups")
}

func TestFollowUpRepository_MarkExecuted(t *testing.T) {
	db, mock, repo := setupFollowUpMock(t)
	defer func() { _ = db.Close() }()

	executedAt := time.Now().UTC()
	result := map[string]interface{}{"matched": true, "execution_id": "exec-123"}
	resultJSON, err := json.Marshal(result)
	require.NoError(t, err)

	mock.ExpectExec(`UPDATE scheduled_followups\s+SET status = \$1, result = \$2, executed_at = \$3\s+WHERE id = \$4 AND status = \$5`).
		WithArgs(string(domain.FollowUpStatusExecuted), resultJSON, &executedAt, "followup-123", string(domain.FollowUpStatusPending)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	transitioned, err := repo.MarkExecuted(context.Background(), "followup-123", result, executedAt)
	require.NoError(t, err)
	assert.True(t, transitioned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A concurrent resolution already moved the row out of pending, so the guarded
// update touches zero rows and the caller learns it lost the race.
func TestFollowUpRepository_MarkExecuted_AlreadyResolved(t *testing.T) {
	db, mock, repo := setupFollowUpMock(t)
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`UPDATE scheduled_followups`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	transitioned, err := repo.MarkExecuted(context.Background(), "followup-123", nil, time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, transitioned)
}

func TestFollowUpRepository_MarkCancelled(t *testing.T) {
	db, mock, repo := setupFollowUpMock(t)
	defer func() { _ = db.Close() }()

	resultJSON, err := json.Marshal(map[string]interface{}{"cancel_reason": "reply received"})
	require.NoError(t, err)

	mock.ExpectExec(`UPDATE scheduled_followups`).
		WithArgs(string(domain.FollowUpStatusCancelled), resultJSON, nil, "followup-123", string(domain.FollowUpStatusPending)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	transitioned, err := repo.MarkCancelled(context.Background(), "followup-123", "reply received")
	require.NoError(t, err)
	assert.True(t, transitioned)
}

func TestFollowUpRepository_MarkFailed(t *testing.T) {
	db, mock, repo := setupFollowUpMock(t)
	defer func() { _ = db.Close() }()

	executedAt := time.Now().UTC()
	resultJSON, err := json.Marshal(map[string]interface{}{"error": "smtp timeout"})
	require.NoError(t, err)

	mock.ExpectExec(`UPDATE scheduled_followups`).
		WithArgs(string(domain.FollowUpStatusFailed), resultJSON, &executedAt, "followup-123", string(domain.FollowUpStatusPending)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	transitioned, err := repo.MarkFailed(context.Background(), "followup-123", "smtp timeout", executedAt)
	require.NoError(t, err)
	assert.True(t, transitioned)
}

func TestFollowUpRepository_Transition_ExecError(t *testing.T) {
	db, mock, repo := setupFollowUpMock(t)
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`UPDATE scheduled_followups`).
		WillReturnError(fmt.Errorf("connection refused"))

	transitioned, err := repo.MarkCancelled(context.Background(), "followup-123", "workflow removed")
	assert.False(t, transitioned)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to transition follow-up")
}

func TestFollowUpRepository_CancelPendingByMessage(t *testing.T) {
	db, mock, repo := setupFollowUpMock(t)
	defer func() { _ = db.Close() }()

	resultJSON, err := json.Marshal(map[string]interface{}{"cancel_reason": "reply received"})
	require.NoError(t, err)

	mock.ExpectExec(`UPDATE scheduled_followups\s+SET status = \$1, result = \$2\s+WHERE message_id = \$3 AND status = \$4`).
		WithArgs(string(domain.FollowUpStatusCancelled), resultJSON, "msg-123", string(domain.FollowUpStatusPending)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	cancelled, err := repo.CancelPendingByMessage(context.Background(), "msg-123", "reply received")
	require.NoError(t, err)
	assert.Equal(t, int64(2), cancelled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowUpRepository_CancelPendingByMessage_NothingPending(t *testing.T) {
	db, mock, repo := setupFollowUpMock(t)
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`UPDATE scheduled_followups`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	cancelled, err := repo.CancelPendingByMessage(context.Background(), "msg-123", "reply received")
	require.NoError(t, err)
	assert.Equal(t, int64(0), cancelled)
}
