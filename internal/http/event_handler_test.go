package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leadpulse/leadpulse/internal/domain"
	"github.com/Leadpulse/leadpulse/internal/domain/mocks"
	"github.com/Leadpulse/leadpulse/pkg/logger"
)

func setupEventHandler(t *testing.T) (*mocks.MockEventService, *http.ServeMux) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockService := mocks.NewMockEventService(ctrl)
	handler := NewEventHandler(mockService, logger.NewTestLogger(t))
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return mockService, mux
}

func postJSON(t *testing.T, mux *http.ServeMux, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestEventHandler_MessageReceived(t *testing.T) {
	mockService, mux := setupEventHandler(t)

	mockService.EXPECT().
		OnMessageReceived(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.EventContext) error {
			assert.Equal(t, "msg-1", event.MessageID)
			assert.Equal(t, "jane@acme.com", event.FromAddress)
			assert.Equal(t, "Pricing question", event.MessageSubject)
			assert.False(t, event.OccurredAt.IsZero())
			return nil
		})

	rec := postJSON(t, mux, "/api/events.messageReceived", map[string]interface{}{
		"message_id":      "msg-1",
		"from_address":    "jane@acme.com",
		"message_subject": "Pricing question",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, true, response["success"])
}

func TestEventHandler_MessageSent(t *testing.T) {
	mockService, mux := setupEventHandler(t)

	mockService.EXPECT().OnMessageSent(gomock.Any(), gomock.Any()).Return(nil)

	rec := postJSON(t, mux, "/api/events.messageSent", map[string]interface{}{
		"message_id": "msg-1",
		"subject_id": "subj-1",
		"to_address": "jane@acme.com",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEventHandler_MissingMessageID(t *testing.T) {
	_, mux := setupEventHandler(t)

	rec := postJSON(t, mux, "/api/events.messageOpened", map[string]interface{}{
		"from_address": "jane@acme.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventHandler_InvalidEmailRejected(t *testing.T) {
	_, mux := setupEventHandler(t)

	rec := postJSON(t, mux, "/api/events.messageReceived", map[string]interface{}{
		"message_id":   "msg-1",
		"from_address": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventHandler_InvalidBody(t *testing.T) {
	_, mux := setupEventHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/events.messageReceived", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventHandler_MethodNotAllowed(t *testing.T) {
	_, mux := setupEventHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/events.messageReceived", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestEventHandler_ServiceFailure(t *testing.T) {
	mockService, mux := setupEventHandler(t)

	mockService.EXPECT().
		OnMessageClicked(gomock.Any(), gomock.Any()).
		Return(assert.AnError)

	rec := postJSON(t, mux, "/api/events.messageClicked", map[string]interface{}{
		"message_id": "msg-1",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestEventHandler_MessageReplied(t *testing.T) {
	mockService, mux := setupEventHandler(t)

	mockService.EXPECT().
		OnMessageReplied(gomock.Any(), "msg-1", "msg-2").
		Return(nil)

	rec := postJSON(t, mux, "/api/events.messageReplied", map[string]interface{}{
		"original_message_id": "msg-1",
		"reply_message_id":    "msg-2",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEventHandler_MessageReplied_MissingFields(t *testing.T) {
	_, mux := setupEventHandler(t)

	rec := postJSON(t, mux, "/api/events.messageReplied", map[string]interface{}{
		"original_message_id": "msg-1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventHandler_Ingest_MessageEvent(t *testing.T) {
	mockService, mux := setupEventHandler(t)

	mockService.EXPECT().
		OnMessageReceived(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.EventContext) error {
			assert.Equal(t, "msg-1", event.MessageID)
			require.NotNil(t, event.SubjectID)
			assert.Equal(t, "subj-1", *event.SubjectID)
			return nil
		})

	rec := postJSON(t, mux, "/api/events.ingest", map[string]interface{}{
		"type": "message_received",
		"payload": map[string]interface{}{
			"message_id":   "msg-1",
			"subject_id":   "subj-1",
			"from_address": "jane@acme.com",
		},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEventHandler_Ingest_ReplyEvent(t *testing.T) {
	mockService, mux := setupEventHandler(t)

	mockService.EXPECT().
		OnMessageReplied(gomock.Any(), "msg-1", "msg-2").
		Return(nil)

	rec := postJSON(t, mux, "/api/events.ingest", map[string]interface{}{
		"type": "message_replied",
		"payload": map[string]interface{}{
			"original_message_id": "msg-1",
			"reply_message_id":    "msg-2",
		},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEventHandler_Ingest_UnknownType(t *testing.T) {
	_, mux := setupEventHandler(t)

	rec := postJSON(t, mux, "/api/events.ingest", map[string]interface{}{
		"type":    "message_destroyed",
		"payload": map[string]interface{}{"message_id": "msg-1"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventHandler_Ingest_InvalidJSON(t *testing.T) {
	_, mux := setupEventHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/events.ingest", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
