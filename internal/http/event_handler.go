package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/Leadpulse/leadpulse/internal/domain"
	"github.com/Leadpulse/leadpulse/pkg/logger"
)

// EventHandler handles HTTP requests for message lifecycle events
type EventHandler struct {
	service domain.EventService
	logger  logger.Logger
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(service domain.EventService, logger logger.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the event routes on the given mux
func (h *EventHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/api/events.messageReceived", http.HandlerFunc(h.handleMessageReceived))
	mux.Handle("/api/events.messageSent", http.HandlerFunc(h.handleMessageSent))
	mux.Handle("/api/events.messageOpened", http.HandlerFunc(h.handleMessageOpened))
	mux.Handle("/api/events.messageClicked", http.HandlerFunc(h.handleMessageClicked))
	mux.Handle("/api/events.messageReplied", http.HandlerFunc(h.handleMessageReplied))

	// Generic entry point for upstream providers that post {type, payload}
	mux.Handle("/api/events.ingest", http.HandlerFunc(h.handleIngest))
}

func (h *EventHandler) handleMessageReceived(w http.ResponseWriter, r *http.Request) {
	h.handleMessageEvent(w, r, h.service.OnMessageReceived)
}

func (h *EventHandler) handleMessageSent(w http.ResponseWriter, r *http.Request) {
	h.handleMessageEvent(w, r, h.service.OnMessageSent)
}

func (h *EventHandler) handleMessageOpened(w http.ResponseWriter, r *http.Request) {
	h.handleMessageEvent(w, r, h.service.OnMessageOpened)
}

func (h *EventHandler) handleMessageClicked(w http.ResponseWriter, r *http.Request) {
	h.handleMessageEvent(w, r, h.service.OnMessageClicked)
}

func (h *EventHandler) handleMessageEvent(w http.ResponseWriter, r *http.Request, handle func(context.Context, *domain.EventContext) error) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.MessageEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handle(r.Context(), req.ToEventContext()); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to process event")
		WriteJSONError(w, "Failed to process event", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func (h *EventHandler) handleMessageReplied(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.ReplyEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.OnMessageReplied(r.Context(), req.OriginalMessageID, req.ReplyMessageID); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to process reply event")
		WriteJSONError(w, "Failed to process event", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// handleIngest accepts a provider-agnostic envelope {"type": ..., "payload":
// {...}} and routes it to the matching lifecycle handler. Payload shapes vary
// by provider, so fields are extracted individually instead of decoded into
// a fixed struct.
func (h *EventHandler) handleIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteJSONError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	if !gjson.ValidBytes(body) {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	eventType := domain.EventType(gjson.GetBytes(body, "type").String())
	if !eventType.IsValid() {
		WriteJSONError(w, "Unknown event type", http.StatusBadRequest)
		return
	}
	payload := gjson.GetBytes(body, "payload")

	if eventType == domain.EventMessageReplied {
		req := domain.ReplyEventRequest{
			OriginalMessageID: payload.Get("original_message_id").String(),
			ReplyMessageID:    payload.Get("reply_message_id").String(),
		}
		if err := req.Validate(); err != nil {
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := h.service.OnMessageReplied(r.Context(), req.OriginalMessageID, req.ReplyMessageID); err != nil {
			h.logger.WithField("error", err.Error()).Error("Failed to process ingested reply event")
			WriteJSONError(w, "Failed to process event", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
		return
	}

	req := domain.MessageEventRequest{
		MessageID:      payload.Get("message_id").String(),
		FromAddress:    payload.Get("from_address").String(),
		ToAddress:      payload.Get("to_address").String(),
		MessageSubject: payload.Get("message_subject").String(),
		OpenCount:      int(payload.Get("open_count").Int()),
		ClickCount:     int(payload.Get("click_count").Int()),
		ReplyCount:     int(payload.Get("reply_count").Int()),
	}
	if subjectID := payload.Get("subject_id"); subjectID.Exists() && subjectID.String() != "" {
		id := subjectID.String()
		req.SubjectID = &id
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var handle func(context.Context, *domain.EventContext) error
	switch eventType {
	case domain.EventMessageReceived:
		handle = h.service.OnMessageReceived
	case domain.EventMessageSent:
		handle = h.service.OnMessageSent
	case domain.EventMessageOpened:
		handle = h.service.OnMessageOpened
	case domain.EventMessageClicked:
		handle = h.service.OnMessageClicked
	}

	if err := handle(r.Context(), req.ToEventContext()); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to process ingested event")
		WriteJSONError(w, "Failed to process event", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
