package http

import (
	"net/http"

	"github.com/Leadpulse/leadpulse/internal/domain"
	"github.com/Leadpulse/leadpulse/pkg/logger"
)

// ExecutionHandler exposes the execution ledger for auditing
type ExecutionHandler struct {
	executionRepo domain.ExecutionRepository
	logger        logger.Logger
}

// NewExecutionHandler creates a new ExecutionHandler
func NewExecutionHandler(executionRepo domain.ExecutionRepository, logger logger.Logger) *ExecutionHandler {
	return &ExecutionHandler{
		executionRepo: executionRepo,
		logger:        logger,
	}
}

// RegisterRoutes registers the execution routes on the given mux
func (h *ExecutionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/api/executions.get", http.HandlerFunc(h.handleGet))
}

func (h *ExecutionHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	executionID := r.URL.Query().Get("id")
	if executionID == "" {
		WriteJSONError(w, "id is required", http.StatusBadRequest)
		return
	}

	execution, err := h.executionRepo.GetExecution(r.Context(), executionID)
	if err != nil {
		if domain.IsNotFound(err) {
			WriteJSONError(w, "Execution not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to get execution")
		WriteJSONError(w, "Failed to get execution", http.StatusInternalServerError)
		return
	}

	actionLogs, err := h.executionRepo.ListActionLogs(r.Context(), executionID)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list action logs")
		WriteJSONError(w, "Failed to get execution", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"execution":   execution,
		"action_logs": actionLogs,
	})
}
