package http

import (
	"encoding/json"
	"net/http"
)

// errorPayload is the body shape every handler failure shares.
type errorPayload struct {
	Error string `json:"error"`
}

// writeJSON serializes v and writes it with the given HTTP status.
// Encoding failures are dropped since the status line is already out.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteJSONError reports a request failure as {"error": message}.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, errorPayload{Error: message})
}
