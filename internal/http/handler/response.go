package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the error body shape for all API endpoints. Details is
// only populated for JSON-parse failures.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message})
}

func WriteErrorDetails(w http.ResponseWriter, status int, message, details string) {
	WriteJSON(w, status, ErrorResponse{Error: message, Details: details})
}
