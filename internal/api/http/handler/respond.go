package handler

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// writeJSON writes a JSON response with status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError sends an error envelope.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: true, Message: msg})
}
