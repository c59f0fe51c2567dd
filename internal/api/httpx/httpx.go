package httpx

import (
	"encoding/json"
	"net/http"
)

type apiError struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// WriteJSON writes v as a JSON response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a JSON error body with the given status.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, apiError{Error: msg})
}

// WriteFieldErrors writes a validation failure with per-field detail.
func WriteFieldErrors(w http.ResponseWriter, status int, details interface{}) {
	WriteJSON(w, status, apiError{Error: "validation failed", Details: details})
}
