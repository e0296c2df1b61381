// Package httputil writes JSON responses for the service's machine-facing
// endpoints (health, metrics-adjacent probes).
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "consentflow/pkg/domain-errors"
)

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps err to a status and a JSON error body. Internal errors never
// expose their message.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeInternal
	var description string
	if de, ok := dErrors.As(err); ok {
		code = de.Code
		description = de.Message
	}
	status := dErrors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		description = ""
	}
	WriteJSON(w, status, errorResponse{Error: string(code), ErrorDescription: description})
}
