// Package httputil centralizes JSON response writing so handlers stay thin
// and error envelopes remain consistent across the service.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "supplierintake/pkg/errors"
)

// ErrorResponse is the JSON envelope for every non-2xx response.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// WriteJSON serializes v with the given status. Encoding failures are
// swallowed; by the time they can occur the header has already been written.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// WriteError translates a domain error into the response envelope. Internal
// errors are reported generically so no store or credential detail leaks.
func WriteError(w http.ResponseWriter, err error) {
	var de *dErrors.DomainError
	if !errors.As(err, &de) {
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	status := dErrors.ToHTTPStatus(de.Code)
	if de.Code == dErrors.CodeInternal {
		WriteJSON(w, status, ErrorResponse{Error: "Internal server error"})
		return
	}

	WriteJSON(w, status, ErrorResponse{Error: de.Description, Details: de.Details})
}
