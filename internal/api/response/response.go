// Package response holds the JSON reply helpers shared by every handler.
package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the error envelope returned by the API. Details carries
// machine-oriented context and is omitted when empty.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// RespondJSON writes data as a JSON body with the given status. A nil data
// writes the status line only, which is what 204 responses want. Encoding
// failures are logged; at that point the status line is already out, so the
// client sees a truncated body rather than a second status.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode JSON response: %v", err)
	}
}

// RespondError writes an ErrorResponse with the given status. Message is the
// stable, user-facing description; details is free-form diagnostic context
// (typically err.Error()) and may be nil.
func RespondError(w http.ResponseWriter, status int, message string, details any) {
	RespondJSON(w, status, ErrorResponse{Error: message, Details: details})
}
