// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every JSON handler in this application goes through WriteJSON, so error
// responses always have the same envelope and API consumers always know
// what a failure looks like.
package response

import (
	"encoding/json"
	"net/http"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases.
//
// Success responses may return any JSON shape (an employee, a list, stats…).
// Error responses always look like:
//
//	{ "status": "error", "error": "invalid id: must be an integer" }
//
// Validation failures add a field-keyed map so the form can place each
// message next to its input:
//
//	{ "status": "error", "error": "validation failed",
//	  "fields": { "dob": "Employee must be at least 18 years old" } }
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string            `json:"status"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Status string constants: use these instead of raw string literals so
// a typo is caught by the compiler.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into our standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError wraps a field-keyed error map (as produced by the
// validation engine) into our standard Response shape.
func ValidationError(fields map[string]string) Response {
	return Response{
		Status: StatusError,
		Error:  "validation failed",
		Fields: fields,
	}
}
