package output

import (
	"encoding/json"
	"io"
)

// ErrorCode represents a machine-readable error classification.
type ErrorCode string

// Error code constants.
const (
	ErrGeneral         ErrorCode = "GENERAL_ERROR"
	ErrUnavailable     ErrorCode = "SERVER_UNAVAILABLE"
	ErrFetch           ErrorCode = "FETCH_FAILED"
	ErrNotFound        ErrorCode = "NOT_FOUND"
	ErrNothingToExport ErrorCode = "NOTHING_TO_EXPORT"
	ErrExport          ErrorCode = "EXPORT_FAILED"
	ErrValidation      ErrorCode = "VALIDATION_ERROR"
)

// Exit code constants.
const (
	ExitSuccess    = 0
	ExitFailure    = 1
	ExitValidation = 2
)

// ExitCodeForError maps an ErrorCode to its corresponding exit code. Every
// runtime failure exits 1; only configuration and flag problems exit 2.
func ExitCodeForError(code ErrorCode) int {
	switch code {
	case ErrValidation:
		return ExitValidation
	default:
		return ExitFailure
	}
}

// successEnvelope is the JSON structure for successful responses.
type successEnvelope struct {
	OK      bool   `json:"ok"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// errorEnvelope is the JSON structure for error responses.
type errorEnvelope struct {
	OK    bool      `json:"ok"`
	Error string    `json:"error"`
	Code  ErrorCode `json:"code"`
}

// writeJSONSuccess writes a success envelope to w.
func writeJSONSuccess(w io.Writer, data any, message string) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(successEnvelope{
		OK:      true,
		Data:    data,
		Message: message,
	})
}

// writeJSONError writes an error envelope to w.
func writeJSONError(w io.Writer, err error, code ErrorCode) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(errorEnvelope{
		OK:    false,
		Error: err.Error(),
		Code:  code,
	})
}
