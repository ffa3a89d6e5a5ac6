package cell

import "fmt"

// Code classifies cell errors for uniform downstream handling.
type Code string

const (
	// CodeValidation - input or output failed schema validation. The
	// caller must supply corrected data; the kernel never retries.
	CodeValidation Code = "VALIDATION_ERROR"
	// CodeExecution - the handler returned an unexpected failure.
	CodeExecution Code = "EXECUTION_ERROR"
	// CodeCanceled - the caller's context was canceled or timed out while
	// the handler was running. Distinct from a validation failure.
	CodeCanceled Code = "CANCELED"
	// CodeConfig - one or more required environment keys were unresolved
	// at construction. Fatal: the cell is never created.
	CodeConfig Code = "CONFIG_ERROR"
)

// Error is the structured failure surfaced by cell construction and
// execution. Details carries machine-readable context (for validation
// failures, the full *schema.ValidationErrors); Err preserves the wrapped
// cause for errors.Is / errors.As traversal.
type Error struct {
	Cell    string `json:"cell"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("cell error [%s] in %s: %s", e.Code, e.Cell, e.Message)
	}
	return fmt.Sprintf("cell error in %s: %s", e.Cell, e.Message)
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// NewError creates an Error with the specified details.
func NewError(cellRole, message string, code Code) *Error {
	return &Error{
		Cell:    cellRole,
		Code:    code,
		Message: message,
	}
}
