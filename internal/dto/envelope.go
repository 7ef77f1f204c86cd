package dto

import "github.com/perfdash/dashboard-backend/internal/validation"

// Envelope is the uniform response shape returned by every endpoint.
// Error carries the raw upstream error body when a gateway call failed;
// Errors carries field-level validation messages on 422 responses.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Error   any               `json:"error,omitempty"`
	Errors  validation.Errors `json:"errors,omitempty"`
}

// OK wraps a successful payload.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// OKMessage wraps a successful payload with a message.
func OKMessage(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Fail wraps an upstream failure with its raw error body.
func Fail(message string, upstream any) Envelope {
	return Envelope{Success: false, Message: message, Error: upstream}
}

// FailMessage wraps a failure with no upstream detail.
func FailMessage(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

// Invalid wraps validation errors for a 422 response.
func Invalid(errs validation.Errors) Envelope {
	return Envelope{Success: false, Errors: errs}
}
