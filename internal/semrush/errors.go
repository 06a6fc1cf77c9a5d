package semrush

import "fmt"

// APIError is the single error shape surfaced by the request client.
// Status carries the upstream HTTP status when one was received, or 500
// for transport-level and unexpected failures. Payload holds the raw
// upstream error body, when one existed, for diagnostics.
type APIError struct {
	Message string
	Status  int
	Payload any
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e == nil {
		return "semrush: unknown error"
	}
	return fmt.Sprintf("semrush: %s (status %d)", e.Message, e.Status)
}

// newTransportError wraps a network-level failure (DNS, connection,
// timeout) with the fixed sentinel status.
func newTransportError(err error) *APIError {
	return &APIError{
		Message: err.Error(),
		Status:  500,
	}
}

// newUnknownError wraps any other failure during request construction or
// execution.
func newUnknownError(message string) *APIError {
	return &APIError{
		Message: message,
		Status:  500,
	}
}
