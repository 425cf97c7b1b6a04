package bfhl

import "errors"

// Failure messages returned to API clients.
const (
	MsgExactlyOneKey   = "Request must contain exactly one valid key"
	MsgInvalidKey      = "Invalid key provided"
	MsgFibonacciRange  = "Input must be an integer between 0 and 50"
	MsgPrimeNotArray   = "Input must be an array"
	MsgArrayEmpty      = "Array cannot be empty"
	MsgArrayNumbers    = "Array must contain numbers only"
	MsgAIQueryString   = "AI query must be a string"
	MsgAIServiceFailed = "AI Service temporary failure"
	MsgRouteNotFound   = "Route not found"
)

// ErrInvalidKey is returned when the single request key names no known operation.
var ErrInvalidKey = errors.New(MsgInvalidKey)

// ValidationError reports malformed or out-of-range input. Its message is
// shown to the client verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// ServiceError reports a failed call to an external collaborator. Only
// Message reaches the client; Cause is kept for logging.
type ServiceError struct {
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// NewAIServiceError wraps an AI client failure.
func NewAIServiceError(cause error) *ServiceError {
	return &ServiceError{Message: MsgAIServiceFailed, Cause: cause}
}

// ClientMessage returns the text to put in the envelope's message field for
// err, and whether err is one of the known client-facing failures.
func ClientMessage(err error) (string, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message, true
	}
	var serr *ServiceError
	if errors.As(err, &serr) {
		return serr.Message, true
	}
	if errors.Is(err, ErrInvalidKey) {
		return MsgInvalidKey, true
	}
	return "", false
}
