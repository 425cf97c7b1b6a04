package compute

import "encoding/json"

// ServiceEvaluate is the request-reply service name of the dispatcher.
// The framework exposes it as services.compute.evaluate.
const ServiceEvaluate = "evaluate"

// Error kinds carried in EvaluateResponse.ErrorKind.
const (
	ErrorKindValidation = "validation"
	ErrorKindService    = "service"
	ErrorKindInvalidKey = "invalid_key"
	ErrorKindInternal   = "internal"
)

// EvaluateRequest is the request for a /bfhl evaluation. Body is the raw
// HTTP body, which need not be valid JSON.
type EvaluateRequest struct {
	RequestID string `json:"request_id,omitempty"`
	Body      []byte `json:"body"`
}

// EvaluateResponse is the response of a /bfhl evaluation. Failures travel in
// ErrorKind and Message rather than as transport errors.
type EvaluateResponse struct {
	Operation string          `json:"operation,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	ErrorKind string          `json:"error_kind,omitempty"`
	Message   string          `json:"message,omitempty"`
}

// Result is the outcome of an evaluation. Operation is set once the request
// key has been recognised; Data only on success.
type Result struct {
	Operation string
	Data      json.RawMessage
}
