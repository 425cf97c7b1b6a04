package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// OperationEvaluatedEvent is emitted after every /bfhl evaluation, whether it
// succeeded or not.
type OperationEvaluatedEvent struct {
	RequestID   string    `json:"request_id,omitempty"`
	Operation   string    `json:"operation,omitempty"`
	Success     bool      `json:"success"`
	ErrorKind   string    `json:"error_kind,omitempty"`
	DurationMs  int64     `json:"duration_ms"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// OperationEvaluatedV1 is the typed event definition for evaluations.
// Subject: events.compute.v1.operation-evaluated
var OperationEvaluatedV1 = helper.EventDefinition[OperationEvaluatedEvent](
	"compute", "OperationEvaluated", "v1",
)
