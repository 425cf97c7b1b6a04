package audit

import (
	"context"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"

	"github.com/ashumehta18/bajaj-test/events"
)

// Module writes an audit log line for every evaluated /bfhl operation.
// It subscribes to compute events using the EventConsumerModule interface.
type Module struct {
	logger types.Logger
}

var _ mono.Module = (*Module)(nil)
var _ mono.EventConsumerModule = (*Module)(nil)

func NewModule(logger types.Logger) *Module {
	return &Module{logger: logger}
}

func (m *Module) Name() string {
	return "audit"
}

func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.OperationEvaluatedV1, m.handleOperationEvaluated, m); err != nil {
		return fmt.Errorf("failed to register OperationEvaluated consumer: %w", err)
	}

	m.logger.Info("Registered event consumers", "events", []string{"OperationEvaluated"})
	return nil
}

func (m *Module) handleOperationEvaluated(_ context.Context, event events.OperationEvaluatedEvent, _ *mono.Msg) error {
	operation := event.Operation
	if operation == "" {
		operation = "unknown"
	}

	kv := []any{
		"request_id", event.RequestID,
		"operation", operation,
		"duration_ms", event.DurationMs,
		"evaluated_at", event.EvaluatedAt,
	}
	if event.Success {
		m.logger.Info("Operation evaluated", kv...)
		return nil
	}
	m.logger.Warn("Operation rejected", append(kv, "error_kind", event.ErrorKind)...)
	return nil
}

func (m *Module) Start(_ context.Context) error {
	m.logger.Info("Audit module started - listening for compute events")
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Audit module stopped")
	return nil
}
