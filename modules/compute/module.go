package compute

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"

	"github.com/ashumehta18/bajaj-test/domain/bfhl"
	"github.com/ashumehta18/bajaj-test/events"
	"github.com/ashumehta18/bajaj-test/modules/ai"
)

// Module provides the /bfhl dispatcher as the evaluate request-reply service
// (core domain).
type Module struct {
	service   *Service
	generator ai.Generator
	aiTimeout time.Duration
	eventBus  mono.EventBus
	logger    types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.DependentModule       = (*Module)(nil)
	_ mono.EventBusAwareModule   = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
)

// NewModule creates a new compute module.
func NewModule(aiTimeout time.Duration, logger types.Logger) *Module {
	return &Module{
		aiTimeout: aiTimeout,
		logger:    logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "compute"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"ai"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "ai" {
		m.generator = ai.NewGeneratorAdapter(container)
	}
}

// SetEventBus receives the EventBus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.OperationEvaluatedV1.ToBase(),
	}
}

// RegisterServices registers the evaluate service.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceEvaluate, json.Unmarshal, json.Marshal, m.evaluate,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceEvaluate, err)
	}

	m.logger.Info("Registered compute services", "services", []string{ServiceEvaluate})
	return nil
}

// Start builds the dispatcher once the ai dependency is wired.
func (m *Module) Start(_ context.Context) error {
	if m.generator == nil {
		return fmt.Errorf("ai dependency not set")
	}
	m.service = NewService(m.generator, m.aiTimeout, m.logger)
	m.logger.Info("Compute module started", "aiTimeout", m.aiTimeout.String())
	return nil
}

// Stop gracefully stops the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Compute module stopped")
	return nil
}

// Service returns the dispatcher instance.
func (m *Module) Service() *Service {
	return m.service
}

// evaluate handles the compute.evaluate service request.
func (m *Module) evaluate(ctx context.Context, req EvaluateRequest, _ *mono.Msg) (EvaluateResponse, error) {
	if m.service == nil {
		return EvaluateResponse{ErrorKind: ErrorKindInternal, Message: "compute module not started"}, nil
	}

	start := time.Now()
	result, err := m.service.Evaluate(ctx, req)
	resp := toResponse(result, err)

	if resp.ErrorKind == ErrorKindInternal {
		m.logger.Error("Evaluation failed", "request_id", req.RequestID, "error", err)
	}
	m.publishEvaluated(req.RequestID, resp, time.Since(start))

	return resp, nil // Return error in response, not as Go error
}

// publishEvaluated emits OperationEvaluated; publishing is best-effort.
func (m *Module) publishEvaluated(requestID string, resp EvaluateResponse, elapsed time.Duration) {
	if m.eventBus == nil {
		return
	}
	event := events.OperationEvaluatedEvent{
		RequestID:   requestID,
		Operation:   resp.Operation,
		Success:     resp.ErrorKind == "",
		ErrorKind:   resp.ErrorKind,
		DurationMs:  elapsed.Milliseconds(),
		EvaluatedAt: time.Now(),
	}
	if err := events.OperationEvaluatedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish OperationEvaluated event",
			"request_id", requestID,
			"error", err)
	}
}

// toResponse encodes an evaluation outcome for the wire.
func toResponse(result Result, err error) EvaluateResponse {
	resp := EvaluateResponse{Operation: result.Operation}
	if err == nil {
		resp.Data = result.Data
		return resp
	}

	var (
		verr *bfhl.ValidationError
		serr *bfhl.ServiceError
	)
	switch {
	case errors.As(err, &verr):
		resp.ErrorKind = ErrorKindValidation
		resp.Message = verr.Message
	case errors.As(err, &serr):
		resp.ErrorKind = ErrorKindService
		resp.Message = serr.Message
	case errors.Is(err, bfhl.ErrInvalidKey):
		resp.ErrorKind = ErrorKindInvalidKey
		resp.Message = bfhl.MsgInvalidKey
	default:
		resp.ErrorKind = ErrorKindInternal
		resp.Message = err.Error()
	}
	return resp
}
