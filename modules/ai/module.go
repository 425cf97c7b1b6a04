package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Module exposes a Generator as the generate request-reply service.
type Module struct {
	client Generator
	logger types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new ai module around client.
func NewModule(client Generator, logger types.Logger) *Module {
	return &Module{
		client: client,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "ai"
}

// RegisterServices registers the generate service.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceGenerate, json.Unmarshal, json.Marshal, m.generate,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceGenerate, err)
	}

	m.logger.Info("Registered AI services", "services", []string{ServiceGenerate})
	return nil
}

// Start validates the module configuration.
func (m *Module) Start(_ context.Context) error {
	if m.client == nil {
		return fmt.Errorf("ai client not set")
	}
	if gc, ok := m.client.(*GeminiClient); ok && !gc.Configured() {
		m.logger.Warn("GEMINI_API_KEY is not set; AI requests will fail", "model", gc.Model())
	}
	m.logger.Info("AI module started")
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("AI module stopped")
	return nil
}

// Health reports whether a client is available and configured.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.client == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "ai client not set",
		}
	}
	details := map[string]any{}
	if gc, ok := m.client.(*GeminiClient); ok {
		details["model"] = gc.Model()
		details["configured"] = gc.Configured()
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: details,
	}
}

// generate handles the ai.generate service request.
func (m *Module) generate(ctx context.Context, req GenerateRequest, _ *mono.Msg) (GenerateResponse, error) {
	start := time.Now()
	text, err := m.client.Generate(ctx, req.Prompt)
	if err != nil {
		m.logger.Warn("Text generation failed",
			"error", err,
			"elapsed", time.Since(start).Round(time.Millisecond).String())
		return GenerateResponse{Error: err.Error()}, nil // Return error in response, not as Go error
	}

	m.logger.Debug("Text generated", "chars", len(text))
	return GenerateResponse{Text: text}, nil
}
