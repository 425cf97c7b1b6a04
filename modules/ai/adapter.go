package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// generatorAdapter implements Generator over the ai module's service container.
type generatorAdapter struct {
	container mono.ServiceContainer
}

// NewGeneratorAdapter creates a Generator backed by the generate service.
// container is the ServiceContainer received via SetDependencyServiceContainer.
func NewGeneratorAdapter(container mono.ServiceContainer) Generator {
	if container == nil {
		panic("ai adapter requires non-nil ServiceContainer")
	}
	return &generatorAdapter{container: container}
}

// Generate calls services.ai.generate.
func (a *generatorAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	req := GenerateRequest{Prompt: prompt}
	var resp GenerateResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceGenerate,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return "", fmt.Errorf("generate service call failed: %w", err)
	}
	if resp.Error != "" {
		return "", errors.New(resp.Error)
	}
	return resp.Text, nil
}
