package ai

import "context"

// ServiceGenerate is the request-reply service name for text generation.
// The framework exposes it as services.ai.generate.
const ServiceGenerate = "generate"

// Generator turns a prompt into a short text reply.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerateRequest is the request for the generate service.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateResponse is the response of the generate service.
type GenerateResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"` // Set instead of a transport error
}
