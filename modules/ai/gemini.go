package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ashumehta18/bajaj-test/config"
)

// Gemini client errors.
var (
	// ErrNoAPIKey is returned when no Gemini API key is configured.
	ErrNoAPIKey = errors.New("gemini API key not configured")

	// ErrEmptyResponse is returned when Gemini answers without any candidate text.
	ErrEmptyResponse = errors.New("empty response from gemini")
)

// maxErrorBody caps how much of a failed response body ends up in an error.
const maxErrorBody = 512

// GeminiClient generates text with the Gemini generateContent REST API.
type GeminiClient struct {
	httpClient *http.Client
	apiKey     string
	model      string
	endpoint   string
}

// Compile-time interface check
var _ Generator = (*GeminiClient)(nil)

// NewGeminiClient creates a client from the application configuration.
func NewGeminiClient(cfg config.Config) *GeminiClient {
	timeout := cfg.AITimeout
	if timeout == 0 {
		timeout = config.DefaultAITimeout
	}
	model := cfg.GeminiModel
	if model == "" {
		model = config.DefaultGeminiModel
	}
	endpoint := cfg.GeminiEndpoint
	if endpoint == "" {
		endpoint = config.DefaultGeminiEndpoint
	}
	return &GeminiClient{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     cfg.GeminiAPIKey,
		model:      model,
		endpoint:   strings.TrimRight(endpoint, "/"),
	}
}

// API request/response shapes (minimal for our use)
type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Model returns the configured model name.
func (c *GeminiClient) Model() string {
	return c.model
}

// Configured reports whether an API key is present.
func (c *GeminiClient) Configured() bool {
	return c.apiKey != ""
}

// Generate sends prompt as a single user turn and returns the text of the
// first candidate.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	reqBody := generateContentRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: prompt}},
		}},
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini request after %s: %w", time.Since(start).Round(time.Millisecond), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("gemini http %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var gcr generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&gcr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(gcr.Candidates) == 0 || len(gcr.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	var text strings.Builder
	for _, p := range gcr.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	return text.String(), nil
}
