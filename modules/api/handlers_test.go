package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashumehta18/bajaj-test/config"
	"github.com/ashumehta18/bajaj-test/domain/bfhl"
	"github.com/ashumehta18/bajaj-test/modules/compute"
)

const testEmail = "tester@example.com"

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(_ string, _ ...any)         {}
func (m *mockLogger) Info(_ string, _ ...any)          {}
func (m *mockLogger) Warn(_ string, _ ...any)          {}
func (m *mockLogger) Error(_ string, _ ...any)         {}
func (m *mockLogger) With(_ ...any) types.Logger       { return m }
func (m *mockLogger) WithModule(_ string) types.Logger { return m }
func (m *mockLogger) WithError(_ error) types.Logger   { return m }

// stubGenerator implements ai.Generator for testing
type stubGenerator struct {
	reply string
	err   error
}

func (s *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	return s.reply, s.err
}

// mockEvaluator implements compute.EvaluatorPort for testing
type mockEvaluator struct {
	evaluateFunc func(ctx context.Context, req compute.EvaluateRequest) (compute.Result, error)
}

func (m *mockEvaluator) Evaluate(ctx context.Context, req compute.EvaluateRequest) (compute.Result, error) {
	return m.evaluateFunc(ctx, req)
}

func testConfig() config.Config {
	return config.Config{
		Port:               "3000",
		OfficialEmail:      testEmail,
		RequestTimeout:     5 * time.Second,
		CORSAllowedOrigins: "*",
	}
}

// newTestApp wires the real dispatcher with a stub AI generator.
func newTestApp(t *testing.T, cfg config.Config, gen *stubGenerator) *fiber.App {
	t.Helper()
	m := NewModule(cfg, &mockLogger{})
	m.evaluator = compute.NewService(gen, time.Second, &mockLogger{})
	return m.newApp()
}

type envelope struct {
	IsSuccess     bool            `json:"is_success"`
	OfficialEmail *string         `json:"official_email"`
	Data          json.RawMessage `json:"data"`
	Message       *string         `json:"message"`
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (int, envelope, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	}
	return resp.StatusCode, env, string(raw)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, testConfig(), &stubGenerator{})

	status, env, _ := doRequest(t, app, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.IsSuccess)
	require.NotNil(t, env.OfficialEmail)
	assert.Equal(t, testEmail, *env.OfficialEmail)
	assert.Nil(t, env.Data)
	assert.Nil(t, env.Message)
}

func TestBFHL_Success(t *testing.T) {
	app := newTestApp(t, testConfig(), &stubGenerator{reply: "Mumbai."})

	tests := []struct {
		name     string
		body     string
		wantData string
	}{
		{name: "fibonacci", body: `{"fibonacci": 7}`, wantData: `[0,1,1,2,3,5,8]`},
		{name: "fibonacci zero", body: `{"fibonacci": 0}`, wantData: `[]`},
		{name: "prime", body: `{"prime": [4, 7, 9, 11]}`, wantData: `[7,11]`},
		{name: "prime ignores strings", body: `{"prime": ["2", 3, "abc", 4]}`, wantData: `[3]`},
		{name: "lcm", body: `{"lcm": [4, 6]}`, wantData: `12`},
		{name: "lcm zero", body: `{"lcm": [0, 5]}`, wantData: `0`},
		{name: "hcf", body: `{"hcf": [12, 18]}`, wantData: `6`},
		{name: "hcf negative", body: `{"hcf": [-4, 6]}`, wantData: `2`},
		{name: "ai", body: `{"AI": "What is the capital of Maharashtra?"}`, wantData: `"Mumbai"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env, raw := doRequest(t, app, http.MethodPost, "/bfhl", tt.body)

			assert.Equal(t, http.StatusOK, status, raw)
			assert.True(t, env.IsSuccess)
			require.NotNil(t, env.OfficialEmail)
			assert.Equal(t, testEmail, *env.OfficialEmail)
			assert.JSONEq(t, tt.wantData, string(env.Data))
			assert.Nil(t, env.Message)
		})
	}
}

func TestBFHL_ClientErrors(t *testing.T) {
	app := newTestApp(t, testConfig(), &stubGenerator{reply: "ok"})

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "fibonacci above range", body: `{"fibonacci": 51}`, wantMsg: bfhl.MsgFibonacciRange},
		{name: "fibonacci negative", body: `{"fibonacci": -1}`, wantMsg: bfhl.MsgFibonacciRange},
		{name: "fibonacci fractional", body: `{"fibonacci": 2.5}`, wantMsg: bfhl.MsgFibonacciRange},
		{name: "prime not array", body: `{"prime": 7}`, wantMsg: bfhl.MsgPrimeNotArray},
		{name: "lcm empty", body: `{"lcm": []}`, wantMsg: bfhl.MsgArrayEmpty},
		{name: "hcf non numeric", body: `{"hcf": [4, "x"]}`, wantMsg: bfhl.MsgArrayNumbers},
		{name: "ai not string", body: `{"AI": 42}`, wantMsg: bfhl.MsgAIQueryString},
		{name: "two keys", body: `{"fibonacci": 5, "prime": [2]}`, wantMsg: bfhl.MsgExactlyOneKey},
		{name: "empty object", body: `{}`, wantMsg: bfhl.MsgExactlyOneKey},
		{name: "malformed json", body: `{"fibonacci":`, wantMsg: bfhl.MsgExactlyOneKey},
		{name: "empty body", body: ``, wantMsg: bfhl.MsgExactlyOneKey},
		{name: "array body", body: `[1, 2]`, wantMsg: bfhl.MsgExactlyOneKey},
		{name: "unknown key", body: `{"sum": [1, 2]}`, wantMsg: bfhl.MsgInvalidKey},
		{name: "key is case sensitive", body: `{"ai": "hello"}`, wantMsg: bfhl.MsgInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env, raw := doRequest(t, app, http.MethodPost, "/bfhl", tt.body)

			assert.Equal(t, http.StatusBadRequest, status, raw)
			assert.False(t, env.IsSuccess)
			require.NotNil(t, env.Message)
			assert.Equal(t, tt.wantMsg, *env.Message)
			assert.Nil(t, env.OfficialEmail)
			assert.Nil(t, env.Data)
		})
	}
}

func TestBFHL_AIFailure(t *testing.T) {
	app := newTestApp(t, testConfig(), &stubGenerator{err: errors.New("gemini http 429: quota exceeded")})

	status, env, raw := doRequest(t, app, http.MethodPost, "/bfhl", `{"AI": "Capital of India?"}`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.IsSuccess)
	require.NotNil(t, env.Message)
	assert.Equal(t, bfhl.MsgAIServiceFailed, *env.Message)
	assert.NotContains(t, raw, "quota")
}

func TestBFHL_InternalError(t *testing.T) {
	m := NewModule(testConfig(), &mockLogger{})
	m.evaluator = &mockEvaluator{
		evaluateFunc: func(_ context.Context, _ compute.EvaluateRequest) (compute.Result, error) {
			return compute.Result{}, errors.New("evaluate service call failed: nats: timeout")
		},
	}
	app := m.newApp()

	status, env, raw := doRequest(t, app, http.MethodPost, "/bfhl", `{"fibonacci": 3}`)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.False(t, env.IsSuccess)
	require.NotNil(t, env.Message)
	assert.Equal(t, "Internal Server Error", *env.Message)
	assert.NotContains(t, raw, "nats")
}

func TestBFHL_PassesRequestContext(t *testing.T) {
	var got compute.EvaluateRequest
	var hasDeadline bool

	m := NewModule(testConfig(), &mockLogger{})
	m.evaluator = &mockEvaluator{
		evaluateFunc: func(ctx context.Context, req compute.EvaluateRequest) (compute.Result, error) {
			got = req
			_, hasDeadline = ctx.Deadline()
			return compute.Result{Operation: "lcm", Data: json.RawMessage(`12`)}, nil
		},
	}
	app := m.newApp()

	status, _, _ := doRequest(t, app, http.MethodPost, "/bfhl", `{"lcm": [4, 6]}`)

	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, got.RequestID)
	assert.JSONEq(t, `{"lcm": [4, 6]}`, string(got.Body))
	assert.True(t, hasDeadline)
}

func TestNotFound(t *testing.T) {
	app := newTestApp(t, testConfig(), &stubGenerator{})

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "unknown path", method: http.MethodGet, path: "/unknown"},
		{name: "root", method: http.MethodGet, path: "/"},
		{name: "wrong method on bfhl", method: http.MethodGet, path: "/bfhl"},
		{name: "wrong method on health", method: http.MethodPost, path: "/health"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env, _ := doRequest(t, app, tt.method, tt.path, "")

			assert.Equal(t, http.StatusNotFound, status)
			assert.False(t, env.IsSuccess)
			require.NotNil(t, env.Message)
			assert.Equal(t, bfhl.MsgRouteNotFound, *env.Message)
		})
	}
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>BFHL</h1>"), 0o644))

	cfg := testConfig()
	cfg.PublicDir = dir
	app := newTestApp(t, cfg, &stubGenerator{})

	t.Run("index served at root", func(t *testing.T) {
		status, _, raw := doRequest(t, app, http.MethodGet, "/", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, raw, "<h1>BFHL</h1>")
	})

	t.Run("missing file falls through to 404", func(t *testing.T) {
		status, env, _ := doRequest(t, app, http.MethodGet, "/missing.html", "")
		assert.Equal(t, http.StatusNotFound, status)
		require.NotNil(t, env.Message)
		assert.Equal(t, bfhl.MsgRouteNotFound, *env.Message)
	})

	t.Run("api routes still win", func(t *testing.T) {
		status, env, _ := doRequest(t, app, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, status)
		assert.True(t, env.IsSuccess)
	})
}
