package compute

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	gomath "math"
	"regexp"
	"strings"
	"time"

	"github.com/go-monolith/mono/pkg/types"

	"github.com/ashumehta18/bajaj-test/domain/bfhl"
	"github.com/ashumehta18/bajaj-test/modules/ai"
)

// oneWordInstruction is appended to every AI question.
const oneWordInstruction = ". Respond with strictly only one word. No punctuation."

var (
	nonWordChars = regexp.MustCompile(`\W`)

	errNoGenerator = errors.New("no AI generator configured")
)

// EvaluatorPort evaluates /bfhl requests. It is implemented in-process by
// Service and across modules by the compute adapter.
type EvaluatorPort interface {
	Evaluate(ctx context.Context, req EvaluateRequest) (Result, error)
}

// Service is the /bfhl dispatcher: it decodes the single-key request, runs
// the selected operation and returns its result or a typed bfhl error.
type Service struct {
	generator ai.Generator
	aiTimeout time.Duration
	logger    types.Logger
}

// Compile-time interface check
var _ EvaluatorPort = (*Service)(nil)

// NewService creates a dispatcher. A zero aiTimeout leaves AI calls bounded
// only by the caller's context.
func NewService(generator ai.Generator, aiTimeout time.Duration, logger types.Logger) *Service {
	return &Service{
		generator: generator,
		aiTimeout: aiTimeout,
		logger:    logger,
	}
}

// Evaluate runs the operation named by the request body.
//
// Client-facing failures are *bfhl.ValidationError, *bfhl.ServiceError or
// bfhl.ErrInvalidKey; anything else is an internal error.
func (s *Service) Evaluate(ctx context.Context, req EvaluateRequest) (Result, error) {
	parsed, err := bfhl.ParseRequest(req.Body)
	if err != nil {
		return Result{}, err
	}

	result := Result{Operation: string(parsed.Operation())}

	data, err := s.run(ctx, req.RequestID, parsed)
	if err != nil {
		return result, err
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return result, fmt.Errorf("failed to encode %s result: %w", parsed.Operation(), err)
	}
	result.Data = raw
	return result, nil
}

func (s *Service) run(ctx context.Context, requestID string, req bfhl.Request) (any, error) {
	switch r := req.(type) {
	case bfhl.FibonacciRequest:
		return Fibonacci(r.N), nil
	case bfhl.PrimeRequest:
		return FilterPrimes(r.Values), nil
	case bfhl.LCMRequest:
		return finiteOrNil(ReduceLCM(r.Values)), nil
	case bfhl.HCFRequest:
		return finiteOrNil(ReduceHCF(r.Values)), nil
	case bfhl.AIRequest:
		return s.answer(ctx, requestID, r.Question)
	default:
		return nil, bfhl.ErrInvalidKey
	}
}

// answer asks the AI generator for a one-word answer. Every failure is
// reported as the same service error; the cause is only logged.
func (s *Service) answer(ctx context.Context, requestID, question string) (string, error) {
	if s.generator == nil {
		return "", bfhl.NewAIServiceError(errNoGenerator)
	}

	if s.aiTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.aiTimeout)
		defer cancel()
	}

	reply, err := s.generator.Generate(ctx, OneWordPrompt(question))
	if err != nil {
		s.logger.Warn("AI generation failed", "request_id", requestID, "error", err)
		return "", bfhl.NewAIServiceError(err)
	}
	return FirstWord(reply), nil
}

// OneWordPrompt builds the prompt sent to the AI generator for question.
func OneWordPrompt(question string) string {
	return question + oneWordInstruction
}

// FirstWord returns the first whitespace-separated token of reply with every
// character outside [A-Za-z0-9_] removed.
func FirstWord(reply string) string {
	fields := strings.Fields(reply)
	if len(fields) == 0 {
		return ""
	}
	return nonWordChars.ReplaceAllString(fields[0], "")
}

// finiteOrNil maps overflowed reductions to JSON null.
func finiteOrNil(f float64) any {
	if gomath.IsInf(f, 0) || gomath.IsNaN(f) {
		return nil
	}
	return f
}
