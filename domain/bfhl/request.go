// Package bfhl defines the /bfhl request and response model: the single-key
// request decoded into one typed variant per operation, the uniform response
// envelope and the client-facing error kinds.
package bfhl

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
)

// Operation is the key naming the computation of a request.
type Operation string

// Supported operations.
const (
	OpFibonacci Operation = "fibonacci"
	OpPrime     Operation = "prime"
	OpLCM       Operation = "lcm"
	OpHCF       Operation = "hcf"
	OpAI        Operation = "AI"
)

// MaxFibonacci is the largest accepted fibonacci count.
const MaxFibonacci = 50

// Request is one decoded /bfhl request. The concrete type selects the
// operation.
type Request interface {
	Operation() Operation
}

// FibonacciRequest asks for the first N Fibonacci numbers.
type FibonacciRequest struct {
	N int
}

// PrimeRequest asks for the primes among Values. Non-numeric input elements
// have already been dropped.
type PrimeRequest struct {
	Values []float64
}

// LCMRequest asks for the least common multiple of Values.
type LCMRequest struct {
	Values []float64
}

// HCFRequest asks for the highest common factor of Values.
type HCFRequest struct {
	Values []float64
}

// AIRequest asks the AI text client for a one-word answer to Question.
type AIRequest struct {
	Question string
}

func (FibonacciRequest) Operation() Operation { return OpFibonacci }
func (PrimeRequest) Operation() Operation     { return OpPrime }
func (LCMRequest) Operation() Operation       { return OpLCM }
func (HCFRequest) Operation() Operation       { return OpHCF }
func (AIRequest) Operation() Operation        { return OpAI }

// ParseRequest decodes a raw /bfhl body into its typed variant.
//
// It returns a *ValidationError for bodies that are not a JSON object with
// exactly one key or whose value does not satisfy the operation's contract,
// and ErrInvalidKey when the single key is not a known operation.
func ParseRequest(body []byte) (Request, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) != 1 {
		return nil, NewValidationError(MsgExactlyOneKey)
	}

	for key, raw := range fields {
		return parseOperation(Operation(key), raw)
	}
	return nil, NewValidationError(MsgExactlyOneKey)
}

func parseOperation(op Operation, raw json.RawMessage) (Request, error) {
	// An undecodable value fails every operation's type check below.
	value, _ := decodeValue(raw)

	switch op {
	case OpFibonacci:
		n, ok := asNumber(value)
		if !ok || n != math.Trunc(n) || n < 0 || n > MaxFibonacci {
			return nil, NewValidationError(MsgFibonacciRange)
		}
		return FibonacciRequest{N: int(n)}, nil

	case OpPrime:
		items, ok := value.([]any)
		if !ok {
			return nil, NewValidationError(MsgPrimeNotArray)
		}
		values := make([]float64, 0, len(items))
		for _, item := range items {
			if n, ok := asNumber(item); ok {
				values = append(values, n)
			}
		}
		return PrimeRequest{Values: values}, nil

	case OpLCM, OpHCF:
		values, err := parseNumberArray(value)
		if err != nil {
			return nil, err
		}
		if op == OpLCM {
			return LCMRequest{Values: values}, nil
		}
		return HCFRequest{Values: values}, nil

	case OpAI:
		question, ok := value.(string)
		if !ok || strings.TrimSpace(question) == "" {
			return nil, NewValidationError(MsgAIQueryString)
		}
		return AIRequest{Question: question}, nil

	default:
		return nil, ErrInvalidKey
	}
}

// parseNumberArray enforces the lcm/hcf contract: a non-empty array made only
// of numbers.
func parseNumberArray(value any) ([]float64, error) {
	items, ok := value.([]any)
	if !ok || len(items) == 0 {
		return nil, NewValidationError(MsgArrayEmpty)
	}
	values := make([]float64, 0, len(items))
	for _, item := range items {
		n, ok := asNumber(item)
		if !ok {
			return nil, NewValidationError(MsgArrayNumbers)
		}
		values = append(values, n)
	}
	return values, nil
}

// decodeValue decodes a JSON value keeping numbers as json.Number.
func decodeValue(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// asNumber reports whether v is a finite JSON number and returns its value.
func asNumber(v any) (float64, bool) {
	num, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := num.Float64()
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
