package compute

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	"github.com/ashumehta18/bajaj-test/domain/bfhl"
)

// computeAdapter wraps ServiceContainer for type-safe cross-module communication.
// This is the adapter that implements the EvaluatorPort interface.
type computeAdapter struct {
	container mono.ServiceContainer
}

// NewComputeAdapter creates a new adapter for compute services.
// container is the ServiceContainer from the compute module received via SetDependencyServiceContainer.
func NewComputeAdapter(container mono.ServiceContainer) EvaluatorPort {
	if container == nil {
		panic("compute adapter requires non-nil ServiceContainer")
	}
	return &computeAdapter{container: container}
}

// Evaluate calls services.compute.evaluate and rebuilds typed errors from the
// response.
func (a *computeAdapter) Evaluate(ctx context.Context, req EvaluateRequest) (Result, error) {
	var resp EvaluateResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceEvaluate,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return Result{}, fmt.Errorf("evaluate service call failed: %w", err)
	}
	return fromResponse(resp)
}

// fromResponse is the inverse of toResponse. Error types are lost on the
// wire, so they are rebuilt from ErrorKind.
func fromResponse(resp EvaluateResponse) (Result, error) {
	result := Result{Operation: resp.Operation}

	switch resp.ErrorKind {
	case "":
		result.Data = resp.Data
		return result, nil
	case ErrorKindValidation:
		return result, bfhl.NewValidationError(resp.Message)
	case ErrorKindService:
		return result, &bfhl.ServiceError{Message: resp.Message}
	case ErrorKindInvalidKey:
		return result, bfhl.ErrInvalidKey
	default:
		return result, errors.New(resp.Message)
	}
}
