package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorCode classifies a problem with a pipeline definition.
type ErrorCode string

const (
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrCodeDuplicate  ErrorCode = "DUPLICATE_ID"
	ErrCodeDependency ErrorCode = "DEPENDENCY_ERROR"
	ErrCodeCycle      ErrorCode = "CIRCULAR_DEPENDENCY"
	ErrCodeOrder      ErrorCode = "OUT_OF_ORDER"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrCodeMissing    ErrorCode = "MISSING_REQUIRED"
)

// DomainError reports a definition problem together with the identifiers
// involved.
type DomainError struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error renders the code, the message and the context keys in sorted order.
func (e *DomainError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if len(e.Context) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, e.Context[k]))
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, strings.Join(pairs, ", "))
}

// WithContext returns a copy of e with ctx merged over its context.
func (e *DomainError) WithContext(ctx map[string]any) *DomainError {
	if e == nil {
		return nil
	}
	merged := make(map[string]any, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}
	return &DomainError{Code: e.Code, Message: e.Message, Context: merged}
}

// IsCode reports whether err carries a DomainError with code.
func IsCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}

func newDomainError(code ErrorCode, message string, context map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, Context: context}
}

func newValidationError(message string, context map[string]any) *DomainError {
	return newDomainError(ErrCodeValidation, message, context)
}

func newDuplicateError(identifier string) *DomainError {
	return newDomainError(ErrCodeDuplicate, "duplicate identifier", map[string]any{"id": identifier})
}

func newDependencyError(message string, context map[string]any) *DomainError {
	return newDomainError(ErrCodeDependency, message, context)
}

func newCycleError(path []string) *DomainError {
	return newDomainError(ErrCodeCycle, "circular dependency detected", map[string]any{
		"path": strings.Join(path, " -> "),
	})
}

func newOrderError(stepID, dependency string) *DomainError {
	return newDomainError(ErrCodeOrder, "dependency declared after dependent", map[string]any{
		"step_id":       stepID,
		"dependency_id": dependency,
	})
}

func newMissingFieldError(field string) *DomainError {
	return newDomainError(ErrCodeMissing, "missing required field", map[string]any{"field": field})
}

func newNotFoundError(stepID string) *DomainError {
	return newDomainError(ErrCodeNotFound, "step not found", map[string]any{"step_id": stepID})
}
