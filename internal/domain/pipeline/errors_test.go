package pipeline

import (
	"fmt"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	err := &DomainError{Code: ErrCodeValidation, Message: "invalid"}
	want := "VALIDATION_ERROR: invalid"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}

	withContext := newOrderError("delete_key", "download_key")
	wantContext := "OUT_OF_ORDER: dependency declared after dependent (dependency_id=download_key, step_id=delete_key)"
	if withContext.Error() != wantContext {
		t.Fatalf("expected %q, got %q", wantContext, withContext.Error())
	}
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("load pipeline: %w", newNotFoundError("create_key"))
	if !IsCode(err, ErrCodeNotFound) {
		t.Fatal("expected wrapped not found error to match")
	}
	if IsCode(err, ErrCodeCycle) {
		t.Fatal("expected code mismatch")
	}
	if IsCode(fmt.Errorf("other"), ErrCodeNotFound) {
		t.Fatal("expected non-domain errors to return false")
	}
	if IsCode(nil, ErrCodeNotFound) {
		t.Fatal("expected nil to return false")
	}
}

func TestDomainError_WithContext(t *testing.T) {
	err := &DomainError{Code: ErrCodeDependency, Message: "missing", Context: map[string]any{"step_id": "create_key"}}
	updated := err.WithContext(map[string]any{"dependency": "create_service_account"})

	if updated.Context["step_id"] != "create_key" || updated.Context["dependency"] != "create_service_account" {
		t.Fatalf("context merge failed: %+v", updated.Context)
	}
	if _, leaked := err.Context["dependency"]; leaked {
		t.Fatal("WithContext should not modify the receiver")
	}
}

func TestDomainError_NilReceiver(t *testing.T) {
	var err *DomainError
	if got := err.Error(); got != "<nil>" {
		t.Fatalf("expected <nil> string, got %q", got)
	}
	if err.WithContext(map[string]any{"key": "value"}) != nil {
		t.Fatal("expected nil WithContext result for nil receiver")
	}
}
