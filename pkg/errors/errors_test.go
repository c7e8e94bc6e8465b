package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeNoStock, http.StatusUnprocessableEntity},
		{CodeIdempotency, http.StatusConflict},
		{CodeDependency, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Fatalf("MetadataFor(%s) status = %d, want %d", tc.code, got, tc.status)
		}
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("BOGUS"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("row missing")
	err := Wrap(CodeNotFound, cause, "stock batch not found")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to survive errors.Is")
	}
	if err.Code() != CodeNotFound {
		t.Fatalf("unexpected code %s", err.Code())
	}
}

func TestAsFindsTypedErrorThroughWrapping(t *testing.T) {
	inner := New(CodeNoStock, "no batches for product")
	outer := fmt.Errorf("pricing cart: %w", inner)

	typed := As(outer)
	if typed == nil || typed.Code() != CodeNoStock {
		t.Fatalf("expected NO_STOCK, got %v", typed)
	}
}

func TestAsReturnsNilForPlainError(t *testing.T) {
	if typed := As(fmt.Errorf("plain")); typed != nil {
		t.Fatalf("expected nil, got %v", typed)
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "validation failed").WithDetails(map[string]string{"quantity": "must be at least 1"})
	details, ok := err.Details().(map[string]string)
	if !ok || details["quantity"] == "" {
		t.Fatalf("details not carried: %v", err.Details())
	}
}
