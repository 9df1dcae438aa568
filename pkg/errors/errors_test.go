package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	if got := MetadataFor(CodeValidation).HTTPStatus; got != http.StatusBadRequest {
		t.Fatalf("validation should map to 400, got %d", got)
	}
	if got := MetadataFor(CodeDependency).HTTPStatus; got != http.StatusBadGateway {
		t.Fatalf("dependency should map to 502, got %d", got)
	}
	if !MetadataFor(CodeDependency).Retryable {
		t.Fatalf("dependency errors should be retryable")
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("WHO_KNOWS"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown code should map to 500, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := Wrap(CodeDependency, cause, "upstream fetch failed")

	if !stdErrors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to be reachable via errors.Is")
	}
	if typed := As(fmt.Errorf("outer: %w", err)); typed == nil || typed.Code() != CodeDependency {
		t.Fatalf("expected typed error through wrapping, got %v", typed)
	}
}

func TestDumpWalksChain(t *testing.T) {
	err := Wrap(CodeValidation, stdErrors.New("inner"), "outer")
	d := Dump(err)
	if d.Code != CodeValidation {
		t.Fatalf("expected code in dump, got %q", d.Code)
	}
	if len(d.Chain) < 2 {
		t.Fatalf("expected at least two chain entries, got %v", d.Chain)
	}
}
