package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:         http.StatusBadRequest,
		CodeNotFound:           http.StatusNotFound,
		CodeContactUnavailable: http.StatusBadRequest,
		CodeUnauthorized:       http.StatusUnauthorized,
		CodeDependency:         http.StatusServiceUnavailable,
	}
	for code, status := range cases {
		if got := MetadataFor(code).HTTPStatus; got != status {
			t.Fatalf("code %s: expected status %d, got %d", code, status, got)
		}
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("NOPE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestContactUnavailableHidesDetails(t *testing.T) {
	meta := MetadataFor(CodeContactUnavailable)
	if meta.DetailsAllowed {
		t.Fatal("contact unavailable must not leak billing details")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("db timeout")
	err := Wrap(CodeDependency, cause, "store unavailable")

	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if As(err).Code() != CodeDependency {
		t.Fatalf("expected dependency code, got %s", As(err).Code())
	}
}

func TestAsUnwrapsThroughFmtErrorf(t *testing.T) {
	inner := New(CodeNotFound, "property missing")
	outer := fmt.Errorf("handling contact: %w", inner)

	typed := As(outer)
	if typed == nil || typed.Code() != CodeNotFound {
		t.Fatalf("expected not-found through wrap chain, got %v", typed)
	}
}
