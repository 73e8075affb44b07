package errors

import (
	"errors"
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
		{CodeAlreadySubscribed, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeOrderCreation, http.StatusBadGateway},
		{CodeSessionCreation, http.StatusBadGateway},
		{CodeTransport, http.StatusBadGateway},
		{CodePollTimeout, http.StatusGatewayTimeout},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Fatalf("code %s: expected status %d, got %d", tc.code, tc.status, got)
		}
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("NOPE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(CodeTransport, cause, "request failed")

	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if err.Code() != CodeTransport {
		t.Fatalf("unexpected code %s", err.Code())
	}
}

func TestAsUnwrapsThroughFmtErrorf(t *testing.T) {
	inner := New(CodeOrderCreation, "upstream rejected order")
	outer := fmt.Errorf("initiating checkout: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Code() != CodeOrderCreation {
		t.Fatalf("unexpected code %s", typed.Code())
	}
}

func TestIsCode(t *testing.T) {
	err := New(CodeAlreadySubscribed, "duplicate email")
	if !IsCode(err, CodeAlreadySubscribed) {
		t.Fatal("expected IsCode match")
	}
	if IsCode(err, CodeValidation) {
		t.Fatal("unexpected IsCode match")
	}
	if IsCode(nil, CodeValidation) {
		t.Fatal("nil error must not match")
	}
}

func TestDumpIncludesChain(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeTransport, cause, "status request failed")

	dump := Dump(err)
	if dump.Code != CodeTransport {
		t.Fatalf("unexpected code %s", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected chain of at least 2, got %d", len(dump.Chain))
	}
}
