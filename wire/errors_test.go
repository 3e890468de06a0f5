package wire

import (
	"errors"
	"net/http"
	"testing"

	"github.com/goliatone/go-paywebhooks/core"
)

func TestWithPrefix_RerootsPaths(t *testing.T) {
	err := WithPrefix("data", Invalid("customer.email", "x"))
	var invalid *InvalidDataError
	if !errors.As(err, &invalid) || invalid.Path != "data.customer.email" {
		t.Fatalf("expected prefixed path, got %v", err)
	}
	err = WithPrefix("data.refunds", Malformed("[0].status", errors.New("bad")))
	var malformed *MalformedInputError
	if !errors.As(err, &malformed) || malformed.Path != "data.refunds[0].status" {
		t.Fatalf("expected index path, got %v", err)
	}
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected malformed sentinel")
	}
}

func TestErrors_ToServiceError(t *testing.T) {
	malformed := (&MalformedInputError{Path: "type", Cause: errors.New("missing")}).ToServiceError()
	if malformed.TextCode != core.ServiceErrorMalformedInput || malformed.Code != http.StatusBadRequest {
		t.Fatalf("unexpected malformed envelope %#v", malformed)
	}
	invalid := (&InvalidDataError{Path: "data.status", Value: "refunded"}).ToServiceError()
	if invalid.TextCode != core.ServiceErrorInvalidData || invalid.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected invalid envelope %#v", invalid)
	}
	if invalid.Metadata["value"] != "refunded" {
		t.Fatalf("expected value metadata, got %#v", invalid.Metadata)
	}
	mapped := core.MapError(&InvalidDataError{Path: "type", Value: "x"})
	if mapped.TextCode != core.ServiceErrorInvalidData {
		t.Fatalf("expected core mapper to use typed envelope, got %q", mapped.TextCode)
	}
}

func TestCheckEach_IndexesFailures(t *testing.T) {
	err := CheckEach("items", []colour{"red", "green"}, func(c colour) error {
		return CheckEnum("", c)
	})
	var invalid *InvalidDataError
	if !errors.As(err, &invalid) || invalid.Path != "items[1]" || invalid.Value != "green" {
		t.Fatalf("expected indexed failure, got %v", err)
	}
}
