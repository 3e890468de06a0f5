package command

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-paywebhooks/core"
)

func TestProcessWebhookMessage_ValidateReturnsRichError(t *testing.T) {
	err := (ProcessWebhookMessage{}).Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryValidation {
		t.Fatalf("expected validation category, got %q", rich.Category)
	}
	if rich.TextCode != core.ServiceErrorBadInput {
		t.Fatalf("expected %q text code, got %q", core.ServiceErrorBadInput, rich.TextCode)
	}
}

func TestMessages_Validate(t *testing.T) {
	tests := []struct {
		name    string
		msg     interface{ Validate() error }
		wantErr bool
	}{
		{name: "process with body", msg: ProcessWebhookMessage{Request: core.InboundRequest{Body: []byte("{}")}}},
		{name: "process without body", msg: ProcessWebhookMessage{}, wantErr: true},
		{name: "replay with delivery", msg: ReplayDeliveryMessage{DeliveryID: "msg_1"}},
		{name: "replay without delivery", msg: ReplayDeliveryMessage{ProviderID: "payments", DeliveryID: " "}, wantErr: true},
		{name: "replay due", msg: ReplayDueMessage{Limit: 10}},
		{name: "replay due negative limit", msg: ReplayDueMessage{Limit: -1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestProcessWebhookCommand_NilProcessorReturnsRichError(t *testing.T) {
	var cmd *ProcessWebhookCommand
	err := cmd.Execute(context.Background(), ProcessWebhookMessage{})
	if err == nil {
		t.Fatalf("expected command dependency error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %q", rich.Category)
	}
}
