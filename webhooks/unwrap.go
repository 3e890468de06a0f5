package webhooks

import (
	"context"

	"github.com/goliatone/go-paywebhooks/core"
	"github.com/goliatone/go-paywebhooks/events"
)

// Unwrap verifies req when verifier is set and decodes its body strictly.
func Unwrap(ctx context.Context, verifier Verifier, req core.InboundRequest) (events.Event, error) {
	if verifier != nil {
		if err := verifier.Verify(ctx, req); err != nil {
			return nil, err
		}
	}
	return events.UnwrapWebhookEvent(req.Body)
}

// UnsafeUnwrap decodes the body of req without verification, keeping the
// payload raw.
func UnsafeUnwrap(req core.InboundRequest) (events.UnsafeEvent, error) {
	return events.UnsafeUnwrapWebhookEvent(req.Body)
}
