// Package inbound routes decoded webhook events to handlers.
//
// Handlers register by exact event type, by payload family, or as the
// fallback for anything unrouted, including event types this version does not
// know. Routing through a ClaimStore uses claim/complete/fail idempotency so
// transient handler failures remain retryable.
package inbound
