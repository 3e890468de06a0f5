// Package webhooks verifies, claims, decodes and dispatches payment webhook
// deliveries.
//
// Delivery processing is driven by a claim lifecycle:
// pending/retry_ready -> processing -> processed|dead.
// Retries and crash-recovery are explicit, and transient failures are never
// deduped as permanently processed. Bodies that cannot be decoded are
// dead-lettered on the first attempt.
package webhooks
