// Package events decodes webhook deliveries into a closed set of typed
// events selected by the envelope's "type" discriminant.
//
// DecodeStrict decodes the payload with the schema registered for the type
// and fails on malformed input; a type with no registered schema decodes to
// UnknownEvent. DecodeUnsafe keeps the payload raw and only attempts the
// typed decode opportunistically. Neither rejects unknown enum values:
// Validate reports them as *InvalidDataError.
//
// Consumers handle events with a type switch:
//
//	switch ev := event.(type) {
//	case events.PaymentSucceededEvent:
//		fulfil(ev.Data.PaymentID)
//	case events.UnknownEvent:
//		log.Printf("skipping %s", ev.Type)
//	}
package events
