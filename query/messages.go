package query

import (
	"strings"
)

const (
	TypeDecodeEvent        = "paywebhooks.query.event.decode"
	TypeGetDelivery        = "paywebhooks.query.delivery.get"
	TypeGetArchivedEvent   = "paywebhooks.query.archive.get"
	TypeListBusinessEvents = "paywebhooks.query.archive.list_business"
)

// DecodeEventMessage decodes a raw delivery body. Unsafe selects the
// lenient decoder; ValidatePayload additionally checks enum membership.
type DecodeEventMessage struct {
	Body            []byte
	Unsafe          bool
	ValidatePayload bool
}

func (DecodeEventMessage) Type() string { return TypeDecodeEvent }

func (m DecodeEventMessage) Validate() error {
	if len(m.Body) == 0 {
		return queryValidationError("body", "is required")
	}
	return nil
}

type GetDeliveryMessage struct {
	ProviderID string
	DeliveryID string
}

func (GetDeliveryMessage) Type() string { return TypeGetDelivery }

func (m GetDeliveryMessage) Validate() error {
	if strings.TrimSpace(m.DeliveryID) == "" {
		return queryValidationError("delivery_id", "is required")
	}
	return nil
}

type GetArchivedEventMessage struct {
	ID string
}

func (GetArchivedEventMessage) Type() string { return TypeGetArchivedEvent }

func (m GetArchivedEventMessage) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return queryValidationError("id", "is required")
	}
	return nil
}

type ListBusinessEventsMessage struct {
	BusinessID string
	Limit      int
}

func (ListBusinessEventsMessage) Type() string { return TypeListBusinessEvents }

func (m ListBusinessEventsMessage) Validate() error {
	if strings.TrimSpace(m.BusinessID) == "" {
		return queryValidationError("business_id", "is required")
	}
	if m.Limit < 0 {
		return queryValidationError("limit", "must be >= 0")
	}
	return nil
}
