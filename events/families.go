package events

import (
	"encoding/json"

	"github.com/goliatone/go-paywebhooks/models"
	"github.com/goliatone/go-paywebhooks/wire"
)

// payloadTypeKey is the optional family tag carried inside every payload.
const payloadTypeKey = "payload_type"

// DisputeData is the payload of dispute events: the resource plus its
// optional payload_type tag.
type DisputeData struct {
	models.Dispute
	PayloadType wire.Opt[models.PayloadType]
}

func (d *DisputeData) DecodeWire(path string, data []byte) error {
	obj, err := wire.DecodeObject(path, data)
	if err != nil {
		return err
	}
	r := wire.NewReader(obj)
	d.Dispute.ReadFields(r)
	d.PayloadType = wire.ReadOptional[models.PayloadType](r, payloadTypeKey)
	if err := r.Err(); err != nil {
		return err
	}
	d.Dispute.Extra = r.Extras()
	return nil
}

func (d *DisputeData) UnmarshalJSON(data []byte) error {
	return d.DecodeWire("", data)
}

func (d DisputeData) MarshalJSON() ([]byte, error) {
	enc := wire.NewObjectEncoder()
	d.Dispute.WriteFields(enc)
	wire.OptField(enc, payloadTypeKey, d.PayloadType)
	enc.Extras(d.Dispute.Extra)
	return enc.Bytes()
}

func (d DisputeData) Validate() error {
	return wire.FirstError(
		d.Dispute.Validate(),
		wire.CheckOptEnum(payloadTypeKey, d.PayloadType),
	)
}

func (d DisputeData) Clone() DisputeData {
	return DisputeData{Dispute: d.Dispute.Clone(), PayloadType: d.PayloadType}
}

// DisputeEvent holds the fields shared by every dispute event variant.
type DisputeEvent struct {
	Envelope
	Data DisputeData
}

func (DisputeEvent) PayloadType() models.PayloadType {
	return models.PayloadTypeDispute
}

func (e DisputeEvent) ResourceID() string {
	return e.Data.DisputeID
}

func (e DisputeEvent) TaggedPayloadType() wire.Opt[models.PayloadType] {
	return e.Data.PayloadType
}

func (e DisputeEvent) validate(eventType EventType) error {
	return wire.FirstError(
		wire.CheckEnum("type", eventType),
		wire.CheckNested("data", e.Data.Validate()),
	)
}

func (e DisputeEvent) encode(eventType EventType) ([]byte, error) {
	payload, err := json.Marshal(e.Data)
	if err != nil {
		return nil, err
	}
	return encodeEvent(e.Envelope, eventType, payload)
}

func (e DisputeEvent) clone() DisputeEvent {
	return DisputeEvent{Envelope: e.Envelope.clone(), Data: e.Data.Clone()}
}

func decodeDisputeEvent(env Envelope, payload []byte) (DisputeEvent, error) {
	var data DisputeData
	if err := data.DecodeWire("data", payload); err != nil {
		return DisputeEvent{}, err
	}
	return DisputeEvent{Envelope: env, Data: data}, nil
}

// PaymentData is the payload of payment events: the resource plus its
// optional payload_type tag.
type PaymentData struct {
	models.Payment
	PayloadType wire.Opt[models.PayloadType]
}

func (d *PaymentData) DecodeWire(path string, data []byte) error {
	obj, err := wire.DecodeObject(path, data)
	if err != nil {
		return err
	}
	r := wire.NewReader(obj)
	d.Payment.ReadFields(r)
	d.PayloadType = wire.ReadOptional[models.PayloadType](r, payloadTypeKey)
	if err := r.Err(); err != nil {
		return err
	}
	d.Payment.Extra = r.Extras()
	return nil
}

func (d *PaymentData) UnmarshalJSON(data []byte) error {
	return d.DecodeWire("", data)
}

func (d PaymentData) MarshalJSON() ([]byte, error) {
	enc := wire.NewObjectEncoder()
	d.Payment.WriteFields(enc)
	wire.OptField(enc, payloadTypeKey, d.PayloadType)
	enc.Extras(d.Payment.Extra)
	return enc.Bytes()
}

func (d PaymentData) Validate() error {
	return wire.FirstError(
		d.Payment.Validate(),
		wire.CheckOptEnum(payloadTypeKey, d.PayloadType),
	)
}

func (d PaymentData) Clone() PaymentData {
	return PaymentData{Payment: d.Payment.Clone(), PayloadType: d.PayloadType}
}

// PaymentEvent holds the fields shared by every payment event variant.
type PaymentEvent struct {
	Envelope
	Data PaymentData
}

func (PaymentEvent) PayloadType() models.PayloadType {
	return models.PayloadTypePayment
}

func (e PaymentEvent) ResourceID() string {
	return e.Data.PaymentID
}

func (e PaymentEvent) TaggedPayloadType() wire.Opt[models.PayloadType] {
	return e.Data.PayloadType
}

func (e PaymentEvent) validate(eventType EventType) error {
	return wire.FirstError(
		wire.CheckEnum("type", eventType),
		wire.CheckNested("data", e.Data.Validate()),
	)
}

func (e PaymentEvent) encode(eventType EventType) ([]byte, error) {
	payload, err := json.Marshal(e.Data)
	if err != nil {
		return nil, err
	}
	return encodeEvent(e.Envelope, eventType, payload)
}

func (e PaymentEvent) clone() PaymentEvent {
	return PaymentEvent{Envelope: e.Envelope.clone(), Data: e.Data.Clone()}
}

func decodePaymentEvent(env Envelope, payload []byte) (PaymentEvent, error) {
	var data PaymentData
	if err := data.DecodeWire("data", payload); err != nil {
		return PaymentEvent{}, err
	}
	return PaymentEvent{Envelope: env, Data: data}, nil
}

// RefundData is the payload of refund events: the resource plus its
// optional payload_type tag.
type RefundData struct {
	models.Refund
	PayloadType wire.Opt[models.PayloadType]
}

func (d *RefundData) DecodeWire(path string, data []byte) error {
	obj, err := wire.DecodeObject(path, data)
	if err != nil {
		return err
	}
	r := wire.NewReader(obj)
	d.Refund.ReadFields(r)
	d.PayloadType = wire.ReadOptional[models.PayloadType](r, payloadTypeKey)
	if err := r.Err(); err != nil {
		return err
	}
	d.Refund.Extra = r.Extras()
	return nil
}

func (d *RefundData) UnmarshalJSON(data []byte) error {
	return d.DecodeWire("", data)
}

func (d RefundData) MarshalJSON() ([]byte, error) {
	enc := wire.NewObjectEncoder()
	d.Refund.WriteFields(enc)
	wire.OptField(enc, payloadTypeKey, d.PayloadType)
	enc.Extras(d.Refund.Extra)
	return enc.Bytes()
}

func (d RefundData) Validate() error {
	return wire.FirstError(
		d.Refund.Validate(),
		wire.CheckOptEnum(payloadTypeKey, d.PayloadType),
	)
}

func (d RefundData) Clone() RefundData {
	return RefundData{Refund: d.Refund.Clone(), PayloadType: d.PayloadType}
}

// RefundEvent holds the fields shared by every refund event variant.
type RefundEvent struct {
	Envelope
	Data RefundData
}

func (RefundEvent) PayloadType() models.PayloadType {
	return models.PayloadTypeRefund
}

func (e RefundEvent) ResourceID() string {
	return e.Data.RefundID
}

func (e RefundEvent) TaggedPayloadType() wire.Opt[models.PayloadType] {
	return e.Data.PayloadType
}

func (e RefundEvent) validate(eventType EventType) error {
	return wire.FirstError(
		wire.CheckEnum("type", eventType),
		wire.CheckNested("data", e.Data.Validate()),
	)
}

func (e RefundEvent) encode(eventType EventType) ([]byte, error) {
	payload, err := json.Marshal(e.Data)
	if err != nil {
		return nil, err
	}
	return encodeEvent(e.Envelope, eventType, payload)
}

func (e RefundEvent) clone() RefundEvent {
	return RefundEvent{Envelope: e.Envelope.clone(), Data: e.Data.Clone()}
}

func decodeRefundEvent(env Envelope, payload []byte) (RefundEvent, error) {
	var data RefundData
	if err := data.DecodeWire("data", payload); err != nil {
		return RefundEvent{}, err
	}
	return RefundEvent{Envelope: env, Data: data}, nil
}

// SubscriptionData is the payload of subscription events: the resource plus its
// optional payload_type tag.
type SubscriptionData struct {
	models.Subscription
	PayloadType wire.Opt[models.PayloadType]
}

func (d *SubscriptionData) DecodeWire(path string, data []byte) error {
	obj, err := wire.DecodeObject(path, data)
	if err != nil {
		return err
	}
	r := wire.NewReader(obj)
	d.Subscription.ReadFields(r)
	d.PayloadType = wire.ReadOptional[models.PayloadType](r, payloadTypeKey)
	if err := r.Err(); err != nil {
		return err
	}
	d.Subscription.Extra = r.Extras()
	return nil
}

func (d *SubscriptionData) UnmarshalJSON(data []byte) error {
	return d.DecodeWire("", data)
}

func (d SubscriptionData) MarshalJSON() ([]byte, error) {
	enc := wire.NewObjectEncoder()
	d.Subscription.WriteFields(enc)
	wire.OptField(enc, payloadTypeKey, d.PayloadType)
	enc.Extras(d.Subscription.Extra)
	return enc.Bytes()
}

func (d SubscriptionData) Validate() error {
	return wire.FirstError(
		d.Subscription.Validate(),
		wire.CheckOptEnum(payloadTypeKey, d.PayloadType),
	)
}

func (d SubscriptionData) Clone() SubscriptionData {
	return SubscriptionData{Subscription: d.Subscription.Clone(), PayloadType: d.PayloadType}
}

// SubscriptionEvent holds the fields shared by every subscription event variant.
type SubscriptionEvent struct {
	Envelope
	Data SubscriptionData
}

func (SubscriptionEvent) PayloadType() models.PayloadType {
	return models.PayloadTypeSubscription
}

func (e SubscriptionEvent) ResourceID() string {
	return e.Data.SubscriptionID
}

func (e SubscriptionEvent) TaggedPayloadType() wire.Opt[models.PayloadType] {
	return e.Data.PayloadType
}

func (e SubscriptionEvent) validate(eventType EventType) error {
	return wire.FirstError(
		wire.CheckEnum("type", eventType),
		wire.CheckNested("data", e.Data.Validate()),
	)
}

func (e SubscriptionEvent) encode(eventType EventType) ([]byte, error) {
	payload, err := json.Marshal(e.Data)
	if err != nil {
		return nil, err
	}
	return encodeEvent(e.Envelope, eventType, payload)
}

func (e SubscriptionEvent) clone() SubscriptionEvent {
	return SubscriptionEvent{Envelope: e.Envelope.clone(), Data: e.Data.Clone()}
}

func decodeSubscriptionEvent(env Envelope, payload []byte) (SubscriptionEvent, error) {
	var data SubscriptionData
	if err := data.DecodeWire("data", payload); err != nil {
		return SubscriptionEvent{}, err
	}
	return SubscriptionEvent{Envelope: env, Data: data}, nil
}

// LicenseKeyData is the payload of license key events: the resource plus its
// optional payload_type tag.
type LicenseKeyData struct {
	models.LicenseKey
	PayloadType wire.Opt[models.PayloadType]
}

func (d *LicenseKeyData) DecodeWire(path string, data []byte) error {
	obj, err := wire.DecodeObject(path, data)
	if err != nil {
		return err
	}
	r := wire.NewReader(obj)
	d.LicenseKey.ReadFields(r)
	d.PayloadType = wire.ReadOptional[models.PayloadType](r, payloadTypeKey)
	if err := r.Err(); err != nil {
		return err
	}
	d.LicenseKey.Extra = r.Extras()
	return nil
}

func (d *LicenseKeyData) UnmarshalJSON(data []byte) error {
	return d.DecodeWire("", data)
}

func (d LicenseKeyData) MarshalJSON() ([]byte, error) {
	enc := wire.NewObjectEncoder()
	d.LicenseKey.WriteFields(enc)
	wire.OptField(enc, payloadTypeKey, d.PayloadType)
	enc.Extras(d.LicenseKey.Extra)
	return enc.Bytes()
}

func (d LicenseKeyData) Validate() error {
	return wire.FirstError(
		d.LicenseKey.Validate(),
		wire.CheckOptEnum(payloadTypeKey, d.PayloadType),
	)
}

func (d LicenseKeyData) Clone() LicenseKeyData {
	return LicenseKeyData{LicenseKey: d.LicenseKey.Clone(), PayloadType: d.PayloadType}
}

// LicenseKeyEvent holds the fields shared by every license key event variant.
type LicenseKeyEvent struct {
	Envelope
	Data LicenseKeyData
}

func (LicenseKeyEvent) PayloadType() models.PayloadType {
	return models.PayloadTypeLicenseKey
}

func (e LicenseKeyEvent) ResourceID() string {
	return e.Data.ID
}

func (e LicenseKeyEvent) TaggedPayloadType() wire.Opt[models.PayloadType] {
	return e.Data.PayloadType
}

func (e LicenseKeyEvent) validate(eventType EventType) error {
	return wire.FirstError(
		wire.CheckEnum("type", eventType),
		wire.CheckNested("data", e.Data.Validate()),
	)
}

func (e LicenseKeyEvent) encode(eventType EventType) ([]byte, error) {
	payload, err := json.Marshal(e.Data)
	if err != nil {
		return nil, err
	}
	return encodeEvent(e.Envelope, eventType, payload)
}

func (e LicenseKeyEvent) clone() LicenseKeyEvent {
	return LicenseKeyEvent{Envelope: e.Envelope.clone(), Data: e.Data.Clone()}
}

func decodeLicenseKeyEvent(env Envelope, payload []byte) (LicenseKeyEvent, error) {
	var data LicenseKeyData
	if err := data.DecodeWire("data", payload); err != nil {
		return LicenseKeyEvent{}, err
	}
	return LicenseKeyEvent{Envelope: env, Data: data}, nil
}
