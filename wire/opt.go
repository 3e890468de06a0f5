package wire

import "encoding/json"

type optState uint8

const (
	optUnset optState = iota
	optNull
	optValue
)

// Opt is an optional wire field. The zero value is unset: the key is absent
// on the wire. Null means the key was present with a JSON null.
type Opt[T any] struct {
	value T
	state optState
}

func Value[T any](v T) Opt[T] {
	return Opt[T]{value: v, state: optValue}
}

func Null[T any]() Opt[T] {
	return Opt[T]{state: optNull}
}

func Unset[T any]() Opt[T] {
	return Opt[T]{}
}

// IsSet reports whether the key was present on the wire, null or not.
func (o Opt[T]) IsSet() bool {
	return o.state != optUnset
}

func (o Opt[T]) IsNull() bool {
	return o.state == optNull
}

func (o Opt[T]) HasValue() bool {
	return o.state == optValue
}

// IsZero lets encoding/json omit unset fields tagged omitzero.
func (o Opt[T]) IsZero() bool {
	return o.state == optUnset
}

func (o Opt[T]) Get() (T, bool) {
	if o.state != optValue {
		var zero T
		return zero, false
	}
	return o.value, true
}

func (o Opt[T]) Or(fallback T) T {
	if o.state != optValue {
		return fallback
	}
	return o.value
}

func (o Opt[T]) Ptr() *T {
	if o.state != optValue {
		return nil
	}
	v := o.value
	return &v
}

func (o Opt[T]) String() string {
	switch o.state {
	case optNull:
		return "null"
	case optValue:
		raw, err := marshalValue(o.value)
		if err != nil {
			return "<invalid>"
		}
		return string(raw)
	default:
		return "unset"
	}
}

// Map transforms the held value, keeping unset and null states.
func Map[T, U any](o Opt[T], fn func(T) U) Opt[U] {
	switch o.state {
	case optNull:
		return Null[U]()
	case optValue:
		return Value(fn(o.value))
	default:
		return Opt[U]{}
	}
}

func FromPtr[T any](v *T) Opt[T] {
	if v == nil {
		return Null[T]()
	}
	return Value(*v)
}

func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if o.state != optValue {
		return []byte("null"), nil
	}
	return marshalValue(o.value)
}

func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*o = Null[T]()
		return nil
	}
	v, err := decodeValue[T]("", data)
	if err != nil {
		return err
	}
	*o = Value(v)
	return nil
}

var (
	_ json.Marshaler   = Opt[string]{}
	_ json.Unmarshaler = (*Opt[string])(nil)
)
