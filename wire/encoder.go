package wire

import (
	"bytes"
	"encoding/json"
	"reflect"
	"time"
)

// ObjectEncoder writes a JSON object with known fields in call order
// followed by the extras, sorted by key. The first error sticks.
type ObjectEncoder struct {
	buf     bytes.Buffer
	written map[string]struct{}
	err     error
}

func NewObjectEncoder() *ObjectEncoder {
	e := &ObjectEncoder{written: map[string]struct{}{}}
	e.buf.WriteByte('{')
	return e
}

// Field writes key with v.
func Field[T any](e *ObjectEncoder, key string, v T) {
	if e.err != nil {
		return
	}
	raw, err := marshalValue(v)
	if err != nil {
		e.err = err
		return
	}
	e.Raw(key, raw)
}

// OptField writes key for set values: null or the value. Unset is skipped.
func OptField[T any](e *ObjectEncoder, key string, v Opt[T]) {
	switch v.state {
	case optNull:
		e.Raw(key, json.RawMessage("null"))
	case optValue:
		Field(e, key, v.value)
	}
}

func (e *ObjectEncoder) Raw(key string, raw json.RawMessage) {
	if e.err != nil {
		return
	}
	if _, ok := e.written[key]; ok {
		return
	}
	if len(e.written) > 0 {
		e.buf.WriteByte(',')
	}
	name, err := json.Marshal(key)
	if err != nil {
		e.err = err
		return
	}
	e.buf.Write(name)
	e.buf.WriteByte(':')
	e.buf.Write(raw)
	e.written[key] = struct{}{}
}

// Extras writes every extra member whose key was not already written.
func (e *ObjectEncoder) Extras(extras Extras) {
	for _, key := range extras.Keys() {
		e.Raw(key, extras[key])
	}
}

func (e *ObjectEncoder) Bytes() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	out := make([]byte, 0, e.buf.Len()+1)
	out = append(out, e.buf.Bytes()...)
	return append(out, '}'), nil
}

// marshalValue encodes v, rendering time as RFC 3339 and nil slices and maps
// as empty collections.
func marshalValue[T any](v T) ([]byte, error) {
	switch typed := any(v).(type) {
	case time.Time:
		return json.Marshal(FormatTime(typed))
	case json.RawMessage:
		if len(typed) == 0 {
			return []byte("null"), nil
		}
		return typed, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(raw) == "null" {
		switch reflect.TypeOf((*T)(nil)).Elem().Kind() {
		case reflect.Slice:
			return []byte("[]"), nil
		case reflect.Map:
			return []byte("{}"), nil
		}
	}
	return raw, nil
}
