package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Decodable is implemented by payload objects that decode themselves and
// report failures relative to path.
type Decodable interface {
	DecodeWire(path string, data []byte) error
}

// Object is a JSON object split into raw members. Each lookup marks its key
// as consumed; the rest are returned by Extras.
type Object struct {
	path     string
	members  map[string]json.RawMessage
	consumed map[string]struct{}
}

func DecodeObject(path string, data []byte) (*Object, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, Malformed(path, fmt.Errorf("empty document"))
	}
	if trimmed[0] != '{' {
		return nil, Malformed(path, fmt.Errorf("expected JSON object"))
	}
	members := map[string]json.RawMessage{}
	if err := json.Unmarshal(trimmed, &members); err != nil {
		return nil, Malformed(path, err)
	}
	return &Object{
		path:     path,
		members:  members,
		consumed: make(map[string]struct{}, len(members)),
	}, nil
}

func (o *Object) Path() string {
	if o == nil {
		return ""
	}
	return o.path
}

// FieldPath returns the absolute path of key within the object.
func (o *Object) FieldPath(key string) string {
	return JoinPath(o.Path(), key)
}

func (o *Object) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.members[key]
	return ok
}

// Raw returns the undecoded member and marks it consumed.
func (o *Object) Raw(key string) (json.RawMessage, bool) {
	if o == nil {
		return nil, false
	}
	raw, ok := o.members[key]
	if ok {
		o.consumed[key] = struct{}{}
	}
	return raw, ok
}

// Extras returns the members no lookup consumed, compacted, or nil.
func (o *Object) Extras() Extras {
	if o == nil || len(o.members) == len(o.consumed) {
		return nil
	}
	out := Extras{}
	for key, raw := range o.members {
		if _, ok := o.consumed[key]; ok {
			continue
		}
		out[key] = compactRaw(raw)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Required decodes a member that must be present and non-null.
func Required[T any](o *Object, key string) (T, error) {
	var zero T
	raw, ok := o.Raw(key)
	if !ok {
		return zero, Malformed(o.FieldPath(key), fmt.Errorf("required key is missing"))
	}
	if isNull(raw) {
		return zero, Malformed(o.FieldPath(key), fmt.Errorf("required key is null"))
	}
	return decodeValue[T](o.FieldPath(key), raw)
}

// Nullable decodes an optional member that may be null.
func Nullable[T any](o *Object, key string) (Opt[T], error) {
	raw, ok := o.Raw(key)
	if !ok {
		return Opt[T]{}, nil
	}
	if isNull(raw) {
		return Null[T](), nil
	}
	v, err := decodeValue[T](o.FieldPath(key), raw)
	if err != nil {
		return Opt[T]{}, err
	}
	return Value(v), nil
}

// Optional decodes an optional member that must not be null when present.
func Optional[T any](o *Object, key string) (Opt[T], error) {
	raw, ok := o.Raw(key)
	if !ok {
		return Opt[T]{}, nil
	}
	if isNull(raw) {
		return Opt[T]{}, Malformed(o.FieldPath(key), fmt.Errorf("key is not nullable"))
	}
	v, err := decodeValue[T](o.FieldPath(key), raw)
	if err != nil {
		return Opt[T]{}, err
	}
	return Value(v), nil
}

// RequiredList decodes a required array, reporting element failures by index.
func RequiredList[T any](o *Object, key string) ([]T, error) {
	raw, ok := o.Raw(key)
	if !ok {
		return nil, Malformed(o.FieldPath(key), fmt.Errorf("required key is missing"))
	}
	if isNull(raw) {
		return nil, Malformed(o.FieldPath(key), fmt.Errorf("required key is null"))
	}
	return decodeList[T](o.FieldPath(key), raw)
}

// NullableList decodes an optional array that may be null.
func NullableList[T any](o *Object, key string) (Opt[[]T], error) {
	raw, ok := o.Raw(key)
	if !ok {
		return Opt[[]T]{}, nil
	}
	if isNull(raw) {
		return Null[[]T](), nil
	}
	items, err := decodeList[T](o.FieldPath(key), raw)
	if err != nil {
		return Opt[[]T]{}, err
	}
	return Value(items), nil
}

func decodeList[T any](path string, raw json.RawMessage) ([]T, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, Malformed(path, err)
	}
	out := make([]T, 0, len(elements))
	for index, element := range elements {
		item, err := decodeValue[T](fmt.Sprintf("%s[%d]", path, index), element)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func decodeValue[T any](path string, raw json.RawMessage) (T, error) {
	var v T
	switch target := any(&v).(type) {
	case *time.Time:
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return v, Malformed(path, err)
		}
		parsed, err := ParseTime(text)
		if err != nil {
			return v, Malformed(path, err)
		}
		*target = parsed
	case Decodable:
		if err := target.DecodeWire(path, raw); err != nil {
			return v, err
		}
	default:
		if err := json.Unmarshal(raw, &v); err != nil {
			return v, Malformed(path, err)
		}
	}
	return v, nil
}

func isNull(raw []byte) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func compactRaw(raw json.RawMessage) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return append(json.RawMessage(nil), raw...)
	}
	return json.RawMessage(buf.Bytes())
}

// Extras holds members of a decoded object that no field claimed.
type Extras map[string]json.RawMessage

func (e Extras) Has(key string) bool {
	_, ok := e[key]
	return ok
}

func (e Extras) Keys() []string {
	keys := make([]string, 0, len(e))
	for key := range e {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (e Extras) Clone() Extras {
	if e == nil {
		return nil
	}
	out := make(Extras, len(e))
	for key, raw := range e {
		out[key] = append(json.RawMessage(nil), raw...)
	}
	return out
}

// Set stores value under key, replacing any existing member.
func (e *Extras) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if *e == nil {
		*e = Extras{}
	}
	(*e)[key] = compactRaw(raw)
	return nil
}
