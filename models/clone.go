package models

import "github.com/goliatone/go-paywebhooks/wire"

func cloneStrings(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func cloneOptStrings(in wire.Opt[map[string]string]) wire.Opt[map[string]string] {
	return wire.Map(in, cloneStrings)
}

func cloneEach[T any](in []T, clone func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for index, item := range in {
		out[index] = clone(item)
	}
	return out
}

func cloneOptEach[T any](in wire.Opt[[]T], clone func(T) T) wire.Opt[[]T] {
	return wire.Map(in, func(items []T) []T {
		return cloneEach(items, clone)
	})
}

// decodeResource decodes data with fields and stores leftover keys in extra.
func decodeResource(path string, data []byte, fields func(*wire.Reader), extra *wire.Extras) error {
	obj, err := wire.DecodeObject(path, data)
	if err != nil {
		return err
	}
	r := wire.NewReader(obj)
	fields(r)
	if err := r.Err(); err != nil {
		return err
	}
	*extra = r.Extras()
	return nil
}

// encodeResource writes fields followed by extra.
func encodeResource(fields func(*wire.ObjectEncoder), extra wire.Extras) ([]byte, error) {
	enc := wire.NewObjectEncoder()
	fields(enc)
	enc.Extras(extra)
	return enc.Bytes()
}
