package wire

// Reader walks the fields of an Object and keeps the first decode error.
// Reads after a failure return zero values.
type Reader struct {
	obj *Object
	err error
}

func NewReader(obj *Object) *Reader {
	return &Reader{obj: obj}
}

func (r *Reader) Object() *Object {
	return r.obj
}

func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) Extras() Extras {
	if r.err != nil {
		return nil
	}
	return r.obj.Extras()
}

func Read[T any](r *Reader, key string) T {
	return readWith(r, key, Required[T])
}

func ReadNullable[T any](r *Reader, key string) Opt[T] {
	return readWith(r, key, Nullable[T])
}

func ReadOptional[T any](r *Reader, key string) Opt[T] {
	return readWith(r, key, Optional[T])
}

func ReadList[T any](r *Reader, key string) []T {
	return readWith(r, key, RequiredList[T])
}

func ReadNullableList[T any](r *Reader, key string) Opt[[]T] {
	return readWith(r, key, NullableList[T])
}

func readWith[V any](r *Reader, key string, read func(*Object, string) (V, error)) V {
	var zero V
	if r.err != nil {
		return zero
	}
	v, err := read(r.obj, key)
	if err != nil {
		r.err = err
		return zero
	}
	return v
}
