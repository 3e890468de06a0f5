package wire

import "fmt"

// Enum is an open string enum: any string decodes, only known values validate.
type Enum interface {
	~string
	IsKnown() bool
}

func CheckEnum[E Enum](path string, v E) error {
	if v.IsKnown() {
		return nil
	}
	return Invalid(path, string(v))
}

// CheckOptEnum validates a held value; unset and null pass.
func CheckOptEnum[E Enum](path string, v Opt[E]) error {
	value, ok := v.Get()
	if !ok {
		return nil
	}
	return CheckEnum(path, value)
}

// CheckNested prefixes the path of a nested validation failure.
func CheckNested(path string, err error) error {
	return WithPrefix(path, err)
}

// CheckEach validates items in order and returns the first failure, with
// the element index in its path.
func CheckEach[T any](path string, items []T, validate func(T) error) error {
	for index, item := range items {
		if err := validate(item); err != nil {
			return WithPrefix(fmt.Sprintf("%s[%d]", path, index), err)
		}
	}
	return nil
}

// FirstError returns the first non-nil error.
func FirstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
