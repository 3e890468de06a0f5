package wire

import (
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-paywebhooks/core"

	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrMalformedInput = errors.New("malformed input")
	ErrInvalidData    = errors.New("invalid data")
)

// MalformedInputError reports a body that cannot be decoded: invalid JSON,
// a missing required key or a value of the wrong JSON type.
type MalformedInputError struct {
	Path  string
	Cause error
}

func (e *MalformedInputError) Error() string {
	if e == nil {
		return ErrMalformedInput.Error()
	}
	msg := ErrMalformedInput.Error()
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *MalformedInputError) Unwrap() error {
	if e == nil {
		return nil
	}
	if e.Cause == nil {
		return ErrMalformedInput
	}
	return errors.Join(ErrMalformedInput, e.Cause)
}

func (e *MalformedInputError) ToServiceError() *goerrors.Error {
	out := goerrors.New(e.Error(), goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.ServiceErrorMalformedInput)
	if e != nil && e.Path != "" {
		out = out.WithMetadata(map[string]any{"path": e.Path})
	}
	return out
}

// InvalidDataError reports an enum field holding a value outside its known set.
type InvalidDataError struct {
	Path  string
	Value string
}

func (e *InvalidDataError) Error() string {
	if e == nil {
		return ErrInvalidData.Error()
	}
	return ErrInvalidData.Error() + " at " + e.Path + ": unknown value " + quote(e.Value)
}

func (e *InvalidDataError) Unwrap() error {
	return ErrInvalidData
}

func (e *InvalidDataError) ToServiceError() *goerrors.Error {
	fieldPath, value := "", ""
	if e != nil {
		fieldPath, value = e.Path, e.Value
	}
	return goerrors.NewValidation(e.Error(), goerrors.FieldError{
		Field:   fieldPath,
		Message: "unknown value " + quote(value),
	}).
		WithCode(http.StatusUnprocessableEntity).
		WithTextCode(core.ServiceErrorInvalidData).
		WithMetadata(map[string]any{"path": fieldPath, "value": value})
}

func Malformed(path string, cause error) error {
	return &MalformedInputError{Path: path, Cause: cause}
}

func Invalid(path string, value string) error {
	return &InvalidDataError{Path: path, Value: value}
}

// WithPrefix re-roots the path carried by err under prefix. Errors without
// a path are returned unchanged.
func WithPrefix(prefix string, err error) error {
	if err == nil || prefix == "" {
		return err
	}
	var malformed *MalformedInputError
	if errors.As(err, &malformed) {
		return &MalformedInputError{Path: JoinPath(prefix, malformed.Path), Cause: malformed.Cause}
	}
	var invalid *InvalidDataError
	if errors.As(err, &invalid) {
		return &InvalidDataError{Path: JoinPath(prefix, invalid.Path), Value: invalid.Value}
	}
	return err
}

// JoinPath joins dotted field paths; index segments such as "[2]" attach
// without a dot.
func JoinPath(prefix string, path string) string {
	switch {
	case prefix == "":
		return path
	case path == "":
		return prefix
	case strings.HasPrefix(path, "["):
		return prefix + path
	default:
		return prefix + "." + path
	}
}

func quote(s string) string {
	return `"` + s + `"`
}
