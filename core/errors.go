package core

import (
	stderrors "errors"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ServiceErrorBadInput        = "PAYWEBHOOKS_BAD_INPUT"
	ServiceErrorMalformedInput  = "PAYWEBHOOKS_MALFORMED_INPUT"
	ServiceErrorInvalidData     = "PAYWEBHOOKS_INVALID_DATA"
	ServiceErrorUnauthorized    = "PAYWEBHOOKS_UNAUTHORIZED"
	ServiceErrorNotFound        = "PAYWEBHOOKS_NOT_FOUND"
	ServiceErrorConflict        = "PAYWEBHOOKS_CONFLICT"
	ServiceErrorRateLimited     = "PAYWEBHOOKS_RATE_LIMITED"
	ServiceErrorOperationFailed = "PAYWEBHOOKS_OPERATION_FAILED"
	ServiceErrorInternal        = "PAYWEBHOOKS_INTERNAL_ERROR"
)

// serviceEnvelopeError is implemented by typed errors that know their own envelope.
type serviceEnvelopeError interface {
	ToServiceError() *goerrors.Error
}

// MapError maps err to a go-errors envelope with a stable text code and HTTP status.
func MapError(err error) *goerrors.Error {
	return serviceErrorMapper(err)
}

func serviceErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureServiceErrorEnvelope(richErr)
	}

	var typed serviceEnvelopeError
	if stderrors.As(err, &typed) {
		return ensureServiceErrorEnvelope(typed.ToServiceError())
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "malformed"):
		return newServiceError(err.Error(), goerrors.CategoryBadInput, ServiceErrorMalformedInput)
	case strings.Contains(msg, "signature"), strings.Contains(msg, "unauthorized"):
		return newServiceError(err.Error(), goerrors.CategoryAuth, ServiceErrorUnauthorized)
	case strings.Contains(msg, "not found"):
		return newServiceError(err.Error(), goerrors.CategoryNotFound, ServiceErrorNotFound)
	case strings.Contains(msg, "already claimed"), strings.Contains(msg, "in flight"):
		return newServiceError(err.Error(), goerrors.CategoryConflict, ServiceErrorConflict)
	case strings.Contains(msg, "throttl"), strings.Contains(msg, "rate limit"):
		return newServiceError(err.Error(), goerrors.CategoryRateLimit, ServiceErrorRateLimited)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"), strings.Contains(msg, "mismatch"):
		return newServiceError(err.Error(), goerrors.CategoryBadInput, ServiceErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureServiceErrorEnvelope(mapped)
}

func newServiceError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureServiceErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

// EnsureServiceErrorEnvelope fills missing code and text code on err.
func EnsureServiceErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	return ensureServiceErrorEnvelope(err)
}

func ensureServiceErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = ServiceHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultServiceTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultServiceTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput:
		return ServiceErrorBadInput
	case goerrors.CategoryValidation:
		return ServiceErrorInvalidData
	case goerrors.CategoryNotFound:
		return ServiceErrorNotFound
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return ServiceErrorUnauthorized
	case goerrors.CategoryConflict:
		return ServiceErrorConflict
	case goerrors.CategoryRateLimit:
		return ServiceErrorRateLimited
	case goerrors.CategoryOperation, goerrors.CategoryExternal:
		return ServiceErrorOperationFailed
	default:
		return ServiceErrorInternal
	}
}

// ServiceHTTPStatus returns the HTTP status associated with an error category.
func ServiceHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput:
		return http.StatusBadRequest
	case goerrors.CategoryValidation:
		return http.StatusUnprocessableEntity
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryRateLimit:
		return http.StatusTooManyRequests
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
