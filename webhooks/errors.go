package webhooks

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goliatone/go-paywebhooks/core"
	"github.com/goliatone/go-paywebhooks/events"

	goerrors "github.com/goliatone/go-errors"
)

func unauthorized(format string, args ...any) error {
	return goerrors.New(fmt.Sprintf(format, args...), goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(core.ServiceErrorUnauthorized)
}

// isPermanent reports decode and validation failures that no retry can fix.
func isPermanent(err error) bool {
	return errors.Is(err, events.ErrMalformedInput) || errors.Is(err, events.ErrInvalidData)
}

// statusFor returns the HTTP status answered for a processing error.
func statusFor(err error) int {
	if mapped := core.MapError(err); mapped != nil && mapped.Code != 0 {
		return mapped.Code
	}
	return http.StatusInternalServerError
}
