package events

import "github.com/goliatone/go-paywebhooks/wire"

type (
	MalformedInputError = wire.MalformedInputError
	InvalidDataError    = wire.InvalidDataError
)

var (
	ErrMalformedInput = wire.ErrMalformedInput
	ErrInvalidData    = wire.ErrInvalidData
)
