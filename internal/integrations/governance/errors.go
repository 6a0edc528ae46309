package governance

import "errors"

var (
	// ErrInternal is returned on client-side failures (request build,
	// transport).
	ErrInternal = errors.New("governance client: internal error")

	// ErrInvalidResponse is returned when the governance service answers
	// with an unexpected status or body.
	ErrInvalidResponse = errors.New("governance client: invalid response")
)
