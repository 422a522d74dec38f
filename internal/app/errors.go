package app

import (
	"errors"
	"fmt"
)

// ErrBadInput marks client-input failures: malformed bodies, missing or
// mis-shaped required fields, unknown species. The HTTP layer maps it to a
// 400 response carrying the message.
var ErrBadInput = errors.New("invalid request")

// ErrNotConfigured reports a Service started without its lookup stores.
var ErrNotConfigured = errors.New("service missing lookup stores")

// badInput builds a client-input error with a human-readable message naming
// the offending field or value.
func badInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadInput, fmt.Sprintf(format, args...))
}
