package extract

import "errors"

// Sentinel kinds for extraction errors.
var (
	ErrReadDocument    = errors.New("upstream document unreadable")
	ErrParseDocument   = errors.New("upstream document unparsable")
	ErrReadMultipliers = errors.New("multiplier document unreadable")
	ErrWriteTable      = errors.New("table write failed")
)
