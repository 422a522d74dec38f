package sprites

import "errors"

// Sentinel kinds for sprite fetch errors.
var (
	ErrFetch = errors.New("sprite fetch failed")
)
