package repository

import "errors"

// Sentinel kinds for lookup-store errors.
var (
	ErrLoadTable = errors.New("lookup table load failed")
)
