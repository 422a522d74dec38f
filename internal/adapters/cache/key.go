// Package cache provides the response cache and content-addressed key
// derivation for rendered infographics.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Key derives a fixed-length deterministic digest from the raw, unparsed
// request body. Identical byte sequences always produce identical keys; the
// body is not canonicalized first, so any byte difference (field order,
// whitespace) may produce a different key.
func Key(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
