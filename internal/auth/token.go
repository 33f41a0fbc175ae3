// Package auth provides bearer token utilities and request identity plumbing.
package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// NewToken generates a fresh opaque bearer token for a newly registered user.
// The token is random, immutable, and never rotated.
func NewToken() string {
	return uuid.NewString()
}

// QuickHash returns a short non-cryptographic-strength digest of the token,
// used as a cache key so raw credentials are never written to Redis.
func QuickHash(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:16])
}
