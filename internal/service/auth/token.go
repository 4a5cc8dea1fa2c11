package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Raw token length in bytes, hex encoding doubles it on the wire
const accessTokenBytesLen = 64

// NewAccessToken returns a fresh opaque access token: 64 bytes from a
// cryptographically secure source, hex encoded to 128 characters.
// Collisions are not re-checked here, the unique index on the store is enough
func NewAccessToken() (string, error) {
	b := make([]byte, accessTokenBytesLen)

	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("error while generating access token. Err: %w", err)
	}

	return hex.EncodeToString(b), nil
}
