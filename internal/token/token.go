// Package token generates the opaque secrets used as unsubscribe and access
// tokens. Tokens come from crypto/rand and are never reused across accounts.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const tokenBytes = 32

// New returns a URL-safe random token.
func New() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
