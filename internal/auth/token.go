package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

// sessionTokenBytes matches the entropy of the original token generator.
const sessionTokenBytes = 32

// NewSessionToken mints an opaque url-safe bearer token. The token carries no
// claims; it is only meaningful as a lookup key against the user table.
func NewSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// NewTwoFactorSecret mints a per-user shared secret for one-time codes.
func NewTwoFactorSecret() string {
	return uuid.NewString()
}
