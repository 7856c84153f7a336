// Package security provides id generation, credential hashing, and JWT
// signing.
package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/oklog/ulid/v2"
)

// GenerateULID returns a new ULID string. Used for every entity id.
func GenerateULID() string {
	return ulid.Make().String()
}

// GenerateSecureKey returns length hex characters of cryptographically secure
// randomness, suitable for a JWT signing secret.
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length/2)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
