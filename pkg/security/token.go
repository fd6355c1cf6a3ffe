package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const verificationTokenBytes = 32

// GenerateVerificationToken produces an opaque single-use token suitable for
// email verification links.
func GenerateVerificationToken() (string, error) {
	bytes := make([]byte, verificationTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generating verification token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
