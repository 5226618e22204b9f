package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns a short, non-reversible label for a secret so logs can
// tell two tokens apart without ever printing them.
func Fingerprint(secret string) string {
	if secret == "" {
		return "none"
	}
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:4])
}
