package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashString creates a SHA-256 hash of the input string
func HashString(input string) string {
	h := sha256.New()
	h.Write([]byte(input))

	return hex.EncodeToString(h.Sum(nil))
}

// NormalizeEmail trims and lowercases an address so it can serve as the
// de-duplication key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailDigest is the short form of an email used in logs.
func EmailDigest(email string) string {
	return HashString(NormalizeEmail(email))[:12]
}
