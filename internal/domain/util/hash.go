package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// CalculateHash computes the hex-encoded SHA-256 of content.
func CalculateHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
