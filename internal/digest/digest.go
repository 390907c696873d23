// Package digest computes the hex-encoded SHA-256 digests that identity
// tables store in their *_sha / *_sha256 columns.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
)

// Size is the length of a hex-encoded digest.
const Size = sha256.Size * 2

// Hex returns the lowercase hex SHA-256 digest of data.
// The digest covers the raw bytes only - no domain prefix, no separator -
// so it matches digests produced by the ingestion scripts.
func Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// String is Hex over the UTF-8 bytes of s.
func String(s string) string {
	return Hex([]byte(s))
}

// Strings digests every candidate, preserving order.
func Strings(candidates []string) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = String(c)
	}
	return out
}
