package mapping

import (
	"crypto/sha256"
	"encoding/hex"
)

const digestLength = 16

// Digest content-addresses a PDF: the first 16 hex characters of the
// SHA-256 of its raw bytes. Truncation keeps keys compact; 64 bits of
// digest is ample for a per-user cache.
func Digest(pdf []byte) string {
	sum := sha256.Sum256(pdf)
	return hex.EncodeToString(sum[:])[:digestLength]
}
