// Package codec implements the content-hashing and compression primitives
// shared by the object store, the index, and the commit graph: SHA-1
// digests rendered as 40 lowercase hex characters, deflate compression
// for everything that lands on disk, and the digest-to-path fan-out
// layout (xx/yyyyy…) used by the object store.
package codec

import (
	"crypto/sha1"
	"encoding/hex"
)

// DigestSize is the length in hex characters of every digest this codec
// produces (40 for SHA-1).
const DigestSize = 40

// HashBytes returns the 40-hex-character SHA-1 digest of data.
func HashBytes(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}
