package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// hasherPool is a package-level pool of reusable SHA-256 hash instances.
var hasherPool = sync.Pool{
	New: func() any {
		return sha256.New()
	},
}

// Hash computes the SHA-256 digest of data using a hasher pulled from the
// pool.
//
// Example usage:
//
//	digest := utils.Hash([]byte("BEGIN:VCARD..."))
func Hash(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return sum
}

// ETag returns a strong entity tag for a stored document: the quoted,
// hex-encoded SHA-256 of its serialized form.
func ETag(data []byte) string {
	return `"` + hex.EncodeToString(Hash(data)) + `"`
}
