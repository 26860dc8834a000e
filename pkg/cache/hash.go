package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a namespaced cache key: prefix + ":" + SHA-256 over the
// JSON encoding of parts. The full 64-char digest keeps collisions
// implausible even across millions of cached renders.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex-encoded SHA-256 digest of data. The pipeline hashes
// serialized tree documents with this to derive content keys for art and
// artifact caching.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
