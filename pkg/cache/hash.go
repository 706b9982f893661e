package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a cache key by hashing the JSON encoding of the parts.
// The key format is prefix:hex(sha256(parts)).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
// The pipeline uses it to fingerprint canonical graph and layout bytes.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
