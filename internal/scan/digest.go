package scan

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Digest returns the hex-encoded blake2b-256 digest of file content.
// Digests are recorded in the snapshot so downstream suggestion caching can
// detect when a file changed between runs.
func Digest(content []byte) string {
	sum := blake2b.Sum256(content)
	return hex.EncodeToString(sum[:])
}
