package hashutil

import (
	"encoding/hex"

	"lukechampine.com/blake3"
)

// fingerprintHexLen is the number of hex characters kept from the full
// blake3 digest. Long enough to make collisions in logs implausible,
// short enough to stay readable.
const fingerprintHexLen = 12

// Fingerprint returns a short, stable blake3-based identifier for a piece
// of content. Identical content always yields an identical fingerprint.
func Fingerprint(content string) string {
	hash := blake3.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])[:fingerprintHexLen]
}
