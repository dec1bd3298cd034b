package address

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// FromPublicKey hashes a hex-encoded public key with SHA-256 and returns the
// checksummed address built from the last 20 bytes of the digest. An
// optional 0x prefix and uppercase hex are accepted.
func FromPublicKey(publicKey string) (string, error) {
	normalized := strings.TrimPrefix(strings.ToLower(publicKey), "0x")

	raw, err := hex.DecodeString(normalized)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(raw)
	return ToChecksum(hex.EncodeToString(sum[12:]))
}
