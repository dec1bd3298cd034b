package address

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// InvalidAddressError is returned when an input fails the address grammar of
// exactly 40 hexadecimal characters.
type InvalidAddressError struct {
	Address string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid address %q", e.Address)
}

var addressRe = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)

// IsAddress reports whether s is 40 hex characters, ignoring an optional 0x
// prefix. Case and checksum are not considered.
func IsAddress(s string) bool {
	return addressRe.MatchString(strings.TrimPrefix(s, "0x"))
}

// ToChecksum re-encodes a 20-byte hex address in the mixed-case checksum
// format: the address bytes are hashed with SHA-256, the digest is read as a
// big-endian integer, and the letter at position i is uppercased exactly
// when bit 255-6*i of that integer is set. Digits pass through unchanged.
// The output always carries a 0x prefix.
//
// The 6-bit stride is part of the address format. Every deployed address
// depends on it, so it must never change.
func ToChecksum(address string) (string, error) {
	stripped := strings.TrimPrefix(address, "0x")
	if !addressRe.MatchString(stripped) {
		return "", &InvalidAddressError{Address: stripped}
	}
	stripped = strings.ToLower(stripped)

	raw, err := hex.DecodeString(stripped)
	if err != nil {
		// Unreachable after the grammar check.
		return "", err
	}

	sum := sha256.Sum256(raw)
	v := new(big.Int).SetBytes(sum[:])

	out := make([]byte, 0, len(stripped)+2)
	out = append(out, "0x"...)

	for i := 0; i < len(stripped); i++ {
		c := stripped[i]
		if c >= 'a' && c <= 'f' && v.Bit(255-6*i) == 1 {
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}

	return string(out), nil
}

// IsValidChecksum reports whether address matches its own checksummed form
// byte for byte. Since ToChecksum output is always 0x-prefixed and mixed
// case, a bare or lowercase address with letters in it never passes.
func IsValidChecksum(address string) (bool, error) {
	checksummed, err := ToChecksum(address)
	if err != nil {
		return false, err
	}
	return checksummed == address, nil
}
