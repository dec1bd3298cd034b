package keys

import (
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/friendsofgo/errors"
)

// ErrIncorrectPrivateKey is returned when an input fails the private-key
// grammar: 64 hexadecimal characters with an optional 0x prefix.
var ErrIncorrectPrivateKey = errors.New("incorrect private key")

var privateKeyRe = regexp.MustCompile(`^(0[xX])?[0-9a-fA-F]{64}$`)

// IsPrivateKey reports whether s satisfies the private-key grammar. It says
// nothing about whether the scalar is in range for the curve.
func IsPrivateKey(s string) bool {
	return privateKeyRe.MatchString(s)
}

// Normalize validates raw against the private-key grammar and returns the
// canonical form: lowercase hex with no 0x prefix. Idempotent on its own
// output.
func Normalize(raw string) (string, error) {
	if !IsPrivateKey(raw) {
		return "", ErrIncorrectPrivateKey
	}
	return strings.TrimPrefix(strings.ToLower(raw), "0x"), nil
}

// PublicKeyFromPrivate derives the compressed secp256k1 public key for the
// given private key, rendered as 66 lowercase hex characters.
func PublicKeyFromPrivate(privateKey string) (string, error) {
	normalized, err := Normalize(privateKey)
	if err != nil {
		return "", err
	}

	b, err := hex.DecodeString(normalized)
	if err != nil {
		return "", err
	}

	priv, err := crypto.ToECDSA(b)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(crypto.CompressPubkey(&priv.PublicKey)), nil
}

// Generate returns a fresh random private key in canonical form. The only
// failure mode is the process entropy source, which is not recoverable.
func Generate() string {
	priv, err := crypto.GenerateKey()
	if err != nil {
		panic(err)
	}
	return hex.EncodeToString(crypto.FromECDSA(priv))
}
