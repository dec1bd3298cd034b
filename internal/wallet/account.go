package wallet

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/hex"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/DIMO-Network/transaction-signer/internal/address"
	"github.com/DIMO-Network/transaction-signer/internal/chain"
	"github.com/DIMO-Network/transaction-signer/internal/keys"
)

// Account is a single signing identity: a private key together with its
// derived public key and checksummed address. Accounts never change after
// construction, so sharing one between readers is safe.
type Account struct {
	key        *ecdsa.PrivateKey
	privateKey string
	publicKey  string
	address    string
}

// NewAccount builds an account from a raw private key, deriving the public
// key and address. The key may carry a 0x prefix and any case.
func NewAccount(privateKey string) (*Account, error) {
	normalized, err := keys.Normalize(privateKey)
	if err != nil {
		return nil, err
	}

	b, err := hex.DecodeString(normalized)
	if err != nil {
		return nil, err
	}

	key, err := crypto.ToECDSA(b)
	if err != nil {
		return nil, err
	}

	publicKey := hex.EncodeToString(crypto.CompressPubkey(&key.PublicKey))

	addr, err := address.FromPublicKey(publicKey)
	if err != nil {
		return nil, err
	}

	return &Account{
		key:        key,
		privateKey: normalized,
		publicKey:  publicKey,
		address:    addr,
	}, nil
}

// Address returns the checksummed address.
func (a *Account) Address() string {
	return a.address
}

// PublicKey returns the compressed public key as lowercase hex.
func (a *Account) PublicKey() string {
	return a.publicKey
}

// PrivateKey returns the private key in canonical hex form.
func (a *Account) PrivateKey() string {
	return a.privateKey
}

// Sign signs the SHA-256 digest of data with the account key, producing a
// 65-byte [R || S || V] signature.
func (a *Account) Sign(data []byte) ([]byte, error) {
	digest := sha256.Sum256(data)
	return crypto.Sign(digest[:], a.key)
}

// SignTransaction stamps the account as the transaction's signer and signs
// the canonical payload. The transaction is modified in place and returned.
func (a *Account) SignTransaction(tx *chain.Transaction) (*chain.Transaction, error) {
	tx.PubKey = a.publicKey

	payload, err := tx.SignableBytes()
	if err != nil {
		return nil, err
	}

	sig, err := a.Sign(payload)
	if err != nil {
		return nil, err
	}

	tx.Signature = hex.EncodeToString(sig)
	return tx, nil
}
