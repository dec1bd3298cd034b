package chain

import (
	"encoding/json"
	"math/big"
)

// Transaction is a chain transaction in the shape the signing pipeline
// passes around. Amounts are in the chain's smallest unit.
type Transaction struct {
	Version uint32 `json:"version"`

	// Nonce zero means "not assigned yet"; the wallet fetches and assigns
	// the next nonce during signing. Callers cannot request nonce 0 through
	// that path.
	Nonce uint64 `json:"nonce"`

	ToAddr   string   `json:"toAddr"`
	Amount   *big.Int `json:"amount"`
	GasPrice *big.Int `json:"gasPrice"`
	GasLimit uint64   `json:"gasLimit"`
	Code     string   `json:"code,omitempty"`
	Data     string   `json:"data,omitempty"`

	// PubKey is the compressed public key of the account that must sign.
	// Empty lets the wallet fall back to its default account.
	PubKey string `json:"pubKey,omitempty"`

	// Signature is empty until the transaction passes through a wallet.
	Signature string `json:"signature,omitempty"`
}

// Version packs a chain id and message version into the transaction version
// field.
func Version(chainID, msgVersion uint32) uint32 {
	return chainID<<16 | msgVersion
}

// Signed reports whether the transaction carries a signature.
func (t *Transaction) Signed() bool {
	return t.Signature != ""
}

// SignableBytes returns the canonical encoding covered by the signature:
// every field except the signature itself, in declaration order, with no
// fields omitted.
func (t *Transaction) SignableBytes() ([]byte, error) {
	return json.Marshal(struct {
		Version  uint32   `json:"version"`
		Nonce    uint64   `json:"nonce"`
		ToAddr   string   `json:"toAddr"`
		Amount   *big.Int `json:"amount"`
		GasPrice *big.Int `json:"gasPrice"`
		GasLimit uint64   `json:"gasLimit"`
		Code     string   `json:"code"`
		Data     string   `json:"data"`
		PubKey   string   `json:"pubKey"`
	}{t.Version, t.Nonce, t.ToAddr, t.Amount, t.GasPrice, t.GasLimit, t.Code, t.Data, t.PubKey})
}
