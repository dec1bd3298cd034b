package wallet

import (
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DIMO-Network/transaction-signer/internal/chain"
	"github.com/DIMO-Network/transaction-signer/internal/keys"
)

const (
	testPrivateKey = "d96e9eb5b782a80ea153c937fa83e5948485fbfc8b7e7c069d7b914dbc350aba"
	testPublicKey  = "03bfad0f0b53cff5213b5947f3ddd66acee8906aba3610c111915aecc84092e052"
	testAddress    = "0x381f4008505e940AD7681EC3468a719060caF796"
)

func TestNewAccount(t *testing.T) {
	account, err := NewAccount(testPrivateKey)
	require.NoError(t, err)

	assert.Equal(t, testPrivateKey, account.PrivateKey())
	assert.Equal(t, testPublicKey, account.PublicKey())
	assert.Equal(t, testAddress, account.Address())
}

func TestNewAccountNormalizesInput(t *testing.T) {
	account, err := NewAccount("0x" + strings.ToUpper(testPrivateKey))
	require.NoError(t, err)

	assert.Equal(t, testPrivateKey, account.PrivateKey())
	assert.Equal(t, testAddress, account.Address())
}

func TestNewAccountRejectsMalformedKeys(t *testing.T) {
	_, err := NewAccount("not a key")
	require.ErrorIs(t, err, keys.ErrIncorrectPrivateKey)

	_, err = NewAccount(testPrivateKey[:63])
	require.ErrorIs(t, err, keys.ErrIncorrectPrivateKey)
}

func TestSignTransactionRecoverable(t *testing.T) {
	account, err := NewAccount(testPrivateKey)
	require.NoError(t, err)

	tx := &chain.Transaction{
		Version:  chain.Version(333, 1),
		Nonce:    17,
		ToAddr:   testAddress,
		Amount:   big.NewInt(1000000),
		GasPrice: big.NewInt(2000000000),
		GasLimit: 50,
	}

	signed, err := account.SignTransaction(tx)
	require.NoError(t, err)

	assert.Equal(t, testPublicKey, signed.PubKey)
	require.True(t, signed.Signed())

	sig, err := hex.DecodeString(signed.Signature)
	require.NoError(t, err)
	require.Len(t, sig, 65)

	payload, err := signed.SignableBytes()
	require.NoError(t, err)
	digest := sha256.Sum256(payload)

	recovered, err := crypto.Ecrecover(digest[:], sig)
	require.NoError(t, err)

	pub, err := crypto.UnmarshalPubkey(recovered)
	require.NoError(t, err)

	assert.Equal(t, testPublicKey, hex.EncodeToString(crypto.CompressPubkey(pub)))
}

func TestSignCoversWholePayload(t *testing.T) {
	account, err := NewAccount(testPrivateKey)
	require.NoError(t, err)

	first, err := account.Sign([]byte("some payload"))
	require.NoError(t, err)

	second, err := account.Sign([]byte("some other payload"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
