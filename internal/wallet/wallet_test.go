package wallet

import (
	"context"
	"math/big"
	"testing"

	"github.com/friendsofgo/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/DIMO-Network/transaction-signer/internal/address"
	"github.com/DIMO-Network/transaction-signer/internal/chain"
	"github.com/DIMO-Network/transaction-signer/internal/keys"
	"github.com/DIMO-Network/transaction-signer/internal/mocks"
	"github.com/DIMO-Network/transaction-signer/internal/provider"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

type WalletTestSuite struct {
	suite.Suite

	mockCtrl *gomock.Controller
	provider *mocks.MockProvider
	wallet   *Wallet
}

func TestWalletTestSuite(t *testing.T) {
	suite.Run(t, new(WalletTestSuite))
}

func (s *WalletTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.provider = mocks.NewMockProvider(s.mockCtrl)
	s.wallet = New(s.provider)
}

func (s *WalletTestSuite) TestFirstAccountBecomesDefault() {
	addr, err := s.wallet.AddByPrivateKey(testPrivateKey)
	s.Require().NoError(err)
	s.Require().Equal(testAddress, addr)

	valid, err := address.IsValidChecksum(addr)
	s.Require().NoError(err)
	s.True(valid)

	s.Require().NotNil(s.wallet.DefaultAccount())
	s.Equal(addr, s.wallet.DefaultAccount().Address())
}

func (s *WalletTestSuite) TestSecondAccountDoesNotStealDefault() {
	first, err := s.wallet.AddByPrivateKey(testPrivateKey)
	s.Require().NoError(err)

	_, err = s.wallet.AddByPrivateKey(keys.Generate())
	s.Require().NoError(err)

	s.Equal(first, s.wallet.DefaultAccount().Address())
	s.Len(s.wallet.Addresses(), 2)
}

func (s *WalletTestSuite) TestAddRejectsMalformedKey() {
	_, err := s.wallet.AddByPrivateKey("junk")
	s.Require().ErrorIs(err, keys.ErrIncorrectPrivateKey)
	s.Nil(s.wallet.DefaultAccount())
}

func (s *WalletTestSuite) TestReAddingSameKeyIsIdempotent() {
	first, err := s.wallet.AddByPrivateKey(testPrivateKey)
	s.Require().NoError(err)

	second, err := s.wallet.AddByPrivateKey("0x" + testPrivateKey)
	s.Require().NoError(err)

	s.Equal(first, second)
	s.Len(s.wallet.Addresses(), 1)
}

func (s *WalletTestSuite) TestCreate() {
	addr, err := s.wallet.Create()
	s.Require().NoError(err)

	account := s.wallet.Account(addr)
	s.Require().NotNil(account)
	s.True(keys.IsPrivateKey(account.PrivateKey()))
	s.Equal(addr, s.wallet.DefaultAccount().Address())
}

func (s *WalletTestSuite) TestAddByMnemonic() {
	first, err := s.wallet.AddByMnemonic(testMnemonic, 0)
	s.Require().NoError(err)

	second, err := s.wallet.AddByMnemonic(testMnemonic, 1)
	s.Require().NoError(err)

	s.NotEqual(first, second)
	s.Equal(first, s.wallet.DefaultAccount().Address())
}

func (s *WalletTestSuite) TestRemoveDefaultClearsDefault() {
	addr, err := s.wallet.AddByPrivateKey(testPrivateKey)
	s.Require().NoError(err)

	removed := s.wallet.Remove(addr)
	s.Require().NotNil(removed)
	s.Equal(addr, removed.Address())

	s.Nil(s.wallet.DefaultAccount())
	s.Empty(s.wallet.Addresses())
}

func (s *WalletTestSuite) TestRemoveOtherKeepsDefault() {
	first, err := s.wallet.AddByPrivateKey(testPrivateKey)
	s.Require().NoError(err)

	second, err := s.wallet.AddByPrivateKey(keys.Generate())
	s.Require().NoError(err)

	s.Require().NotNil(s.wallet.Remove(second))
	s.Equal(first, s.wallet.DefaultAccount().Address())
}

func (s *WalletTestSuite) TestRemoveUnknownAddress() {
	s.Nil(s.wallet.Remove(testAddress))
}

func (s *WalletTestSuite) TestSetDefault() {
	_, err := s.wallet.AddByPrivateKey(testPrivateKey)
	s.Require().NoError(err)

	second, err := s.wallet.AddByPrivateKey(keys.Generate())
	s.Require().NoError(err)

	s.Require().NoError(s.wallet.SetDefault(second))
	s.Equal(second, s.wallet.DefaultAccount().Address())
}

func (s *WalletTestSuite) TestSetDefaultUnknownAddress() {
	var accErr *AccountDoesNotExistError
	err := s.wallet.SetDefault(testAddress)
	s.Require().ErrorAs(err, &accErr)
	s.Equal(testAddress, accErr.Address)
}

func (s *WalletTestSuite) TestNewWithAccounts() {
	first, err := NewAccount(testPrivateKey)
	s.Require().NoError(err)

	second, err := NewAccount(keys.Generate())
	s.Require().NoError(err)

	w := NewWithAccounts(s.provider, []*Account{first, second})
	s.Equal(first.Address(), w.DefaultAccount().Address())
	s.Len(w.Addresses(), 2)
}

func (s *WalletTestSuite) TestSignTransactionNoSigner() {
	tx := &chain.Transaction{ToAddr: testAddress, Amount: big.NewInt(1)}

	_, err := s.wallet.SignTransaction(context.Background(), tx)
	s.Require().ErrorIs(err, ErrNoSignerAccount)
}

func (s *WalletTestSuite) TestSignTransactionDefaultAssignsNonce() {
	addr, err := s.wallet.AddByPrivateKey(testPrivateKey)
	s.Require().NoError(err)

	s.provider.EXPECT().GetBalance(gomock.Any(), addr).Return(&provider.BalanceResponse{
		Balance: big.NewInt(1000000000),
		Nonce:   16,
	}, nil)

	tx := &chain.Transaction{
		Version:  chain.Version(333, 1),
		ToAddr:   testAddress,
		Amount:   big.NewInt(1000000),
		GasPrice: big.NewInt(2000000000),
		GasLimit: 50,
	}

	signed, err := s.wallet.SignTransaction(context.Background(), tx)
	s.Require().NoError(err)

	s.Equal(uint64(17), signed.Nonce)
	s.Equal(testPublicKey, signed.PubKey)
	s.True(signed.Signed())
}

func (s *WalletTestSuite) TestSignTransactionKeepsPresetNonce() {
	_, err := s.wallet.AddByPrivateKey(testPrivateKey)
	s.Require().NoError(err)

	tx := &chain.Transaction{
		Version:  chain.Version(333, 1),
		Nonce:    7,
		ToAddr:   testAddress,
		Amount:   big.NewInt(1000000),
		GasPrice: big.NewInt(2000000000),
		GasLimit: 50,
	}

	signed, err := s.wallet.SignTransaction(context.Background(), tx)
	s.Require().NoError(err)
	s.Equal(uint64(7), signed.Nonce)
}

func (s *WalletTestSuite) TestSignTransactionExplicitPubKey() {
	_, err := s.wallet.AddByPrivateKey(testPrivateKey)
	s.Require().NoError(err)

	otherKey := keys.Generate()
	otherAddr, err := s.wallet.AddByPrivateKey(otherKey)
	s.Require().NoError(err)

	otherPub, err := keys.PublicKeyFromPrivate(otherKey)
	s.Require().NoError(err)

	s.provider.EXPECT().GetBalance(gomock.Any(), otherAddr).Return(&provider.BalanceResponse{
		Balance: big.NewInt(1000000000),
		Nonce:   4,
	}, nil)

	tx := &chain.Transaction{
		Version:  chain.Version(333, 1),
		ToAddr:   testAddress,
		Amount:   big.NewInt(1000000),
		GasPrice: big.NewInt(2000000000),
		GasLimit: 50,
		PubKey:   otherPub,
	}

	signed, err := s.wallet.SignTransaction(context.Background(), tx)
	s.Require().NoError(err)

	s.Equal(uint64(5), signed.Nonce)
	s.Equal(otherPub, signed.PubKey)
}

func (s *WalletTestSuite) TestSignTransactionUnknownPubKey() {
	_, err := s.wallet.AddByPrivateKey(testPrivateKey)
	s.Require().NoError(err)

	strangerPub, err := keys.PublicKeyFromPrivate(keys.Generate())
	s.Require().NoError(err)

	strangerAddr, err := address.FromPublicKey(strangerPub)
	s.Require().NoError(err)

	tx := &chain.Transaction{ToAddr: testAddress, Amount: big.NewInt(1), PubKey: strangerPub}

	var accErr *AccountDoesNotExistError
	_, err = s.wallet.SignTransaction(context.Background(), tx)
	s.Require().ErrorAs(err, &accErr)
	s.Equal(strangerAddr, accErr.Address)
}

func (s *WalletTestSuite) TestSignTransactionNonceFetchFails() {
	_, err := s.wallet.AddByPrivateKey(testPrivateKey)
	s.Require().NoError(err)

	s.provider.EXPECT().GetBalance(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	tx := &chain.Transaction{ToAddr: testAddress, Amount: big.NewInt(1)}

	_, err = s.wallet.SignTransaction(context.Background(), tx)
	s.Require().ErrorContains(err, "connection refused")

	s.Zero(tx.Nonce)
	s.False(tx.Signed())
}

func (s *WalletTestSuite) TestNonce() {
	addr, err := s.wallet.AddByPrivateKey(testPrivateKey)
	s.Require().NoError(err)

	s.provider.EXPECT().GetBalance(gomock.Any(), addr).Return(&provider.BalanceResponse{
		Balance: big.NewInt(0),
		Nonce:   16,
	}, nil)

	nonce, err := s.wallet.Nonce(context.Background(), s.wallet.Account(addr))
	s.Require().NoError(err)
	s.Equal(uint64(16), nonce)
}
