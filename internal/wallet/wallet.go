package wallet

import (
	"context"
	"fmt"

	"github.com/friendsofgo/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/DIMO-Network/transaction-signer/internal/address"
	"github.com/DIMO-Network/transaction-signer/internal/chain"
	"github.com/DIMO-Network/transaction-signer/internal/keys"
	"github.com/DIMO-Network/transaction-signer/internal/provider"
)

// ErrNoSignerAccount is returned by SignTransaction when the transaction
// names no public key and the wallet has no default account.
var ErrNoSignerAccount = errors.New("transaction names no public key and wallet has no default account")

// AccountDoesNotExistError is returned for lookups of addresses the wallet
// does not hold.
type AccountDoesNotExistError struct {
	Address string
}

func (e *AccountDoesNotExistError) Error() string {
	return fmt.Sprintf("account with address %s does not exist", e.Address)
}

// Wallet owns a set of accounts keyed by checksummed address and designates
// at most one of them as the default signer. The default is tracked by
// address and cleared together with removal, so it can never name an
// account the wallet no longer holds.
//
// A Wallet is not safe for concurrent mutation. The only blocking operation
// is the nonce fetch during signing.
type Wallet struct {
	accounts    map[string]*Account
	defaultAddr string
	provider    provider.Provider
}

// New returns an empty wallet backed by the given provider.
func New(p provider.Provider) *Wallet {
	return &Wallet{
		accounts: make(map[string]*Account),
		provider: p,
	}
}

// NewWithAccounts bulk-loads accounts into a fresh wallet. The first
// account of the slice becomes the default.
func NewWithAccounts(p provider.Provider, accounts []*Account) *Wallet {
	w := New(p)
	for _, account := range accounts {
		w.accounts[account.Address()] = account
	}
	if len(accounts) > 0 {
		w.defaultAddr = accounts[0].Address()
	}
	return w
}

// Create generates a fresh random key and adds the account for it,
// returning the new address.
func (w *Wallet) Create() (string, error) {
	return w.AddByPrivateKey(keys.Generate())
}

// AddByPrivateKey builds the account for a raw private key and inserts it,
// replacing any account already stored at the same address. The account
// becomes the default only when no default is set. Returns the derived
// address.
func (w *Wallet) AddByPrivateKey(privateKey string) (string, error) {
	account, err := NewAccount(privateKey)
	if err != nil {
		return "", err
	}

	w.accounts[account.Address()] = account
	if w.defaultAddr == "" {
		w.defaultAddr = account.Address()
	}

	return account.Address(), nil
}

// AddByMnemonic derives the key at the given index of a BIP-39 mnemonic and
// adds its account like AddByPrivateKey.
func (w *Wallet) AddByMnemonic(mnemonic string, index uint32) (string, error) {
	privateKey, err := keys.FromMnemonic(mnemonic, index)
	if err != nil {
		return "", err
	}
	return w.AddByPrivateKey(privateKey)
}

// Account returns the account at the given address, or nil when the wallet
// does not hold it.
func (w *Wallet) Account(addr string) *Account {
	return w.accounts[addr]
}

// Remove deletes and returns the account at the given address, or nil when
// the wallet does not hold it. Removing the default account clears the
// default; no other account is promoted.
func (w *Wallet) Remove(addr string) *Account {
	account, ok := w.accounts[addr]
	if !ok {
		return nil
	}

	delete(w.accounts, addr)
	if w.defaultAddr == addr {
		w.defaultAddr = ""
	}

	return account
}

// SetDefault makes the account at addr the default signer.
func (w *Wallet) SetDefault(addr string) error {
	if _, ok := w.accounts[addr]; !ok {
		return &AccountDoesNotExistError{Address: addr}
	}
	w.defaultAddr = addr
	return nil
}

// DefaultAccount returns the default account, or nil when none is set.
func (w *Wallet) DefaultAccount() *Account {
	if w.defaultAddr == "" {
		return nil
	}
	return w.accounts[w.defaultAddr]
}

// Addresses returns the addresses of all held accounts in sorted order.
func (w *Wallet) Addresses() []string {
	addrs := maps.Keys(w.accounts)
	slices.Sort(addrs)
	return addrs
}

// Nonce fetches the nonce of the account's latest committed transaction
// from the chain.
func (w *Wallet) Nonce(ctx context.Context, account *Account) (uint64, error) {
	res, err := w.provider.GetBalance(ctx, account.Address())
	if err != nil {
		return 0, err
	}
	return res.Nonce, nil
}

// SignTransaction resolves the signing account and signs tx with it. The
// account is the one matching the transaction's public key when present,
// otherwise the wallet default. When tx carries no nonce, the next nonce
// for the account is fetched from the chain and assigned before signing.
// Nothing is retried and no wallet state changes on failure.
func (w *Wallet) SignTransaction(ctx context.Context, tx *chain.Transaction) (*chain.Transaction, error) {
	var account *Account

	if tx.PubKey != "" {
		addr, err := address.FromPublicKey(tx.PubKey)
		if err != nil {
			return nil, err
		}
		account = w.accounts[addr]
		if account == nil {
			return nil, &AccountDoesNotExistError{Address: addr}
		}
	} else if w.defaultAddr != "" {
		account = w.accounts[w.defaultAddr]
	} else {
		return nil, ErrNoSignerAccount
	}

	if tx.Nonce == 0 {
		nonce, err := w.Nonce(ctx, account)
		if err != nil {
			return nil, err
		}
		tx.Nonce = nonce + 1
	}

	return account.SignTransaction(tx)
}
