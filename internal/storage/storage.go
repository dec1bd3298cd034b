package storage

import (
	"math/big"
	"sync"

	"golang.org/x/exp/maps"
)

// Storage tracks transactions that were submitted to the chain but have not
// reached a terminal state yet.
type Storage interface {
	New(tx *Transaction) error
	List() ([]*Transaction, error)
	Remove(id string) error
	Close() error
}

// Transaction is one submitted transaction awaiting confirmation.
type Transaction struct {
	// ID is the id of the originating request.
	ID string `json:"id"`

	// TranID is the id the chain assigned on submission.
	TranID string `json:"tranId"`

	From   string   `json:"from"`
	To     string   `json:"to"`
	Nonce  uint64   `json:"nonce"`
	Amount *big.Int `json:"amount"`
}

type memStorage struct {
	sync.Mutex
	storage map[string]*Transaction
}

func (s *memStorage) New(tx *Transaction) error {
	s.Lock()
	s.storage[tx.ID] = tx
	s.Unlock()
	return nil
}

func (s *memStorage) List() ([]*Transaction, error) {
	s.Lock()
	defer s.Unlock()
	return maps.Values(s.storage), nil
}

func (s *memStorage) Remove(id string) error {
	s.Lock()
	delete(s.storage, id)
	s.Unlock()
	return nil
}

func (s *memStorage) Close() error {
	return nil
}

func NewMemStorage() Storage {
	return &memStorage{storage: make(map[string]*Transaction)}
}
