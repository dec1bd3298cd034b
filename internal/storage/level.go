package storage

import (
	"encoding/json"

	"github.com/syndtr/goleveldb/leveldb"
)

type levelStorage struct {
	db *leveldb.DB
}

// NewLevelStorage opens, creating it if needed, a LevelDB-backed store in
// the directory at path. Transactions survive process restarts, so a
// watcher coming back up resumes where it left off.
func NewLevelStorage(path string) (Storage, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &levelStorage{db: db}, nil
}

func (s *levelStorage) New(tx *Transaction) error {
	b, err := json.Marshal(tx)
	if err != nil {
		return err
	}
	return s.db.Put([]byte(tx.ID), b, nil)
}

func (s *levelStorage) List() ([]*Transaction, error) {
	var out []*Transaction

	iter := s.db.NewIterator(nil, nil)
	defer iter.Release()

	for iter.Next() {
		var tx Transaction
		if err := json.Unmarshal(iter.Value(), &tx); err != nil {
			return nil, err
		}
		out = append(out, &tx)
	}

	return out, iter.Error()
}

func (s *levelStorage) Remove(id string) error {
	return s.db.Delete([]byte(id), nil)
}

func (s *levelStorage) Close() error {
	return s.db.Close()
}
