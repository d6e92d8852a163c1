package storage

import (
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v3"
)

const badgerKeyPrefix = "walletscope/"

// BadgerStore keeps scope documents in an embedded badger database. Useful
// when the host application already runs badger, or when many scopes make
// a file-per-scope layout unwieldy.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a badger database at path.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Get(scope string) (string, bool, error) {
	var doc []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(scope))
		if err != nil {
			return err
		}
		doc, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read scope document: %w", err)
	}
	return string(doc), true, nil
}

func (s *BadgerStore) Put(scope string, doc string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(scope), []byte(doc))
	})
	if err != nil {
		return fmt.Errorf("failed to write scope document: %w", err)
	}
	return nil
}

func (s *BadgerStore) Delete(scope string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(badgerKey(scope))
	})
	if err != nil {
		return fmt.Errorf("failed to delete scope document: %w", err)
	}
	return nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func badgerKey(scope string) []byte {
	return []byte(badgerKeyPrefix + scope)
}
