package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Badger persists scalars in an embedded BadgerDB at a directory path.
// Badger gives us durable single-key writes with no schema, which is
// exactly the shape of the persisted state.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens (creating if needed) a BadgerDB at dir.
func OpenBadger(dir string) (*Badger, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store at %s: %w", dir, err)
	}
	return &Badger{db: db}, nil
}

// OpenBadgerInMemory opens a store with no disk backing, for tests.
func OpenBadgerInMemory() (*Badger, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory badger store: %w", err)
	}
	return &Badger{db: db}, nil
}

// GetFloat reads one scalar. A missing key returns ok=false, not an error.
func (b *Badger) GetFloat(key string) (float64, bool, error) {
	var raw []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get %q: %w", key, err)
	}
	v, err := parseFloat(string(raw))
	if err != nil {
		return 0, false, fmt.Errorf("get %q: bad stored value %q: %w", key, raw, err)
	}
	return v, true, nil
}

// PutFloat writes one scalar in its own transaction.
func (b *Badger) PutFloat(key string, val float64) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(formatFloat(val)))
	})
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// Close releases the database. Safe on a nil receiver.
func (b *Badger) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}
