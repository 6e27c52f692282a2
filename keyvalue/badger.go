package keyvalue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// BadgerBucket stores entries in an embedded Badger database.
type BadgerBucket struct {
	db *badger.DB
}

type BadgerOptions struct {
	Path     string
	InMemory bool
}

func NewBadgerBucket(opts BadgerOptions) (*BadgerBucket, error) {
	dbOpts := badger.DefaultOptions(opts.Path)
	if opts.InMemory {
		dbOpts = badger.DefaultOptions("").WithInMemory(true)
	}
	dbOpts.Logger = nil

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB: %w", err)
	}

	return &BadgerBucket{db: db}, nil
}

func (b *BadgerBucket) Put(_ context.Context, key string, data []byte, ttl time.Duration) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), data)
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}

		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("failed to set %q in BadgerDB: %w", key, err)
	}

	return nil
}

func (b *BadgerBucket) Get(_ context.Context, key string) ([]byte, error) {
	var data []byte

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}

		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to get %q from BadgerDB: %w", key, err)
	}

	return data, nil
}

func (b *BadgerBucket) Delete(_ context.Context, key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete %q from BadgerDB: %w", key, err)
	}

	return nil
}

func (b *BadgerBucket) Close() error {
	return b.db.Close()
}
