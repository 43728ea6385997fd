package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

type badgerBackend struct {
	db *badger.DB
}

func openBadger(dir string) (*badgerBackend, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Every commit is durable before it returns
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		if strings.Contains(err.Error(), "Cannot acquire directory lock") {
			return nil, fmt.Errorf("%w: %v", ErrStoreBlocked, err)
		}
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}
	return &badgerBackend{db: db}, nil
}

func badgerKey(bucket, key string) []byte {
	return []byte(bucket + ":" + key)
}

func (b *badgerBackend) Get(bucket, key string) ([]byte, error) {
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(bucket, key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrKeyNotFound
	}
	return val, err
}

func (b *badgerBackend) Keys(ctx context.Context, bucket string) ([]string, error) {
	prefix := []byte(bucket + ":")
	keys := make([]string, 0)
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			keys = append(keys, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// EnsureBucket is a no-op: buckets are key prefixes.
func (b *badgerBackend) EnsureBucket(string) error {
	return nil
}

// Commit applies writes in a single badger transaction.
func (b *badgerBackend) Commit(writes []Write) error {
	return b.db.Update(func(txn *badger.Txn) error {
		for _, w := range writes {
			key := badgerKey(w.Bucket, w.Key)
			if w.Delete {
				if err := txn.Delete(key); err != nil {
					return err
				}
				continue
			}
			if err := txn.Set(key, w.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *badgerBackend) Close() error {
	return b.db.Close()
}
