package store

import (
	"context"
	"fmt"
	"log/slog"
)

const (
	// BackendDiskv stores one file per record.
	BackendDiskv = "diskv"
	// BackendBadger stores records in a badger LSM tree.
	BackendBadger = "badger"
)

// Backend is a bucketed key/value store able to apply a batch of writes as
// one unit.
type Backend interface {
	Get(bucket, key string) ([]byte, error)
	Keys(ctx context.Context, bucket string) ([]string, error)
	EnsureBucket(bucket string) error
	Commit(writes []Write) error
	Close() error
}

// Write is one buffered mutation.
type Write struct {
	Bucket string
	Key    string
	Value  []byte
	Delete bool
}

func openBackend(kind, dir string, logger *slog.Logger) (Backend, error) {
	switch kind {
	case "", BackendDiskv:
		return openDiskv(dir, logger)
	case BackendBadger:
		return openBadger(dir)
	default:
		return nil, fmt.Errorf("store: unknown backend %q", kind)
	}
}
