package store

import (
	"context"
	"errors"
	"sort"
)

const (
	// BucketEntries holds one record per journal entry, keyed by id.
	BucketEntries = "entries"
	// BucketMeta holds the schema watermark.
	BucketMeta = "meta"
)

type writeKey struct {
	bucket string
	key    string
}

// Tx is a transaction. Writes are buffered and become visible to other
// transactions only when the enclosing Update returns nil.
type Tx struct {
	ctx      context.Context
	backend  Backend
	writable bool
	writes   map[writeKey]Write
	order    []writeKey
}

func newTx(ctx context.Context, backend Backend, writable bool) *Tx {
	return &Tx{
		ctx:      ctx,
		backend:  backend,
		writable: writable,
		writes:   make(map[writeKey]Write),
	}
}

// Context is the context the transaction was started with.
func (tx *Tx) Context() context.Context {
	return tx.ctx
}

// Get returns the value for key, seeing writes made earlier in tx.
func (tx *Tx) Get(bucket, key string) ([]byte, error) {
	if w, ok := tx.writes[writeKey{bucket, key}]; ok {
		if w.Delete {
			return nil, ErrKeyNotFound
		}
		return append([]byte(nil), w.Value...), nil
	}
	return tx.backend.Get(bucket, key)
}

// Exists reports whether key is present.
func (tx *Tx) Exists(bucket, key string) (bool, error) {
	_, err := tx.Get(bucket, key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrKeyNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (tx *Tx) Put(bucket, key string, value []byte) error {
	if !tx.writable {
		return ErrReadOnly
	}
	tx.stage(Write{Bucket: bucket, Key: key, Value: append([]byte(nil), value...)})
	return nil
}

func (tx *Tx) Delete(bucket, key string) error {
	if !tx.writable {
		return ErrReadOnly
	}
	tx.stage(Write{Bucket: bucket, Key: key, Delete: true})
	return nil
}

// EnsureBucket creates bucket if the backend needs it. It takes effect
// immediately and is safe to repeat.
func (tx *Tx) EnsureBucket(bucket string) error {
	if !tx.writable {
		return ErrReadOnly
	}
	return tx.backend.EnsureBucket(bucket)
}

// Keys lists the keys of bucket in ascending order, including keys written
// earlier in tx and excluding keys deleted in it.
func (tx *Tx) Keys(bucket string) ([]string, error) {
	stored, err := tx.backend.Keys(tx.ctx, bucket)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(stored))
	keys := make([]string, 0, len(stored))
	for _, k := range stored {
		seen[k] = struct{}{}
		if w, ok := tx.writes[writeKey{bucket, k}]; ok && w.Delete {
			continue
		}
		keys = append(keys, k)
	}
	for _, wk := range tx.order {
		if wk.bucket != bucket {
			continue
		}
		if _, ok := seen[wk.key]; ok {
			continue
		}
		if w := tx.writes[wk]; !w.Delete {
			keys = append(keys, wk.key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (tx *Tx) stage(w Write) {
	wk := writeKey{w.Bucket, w.Key}
	if _, ok := tx.writes[wk]; !ok {
		tx.order = append(tx.order, wk)
	}
	tx.writes[wk] = w
}

func (tx *Tx) pending() []Write {
	out := make([]Write, 0, len(tx.order))
	for _, wk := range tx.order {
		out = append(out, tx.writes[wk])
	}
	return out
}
