package store

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

const diskvTempDir = ".tmp"

type diskvBackend struct {
	d        *diskv.Diskv
	basePath string
	logger   *slog.Logger
}

func openDiskv(basePath string, logger *slog.Logger) (*diskvBackend, error) {
	if err := os.MkdirAll(filepath.Join(basePath, diskvTempDir), 0o755); err != nil {
		return nil, err
	}
	return &diskvBackend{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		TempDir:           filepath.Join(basePath, diskvTempDir),
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// Other processes write the same files; a read cache would go stale.
		CacheSizeMax: 0,
	}), basePath: basePath, logger: logger}, nil
}

func (b *diskvBackend) Get(bucket, key string) ([]byte, error) {
	val, err := b.d.Read(toKey(bucket, key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return val, nil
}

func (b *diskvBackend) Keys(ctx context.Context, bucket string) ([]string, error) {
	prefix := bucket + "/"
	keys := make([]string, 0)
	for key := range b.d.Keys(ctx.Done()) {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		_, k, err := fromKey(key)
		if err != nil {
			b.log().Warn("skip malformed key", "key", key, "err", err)
			continue
		}
		keys = append(keys, k)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func (b *diskvBackend) EnsureBucket(bucket string) error {
	if err := os.MkdirAll(filepath.Join(b.basePath, bucket), 0o755); err != nil {
		return fmt.Errorf("store: ensure bucket directory: %w", err)
	}
	return nil
}

// Commit applies writes in order. Each file write is atomic on its own; if a
// later write fails, the earlier ones are reverted to their previous values.
func (b *diskvBackend) Commit(writes []Write) error {
	undo := make([]Write, 0, len(writes))
	for _, w := range writes {
		key := toKey(w.Bucket, w.Key)
		prev, err := b.d.Read(key)
		switch {
		case err == nil:
			undo = append(undo, Write{Bucket: w.Bucket, Key: w.Key, Value: prev})
		case errors.Is(err, fs.ErrNotExist):
			undo = append(undo, Write{Bucket: w.Bucket, Key: w.Key, Delete: true})
		default:
			b.rollback(undo)
			return fmt.Errorf("store: read %s: %w", key, err)
		}

		if w.Delete {
			err = b.d.Erase(key)
			if errors.Is(err, fs.ErrNotExist) {
				err = nil
			}
		} else {
			err = b.d.Write(key, w.Value)
		}
		if err != nil {
			b.rollback(undo)
			return fmt.Errorf("store: write %s: %w", key, err)
		}
	}
	return nil
}

func (b *diskvBackend) rollback(undo []Write) {
	for i := len(undo) - 1; i >= 0; i-- {
		w := undo[i]
		key := toKey(w.Bucket, w.Key)
		var err error
		if w.Delete {
			err = b.d.Erase(key)
			if errors.Is(err, fs.ErrNotExist) {
				err = nil
			}
		} else {
			err = b.d.Write(key, w.Value)
		}
		if err != nil {
			b.log().Error("rollback failed", "key", key, "err", err)
		}
	}
}

func (b *diskvBackend) log() *slog.Logger {
	if b.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.logger
}

func (b *diskvBackend) Close() error {
	return nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s/%s", strings.Join(pathKey.Path, "/"), pathKey.FileName)
}

// toKey makes `bucket/base64(key)` so arbitrary ids map to safe file names.
func toKey(bucket, key string) string {
	return bucket + "/" + base64.RawURLEncoding.EncodeToString([]byte(key))
}

func fromKey(s string) (string, string, error) {
	bucket, encoded, ok := strings.Cut(s, "/")
	if !ok {
		return "", "", fmt.Errorf("store: malformed key %q", s)
	}
	key, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", fmt.Errorf("store: malformed key %q: %w", s, err)
	}
	return bucket, string(key), nil
}
