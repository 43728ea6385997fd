// Package store is the versioned durable store behind the journal. A Store
// is opened asynchronously, migrated to the requested schema version, and
// then serves serialized read/write transactions.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// DefaultName is the database name used when none is configured.
const DefaultName = "walkjournal"

// Options configure a Store.
type Options struct {
	// BasePath is the directory holding all databases.
	BasePath string
	// Name selects the database directory under BasePath.
	Name string
	// Version is the requested schema version. Zero means CurrentVersion.
	Version int
	// Backend is BackendDiskv (default) or BackendBadger.
	Backend string
	// Migrations replaces the built-in migration table when set.
	Migrations []Migration
	Logger     *slog.Logger
}

const (
	stateNew int32 = iota
	stateOpening
	stateReady
	stateFailed
	stateClosed
)

// Store owns the durable entry collection.
type Store struct {
	opts   Options
	dir    string
	logger *slog.Logger

	// mu serializes writers; readers share it.
	mu         sync.RWMutex
	backend    Backend
	registered bool
	version    int

	state    atomic.Int32
	ready    chan struct{}
	initOnce sync.Once
}

// New returns a Store in the not-ready state. Call Init to open it.
func New(opts Options) *Store {
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.Version <= 0 {
		opts.Version = CurrentVersion
	}
	if opts.Migrations == nil {
		opts.Migrations = Migrations
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		opts:   opts,
		dir:    filepath.Join(opts.BasePath, opts.Name),
		logger: opts.Logger.With("store", opts.Name),
		ready:  make(chan struct{}),
	}
}

// Open creates a Store and blocks until it is ready or failed.
func Open(ctx context.Context, opts Options) (*Store, error) {
	s := New(opts)
	done := s.Init(ctx)
	select {
	case err := <-done:
		if err != nil {
			return nil, err
		}
		return s, nil
	case <-ctx.Done():
		// The open keeps running; release whatever it acquires.
		go func() {
			if err := <-done; err == nil {
				_ = s.Close()
			}
		}()
		return nil, ctx.Err()
	}
}

// Init starts opening the store in the background. The returned channel
// receives exactly one value, nil on success, and is then closed. Only the
// first call opens; later calls report an error.
func (s *Store) Init(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	started := false
	s.initOnce.Do(func() {
		started = true
		s.state.Store(stateOpening)
		go func() {
			defer close(done)
			if err := s.open(ctx); err != nil {
				s.state.CompareAndSwap(stateOpening, stateFailed)
				done <- err
				return
			}
			done <- nil
		}()
	})
	if !started {
		done <- errAlreadyInitialized
		close(done)
	}
	return done
}

// Ready is closed once the store opened successfully.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Dir is the database directory.
func (s *Store) Dir() string {
	return s.dir
}

// Backend names the storage backend in use.
func (s *Store) Backend() string {
	if s.opts.Backend == "" {
		return BackendDiskv
	}
	return s.opts.Backend
}

// Version is the schema watermark after open.
func (s *Store) Version() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkWritable(s.dir); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	backend, err := openBackend(s.opts.Backend, s.dir, s.logger)
	if err != nil {
		if errors.Is(err, ErrStoreBlocked) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	current, err := readMeta(backend)
	if err != nil {
		_ = backend.Close()
		return fmt.Errorf("%w: read schema version: %v", ErrStoreUnavailable, err)
	}
	if s.opts.Version < current.Version {
		_ = backend.Close()
		return fmt.Errorf("%w: store is at version %d, requested %d", ErrVersionDowngrade, current.Version, s.opts.Version)
	}

	others := register(s.dir)
	if s.opts.Version > current.Version {
		if err := s.upgrade(ctx, backend, current.Version, others); err != nil {
			unregister(s.dir)
			_ = backend.Close()
			return err
		}
		current.Version = s.opts.Version
	}

	s.backend = backend
	s.registered = true
	s.version = current.Version
	s.state.Store(stateReady)
	close(s.ready)
	s.logger.Debug("store ready", "dir", s.dir, "backend", s.Backend(), "version", s.version)
	return nil
}

func (s *Store) upgrade(ctx context.Context, backend Backend, from, others int) error {
	if others > 0 {
		return fmt.Errorf("%w: %d other handle(s) open on %s", ErrStoreBlocked, others, s.dir)
	}
	release, err := acquireUpgradeLock(s.dir, s.logger)
	if err != nil {
		return err
	}
	defer release()

	if err := ctx.Err(); err != nil {
		return err
	}
	tx := newTx(ctx, backend, true)
	if err := s.migrate(ctx, tx, from); err != nil {
		return err
	}
	if err := backend.Commit(tx.pending()); err != nil {
		return fmt.Errorf("store: commit migration: %w", err)
	}
	return nil
}

// Close releases the backend. Operations after Close fail with ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Load() == stateClosed {
		return nil
	}
	s.state.Store(stateClosed)
	if s.registered {
		unregister(s.dir)
		s.registered = false
	}
	if s.backend == nil {
		return nil
	}
	err := s.backend.Close()
	s.backend = nil
	return err
}

func (s *Store) check() error {
	switch s.state.Load() {
	case stateReady:
		return nil
	case stateClosed:
		return ErrClosed
	default:
		return ErrNotReady
	}
}

// View runs fn in a read-only transaction.
func (s *Store) View(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return err
	}
	return fn(newTx(ctx, s.backend, false))
}

// Update runs fn in a read/write transaction. Update transactions run one at
// a time. If fn returns an error nothing is written; otherwise all of its
// writes are committed together.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}
	tx := newTx(ctx, s.backend, true)
	if err := fn(tx); err != nil {
		return err
	}
	writes := tx.pending()
	if len(writes) == 0 {
		return nil
	}
	if err := s.backend.Commit(writes); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

// checkWritable makes sure dir exists and accepts writes.
func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".write-check-*")
	if err != nil {
		return err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}
	return os.Remove(name)
}
