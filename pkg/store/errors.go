package store

import "errors"

var (
	// ErrStoreUnavailable means the environment denied storage access. It is
	// fatal to the session.
	ErrStoreUnavailable = errors.New("store: storage unavailable")

	// ErrStoreBlocked means another open handle prevents a version upgrade.
	// Callers may wait and retry.
	ErrStoreBlocked = errors.New("store: upgrade blocked by another open handle")

	// ErrVersionDowngrade is returned when the requested schema version is
	// older than the store's watermark.
	ErrVersionDowngrade = errors.New("store: requested version is older than the store")

	// ErrNotReady is returned by every operation issued before Init completed.
	ErrNotReady = errors.New("store: not ready")

	// ErrClosed is returned by every operation issued after Close.
	ErrClosed = errors.New("store: closed")

	// ErrKeyNotFound is returned by Tx.Get for a missing key.
	ErrKeyNotFound = errors.New("store: key not found")

	// ErrReadOnly is returned when a View transaction attempts a write.
	ErrReadOnly = errors.New("store: read-only transaction")

	// ErrWatchUnsupported is returned by Watch for backends that hold an
	// exclusive lock on their directory.
	ErrWatchUnsupported = errors.New("store: watch not supported by backend")

	errAlreadyInitialized = errors.New("store: already initialized")
)
