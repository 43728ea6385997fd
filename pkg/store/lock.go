package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

const upgradeLockFile = ".upgrade.lock"

// handles counts open Store handles per database directory in this process.
var handles = struct {
	sync.Mutex
	open map[string]int
}{open: make(map[string]int)}

// register records a new handle on dir and returns how many were already open.
func register(dir string) int {
	handles.Lock()
	defer handles.Unlock()
	others := handles.open[dir]
	handles.open[dir] = others + 1
	return others
}

func unregister(dir string) {
	handles.Lock()
	defer handles.Unlock()
	if handles.open[dir] <= 1 {
		delete(handles.open, dir)
		return
	}
	handles.open[dir]--
}

// acquireUpgradeLock creates the cross-process upgrade lock file in dir. The
// returned func removes it.
func acquireUpgradeLock(dir string, logger *slog.Logger) (func(), error) {
	path := filepath.Join(dir, upgradeLockFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: upgrade in progress (remove %s if no other walkjournal is running)", ErrStoreBlocked, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	_, _ = f.WriteString(strconv.Itoa(os.Getpid()))
	_ = f.Close()
	return func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Error("remove upgrade lock", "path", path, "err", err)
		}
	}, nil
}
