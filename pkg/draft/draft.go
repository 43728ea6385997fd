// Package draft keeps the single in-progress entry on disk so an interrupted
// session can be resumed.
package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/walkjournal/pkg/entry"
)

// Slot is the key the draft is stored under.
const Slot = "autosave"

// ErrCorrupt is returned by Load when the slot holds unreadable data.
var ErrCorrupt = errors.New("draft: corrupt draft")

// Cache is a one-slot draft store.
type Cache struct {
	d   *diskv.Diskv
	dir string
}

// Dir returns the draft directory for the named database under basePath.
func Dir(basePath, name string) string {
	return filepath.Join(basePath, name+".drafts")
}

// New opens the cache in dir, creating it if needed.
func New(dir string) (*Cache, error) {
	tmp := filepath.Join(dir, ".tmp")
	if err := os.MkdirAll(tmp, 0o755); err != nil {
		return nil, fmt.Errorf("draft: create %s: %w", dir, err)
	}
	return &Cache{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			TempDir:      tmp,
			CacheSizeMax: 0,
		}),
		dir: dir,
	}, nil
}

// Save replaces the stored draft.
func (c *Cache) Save(d *entry.Draft) error {
	if d == nil {
		return errors.New("draft: nil draft")
	}
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	if err := c.d.Write(Slot, data); err != nil {
		return fmt.Errorf("draft: save: %w", err)
	}
	return nil
}

// Load returns the stored draft. The bool is false when there is none.
func (c *Cache) Load() (*entry.Draft, bool, error) {
	data, err := c.d.Read(Slot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("draft: load: %w", err)
	}
	d := &entry.Draft{}
	if err := json.Unmarshal(data, d); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if d.Sections == nil {
		d.Sections = []entry.Section{}
	}
	return d, true, nil
}

// Clear removes the stored draft. Clearing an empty slot is not an error.
func (c *Cache) Clear() error {
	if err := c.d.Erase(Slot); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("draft: clear: %w", err)
	}
	return nil
}

// Path is the file holding the draft.
func (c *Cache) Path() string {
	return filepath.Join(c.dir, Slot)
}
