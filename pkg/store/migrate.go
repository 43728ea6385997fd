package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tableflip.dev/walkjournal/pkg/entry"
)

// CurrentVersion is the newest schema version this build knows.
const CurrentVersion = 2

const metaSchemaKey = "schema"

// Migration moves the store to Version. Apply must be idempotent: running it
// against a store already at Version changes nothing.
type Migration struct {
	Version int
	Name    string
	Apply   func(ctx context.Context, tx *Tx) error
}

// Migrations is the ordered, additive-only migration table.
var Migrations = []Migration{
	{Version: 1, Name: "create entries collection", Apply: createEntries},
	{Version: 2, Name: "normalize legacy records", Apply: normalizeRecords},
}

type schemaMeta struct {
	Name    string `json:"name"`
	Version int    `json:"version"`
}

func readMeta(b Backend) (schemaMeta, error) {
	val, err := b.Get(BucketMeta, metaSchemaKey)
	if errors.Is(err, ErrKeyNotFound) {
		return schemaMeta{}, nil
	}
	if err != nil {
		return schemaMeta{}, err
	}
	meta := schemaMeta{}
	if err := json.Unmarshal(val, &meta); err != nil {
		return schemaMeta{}, err
	}
	return meta, nil
}

// migrate applies every step above from up to the requested version, in
// order, then records the requested version as the new watermark.
func (s *Store) migrate(ctx context.Context, tx *Tx, from int) error {
	for _, m := range s.opts.Migrations {
		if m.Version <= from || m.Version > s.opts.Version {
			continue
		}
		s.logger.Info("applying migration", "version", m.Version, "name", m.Name)
		if err := m.Apply(ctx, tx); err != nil {
			return fmt.Errorf("store: migration %d (%s): %w", m.Version, m.Name, err)
		}
	}
	data, err := json.Marshal(schemaMeta{Name: s.opts.Name, Version: s.opts.Version})
	if err != nil {
		return err
	}
	return tx.Put(BucketMeta, metaSchemaKey, data)
}

func createEntries(_ context.Context, tx *Tx) error {
	if err := tx.EnsureBucket(BucketMeta); err != nil {
		return err
	}
	return tx.EnsureBucket(BucketEntries)
}

// normalizeRecords gives records written by older versions the fields every
// current record has: tags, sections and answers arrays, and a date derived
// from the timestamp.
func normalizeRecords(_ context.Context, tx *Tx) error {
	keys, err := tx.Keys(BucketEntries)
	if err != nil {
		return err
	}
	for _, key := range keys {
		val, err := tx.Get(BucketEntries, key)
		if err != nil {
			return err
		}
		fixed, changed, err := normalizeRecord(val)
		if err != nil {
			return fmt.Errorf("record %q: %w", key, err)
		}
		if !changed {
			continue
		}
		if err := tx.Put(BucketEntries, key, fixed); err != nil {
			return err
		}
	}
	return nil
}

func normalizeRecord(val []byte) ([]byte, bool, error) {
	record := map[string]json.RawMessage{}
	if err := json.Unmarshal(val, &record); err != nil {
		return nil, false, err
	}
	changed := false

	if isAbsent(record["tags"]) {
		record["tags"] = json.RawMessage(`""`)
		changed = true
	}

	if isAbsent(record["sections"]) {
		record["sections"] = json.RawMessage(`[]`)
		changed = true
	} else {
		var sections []map[string]json.RawMessage
		if err := json.Unmarshal(record["sections"], &sections); err != nil {
			return nil, false, err
		}
		sectionsChanged := false
		for _, sec := range sections {
			if isAbsent(sec["answers"]) {
				sec["answers"] = json.RawMessage(`[]`)
				sectionsChanged = true
			}
		}
		if sectionsChanged {
			raw, err := json.Marshal(sections)
			if err != nil {
				return nil, false, err
			}
			record["sections"] = raw
			changed = true
		}
	}

	if isAbsent(record["date"]) || string(record["date"]) == `""` {
		var ts string
		if err := json.Unmarshal(record["timestamp"], &ts); err == nil && ts != "" {
			if t, err := entry.ParseTime(ts); err == nil {
				raw, err := json.Marshal(entry.DateOf(t).String())
				if err != nil {
					return nil, false, err
				}
				record["date"] = raw
				changed = true
			}
		}
	}

	if !changed {
		return val, false, nil
	}
	out, err := json.Marshal(record)
	return out, true, err
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
