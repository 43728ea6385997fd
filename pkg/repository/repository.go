// Package repository provides the entry CRUD operations. Every operation is a
// single store transaction: it either fully happens or leaves the store as it
// was.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"tableflip.dev/walkjournal/pkg/entry"
	"tableflip.dev/walkjournal/pkg/store"
)

var (
	// ErrNotFound is returned when an operation references a missing entry.
	ErrNotFound = errors.New("repository: entry not found")

	// ErrDuplicateID is returned by Create when the id is already taken. Ids
	// are random, so this points at a bug rather than bad luck.
	ErrDuplicateID = errors.New("repository: duplicate entry id")

	// ErrIndexOutOfRange is returned for a stale section or answer index.
	ErrIndexOutOfRange = errors.New("repository: section or answer index out of range")

	// ErrInvalidEntry is returned for a nil entry or an upsert without id.
	ErrInvalidEntry = errors.New("repository: invalid entry")
)

// Repository stores entries in a store.Store.
type Repository struct {
	store  *store.Store
	logger *slog.Logger
}

func New(s *store.Store, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Repository{store: s, logger: logger}
}

// Create writes a new entry, filling in a missing id, timestamp and date. On
// success those fields are also set on e and the id is returned.
func (r *Repository) Create(ctx context.Context, e *entry.Entry) (string, error) {
	if e == nil {
		return "", ErrInvalidEntry
	}
	rec := e.Clone()
	if rec.ID == "" {
		rec.ID = entry.NewID()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = entry.Now()
	}
	if rec.Date.IsZero() {
		rec.Date = entry.DateOf(rec.Timestamp.Local())
	}
	rec.Normalize()

	err := r.store.Update(ctx, func(tx *store.Tx) error {
		exists, err := tx.Exists(store.BucketEntries, rec.ID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", ErrDuplicateID, rec.ID)
		}
		return put(tx, rec)
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateID) {
			r.logger.Error("entry id already exists", "id", rec.ID)
		}
		return "", err
	}
	e.ID, e.Timestamp, e.Date = rec.ID, rec.Timestamp, rec.Date
	return rec.ID, nil
}

// Get returns a copy of the entry with id.
func (r *Repository) Get(ctx context.Context, id string) (*entry.Entry, error) {
	var e *entry.Entry
	err := r.store.View(ctx, func(tx *store.Tx) error {
		var err error
		e, err = get(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListAll returns every stored entry in no particular order.
func (r *Repository) ListAll(ctx context.Context) ([]*entry.Entry, error) {
	var all []*entry.Entry
	err := r.store.View(ctx, func(tx *store.Tx) error {
		keys, err := tx.Keys(store.BucketEntries)
		if err != nil {
			return err
		}
		all = make([]*entry.Entry, 0, len(keys))
		for _, key := range keys {
			e, err := get(tx, key)
			if err != nil {
				return err
			}
			all = append(all, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

// Count returns the number of stored entries.
func (r *Repository) Count(ctx context.Context) (int, error) {
	n := 0
	err := r.store.View(ctx, func(tx *store.Tx) error {
		keys, err := tx.Keys(store.BucketEntries)
		n = len(keys)
		return err
	})
	return n, err
}

// UpdateAnswer replaces the text of one answer.
func (r *Repository) UpdateAnswer(ctx context.Context, id string, sectionIndex, answerIndex int, text string) error {
	return r.modify(ctx, id, func(e *entry.Entry) error {
		if sectionIndex < 0 || sectionIndex >= len(e.Sections) {
			return fmt.Errorf("%w: section %d of %d", ErrIndexOutOfRange, sectionIndex, len(e.Sections))
		}
		answers := e.Sections[sectionIndex].Answers
		if answerIndex < 0 || answerIndex >= len(answers) {
			return fmt.Errorf("%w: answer %d of %d", ErrIndexOutOfRange, answerIndex, len(answers))
		}
		answers[answerIndex].Answer = text
		return nil
	})
}

// AppendSection adds section after the existing ones.
func (r *Repository) AppendSection(ctx context.Context, id string, section entry.Section) error {
	section = section.Clone()
	return r.modify(ctx, id, func(e *entry.Entry) error {
		e.Sections = append(e.Sections, section)
		return nil
	})
}

// Delete removes the entry. Deleting a missing id does nothing.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.store.Update(ctx, func(tx *store.Tx) error {
		return tx.Delete(store.BucketEntries, id)
	})
}

// Upsert inserts e or overwrites the entry with the same id.
func (r *Repository) Upsert(ctx context.Context, e *entry.Entry) error {
	return r.UpsertAll(ctx, []*entry.Entry{e})
}

// UpsertAll upserts every entry in one transaction.
func (r *Repository) UpsertAll(ctx context.Context, entries []*entry.Entry) error {
	recs := make([]*entry.Entry, 0, len(entries))
	for i, e := range entries {
		if e == nil || e.ID == "" {
			return fmt.Errorf("%w: record %d has no id", ErrInvalidEntry, i)
		}
		rec := e.Clone()
		rec.Normalize()
		recs = append(recs, rec)
	}
	return r.store.Update(ctx, func(tx *store.Tx) error {
		for _, rec := range recs {
			if err := put(tx, rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) modify(ctx context.Context, id string, fn func(e *entry.Entry) error) error {
	return r.store.Update(ctx, func(tx *store.Tx) error {
		e, err := get(tx, id)
		if err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
		e.Normalize()
		return put(tx, e)
	})
}

func get(tx *store.Tx, id string) (*entry.Entry, error) {
	val, err := tx.Get(store.BucketEntries, id)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	e := &entry.Entry{}
	if err := json.Unmarshal(val, e); err != nil {
		return nil, fmt.Errorf("repository: decode %s: %w", id, err)
	}
	e.ID = id
	e.Normalize()
	return e, nil
}

func put(tx *store.Tx, e *entry.Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return tx.Put(store.BucketEntries, e.ID, data)
}
