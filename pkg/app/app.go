package app

import (
	"cmp"
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"

	"tableflip.dev/walkjournal/pkg/backup"
	"tableflip.dev/walkjournal/pkg/entry"
	"tableflip.dev/walkjournal/pkg/history"
	"tableflip.dev/walkjournal/pkg/store"
)

// Repository is the entry persistence the service needs.
// *repository.Repository implements it.
type Repository interface {
	Create(ctx context.Context, e *entry.Entry) (string, error)
	Get(ctx context.Context, id string) (*entry.Entry, error)
	ListAll(ctx context.Context) ([]*entry.Entry, error)
	Count(ctx context.Context) (int, error)
	UpdateAnswer(ctx context.Context, id string, sectionIndex, answerIndex int, text string) error
	AppendSection(ctx context.Context, id string, section entry.Section) error
	Delete(ctx context.Context, id string) error
	UpsertAll(ctx context.Context, entries []*entry.Entry) error
}

// Drafts holds the single unsaved entry. *draft.Cache implements it.
type Drafts interface {
	Save(d *entry.Draft) error
	Load() (*entry.Draft, bool, error)
	Clear() error
}

// Watcher streams store changes. *store.Store implements it.
type Watcher interface {
	Watch(ctx context.Context) (<-chan store.Event, error)
}

// Service provides high-level operations for entries and drafts.
// It wraps persistence so the CLI commands share one set of rules.
type Service struct {
	Repository Repository
	Drafts     Drafts
	Watcher    Watcher
	Logger     *slog.Logger
}

var (
	errNoRepository = errors.New("app: no repository configured")
	errNoDrafts     = errors.New("app: no draft cache configured")
	errNoWatcher    = errors.New("app: no watcher configured")
)

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

// SaveDraft replaces the stored draft.
func (s *Service) SaveDraft(d *entry.Draft) error {
	if s.Drafts == nil {
		return errNoDrafts
	}
	return s.Drafts.Save(d)
}

// LoadDraft returns the stored draft, if any.
func (s *Service) LoadDraft() (*entry.Draft, bool, error) {
	if s.Drafts == nil {
		return nil, false, errNoDrafts
	}
	return s.Drafts.Load()
}

// DiscardDraft drops the stored draft.
func (s *Service) DiscardDraft() error {
	if s.Drafts == nil {
		return errNoDrafts
	}
	return s.Drafts.Clear()
}

// Submit stores the draft as a new entry and then clears the draft. When the
// entry cannot be stored the draft is kept so nothing typed is lost.
func (s *Service) Submit(ctx context.Context, d *entry.Draft) (*entry.Entry, error) {
	if s.Repository == nil {
		return nil, errNoRepository
	}
	if d == nil {
		return nil, errors.New("app: nothing to submit")
	}
	e := d.Entry()
	if _, err := s.Repository.Create(ctx, e); err != nil {
		return nil, err
	}
	if s.Drafts != nil {
		if err := s.Drafts.Clear(); err != nil {
			s.logger().Warn("entry saved but draft not cleared", "id", e.ID, "err", err)
		}
	}
	return e, nil
}

// Get returns one entry.
func (s *Service) Get(ctx context.Context, id string) (*entry.Entry, error) {
	if s.Repository == nil {
		return nil, errNoRepository
	}
	return s.Repository.Get(ctx, id)
}

// Count returns the number of stored entries.
func (s *Service) Count(ctx context.Context) (int, error) {
	if s.Repository == nil {
		return 0, errNoRepository
	}
	return s.Repository.Count(ctx)
}

// UpdateAnswer edits one answer of a stored entry.
func (s *Service) UpdateAnswer(ctx context.Context, id string, sectionIndex, answerIndex int, text string) (*entry.Entry, error) {
	if s.Repository == nil {
		return nil, errNoRepository
	}
	if err := s.Repository.UpdateAnswer(ctx, id, sectionIndex, answerIndex, text); err != nil {
		return nil, err
	}
	return s.Repository.Get(ctx, id)
}

// AppendSection adds a single-question section to a stored entry.
func (s *Service) AppendSection(ctx context.Context, id, title string) (*entry.Entry, error) {
	if s.Repository == nil {
		return nil, errNoRepository
	}
	if err := s.Repository.AppendSection(ctx, id, entry.NewQuestionSection(title)); err != nil {
		return nil, err
	}
	return s.Repository.Get(ctx, id)
}

// Delete removes an entry. Deleting a missing entry succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.Repository == nil {
		return errNoRepository
	}
	return s.Repository.Delete(ctx, id)
}

// History runs a history query over every stored entry.
func (s *Service) History(ctx context.Context, opts history.Options) (history.Result, error) {
	all, err := s.listAll(ctx)
	if err != nil {
		return history.Result{}, err
	}
	return history.Query(all, opts), nil
}

// Watch subscribes to store change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Watcher == nil {
		return nil, errNoWatcher
	}
	return s.Watcher.Watch(ctx)
}

// Backup writes every entry, oldest first, to w.
func (s *Service) Backup(ctx context.Context, w io.Writer, format backup.Format) (int, error) {
	all, err := s.sorted(ctx)
	if err != nil {
		return 0, err
	}
	return len(all), backup.Export(w, all, format)
}

// ExportCSV writes the answer table, oldest entry first, to w.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	all, err := s.sorted(ctx)
	if err != nil {
		return 0, err
	}
	return len(all), backup.ExportCSV(w, all)
}

// Restore upserts every record of a backup. Existing entries that are not in
// the backup are kept.
func (s *Service) Restore(ctx context.Context, r io.Reader, format backup.Format, source string) (int, error) {
	if s.Repository == nil {
		return 0, errNoRepository
	}
	n, err := backup.Import(ctx, s.Repository, r, format, source)
	if err != nil {
		return 0, err
	}
	s.logger().Info("restored backup", "source", source, "entries", n)
	return n, nil
}

func (s *Service) listAll(ctx context.Context) ([]*entry.Entry, error) {
	if s.Repository == nil {
		return nil, errNoRepository
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Repository.ListAll(ctx)
}

// sorted lists entries by ascending timestamp then id so exports are
// reproducible.
func (s *Service) sorted(ctx context.Context) ([]*entry.Entry, error) {
	all, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(all, func(a, b *entry.Entry) int {
		if c := a.Timestamp.Compare(b.Timestamp.Time); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return all, nil
}
