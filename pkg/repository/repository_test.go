package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/walkjournal/pkg/entry"
	"tableflip.dev/walkjournal/pkg/store"
)

func newRepo(t *testing.T, backend string) *Repository {
	t.Helper()
	s, err := store.Open(context.Background(), store.Options{BasePath: t.TempDir(), Backend: backend})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return New(s, nil)
}

func sampleEntry() *entry.Entry {
	return &entry.Entry{
		Date: entry.NewDate(2021, time.January, 1),
		Tags: "ambient",
		Sections: []entry.Section{
			entry.NewQuestionSet("Ambient", entry.DefaultQuestions),
			{Title: "Empty"},
		},
	}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, r *Repository)) {
	for _, backend := range []string{store.BackendDiskv, store.BackendBadger} {
		t.Run(backend, func(t *testing.T) {
			fn(t, newRepo(t, backend))
		})
	}
}

func TestCreateAndGet(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Repository) {
		ctx := context.Background()
		e := sampleEntry()
		id, err := r.Create(ctx, e)
		require.NoError(t, err)
		require.NotEmpty(t, id)
		assert.Equal(t, id, e.ID)
		assert.False(t, e.Timestamp.IsZero())

		got, err := r.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, "ambient", got.Tags)
		assert.Equal(t, entry.NewDate(2021, time.January, 1), got.Date)
		assert.True(t, got.Timestamp.Equal(e.Timestamp.Time))
		require.Len(t, got.Sections, 2)
		assert.NotNil(t, got.Sections[1].Answers)
		assert.Empty(t, got.Sections[1].Answers)
	})
}

func TestCreateDefaultsDate(t *testing.T) {
	r := newRepo(t, store.BackendDiskv)
	e := &entry.Entry{}
	_, err := r.Create(context.Background(), e)
	require.NoError(t, err)
	assert.Equal(t, entry.DateOf(e.Timestamp.Local()), e.Date)
	assert.NotNil(t, e.Sections)
}

func TestCreateDuplicateID(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Repository) {
		ctx := context.Background()
		e := sampleEntry()
		e.ID = "fixed"
		_, err := r.Create(ctx, e)
		require.NoError(t, err)

		dup := sampleEntry()
		dup.ID = "fixed"
		dup.Tags = "other"
		_, err = r.Create(ctx, dup)
		require.ErrorIs(t, err, ErrDuplicateID)

		got, err := r.Get(ctx, "fixed")
		require.NoError(t, err)
		assert.Equal(t, "ambient", got.Tags)
	})
}

func TestGetMissing(t *testing.T) {
	r := newRepo(t, store.BackendDiskv)
	_, err := r.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReturnedEntriesAreCopies(t *testing.T) {
	r := newRepo(t, store.BackendDiskv)
	ctx := context.Background()
	e := sampleEntry()
	id, err := r.Create(ctx, e)
	require.NoError(t, err)

	e.Sections[0].Answers[0].Answer = "mutated after create"
	got, err := r.Get(ctx, id)
	require.NoError(t, err)
	got.Sections[0].Title = "mutated after get"

	again, err := r.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ambient", again.Sections[0].Title)
	assert.Equal(t, "", again.Sections[0].Answers[0].Answer)
}

func TestListAll(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Repository) {
		ctx := context.Background()
		all, err := r.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)

		ids := map[string]bool{}
		for i := 0; i < 3; i++ {
			id, err := r.Create(ctx, sampleEntry())
			require.NoError(t, err)
			ids[id] = true
		}
		all, err = r.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		for _, e := range all {
			assert.True(t, ids[e.ID])
		}

		n, err := r.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})
}

func TestUpdateAnswer(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Repository) {
		ctx := context.Background()
		id, err := r.Create(ctx, sampleEntry())
		require.NoError(t, err)

		require.NoError(t, r.UpdateAnswer(ctx, id, 0, 1, "door seal broken"))
		got, err := r.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "door seal broken", got.Sections[0].Answers[1].Answer)
		assert.Equal(t, "Reasoning", got.Sections[0].Answers[1].Question)

		assert.ErrorIs(t, r.UpdateAnswer(ctx, id, 5, 0, "x"), ErrIndexOutOfRange)
		assert.ErrorIs(t, r.UpdateAnswer(ctx, id, 1, 0, "x"), ErrIndexOutOfRange)
		assert.ErrorIs(t, r.UpdateAnswer(ctx, id, 0, -1, "x"), ErrIndexOutOfRange)
		assert.ErrorIs(t, r.UpdateAnswer(ctx, "missing", 0, 0, "x"), ErrNotFound)

		unchanged, err := r.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, got, unchanged)
	})
}

func TestAppendSection(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Repository) {
		ctx := context.Background()
		id, err := r.Create(ctx, sampleEntry())
		require.NoError(t, err)

		require.NoError(t, r.AppendSection(ctx, id, entry.Section{Title: "Extra"}))
		got, err := r.Get(ctx, id)
		require.NoError(t, err)
		require.Len(t, got.Sections, 3)
		assert.Equal(t, "Extra", got.Sections[2].Title)
		assert.NotNil(t, got.Sections[2].Answers)

		assert.ErrorIs(t, r.AppendSection(ctx, "missing", entry.NewSection("x")), ErrNotFound)
	})
}

func TestDeleteIsIdempotent(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Repository) {
		ctx := context.Background()
		id, err := r.Create(ctx, sampleEntry())
		require.NoError(t, err)

		require.NoError(t, r.Delete(ctx, id))
		require.NoError(t, r.Delete(ctx, id))
		require.NoError(t, r.Delete(ctx, "never-existed"))

		_, err = r.Get(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUpsertPreservesID(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Repository) {
		ctx := context.Background()
		e := sampleEntry()
		e.ID = "restored"
		require.NoError(t, r.Upsert(ctx, e))

		e.Tags = "changed"
		require.NoError(t, r.Upsert(ctx, e))

		all, err := r.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "restored", all[0].ID)
		assert.Equal(t, "changed", all[0].Tags)
	})
}

func TestUpsertAllRejectsMissingID(t *testing.T) {
	r := newRepo(t, store.BackendDiskv)
	ctx := context.Background()
	ok := sampleEntry()
	ok.ID = "a"
	err := r.UpsertAll(ctx, []*entry.Entry{ok, sampleEntry()})
	require.ErrorIs(t, err, ErrInvalidEntry)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestConcurrentCreates(t *testing.T) {
	r := newRepo(t, store.BackendDiskv)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Create(ctx, sampleEntry()); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, n)
}

func TestClosedStore(t *testing.T) {
	s, err := store.Open(context.Background(), store.Options{BasePath: t.TempDir()})
	require.NoError(t, err)
	r := New(s, nil)
	require.NoError(t, s.Close())

	_, err = r.ListAll(context.Background())
	assert.True(t, errors.Is(err, store.ErrClosed))
}
