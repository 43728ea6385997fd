package store

import (
	"context"
	"testing"
	"time"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func (t testConfig) Name() string {
	return "watch"
}

func (t testConfig) Backend() string {
	return BackendDiskv
}

func TestStoreWatchEmitsEntryChanges(t *testing.T) {
	base := t.TempDir()
	s, err := Open(context.Background(), OptionsFor(testConfig{path: base}))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	err = s.Update(context.Background(), func(tx *Tx) error {
		return tx.Put(BucketEntries, "walk-1", []byte(`{"id":"walk-1"}`))
	})
	if err != nil {
		t.Fatalf("store entry: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventEntriesInvalidated {
				continue
			}
			if evt.ID != "walk-1" {
				t.Fatalf("expected entry 'walk-1', got %q", evt.ID)
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for entry change event")
		}
	}
}

func TestEntryForPath(t *testing.T) {
	b := &diskvBackend{basePath: "/data/walkjournal"}
	if _, ok := b.entryForPath("/data/walkjournal/.tmp/123"); ok {
		t.Fatalf("temp files are not entries")
	}
	if _, ok := b.entryForPath("/data/walkjournal/meta/" + "c2NoZW1h"); ok {
		t.Fatalf("meta records are not entries")
	}
	id, ok := b.entryForPath("/data/walkjournal/" + toKey(BucketEntries, "abc"))
	if !ok || id != "abc" {
		t.Fatalf("expected abc, got %q (%v)", id, ok)
	}
}
