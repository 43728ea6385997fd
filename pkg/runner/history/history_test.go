package history

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/walkjournal/pkg/app"
	"tableflip.dev/walkjournal/pkg/entry"
	"tableflip.dev/walkjournal/pkg/history"
	"tableflip.dev/walkjournal/pkg/repository"
	"tableflip.dev/walkjournal/pkg/store"
)

func init() {
	color.NoColor = true
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newService(t *testing.T) *app.Service {
	t.Helper()
	s, err := store.Open(context.Background(), store.Options{BasePath: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return &app.Service{Repository: repository.New(s, nil), Watcher: s}
}

func create(t *testing.T, svc *app.Service, tags string) {
	t.Helper()
	_, err := svc.Submit(context.Background(), &entry.Draft{Date: entry.NewDate(2021, time.January, 1), Tags: tags})
	require.NoError(t, err)
}

func TestHistoryJSON(t *testing.T) {
	svc := newService(t)
	create(t, svc, "fridge")
	create(t, svc, "ambient")

	var out bytes.Buffer
	h := &History{Service: svc, Options: history.Options{Term: "FRIDGE"}, JSON: true, Out: &out}
	require.NoError(t, h.Do(context.Background()))

	var r struct {
		Weeks []struct {
			Label string `json:"label"`
			Days  []struct {
				Weekday string         `json:"weekday"`
				Entries []*entry.Entry `json:"entries"`
			} `json:"days"`
		} `json:"weeks"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &r))
	require.Len(t, r.Weeks, 1)
	assert.Equal(t, "2020-W53", r.Weeks[0].Label)
	assert.Equal(t, "Friday", r.Weeks[0].Days[0].Weekday)
	require.Len(t, r.Weeks[0].Days[0].Entries, 1)
	assert.Equal(t, "fridge", r.Weeks[0].Days[0].Entries[0].Tags)
}

func TestHistoryText(t *testing.T) {
	svc := newService(t)
	create(t, svc, "fridge")

	var out bytes.Buffer
	h := &History{Service: svc, Out: &out}
	require.NoError(t, h.Do(context.Background()))
	assert.Contains(t, out.String(), "Walk History - 1 entry")
	assert.Contains(t, out.String(), "Week 2020-W53")
}

func TestHistoryFollowRedraws(t *testing.T) {
	svc := newService(t)
	create(t, svc, "first")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := &syncBuffer{}
	h := &History{Service: svc, Follow: true, Out: out}
	done := make(chan error, 1)
	go func() { done <- h.Do(ctx) }()

	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("[first]"))
	}, 2*time.Second, 10*time.Millisecond)
	// Let the watcher register its directories.
	time.Sleep(100 * time.Millisecond)

	create(t, svc, "second")
	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("[second]"))
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("follow did not stop after cancel")
	}
}
