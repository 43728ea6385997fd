package info

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/walkjournal/pkg/app"
	"tableflip.dev/walkjournal/pkg/draft"
	"tableflip.dev/walkjournal/pkg/entry"
	"tableflip.dev/walkjournal/pkg/repository"
	"tableflip.dev/walkjournal/pkg/store"
)

func init() {
	color.NoColor = true
}

func TestInfo(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	cfg := &store.FileConfig{Path: base, Database: "walks", BackendKind: store.BackendDiskv}
	s, err := store.Open(ctx, store.OptionsFor(cfg))
	require.NoError(t, err)
	defer s.Close()

	dir := draft.Dir(base, cfg.Name())
	drafts, err := draft.New(dir)
	require.NoError(t, err)
	svc := &app.Service{Repository: repository.New(s, nil), Drafts: drafts}
	require.NoError(t, svc.SaveDraft(entry.NewDraft(entry.Today(), []string{"Ambient"})))

	var out bytes.Buffer
	i := &Info{Config: cfg, Store: s, Service: svc, DraftDir: dir, Out: &out}
	require.NoError(t, i.Do(ctx))
	assert.Contains(t, out.String(), "Schema version")
	assert.Contains(t, out.String(), s.Dir())
	assert.Contains(t, out.String(), "unsaved walk in "+dir)
}
