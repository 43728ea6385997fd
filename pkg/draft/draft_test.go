package draft

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/walkjournal/pkg/entry"
)

func TestLoadEmpty(t *testing.T) {
	c, err := New(t.TempDir())
	require.NoError(t, err)

	d, ok, err := c.Load()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, d)
}

func TestSaveLoadClear(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "nested", "walkjournal.drafts"))
	require.NoError(t, err)

	d := entry.NewDraft(entry.NewDate(2021, time.January, 1), []string{"Ambient"})
	d.Tags = "cold room"
	require.True(t, d.SetAnswer(0, 0, "ice on coil"))
	require.NoError(t, c.Save(d))

	got, ok, err := c.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, d, got)

	require.True(t, d.SetAnswer(0, 1, "door left open"))
	require.NoError(t, c.Save(d))
	got, _, err = c.Load()
	require.NoError(t, err)
	assert.Equal(t, "door left open", got.Sections[0].Answers[1].Answer)

	require.NoError(t, c.Clear())
	require.NoError(t, c.Clear())
	_, ok, err = c.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, c.Save(entry.NewDraft(entry.Date{}, entry.DefaultSectionTitles)))

	reopened, err := New(dir)
	require.NoError(t, err)
	got, ok, err := reopened.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, got.Sections, len(entry.DefaultSectionTitles))
	assert.True(t, got.Date.IsZero())
}

func TestCorruptSlot(t *testing.T) {
	c, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(c.Path(), []byte("{not json"), 0o644))

	_, _, err = c.Load()
	assert.ErrorIs(t, err, ErrCorrupt)

	require.NoError(t, c.Clear())
	_, ok, err := c.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDir(t *testing.T) {
	assert.Equal(t, filepath.Join("/base", "walkjournal.drafts"), Dir("/base", "walkjournal"))
}
