package restore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/walkjournal/pkg/app"
	"tableflip.dev/walkjournal/pkg/backup"
	"tableflip.dev/walkjournal/pkg/repository"
	"tableflip.dev/walkjournal/pkg/store"
)

func newService(t *testing.T) *app.Service {
	t.Helper()
	s, err := store.Open(context.Background(), store.Options{BasePath: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return &app.Service{Repository: repository.New(s, nil)}
}

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestRestoreFiles(t *testing.T) {
	svc := newService(t)
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `[{"id":"a","date":"2021-01-01","timestamp":"2021-01-01T10:00:00Z","tags":"","sections":[]}]`)
	b := writeFile(t, dir, "b.yml", "- id: b\n  date: 2021-01-02\n")

	var out bytes.Buffer
	r := &Restore{Service: svc, Files: []string{a, b, a}, Out: &out}
	require.NoError(t, r.Do(context.Background()))
	assert.Contains(t, out.String(), "Restored 3 entries from 3 files")

	n, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRestoreReportsFailingFile(t *testing.T) {
	svc := newService(t)
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `[{"id":"a"}]`)
	bad := writeFile(t, dir, "bad.json", `[{"id":"b"},{"date":"2021-01-01"}]`)

	r := &Restore{Service: svc, Files: []string{good, bad}, Out: &bytes.Buffer{}}
	err := r.Do(context.Background())
	require.ErrorIs(t, err, backup.ErrParse)
	assert.Contains(t, err.Error(), bad)
	assert.Contains(t, err.Error(), "record 1")

	all, err := svc.Repository.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "a", all[0].ID)
}

func TestRestoreMissingFile(t *testing.T) {
	r := &Restore{Service: newService(t), Files: []string{filepath.Join(t.TempDir(), "nope.json")}, Out: &bytes.Buffer{}}
	assert.ErrorIs(t, r.Do(context.Background()), os.ErrNotExist)
}

func TestRestoreEmptyYAMLNamesFile(t *testing.T) {
	svc := newService(t)
	empty := writeFile(t, t.TempDir(), "empty.yaml", "# nothing\n")

	var out bytes.Buffer
	r := &Restore{Service: svc, Files: []string{empty}, Out: &out}
	err := r.Do(context.Background())
	require.ErrorIs(t, err, backup.ErrParse)
	assert.Contains(t, err.Error(), empty)
	assert.NotContains(t, out.String(), "Restored 0 entries")
}
