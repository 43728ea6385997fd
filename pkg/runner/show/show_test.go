package show

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/walkjournal/pkg/app"
	"tableflip.dev/walkjournal/pkg/entry"
	"tableflip.dev/walkjournal/pkg/repository"
	"tableflip.dev/walkjournal/pkg/store"
)

func init() {
	color.NoColor = true
}

func TestShow(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(ctx, store.Options{BasePath: t.TempDir()})
	require.NoError(t, err)
	defer s.Close()
	svc := &app.Service{Repository: repository.New(s, nil)}

	d := entry.NewDraft(entry.NewDate(2024, 1, 2), []string{"Fridge"})
	d.SetAnswer(0, 0, "Milk past date")
	e, err := svc.Submit(ctx, d)
	require.NoError(t, err)

	var out bytes.Buffer
	sh := &Show{Service: svc, ID: e.ID, ShowID: true, Out: &out}
	require.NoError(t, sh.Do(ctx))
	assert.Contains(t, out.String(), "Fridge")
	assert.Contains(t, out.String(), "Milk past date")
	assert.Contains(t, out.String(), e.ID)

	sh = &Show{Service: svc, ID: "missing", Out: &out}
	assert.ErrorIs(t, sh.Do(ctx), repository.ErrNotFound)
}
