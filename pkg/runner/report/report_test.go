package report

import (
	"bytes"
	"context"
	"encoding/json"
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

func TestReport(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(ctx, store.Options{BasePath: t.TempDir()})
	require.NoError(t, err)
	defer s.Close()
	svc := &app.Service{Repository: repository.New(s, nil)}

	today := entry.Today()
	for _, date := range []entry.Date{today, today.AddDays(-1), today.AddDays(-30)} {
		d := entry.NewDraft(date, []string{"Ambient"})
		d.SetAnswer(0, 0, "ok")
		_, err := svc.Submit(ctx, d)
		require.NoError(t, err)
	}

	var out bytes.Buffer
	r := &Report{Service: svc, Since: today.AddDays(-6), Label: "1w", Out: &out}
	require.NoError(t, r.Do(ctx))
	assert.Contains(t, out.String(), "Report · last 1w")
	assert.Contains(t, out.String(), "2 walks between")
	assert.Contains(t, out.String(), "Ambient")

	out.Reset()
	r = &Report{Service: svc, JSON: true, Out: &out}
	require.NoError(t, r.Do(ctx))
	var result app.ReportResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, 3, result.Walks)
	require.Len(t, result.Sections, 1)
	assert.Equal(t, 3, result.Sections[0].Walks)
	assert.Equal(t, 3, result.Sections[0].Answered)
	assert.Equal(t, 6, result.Sections[0].Unanswered)
}

func TestReportEmpty(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(ctx, store.Options{BasePath: t.TempDir()})
	require.NoError(t, err)
	defer s.Close()

	var out bytes.Buffer
	r := &Report{Service: &app.Service{Repository: repository.New(s, nil)}, Label: "all", Out: &out}
	require.NoError(t, r.Do(ctx))
	assert.Contains(t, out.String(), "No walks recorded in this window.")
}
