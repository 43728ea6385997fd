package compose

import (
	"bytes"
	"context"
	"strings"
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

func newService(t *testing.T) *app.Service {
	t.Helper()
	s, err := store.Open(context.Background(), store.Options{BasePath: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	drafts, err := draft.New(t.TempDir())
	require.NoError(t, err)
	return &app.Service{Repository: repository.New(s, nil), Drafts: drafts}
}

func quickCheck(t *testing.T) entry.Template {
	tmpl, ok := entry.TemplateByName("quick check")
	require.True(t, ok)
	return tmpl
}

func lines(in ...string) *strings.Reader {
	return strings.NewReader(strings.Join(in, "\n") + "\n")
}

func TestComposeSavesWalk(t *testing.T) {
	svc := newService(t)
	var out bytes.Buffer
	c := &Compose{
		Service:  svc,
		Template: quickCheck(t),
		Tags:     "night",
		In: lines(
			"",                      // keep tags
			"warm", "door open", "", // Ambient
			"", "", "", // General
			"Compressor", // extra section
			"Noise?", "rattling",
			"",  // finish
			"y", // save
		),
		Out: &out,
	}
	require.NoError(t, c.Do(context.Background()))
	assert.Contains(t, out.String(), "Saved [night] Walk Entry")

	all, err := svc.Repository.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	e := all[0]
	assert.Equal(t, "night", e.Tags)
	assert.Equal(t, entry.Today(), e.Date)
	require.Len(t, e.Sections, 3)
	assert.Equal(t, "warm", e.Sections[0].Answers[0].Answer)
	assert.Equal(t, "door open", e.Sections[0].Answers[1].Answer)
	assert.Equal(t, "Compressor", e.Sections[2].Title)
	assert.Equal(t, entry.Answer{Question: "Noise?", Answer: "rattling"}, e.Sections[2].Answers[0])

	_, ok, err := svc.LoadDraft()
	require.NoError(t, err)
	assert.False(t, ok, "draft cleared after save")
}

func TestComposeInterruptedKeepsDraftAndResumes(t *testing.T) {
	svc := newService(t)
	var out bytes.Buffer
	c := &Compose{Service: svc, Template: quickCheck(t), In: lines("tagged", "first answer"), Out: &out}
	require.NoError(t, c.Do(context.Background()))
	assert.Contains(t, out.String(), "Input closed")

	d, ok, err := svc.LoadDraft()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tagged", d.Tags)
	assert.Equal(t, "first answer", d.Sections[0].Answers[0].Answer)

	out.Reset()
	resume := &Compose{
		Service:  svc,
		Template: quickCheck(t),
		In: lines(
			"y", // resume
			"",  // tags kept
			"",  // first answer kept
			"second", "", "", "", "",
			"",  // no extra section
			"y", // save
		),
		Out: &out,
	}
	require.NoError(t, resume.Do(context.Background()))

	all, err := svc.Repository.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "tagged", all[0].Tags)
	assert.Equal(t, "first answer", all[0].Sections[0].Answers[0].Answer)
	assert.Equal(t, "second", all[0].Sections[0].Answers[1].Answer)
}

func TestComposeDeclineSaveKeepsDraft(t *testing.T) {
	svc := newService(t)
	var out bytes.Buffer
	c := &Compose{
		Service:  svc,
		Template: quickCheck(t),
		In:       lines("", "", "", "", "", "", "", "", "n"),
		Out:      &out,
	}
	require.NoError(t, c.Do(context.Background()))
	assert.Contains(t, out.String(), "Draft kept")

	n, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	_, ok, err := svc.LoadDraft()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPrompterConfirm(t *testing.T) {
	tests := map[string]struct {
		input string
		def   bool
		want  bool
	}{
		"yes":                 {input: "y", want: true},
		"no":                  {input: "n", def: true, want: false},
		"blank takes yes":     {input: "", def: true, want: true},
		"blank takes no":      {input: "", want: false},
		"anything else is no": {input: "maybe", def: true, want: false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			p := newPrompter(lines(tc.input), &bytes.Buffer{})
			got, err := p.Confirm("Sure", tc.def)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPrompterAskKeepsDefault(t *testing.T) {
	p := newPrompter(lines("", "changed"), &bytes.Buffer{})
	got, err := p.Ask("Tags", "night")
	require.NoError(t, err)
	assert.Equal(t, "night", got)

	got, err = p.Ask("Tags", "night")
	require.NoError(t, err)
	assert.Equal(t, "changed", got)
}

func TestPrompterOneLinePerPrompt(t *testing.T) {
	p := newPrompter(lines("first", "second"), &bytes.Buffer{})
	for _, want := range []string{"first", "second"} {
		got, err := p.Ask("Q", "")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := p.Ask("Q", "")
	assert.ErrorIs(t, err, errInputClosed)
}

func TestPrompterLastLineWithoutNewline(t *testing.T) {
	p := newPrompter(strings.NewReader("final"), &bytes.Buffer{})
	got, err := p.Ask("Q", "")
	require.NoError(t, err)
	assert.Equal(t, "final", got)

	_, err = p.Ask("Q", "")
	assert.ErrorIs(t, err, errInputClosed)
}
