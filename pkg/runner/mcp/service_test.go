package mcp

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"tableflip.dev/walkjournal/pkg/app"
	"tableflip.dev/walkjournal/pkg/entry"
	"tableflip.dev/walkjournal/pkg/repository"
)

type memoryRepository struct {
	entries map[string]*entry.Entry
	counter int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		entries: make(map[string]*entry.Entry),
	}
}

func (m *memoryRepository) Create(_ context.Context, e *entry.Entry) (string, error) {
	if e.ID == "" {
		m.counter++
		e.ID = "mcp-" + strconv.Itoa(m.counter)
	}
	m.entries[e.ID] = e.Clone()
	return e.ID, nil
}

func (m *memoryRepository) Get(_ context.Context, id string) (*entry.Entry, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return e.Clone(), nil
}

func (m *memoryRepository) ListAll(_ context.Context) ([]*entry.Entry, error) {
	out := make([]*entry.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Clone())
	}
	return out, nil
}

func (m *memoryRepository) Count(_ context.Context) (int, error) {
	return len(m.entries), nil
}

func (m *memoryRepository) UpdateAnswer(_ context.Context, id string, si, ai int, text string) error {
	e, ok := m.entries[id]
	if !ok {
		return repository.ErrNotFound
	}
	if si < 0 || si >= len(e.Sections) || ai < 0 || ai >= len(e.Sections[si].Answers) {
		return repository.ErrIndexOutOfRange
	}
	e.Sections[si].Answers[ai].Answer = text
	return nil
}

func (m *memoryRepository) AppendSection(_ context.Context, id string, s entry.Section) error {
	e, ok := m.entries[id]
	if !ok {
		return repository.ErrNotFound
	}
	e.Sections = append(e.Sections, s.Clone())
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, id string) error {
	delete(m.entries, id)
	return nil
}

func (m *memoryRepository) UpsertAll(_ context.Context, entries []*entry.Entry) error {
	for _, e := range entries {
		m.entries[e.ID] = e.Clone()
	}
	return nil
}

type memoryDrafts struct {
	draft   *entry.Draft
	cleared bool
}

func (m *memoryDrafts) Save(d *entry.Draft) error {
	m.draft = d.Clone()
	return nil
}

func (m *memoryDrafts) Load() (*entry.Draft, bool, error) {
	return m.draft.Clone(), m.draft != nil, nil
}

func (m *memoryDrafts) Clear() error {
	m.draft = nil
	m.cleared = true
	return nil
}

func newService() (*Service, *memoryRepository) {
	repo := newMemoryRepository()
	return NewService(&app.Service{Repository: repo}), repo
}

func TestServiceCreateEntryDefaults(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService()

	dto, err := svc.CreateEntry(ctx, CreateEntryOptions{
		Date: "2024-03-04",
		Tags: "north",
		Answers: []AnswerInput{
			{Section: 2, Answer: 1, Text: "Ice on evaporator"},
		},
	})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if dto.ID == "" {
		t.Fatalf("expected generated id")
	}
	if dto.Date != "2024-03-04" {
		t.Fatalf("expected date 2024-03-04, got %s", dto.Date)
	}
	if len(dto.Sections) != len(entry.DefaultSectionTitles) {
		t.Fatalf("expected %d sections, got %d", len(entry.DefaultSectionTitles), len(dto.Sections))
	}
	if got := dto.Sections[1].Answers[0].Answer; got != "Ice on evaporator" {
		t.Fatalf("expected answer to be set, got %q", got)
	}
	if _, ok := repo.entries[dto.ID]; !ok {
		t.Fatalf("expected entry %s to be stored", dto.ID)
	}
}

func TestServiceCreateEntryRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService()

	for name, opts := range map[string]CreateEntryOptions{
		"date":     {Date: "04/03/2024"},
		"template": {Template: "Nightly"},
		"answer":   {Sections: []string{"Ambient"}, Answers: []AnswerInput{{Section: 1, Answer: 4, Text: "x"}}},
	} {
		if _, err := svc.CreateEntry(ctx, opts); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if len(repo.entries) != 0 {
		t.Fatalf("expected nothing stored, got %d entries", len(repo.entries))
	}
}

func TestServiceCreateEntryKeepsDraft(t *testing.T) {
	ctx := context.Background()
	drafts := &memoryDrafts{}
	if err := drafts.Save(entry.NewDraft(entry.NewDate(2024, 3, 4), []string{"Ambient"})); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	base := &app.Service{Repository: newMemoryRepository(), Drafts: drafts}
	svc := NewService(base)

	if _, err := svc.CreateEntry(ctx, CreateEntryOptions{Template: "Quick Check"}); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if drafts.cleared || drafts.draft == nil {
		t.Fatalf("expected the terminal draft to survive")
	}
	if base.Drafts == nil {
		t.Fatalf("expected the wrapped service to keep its drafts")
	}
}

func TestServiceEditEntry(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	dto, err := svc.CreateEntry(ctx, CreateEntryOptions{Sections: []string{"Ambient"}})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	updated, err := svc.UpdateAnswer(ctx, dto.ID, 1, 3, "Replaced the door seal")
	if err != nil {
		t.Fatalf("UpdateAnswer failed: %v", err)
	}
	if got := updated.Sections[0].Answers[2].Answer; got != "Replaced the door seal" {
		t.Fatalf("expected solution to be set, got %q", got)
	}

	if _, err := svc.UpdateAnswer(ctx, dto.ID, 0, 1, "x"); err == nil {
		t.Fatalf("expected error for section 0")
	}
	if _, err := svc.UpdateAnswer(ctx, dto.ID, 2, 1, "x"); err == nil {
		t.Fatalf("expected error for a missing section")
	}

	appended, err := svc.AppendSection(ctx, dto.ID, "")
	if err != nil {
		t.Fatalf("AppendSection failed: %v", err)
	}
	last := appended.Sections[len(appended.Sections)-1]
	if last.Title != entry.NewSectionTitle || len(last.Answers) != 1 {
		t.Fatalf("expected a one-question %q section, got %+v", entry.NewSectionTitle, last)
	}

	if err := svc.DeleteEntry(ctx, dto.ID); err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	if err := svc.DeleteEntry(ctx, dto.ID); err != nil {
		t.Fatalf("expected deleting a missing entry to succeed, got %v", err)
	}
	if _, err := svc.EntryByID(ctx, dto.ID); err == nil {
		t.Fatalf("expected deleted entry to be gone")
	}
	if _, err := svc.EntryByID(ctx, " "); err == nil {
		t.Fatalf("expected error for a blank id")
	}
}

func TestServiceHistory(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	for _, opts := range []CreateEntryOptions{
		{Date: "2024-03-04", Sections: []string{"Ambient"}, Answers: []AnswerInput{{Section: 1, Answer: 1, Text: "Seal broken"}}},
		{Date: "2024-03-11", Sections: []string{"Frozen"}},
		{Date: "2024-02-01", Sections: []string{"Ambient"}, Answers: []AnswerInput{{Section: 1, Answer: 1, Text: "seal worn"}}},
	} {
		if _, err := svc.CreateEntry(ctx, opts); err != nil {
			t.Fatalf("CreateEntry failed: %v", err)
		}
	}

	all, err := svc.History(ctx, "", "")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if all.Count != 3 {
		t.Fatalf("expected 3 walks, got %d", all.Count)
	}

	matched, err := svc.History(ctx, "SEAL", "2024-03-01")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if matched.Count != 1 {
		t.Fatalf("expected 1 walk, got %d", matched.Count)
	}
	if matched.Since != "2024-03-01" {
		t.Fatalf("expected since to be echoed, got %q", matched.Since)
	}

	none, err := svc.History(ctx, "compressor", "")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if none.Count != 0 || none.Weeks == nil {
		t.Fatalf("expected an empty, non-nil week list, got %+v", none)
	}

	if _, err := svc.History(ctx, "", "last week"); err == nil {
		t.Fatalf("expected error for a bad since date")
	}
}

func TestServiceBackup(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	if _, err := svc.CreateEntry(ctx, CreateEntryOptions{Tags: "north", Sections: []string{"Ambient"}}); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	dto, err := svc.Backup(ctx, "")
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if dto.Format != "json" || dto.Entries != 1 {
		t.Fatalf("expected 1 json record, got %+v", dto)
	}
	var records []map[string]any
	if err := json.Unmarshal([]byte(dto.Data), &records); err != nil {
		t.Fatalf("expected a json list: %v", err)
	}

	dto, err = svc.Backup(ctx, "yml")
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if dto.Format != "yaml" || !strings.Contains(dto.Data, "north") {
		t.Fatalf("expected a yaml backup, got %+v", dto)
	}

	if _, err := svc.Backup(ctx, "xml"); err == nil {
		t.Fatalf("expected error for an unknown format")
	}
}

func TestServiceWithoutApp(t *testing.T) {
	svc := NewService(nil)
	if _, err := svc.History(context.Background(), "", ""); err == nil {
		t.Fatalf("expected error without a journal service")
	}
}
