// Package mcp serves the walk journal over the Model Context Protocol.
package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/walkjournal/pkg/app"
	"tableflip.dev/walkjournal/pkg/backup"
	"tableflip.dev/walkjournal/pkg/entry"
	"tableflip.dev/walkjournal/pkg/history"
)

// Service adapts app.Service to the shapes the MCP tools exchange.
type Service struct {
	App *app.Service
}

var errNoService = errors.New("journal service is not configured")

// AnswerInput sets one answer of a new entry. Positions start at 1, the
// same numbering show prints.
type AnswerInput struct {
	Section int    `json:"section"`
	Answer  int    `json:"answer"`
	Text    string `json:"text"`
}

// CreateEntryOptions captures the parameters used to create a new entry.
type CreateEntryOptions struct {
	Date     string
	Tags     string
	Template string
	Sections []string
	Answers  []AnswerInput
}

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"`
	Created  string          `json:"created"`
	Tags     string          `json:"tags,omitempty"`
	Title    string          `json:"title"`
	Answered int             `json:"answered"`
	Sections []entry.Section `json:"sections"`
}

// HistoryDTO is a history query and its weekly grouping.
type HistoryDTO struct {
	Term  string         `json:"term,omitempty"`
	Since string         `json:"since,omitempty"`
	Count int            `json:"count"`
	Weeks []history.Week `json:"weeks"`
}

// BackupDTO carries a full backup document inline.
type BackupDTO struct {
	Format  string `json:"format"`
	Entries int    `json:"entries"`
	Data    string `json:"data"`
}

// NewService wraps svc for MCP clients. The interactive draft belongs to the
// terminal user, so the wrapped service never reads or clears it.
func NewService(svc *app.Service) *Service {
	if svc == nil {
		return &Service{}
	}
	cp := *svc
	cp.Drafts = nil
	return &Service{App: &cp}
}

// CreateEntry builds a draft from opts and stores it as a new entry.
func (s *Service) CreateEntry(ctx context.Context, opts CreateEntryOptions) (*EntryDTO, error) {
	if s.App == nil {
		return nil, errNoService
	}

	var date entry.Date
	if v := strings.TrimSpace(opts.Date); v != "" {
		d, err := entry.ParseDate(v)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: want YYYY-MM-DD", opts.Date)
		}
		date = d
	}

	titles := opts.Sections
	if len(titles) == 0 {
		name := opts.Template
		if strings.TrimSpace(name) == "" {
			name = entry.DefaultTemplate
		}
		t, ok := entry.TemplateByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown template %q", opts.Template)
		}
		titles = t.Sections
	}

	d := entry.NewDraft(date, titles)
	d.Tags = strings.TrimSpace(opts.Tags)
	for _, a := range opts.Answers {
		if !d.SetAnswer(a.Section-1, a.Answer-1, a.Text) {
			return nil, fmt.Errorf("section %d has no answer %d", a.Section, a.Answer)
		}
	}

	e, err := s.App.Submit(ctx, d)
	if err != nil {
		return nil, err
	}
	return toDTO(e), nil
}

// EntryByID locates an entry by id.
func (s *Service) EntryByID(ctx context.Context, id string) (*EntryDTO, error) {
	if err := s.check(id); err != nil {
		return nil, err
	}
	e, err := s.App.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(e), nil
}

// History runs a history query. since is a YYYY-MM-DD date or empty.
func (s *Service) History(ctx context.Context, term, since string) (*HistoryDTO, error) {
	if s.App == nil {
		return nil, errNoService
	}
	opts := history.Options{Term: strings.TrimSpace(term)}
	if v := strings.TrimSpace(since); v != "" {
		d, err := entry.ParseDate(v)
		if err != nil {
			return nil, fmt.Errorf("invalid since %q: want YYYY-MM-DD", since)
		}
		opts.Since = d
	}

	result, err := s.App.History(ctx, opts)
	if err != nil {
		return nil, err
	}
	weeks := result.Weeks
	if weeks == nil {
		weeks = []history.Week{}
	}
	return &HistoryDTO{
		Term:  opts.Term,
		Since: opts.Since.String(),
		Count: result.Count(),
		Weeks: weeks,
	}, nil
}

// UpdateAnswer replaces one answer. section and answer start at 1.
func (s *Service) UpdateAnswer(ctx context.Context, id string, section, answer int, text string) (*EntryDTO, error) {
	if err := s.check(id); err != nil {
		return nil, err
	}
	if section < 1 || answer < 1 {
		return nil, errors.New("section and answer start at 1")
	}
	e, err := s.App.UpdateAnswer(ctx, id, section-1, answer-1, text)
	if err != nil {
		return nil, err
	}
	return toDTO(e), nil
}

// AppendSection adds a single-question section titled title.
func (s *Service) AppendSection(ctx context.Context, id, title string) (*EntryDTO, error) {
	if err := s.check(id); err != nil {
		return nil, err
	}
	e, err := s.App.AppendSection(ctx, id, title)
	if err != nil {
		return nil, err
	}
	return toDTO(e), nil
}

// DeleteEntry removes an entry. A missing entry is not an error.
func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	if err := s.check(id); err != nil {
		return err
	}
	return s.App.Delete(ctx, id)
}

// Backup renders every entry in the requested format, json by default.
func (s *Service) Backup(ctx context.Context, format string) (*BackupDTO, error) {
	if s.App == nil {
		return nil, errNoService
	}
	f := backup.FormatJSON
	if strings.TrimSpace(format) != "" {
		parsed, err := backup.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		f = parsed
	}

	var buf bytes.Buffer
	n, err := s.App.Backup(ctx, &buf, f)
	if err != nil {
		return nil, err
	}
	return &BackupDTO{Format: string(f), Entries: n, Data: buf.String()}, nil
}

// FollowUps lists open findings across the journal.
func (s *Service) FollowUps(ctx context.Context) ([]app.FollowUp, error) {
	if s.App == nil {
		return nil, errNoService
	}
	return s.App.FollowUps(ctx, entry.Date{})
}

func (s *Service) check(id string) error {
	if s.App == nil {
		return errNoService
	}
	if strings.TrimSpace(id) == "" {
		return errors.New("id is required")
	}
	return nil
}

func toDTO(e *entry.Entry) *EntryDTO {
	return &EntryDTO{
		ID:       e.ID,
		Date:     e.Date.String(),
		Created:  entry.FormatTime(e.Timestamp.Time),
		Tags:     e.Tags,
		Title:    e.Title(),
		Answered: e.AnswerCount(),
		Sections: e.Sections,
	}
}
