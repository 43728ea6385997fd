// Package backup reads and writes full journal backups as JSON or YAML, and
// writes the one-row-per-answer CSV export.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"tableflip.dev/walkjournal/pkg/entry"
)

// Format selects the backup encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("backup: unknown format %q", s)
}

// DetectFormat picks the format from a file extension, defaulting to JSON.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// record is the backup file shape. Everything is a string so that a bad
// value is reported by the validator with its record index instead of by the
// decoder.
type record struct {
	ID        string    `json:"id" yaml:"id" validate:"required"`
	Date      string    `json:"date,omitempty" yaml:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Timestamp string    `json:"timestamp,omitempty" yaml:"timestamp,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Tags      string    `json:"tags" yaml:"tags"`
	Sections  []section `json:"sections" yaml:"sections" validate:"dive"`
}

type section struct {
	Title   string   `json:"title" yaml:"title"`
	Answers []answer `json:"answers" yaml:"answers"`
}

type answer struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

func toRecord(e *entry.Entry) record {
	return record{
		ID:        e.ID,
		Date:      e.Date.String(),
		Timestamp: e.Timestamp.String(),
		Tags:      e.Tags,
		Sections: lo.Map(e.Sections, func(s entry.Section, _ int) section {
			return section{
				Title: s.Title,
				Answers: lo.Map(s.Answers, func(a entry.Answer, _ int) answer {
					return answer(a)
				}),
			}
		}),
	}
}

func (r record) entry() (*entry.Entry, error) {
	e := &entry.Entry{
		ID:   r.ID,
		Tags: r.Tags,
		Sections: lo.Map(r.Sections, func(s section, _ int) entry.Section {
			return entry.Section{
				Title: s.Title,
				Answers: lo.Map(s.Answers, func(a answer, _ int) entry.Answer {
					return entry.Answer(a)
				}),
			}
		}),
	}
	if r.Timestamp != "" {
		t, err := entry.ParseTime(r.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("timestamp: %w", err)
		}
		e.Timestamp = entry.Timestamp{Time: t}
	}
	switch {
	case r.Date != "":
		d, err := entry.ParseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("date: %w", err)
		}
		e.Date = d
	case !e.Timestamp.IsZero():
		e.Date = entry.DateOf(e.Timestamp.Time)
	}
	e.Normalize()
	return e, nil
}

// Export writes entries in the order given.
func Export(w io.Writer, entries []*entry.Entry, format Format) error {
	records := lo.Map(entries, func(e *entry.Entry, _ int) record {
		return toRecord(e)
	})
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("backup: unknown format %q", format)
}

// Decode reads and validates a whole backup. Either every record is returned
// or none is.
func Decode(r io.Reader, format Format) ([]*entry.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var records []record
	switch format {
	case FormatJSON, "":
		err = json.Unmarshal(data, &records)
	case FormatYAML:
		err = yaml.Unmarshal(data, &records)
	default:
		return nil, fmt.Errorf("backup: unknown format %q", format)
	}
	if err != nil {
		return nil, &ParseError{Record: -1, Err: err}
	}
	// null, ~ and an empty or comment-only document leave records nil.
	if records == nil {
		return nil, &ParseError{Record: -1, Err: errNotAList}
	}

	v := newValidator()
	entries := make([]*entry.Entry, 0, len(records))
	for i, rec := range records {
		if err := v.Struct(rec); err != nil {
			return nil, &ParseError{Record: i, Err: describe(err)}
		}
		e, err := rec.entry()
		if err != nil {
			return nil, &ParseError{Record: i, Err: err}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Upserter stores restored entries.
type Upserter interface {
	UpsertAll(ctx context.Context, entries []*entry.Entry) error
}

// Import decodes r and upserts every record in one batch. Entries not in the
// backup are left alone. source names r in errors.
func Import(ctx context.Context, u Upserter, r io.Reader, format Format, source string) (int, error) {
	entries, err := Decode(r, format)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Source = source
		}
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}
	if err := u.UpsertAll(ctx, entries); err != nil {
		return 0, fmt.Errorf("%s: %w", source, err)
	}
	return len(entries), nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	msgs := lo.Map(verrs, func(e validator.FieldError, _ int) string {
		switch e.Tag() {
		case "required":
			return e.Field() + " is required"
		case "datetime":
			return fmt.Sprintf("%s %q is not in the form %s", e.Field(), e.Value(), e.Param())
		default:
			return e.Field() + " is invalid"
		}
	})
	return errors.New(strings.Join(msgs, "; "))
}
