// Package history filters a snapshot of entries and groups it by ISO week and
// weekday for display. It keeps no state between queries.
package history

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/text/cases"

	"tableflip.dev/walkjournal/pkg/entry"
)

const dayLabelLayout = "Monday (02/01/2006)"

// Options narrow a query.
type Options struct {
	// Term is matched case-insensitively against section titles, questions,
	// answers and tags. Empty matches everything.
	Term string
	// Since drops entries dated before it when non-zero.
	Since entry.Date
}

// Result is the grouped listing, most recent week first.
type Result struct {
	Weeks []Week `json:"weeks"`
}

// Week groups the entries of one ISO week.
type Week struct {
	Year   int    `json:"year"`
	Number int    `json:"week"`
	Label  string `json:"label"`
	Days   []Day  `json:"days"`
}

// Day groups the entries of one weekday within a week.
type Day struct {
	Weekday time.Weekday   `json:"-"`
	Name    string         `json:"weekday"`
	Date    entry.Date     `json:"date"`
	Label   string         `json:"label"`
	Entries []*entry.Entry `json:"entries"`
}

// Count is the number of entries in the result.
func (r Result) Count() int {
	n := 0
	for _, w := range r.Weeks {
		for _, d := range w.Days {
			n += len(d.Entries)
		}
	}
	return n
}

// Entries flattens the result in display order.
func (r Result) Entries() []*entry.Entry {
	out := make([]*entry.Entry, 0, r.Count())
	for _, w := range r.Weeks {
		for _, d := range w.Days {
			out = append(out, d.Entries...)
		}
	}
	return out
}

// ISOWeek returns the ISO 8601 week-year and week number of d.
func ISOWeek(d entry.Date) (year, week int) {
	return d.Time().ISOWeek()
}

// WeekLabel formats a week key as "2020-W53".
func WeekLabel(year, week int) string {
	return fmt.Sprintf("%d-W%d", year, week)
}

// DayLabel formats a date as "Friday (01/01/2021)".
func DayLabel(d entry.Date) string {
	return d.Time().Format(dayLabelLayout)
}

// Query filters, sorts and groups entries. The input slice is not modified.
func Query(entries []*entry.Entry, opts Options) Result {
	matches := newMatcher(opts.Term)
	selected := lo.Filter(entries, func(e *entry.Entry, _ int) bool {
		if e == nil {
			return false
		}
		if !opts.Since.IsZero() && e.Date.Before(opts.Since) {
			return false
		}
		return matches(e)
	})

	slices.SortStableFunc(selected, func(a, b *entry.Entry) int {
		if c := b.Timestamp.Compare(a.Timestamp.Time); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	type weekKey struct{ year, week int }
	weeks := map[weekKey]*Week{}
	days := map[weekKey]map[string]int{}
	for _, e := range selected {
		year, num := ISOWeek(e.Date)
		key := weekKey{year, num}
		w, ok := weeks[key]
		if !ok {
			w = &Week{Year: year, Number: num, Label: WeekLabel(year, num)}
			weeks[key] = w
			days[key] = map[string]int{}
		}
		label := DayLabel(e.Date)
		i, ok := days[key][label]
		if !ok {
			i = len(w.Days)
			days[key][label] = i
			w.Days = append(w.Days, Day{
				Weekday: e.Date.Weekday(),
				Name:    e.Date.Weekday().String(),
				Date:    e.Date,
				Label:   label,
			})
		}
		w.Days[i].Entries = append(w.Days[i].Entries, e)
	}

	result := Result{Weeks: make([]Week, 0, len(weeks))}
	for _, w := range weeks {
		result.Weeks = append(result.Weeks, *w)
	}
	slices.SortFunc(result.Weeks, func(a, b Week) int {
		if c := cmp.Compare(b.Year, a.Year); c != 0 {
			return c
		}
		return cmp.Compare(b.Number, a.Number)
	})
	return result
}

func newMatcher(term string) func(*entry.Entry) bool {
	if term == "" {
		return func(*entry.Entry) bool { return true }
	}
	fold := cases.Fold()
	needle := fold.String(term)
	contains := func(s string) bool {
		return strings.Contains(fold.String(s), needle)
	}
	return func(e *entry.Entry) bool {
		if contains(e.Tags) {
			return true
		}
		return lo.SomeBy(e.Sections, func(s entry.Section) bool {
			if contains(s.Title) {
				return true
			}
			return lo.SomeBy(s.Answers, func(a entry.Answer) bool {
				return contains(a.Question) || contains(a.Answer)
			})
		})
	}
}
