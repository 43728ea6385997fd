package app

import (
	"context"
	"sort"
	"strings"

	"tableflip.dev/walkjournal/pkg/entry"
)

// ReportSection counts one section title across the walks in the window.
type ReportSection struct {
	Title string
	// Walks is how many entries carry the section.
	Walks int
	// Answered and Unanswered count the section's answers.
	Answered   int
	Unanswered int
}

// ReportResult summarizes the walks recorded in a date range.
type ReportResult struct {
	Since    entry.Date
	Until    entry.Date
	Walks    int
	First    entry.Date
	Last     entry.Date
	Sections []ReportSection
}

// Report summarizes entries dated between since and until inclusive. A zero
// bound is open.
func (s *Service) Report(ctx context.Context, since, until entry.Date) (ReportResult, error) {
	if !since.IsZero() && !until.IsZero() && until.Before(since) {
		since, until = until, since
	}
	all, err := s.listAll(ctx)
	if err != nil {
		return ReportResult{}, err
	}

	result := ReportResult{Since: since, Until: until}
	grouped := make(map[string]*ReportSection)
	for _, e := range all {
		if e == nil {
			continue
		}
		if !since.IsZero() && e.Date.Before(since) {
			continue
		}
		if !until.IsZero() && until.Before(e.Date) {
			continue
		}
		result.Walks++
		if result.First.IsZero() || e.Date.Before(result.First) {
			result.First = e.Date
		}
		if result.Last.IsZero() || result.Last.Before(e.Date) {
			result.Last = e.Date
		}

		seen := make(map[string]bool)
		for _, sec := range e.Sections {
			item := ensureReportSection(grouped, sec.Title)
			if !seen[item.Title] {
				seen[item.Title] = true
				item.Walks++
			}
			for _, a := range sec.Answers {
				if strings.TrimSpace(a.Answer) == "" {
					item.Unanswered++
				} else {
					item.Answered++
				}
			}
		}
	}

	if len(grouped) == 0 {
		return result, nil
	}

	result.Sections = make([]ReportSection, 0, len(grouped))
	for _, item := range grouped {
		result.Sections = append(result.Sections, *item)
	}
	sort.Slice(result.Sections, func(i, j int) bool {
		a, b := result.Sections[i], result.Sections[j]
		if a.Walks != b.Walks {
			return a.Walks > b.Walks
		}
		return a.Title < b.Title
	})
	return result, nil
}

func ensureReportSection(grouped map[string]*ReportSection, title string) *ReportSection {
	title = strings.TrimSpace(title)
	if title == "" {
		title = entry.NewSectionTitle
	}
	if item, ok := grouped[title]; ok {
		return item
	}
	item := &ReportSection{Title: title}
	grouped[title] = item
	return item
}
