package app

import (
	"context"
	"slices"
	"strings"

	"tableflip.dev/walkjournal/pkg/entry"
)

const (
	findingsQuestion = "Findings"
	solutionQuestion = "Solution"
)

// FollowUp is a section where something was found but no solution was
// written down yet.
type FollowUp struct {
	Entry        *entry.Entry
	SectionIndex int
	Section      string
	Findings     string
	// SolutionIndex is the answer to fill in, or -1 when the section has no
	// Solution question.
	SolutionIndex int
}

// FollowUps returns open findings from entries dated on or after since,
// newest entry first. A zero since covers every entry.
func (s *Service) FollowUps(ctx context.Context, since entry.Date) ([]FollowUp, error) {
	all, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]FollowUp, 0)
	for _, e := range all {
		if !since.IsZero() && e.Date.Before(since) {
			continue
		}
		for si, sec := range e.Sections {
			findings, solution := -1, -1
			for ai, a := range sec.Answers {
				switch {
				case strings.EqualFold(a.Question, findingsQuestion):
					findings = ai
				case strings.EqualFold(a.Question, solutionQuestion):
					solution = ai
				}
			}
			if findings < 0 || strings.TrimSpace(sec.Answers[findings].Answer) == "" {
				continue
			}
			if solution >= 0 && strings.TrimSpace(sec.Answers[solution].Answer) != "" {
				continue
			}
			results = append(results, FollowUp{
				Entry:         e,
				SectionIndex:  si,
				Section:       sec.Title,
				Findings:      sec.Answers[findings].Answer,
				SolutionIndex: solution,
			})
		}
	}

	slices.SortStableFunc(results, func(a, b FollowUp) int {
		if c := b.Entry.Timestamp.Compare(a.Entry.Timestamp.Time); c != 0 {
			return c
		}
		if c := strings.Compare(a.Entry.ID, b.Entry.ID); c != 0 {
			return c
		}
		return a.SectionIndex - b.SectionIndex
	})
	return results, nil
}
