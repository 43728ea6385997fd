package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/walkjournal/pkg/app"
	"tableflip.dev/walkjournal/pkg/entry"
	"tableflip.dev/walkjournal/pkg/history"
)

const (
	timeLayout   = "15:04"
	defaultWidth = 80
)

type PrettyPrint struct {
	ShowID bool
	// Width wraps answers; zero means 80 columns.
	Width int
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	spacing = strings.Repeat(" ", len("00000000-0000-0000-0000-000000000000  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return defaultWidth
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = fmt.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = fmt.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

func (pp *PrettyPrint) None() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = fmt.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// History prints a grouped history listing.
func (pp *PrettyPrint) History(r history.Result) {
	if r.Count() == 0 {
		pp.None()
		return
	}
	w := color.New(color.Bold, color.Underline)
	d := color.New(color.Bold)
	for _, week := range r.Weeks {
		if pp.ShowID {
			_, _ = fmt.Fprint(pp.out(), spacing)
		}
		_, _ = w.Fprintf(pp.out(), "Week %s\n", week.Label)
		for _, day := range week.Days {
			if pp.ShowID {
				_, _ = fmt.Fprint(pp.out(), spacing)
			}
			_, _ = d.Fprintf(pp.out(), "  %s\n", day.Label)
			pp.EntryLines(day.Entries...)
		}
		pp.NewLine()
	}
}

// EntryLines prints one "time - title" line per entry.
func (pp *PrettyPrint) EntryLines(entries ...*entry.Entry) {
	t := color.New()
	f := color.New(color.Faint)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	for _, e := range entries {
		if pp.ShowID {
			_, _ = y.Fprint(pp.out(), e.ID)
			if pad := len(spacing) - len(e.ID); pad > 0 {
				_, _ = fmt.Fprint(pp.out(), strings.Repeat(" ", pad))
			} else {
				_, _ = fmt.Fprint(pp.out(), "  ")
			}
		}
		when := "--:--"
		if !e.Timestamp.IsZero() {
			when = e.Timestamp.Local().Format(timeLayout)
		}
		_, _ = f.Fprintf(pp.out(), "    %s ", when)
		_, _ = t.Fprintf(pp.out(), "%s\n", e.Title())
	}
}

// Entry prints a whole entry with numbered sections and answers so they can
// be addressed by the answer command.
func (pp *PrettyPrint) Entry(e *entry.Entry) {
	b := color.New(color.Bold)
	f := color.New(color.Faint)
	q := color.New(color.FgCyan)

	_, _ = b.Fprintf(pp.out(), "Walk Date: %s\n", e.Date)
	_, _ = fmt.Fprintf(pp.out(), "Tags: %s\n", e.Tags)
	if pp.ShowID {
		_, _ = f.Fprintf(pp.out(), "ID: %s\n", e.ID)
	}
	if !e.Timestamp.IsZero() {
		_, _ = f.Fprintf(pp.out(), "Recorded: %s\n", e.Timestamp.Local().Format("2006-01-02 15:04"))
	}
	pp.NewLine()

	for si, s := range e.Sections {
		_, _ = b.Fprintf(pp.out(), "%d. %s\n", si+1, s.Title)
		if len(s.Answers) == 0 {
			_, _ = f.Fprintln(pp.out(), "   no questions")
		}
		for ai, a := range s.Answers {
			_, _ = q.Fprintf(pp.out(), "   %d.%d %s\n", si+1, ai+1, a.Question)
			text := a.Answer
			if strings.TrimSpace(text) == "" {
				_, _ = f.Fprintln(pp.out(), "       -")
				continue
			}
			_, _ = fmt.Fprintln(pp.out(), pp.wrap(text, 7))
		}
		pp.NewLine()
	}
}

func (pp *PrettyPrint) wrap(text string, margin uint) string {
	width := pp.width() - int(margin)
	if width < 20 {
		width = 20
	}
	return indent.String(wordwrap.String(text, width), margin)
}

// Draft prints the unsaved draft.
func (pp *PrettyPrint) Draft(d *entry.Draft) {
	if d == nil {
		pp.None()
		return
	}
	e := &entry.Entry{Date: d.Date, Tags: d.Tags, Sections: d.Sections}
	pp.Title("Draft")
	pp.Entry(e)
}

// Templates prints the template sets as a table.
func (pp *PrettyPrint) Templates(templates []entry.Template) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = uint(pp.width() - 20)
	tbl.AddRow(bold.Sprint("Template"), bold.Sprint("Sections"))
	for _, t := range templates {
		tbl.AddRow(t.Name, strings.Join(t.Sections, ", "))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintf(pp.out(), "\nEach section asks: %s\n", strings.Join(entry.DefaultQuestions, ", "))
}

// Report prints a walk summary table.
func (pp *PrettyPrint) Report(r app.ReportResult, label string) {
	bold := color.New(color.Bold)
	f := color.New(color.Faint)

	_, _ = bold.Fprintf(pp.out(), "Report · last %s", label)
	_, _ = f.Fprintf(pp.out(), " (%s → %s)\n", r.Since, r.Until)
	if r.Walks == 0 {
		_, _ = f.Fprintln(pp.out(), "  No walks recorded in this window.")
		pp.NewLine()
		return
	}
	_, _ = fmt.Fprintf(pp.out(), "%d walks between %s and %s\n\n", r.Walks, r.First, r.Last)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Section"), bold.Sprint("Walks"), bold.Sprint("Answered"), bold.Sprint("Blank"))
	for _, s := range r.Sections {
		tbl.AddRow(s.Title, s.Walks, s.Answered, s.Unanswered)
	}
	tbl.RightAlign(1)
	tbl.RightAlign(2)
	tbl.RightAlign(3)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// FollowUps prints open findings.
func (pp *PrettyPrint) FollowUps(items []app.FollowUp) {
	if len(items) == 0 {
		pp.None()
		return
	}
	b := color.New(color.Bold)
	f := color.New(color.Faint)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	for _, item := range items {
		_, _ = b.Fprintf(pp.out(), "%s  %s", item.Entry.Date, item.Section)
		if pp.ShowID {
			_, _ = y.Fprintf(pp.out(), "  %s %d", item.Entry.ID, item.SectionIndex+1)
			if item.SolutionIndex >= 0 {
				_, _ = y.Fprintf(pp.out(), " %d", item.SolutionIndex+1)
			}
		}
		pp.NewLine()
		_, _ = fmt.Fprintln(pp.out(), pp.wrap(item.Findings, 4))
		if item.SolutionIndex < 0 {
			_, _ = f.Fprintln(pp.out(), "    (no solution question)")
		}
	}
	pp.NewLine()
}
