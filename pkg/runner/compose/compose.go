// Package compose runs the interactive walk entry: every question of the
// chosen template is asked in turn and the draft is saved after each answer.
package compose

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/walkjournal/pkg/app"
	"tableflip.dev/walkjournal/pkg/draft"
	"tableflip.dev/walkjournal/pkg/entry"
	"tableflip.dev/walkjournal/pkg/printers"
)

type Compose struct {
	Service  *app.Service
	Template entry.Template
	// Date and Tags seed a new draft. They are ignored when resuming.
	Date entry.Date
	Tags string
	// Resume skips the resume question and continues any stored draft.
	Resume bool

	In  io.Reader
	Out io.Writer
}

func (c *Compose) Do(ctx context.Context) error {
	if c.Service == nil {
		return errors.New("can not record a walk, no journal")
	}
	if c.In == nil {
		c.In = os.Stdin
	}
	if c.Out == nil {
		c.Out = color.Output
	}
	p := newPrompter(c.In, c.Out)
	pp := printers.PrettyPrint{Out: c.Out}
	bold := color.New(color.Bold)

	d, err := c.start(p)
	if err != nil {
		return c.interrupted(err)
	}

	tags, err := p.Ask("Tags", d.Tags)
	if err != nil {
		return c.interrupted(err)
	}
	d.Tags = tags
	if err := c.Service.SaveDraft(d); err != nil {
		return err
	}

	for si := range d.Sections {
		if err := ctx.Err(); err != nil {
			return err
		}
		pp.NewLine()
		_, _ = bold.Fprintln(c.Out, d.Sections[si].Title)
		for ai, a := range d.Sections[si].Answers {
			text, err := p.Ask("  "+a.Question, a.Answer)
			if err != nil {
				return c.interrupted(err)
			}
			d.SetAnswer(si, ai, text)
			if err := c.Service.SaveDraft(d); err != nil {
				return err
			}
		}
	}

	for {
		pp.NewLine()
		title, err := p.Ask("Add a section (blank to finish)", "")
		if err != nil {
			return c.interrupted(err)
		}
		if title == "" {
			break
		}
		s := entry.NewQuestionSection(title)
		question, err := p.Ask("  Question", s.Answers[0].Question)
		if err != nil {
			return c.interrupted(err)
		}
		s.Answers[0].Question = question
		d.Sections = append(d.Sections, s)
		if err := c.Service.SaveDraft(d); err != nil {
			return err
		}
		text, err := p.Ask("  "+question, "")
		if err != nil {
			return c.interrupted(err)
		}
		d.SetAnswer(len(d.Sections)-1, 0, text)
		if err := c.Service.SaveDraft(d); err != nil {
			return err
		}
	}

	pp.NewLine()
	save, err := p.Confirm("Save this walk", true)
	if err != nil {
		return c.interrupted(err)
	}
	if !save {
		_, _ = fmt.Fprintln(c.Out, "Draft kept. Run new again to resume it.")
		return nil
	}

	e, err := c.Service.Submit(ctx, d)
	if err != nil {
		return fmt.Errorf("walk not saved, draft kept: %w", err)
	}
	_, _ = fmt.Fprintf(c.Out, "Saved %s for %s (%s)\n", e.Title(), e.Date, e.ID)
	return nil
}

// start returns the stored draft when the user resumes it, or a fresh one.
func (c *Compose) start(p *prompter) (*entry.Draft, error) {
	d, ok, err := c.Service.LoadDraft()
	switch {
	case errors.Is(err, draft.ErrCorrupt):
		_, _ = fmt.Fprintf(c.Out, "Ignoring unreadable draft: %v\n", err)
		ok = false
	case err != nil:
		return nil, err
	}
	if ok {
		resume := c.Resume
		if !resume {
			date := d.Date.String()
			if date == "" {
				date = "today"
			}
			resume, err = p.Confirm(fmt.Sprintf("Resume the unsaved walk for %s", date), true)
			if err != nil {
				return nil, err
			}
		}
		if resume {
			return d, nil
		}
	}
	fresh := entry.NewDraft(c.Date, c.Template.Sections)
	fresh.Tags = c.Tags
	return fresh, nil
}

func (c *Compose) interrupted(err error) error {
	if errors.Is(err, errInputClosed) {
		_, _ = fmt.Fprintln(c.Out, "Input closed. Answers so far are kept in the draft.")
		return nil
	}
	return err
}
