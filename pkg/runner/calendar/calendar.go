// Package calendar shows which days had a walk.
package calendar

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/walkjournal/pkg/app"
	"tableflip.dev/walkjournal/pkg/entry"
	"tableflip.dev/walkjournal/pkg/history"
	"tableflip.dev/walkjournal/pkg/printers"
)

type Calendar struct {
	Service *app.Service
	// Months is how many months to show, ending with the current one.
	Months int
	Out    io.Writer
}

func (n *Calendar) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show calendar, no journal")
	}
	if n.Out == nil {
		n.Out = color.Output
	}
	months := n.Months
	if months <= 0 {
		months = 1
	}
	today := entry.Today()
	from := entry.NewDate(today.Year, today.Month-time.Month(months)+1, 1)

	r, err := n.Service.History(ctx, history.Options{Since: from})
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Calendar(from, today, r.Entries()...)
	return nil
}
