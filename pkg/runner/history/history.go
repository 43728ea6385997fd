// Package history prints the grouped walk listing, optionally redrawing it
// whenever the journal changes.
package history

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/walkjournal/pkg/app"
	"tableflip.dev/walkjournal/pkg/history"
	"tableflip.dev/walkjournal/pkg/printers"
)

type History struct {
	Service *app.Service
	Options history.Options
	ShowID  bool
	JSON    bool
	// Follow keeps printing the listing after every change until ctx ends.
	Follow bool
	Out    io.Writer
}

func (n *History) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list, no journal")
	}
	if n.Out == nil {
		n.Out = color.Output
	}
	if err := n.print(ctx); err != nil {
		return err
	}
	if !n.Follow {
		return nil
	}

	events, err := n.Service.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			// Drain the rest of the burst before redrawing.
			drain(events)
			_, _ = color.New(color.Faint).Fprintf(n.Out, "--- updated %s ---\n", time.Now().Format("15:04:05"))
			if err := n.print(ctx); err != nil {
				return err
			}
		}
	}
}

func (n *History) print(ctx context.Context) error {
	r, err := n.Service.History(ctx, n.Options)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, r)
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.TitleWithCount("Walk History", r.Count())
	pp.History(r)
	return nil
}

func drain[T any](ch <-chan T) {
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
