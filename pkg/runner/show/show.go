// Package show prints a single entry.
package show

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"

	"tableflip.dev/walkjournal/pkg/app"
	"tableflip.dev/walkjournal/pkg/printers"
)

type Show struct {
	Service *app.Service
	ID      string
	ShowID  bool
	// Copy puts the plain text rendering on the clipboard.
	Copy bool
	Out  io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show, no journal")
	}
	if n.Out == nil {
		n.Out = color.Output
	}
	e, err := n.Service.Get(ctx, n.ID)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.Entry(e)

	if n.Copy {
		if err := clipboard.WriteAll(e.Text()); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		_, _ = color.New(color.Faint).Fprintln(n.Out, "Entry copied to clipboard.")
	}
	return nil
}
