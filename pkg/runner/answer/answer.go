// Package answer edits one answer of a stored entry.
package answer

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/walkjournal/pkg/app"
	"tableflip.dev/walkjournal/pkg/printers"
)

type Answer struct {
	Service *app.Service
	ID      string
	// Section and Answer are 1-based, as printed by show.
	Section int
	Answer  int
	Text    string
	Out     io.Writer
}

func (n *Answer) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no journal")
	}
	if n.Out == nil {
		n.Out = color.Output
	}
	e, err := n.Service.UpdateAnswer(ctx, n.ID, n.Section-1, n.Answer-1, n.Text)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Entry(e)
	return nil
}
