// Package section appends sections to a stored entry.
package section

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/walkjournal/pkg/app"
	"tableflip.dev/walkjournal/pkg/printers"
)

type AddSection struct {
	Service *app.Service
	ID      string
	Title   string
	Out     io.Writer
}

func (n *AddSection) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no journal")
	}
	if n.Out == nil {
		n.Out = color.Output
	}
	e, err := n.Service.AppendSection(ctx, n.ID, n.Title)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Entry(e)
	return nil
}
