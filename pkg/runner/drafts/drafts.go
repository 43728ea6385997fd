// Package drafts inspects and discards the unsaved walk.
package drafts

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/walkjournal/pkg/app"
	"tableflip.dev/walkjournal/pkg/printers"
)

type Show struct {
	Service *app.Service
	Out     io.Writer
}

func (n *Show) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not show draft, no journal")
	}
	if n.Out == nil {
		n.Out = color.Output
	}
	d, ok, err := n.Service.LoadDraft()
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	if !ok {
		pp.Title("Draft")
		pp.None()
		return nil
	}
	pp.Draft(d)
	return nil
}

type Discard struct {
	Service *app.Service
	Out     io.Writer
}

func (n *Discard) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not discard draft, no journal")
	}
	if n.Out == nil {
		n.Out = color.Output
	}
	if err := n.Service.DiscardDraft(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(n.Out, "Draft discarded.")
	return nil
}
