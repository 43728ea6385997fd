// Package followups lists findings that still need a solution.
package followups

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/walkjournal/pkg/app"
	"tableflip.dev/walkjournal/pkg/entry"
	"tableflip.dev/walkjournal/pkg/printers"
)

type FollowUps struct {
	Service *app.Service
	Since   entry.Date
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

func (n *FollowUps) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list follow ups, no journal")
	}
	if n.Out == nil {
		n.Out = color.Output
	}
	items, err := n.Service.FollowUps(ctx, n.Since)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, items)
	}
	pp := printers.PrettyPrint{Out: n.Out, ShowID: n.ShowID}
	pp.NewLine()
	pp.FollowUps(items)
	pp.NewLine()
	return nil
}
