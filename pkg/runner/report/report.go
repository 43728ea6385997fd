// Package report summarizes the walks of a time window.
package report

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/walkjournal/pkg/app"
	"tableflip.dev/walkjournal/pkg/entry"
	"tableflip.dev/walkjournal/pkg/printers"
)

type Report struct {
	Service *app.Service
	// Since is the first day included, zero for every walk.
	Since entry.Date
	// Label names the window in the heading, for example "1w".
	Label string
	JSON  bool
	Out   io.Writer
}

func (n *Report) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not report, no journal")
	}
	if n.Out == nil {
		n.Out = color.Output
	}
	result, err := n.Service.Report(ctx, n.Since, entry.Today())
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, result)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()
	pp.Report(result, n.Label)
	pp.NewLine()
	return nil
}
