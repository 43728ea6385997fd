// Package remove deletes entries.
package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/walkjournal/pkg/app"
)

type Remove struct {
	Service *app.Service
	ID      string
	// Confirm is asked before deleting when set.
	Confirm func(prompt string) (bool, error)
	Out     io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete, no journal")
	}
	if n.Out == nil {
		n.Out = color.Output
	}
	if n.Confirm != nil {
		prompt := fmt.Sprintf("Delete %s", n.ID)
		if e, err := n.Service.Get(ctx, n.ID); err == nil {
			prompt = fmt.Sprintf("Delete %s from %s", e.Title(), e.Date)
		}
		ok, err := n.Confirm(prompt)
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(n.Out, "Nothing deleted.")
			return nil
		}
	}
	if err := n.Service.Delete(ctx, n.ID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(n.Out, "Deleted %s\n", n.ID)
	return nil
}
