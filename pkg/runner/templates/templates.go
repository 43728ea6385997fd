// Package templates lists the section templates offered by new.
package templates

import (
	"context"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/walkjournal/pkg/entry"
	"tableflip.dev/walkjournal/pkg/printers"
)

// Templates prints the built-in templates.
type Templates struct {
	Out io.Writer
}

func (k *Templates) Do(_ context.Context) error {
	if k.Out == nil {
		k.Out = color.Output
	}
	pp := printers.PrettyPrint{Out: k.Out}
	pp.NewLine()
	pp.Templates(entry.Templates())
	pp.NewLine()
	return nil
}
