// Package restore loads backup files into the journal.
package restore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/walkjournal/pkg/app"
	"tableflip.dev/walkjournal/pkg/backup"
)

type Restore struct {
	Service *app.Service
	Files   []string
	// Format overrides detection by file extension when set.
	Format backup.Format
	Out    io.Writer
}

// Do restores each file in order and stops at the first failure. Files
// restored before the failure stay restored.
func (n *Restore) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not restore, no journal")
	}
	if n.Out == nil {
		n.Out = color.Output
	}
	total := 0
	for _, name := range n.Files {
		count, err := n.restore(ctx, name)
		if err != nil {
			return err
		}
		total += count
		_, _ = fmt.Fprintf(n.Out, "Restored %d entries from %s\n", count, name)
	}
	if len(n.Files) > 1 {
		_, _ = fmt.Fprintf(n.Out, "Restored %d entries from %d files\n", total, len(n.Files))
	}
	return nil
}

func (n *Restore) restore(ctx context.Context, name string) (int, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	format := n.Format
	if format == "" {
		format = backup.DetectFormat(name)
	}
	return n.Service.Restore(ctx, f, format, name)
}
