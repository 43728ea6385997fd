// Package backup writes backups and CSV exports to a file or stdout.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"tableflip.dev/walkjournal/pkg/app"
	"tableflip.dev/walkjournal/pkg/backup"
)

// Backup writes every entry as JSON or YAML.
type Backup struct {
	Service *app.Service
	// Output is the destination file; empty writes to Out.
	Output string
	Format backup.Format
	Out    io.Writer
}

func (n *Backup) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not back up, no journal")
	}
	return write(n.Output, n.Out, func(w io.Writer) (int, error) {
		return n.Service.Backup(ctx, w, n.Format)
	})
}

// Export writes the answer table as CSV.
type Export struct {
	Service *app.Service
	Output  string
	Out     io.Writer
}

func (n *Export) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not export, no journal")
	}
	return write(n.Output, n.Out, func(w io.Writer) (int, error) {
		return n.Service.ExportCSV(ctx, w)
	})
}

// write sends fn's output to path, or to out when path is empty. A file is
// written next to its destination and renamed into place so a failed export
// never leaves a truncated file behind.
func write(path string, out io.Writer, fn func(w io.Writer) (int, error)) error {
	if path == "" {
		if out == nil {
			out = os.Stdout
		}
		_, err := fn(out)
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(tmp.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Debug("remove temp export", "file", tmp.Name(), "err", err)
		}
	}()

	n, err := fn(tmp)
	if err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return err
	}
	_, _ = color.New(color.Faint).Fprintf(os.Stderr, "Wrote %d entries to %s\n", n, path)
	return nil
}

// FormatFor picks the backup format from an explicit flag, then the output
// file extension.
func FormatFor(flag, output string) (backup.Format, error) {
	if flag != "" {
		return backup.ParseFormat(flag)
	}
	if output != "" {
		return backup.DetectFormat(output), nil
	}
	return backup.FormatJSON, nil
}

// DefaultName is the suggested backup file name for a format.
func DefaultName(f backup.Format) string {
	return fmt.Sprintf("walk_journal_backup.%s", f)
}
