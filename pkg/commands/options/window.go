package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/walkjournal/pkg/entry"
	"tableflip.dev/walkjournal/pkg/timeutil"
)

// WindowOptions
type WindowOptions struct {
	Last string
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions, def string) {
	cmd.Flags().StringVar(&o.Last, "last", def,
		"Only include walks dated within this window, for example 3d, 2w or 1w3d.")
}

// Since returns the first day of the window and its label. An empty window
// is open and returns the zero date.
func (o *WindowOptions) Since() (entry.Date, string, error) {
	if o.Last == "" {
		return entry.Date{}, "all", nil
	}
	days, label, err := timeutil.ParseWindow(o.Last)
	if err != nil {
		return entry.Date{}, "", err
	}
	return timeutil.StartDate(days, entry.Today()), label, nil
}
