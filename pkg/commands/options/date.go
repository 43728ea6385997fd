package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/walkjournal/pkg/entry"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// DateOptions
type DateOptions struct {
	DateString string
}

func AddDateArgs(cmd *cobra.Command, o *DateOptions) {
	cmd.Flags().StringVar(&o.DateString, "date", "",
		`Walk date, example: --date="2021-1-8" or --date="1/8". Defaults to today.`)
}

// GetDate returns the walk date, or the zero date when none was given.
func (o *DateOptions) GetDate() (entry.Date, error) {
	return parseDate(o.DateString, entry.Today())
}

func parseDate(s string, today entry.Date) (entry.Date, error) {
	if s == "" {
		return entry.Date{}, nil
	}
	t, err := time.Parse(layoutISO, s)
	if err != nil {
		// Let the year be the same.
		t, err = time.Parse(layoutISOShort, s)
		if err != nil {
			return entry.Date{}, err
		}
		d := entry.NewDate(today.Year, t.Month(), t.Day())
		// Walks are recorded after the fact, so 12/30 typed on 1/2 is last year.
		if today.Before(d) {
			d = entry.NewDate(today.Year-1, t.Month(), t.Day())
		}
		return d, nil
	}
	return entry.DateOf(t), nil
}
