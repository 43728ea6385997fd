package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/walkjournal/pkg/runner/calendar"
)

func addCalendar(topLevel *cobra.Command) {
	months := 1

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show which days of the month had a walk",
		Example: `
walkjournal calendar
walkjournal calendar --months 3
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := openJournal(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer j.Close()

			s := calendar.Calendar{
				Service: j.svc,
				Months:  months,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	cmd.Flags().IntVarP(&months, "months", "m", 1, "Number of months to show, ending with this one.")
	topLevel.AddCommand(cmd)
}
