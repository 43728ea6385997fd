package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/walkjournal/pkg/commands/options"
	"tableflip.dev/walkjournal/pkg/runner/report"
	"tableflip.dev/walkjournal/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize the walks of a time window by section",
		Long: `Report counts walks and answered questions per section within the window.

Examples:
  walkjournal report
  walkjournal report --last 3d
  walkjournal report --last 1w2d`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			since, label, err := wo.Since()
			if err != nil {
				return err
			}

			j, err := openJournal(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer j.Close()

			s := report.Report{
				Service: j.svc,
				Since:   since,
				Label:   label,
				JSON:    output.JSON,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddWindowArgs(cmd, wo, timeutil.DefaultWindow)
	topLevel.AddCommand(cmd)
}
