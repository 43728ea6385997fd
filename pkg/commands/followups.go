package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/walkjournal/pkg/commands/options"
	"tableflip.dev/walkjournal/pkg/runner/followups"
)

func addFollowUps(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	wo := &options.WindowOptions{}

	cmd := &cobra.Command{
		Use:     "followups",
		Aliases: []string{"open"},
		Short:   "List findings that have no solution yet",
		Long: options.Wrap80(`Lists every section whose Findings answer is filled in while its Solution is
still blank. With --show-id the entry id, section and answer numbers are printed
ready for the answer command.`),
		Example: `
walkjournal followups
walkjournal followups --last 4w -k
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			since, _, err := wo.Since()
			if err != nil {
				return err
			}
			j, err := openJournal(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer j.Close()

			s := followups.FollowUps{
				Service: j.svc,
				Since:   since,
				ShowID:  io.ShowID,
				JSON:    output.JSON,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddWindowArgs(cmd, wo, "")
	topLevel.AddCommand(cmd)
}
