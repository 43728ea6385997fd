package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/walkjournal/pkg/commands/options"
	"tableflip.dev/walkjournal/pkg/history"
	runner "tableflip.dev/walkjournal/pkg/runner/history"
)

func addHistory(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	wo := &options.WindowOptions{}
	follow := false

	cmd := &cobra.Command{
		Use:   "history [term]",
		Short: "List walks grouped by week and day, newest first",
		Long: options.Wrap80(`Lists walks grouped by ISO week and weekday. A search term is matched, ignoring
case, against section titles, questions, answers and tags.`),
		Example: `
walkjournal history
walkjournal history "seal broken"
walkjournal history --last 2w --show-id
walkjournal history --follow
`,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			s := runner.History{
				Service: j.svc,
				Options: history.Options{Term: strings.Join(args, " "), Since: since},
				ShowID:  io.ShowID,
				JSON:    output.JSON,
				Follow:  follow,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddWindowArgs(cmd, wo, "")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep listing as walks are added or edited.")

	topLevel.AddCommand(cmd)
}
