package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/walkjournal/pkg/commands/options"
	"tableflip.dev/walkjournal/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	copyText := false

	cmd := &cobra.Command{
		Use:   "show <entry id>",
		Short: "Print one walk with numbered sections and answers",
		Example: `
walkjournal show 9b2f0c4e-...
walkjournal show 9b2f0c4e-... --copy
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: entryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			j, err := openJournal(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer j.Close()

			if output.JSON {
				e, err := j.svc.Get(cmd.Context(), args[0])
				if err != nil {
					return output.HandleError(err)
				}
				return output.Print(e)
			}
			s := show.Show{
				Service: j.svc,
				ID:      args[0],
				ShowID:  io.ShowID,
				Copy:    copyText,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)
	cmd.Flags().BoolVarP(&copyText, "copy", "c", false, "Copy the walk as plain text to the clipboard.")

	topLevel.AddCommand(cmd)
}
