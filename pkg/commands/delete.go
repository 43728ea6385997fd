package commands

import (
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/walkjournal/pkg/commands/options"
	"tableflip.dev/walkjournal/pkg/runner/compose"
	"tableflip.dev/walkjournal/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "delete <entry id>",
		Aliases: []string{"rm"},
		Short:   "Delete a walk",
		Long:    "Deletes a walk. Deleting an id that does not exist is not an error.",
		Example: `
walkjournal delete 9b2f0c4e-...
walkjournal delete 9b2f0c4e-... --yes
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

			s := remove.Remove{
				Service: j.svc,
				ID:      args[0],
			}
			if !co.Yes && interactive() {
				s.Confirm = compose.Confirmer(os.Stdin, os.Stdout)
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddConfirmArgs(cmd, co)
	topLevel.AddCommand(cmd)
}
