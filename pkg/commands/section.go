package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/walkjournal/pkg/runner/section"
)

func addSection(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "section",
		Short: "Change the sections of a saved walk",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	add := &cobra.Command{
		Use:   "add <entry id> [title...]",
		Short: "Append a section with one open question",
		Example: `
walkjournal section add 9b2f0c4e-... Compressor room
`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: entryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			j, err := openJournal(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer j.Close()

			s := section.AddSection{
				Service: j.svc,
				ID:      args[0],
				Title:   strings.Join(args[1:], " "),
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	cmd.AddCommand(add)
	topLevel.AddCommand(cmd)
}
