package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/walkjournal/pkg/entry"
	"tableflip.dev/walkjournal/pkg/runner/templates"
)

func addTemplates(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the section templates new can start from",
		Example: `
walkjournal templates
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output.JSON {
				return output.Print(entry.Templates())
			}
			s := templates.Templates{}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
