package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/walkjournal/pkg/entry"
)

// NewOptions
type NewOptions struct {
	Template string
	Tags     string
}

func AddNewArgs(cmd *cobra.Command, o *NewOptions) {
	cmd.Flags().StringVarP(&o.Template, "template", "t", entry.DefaultTemplate,
		"Template that decides which sections are asked.")
	cmd.Flags().StringVar(&o.Tags, "tags", "",
		"Free text tags for the walk.")
}
