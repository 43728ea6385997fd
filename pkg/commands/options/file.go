package options

import (
	"github.com/spf13/cobra"
)

// FileOptions
type FileOptions struct {
	Output string
	Format string
}

func AddFileArgs(cmd *cobra.Command, o *FileOptions) {
	cmd.Flags().StringVarP(&o.Output, "output", "o", "",
		"Write to this file instead of stdout.")
}

func AddFormatArgs(cmd *cobra.Command, o *FileOptions) {
	cmd.Flags().StringVar(&o.Format, "format", "",
		"Backup format, json or yaml. Defaults to the output file extension, then json.")
}
