package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/walkjournal/pkg/commands/options"
	"tableflip.dev/walkjournal/pkg/runner/backup"
)

func addBackup(topLevel *cobra.Command) {
	fo := &options.FileOptions{}

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write every walk to a JSON or YAML backup",
		Long: options.Wrap80(`Writes every walk, oldest first, to stdout or to the --output file. The format
follows --format, then the file extension. Restoring a backup is idempotent.`),
		Example: `
walkjournal backup -o ` + backup.DefaultName("json") + `
walkjournal backup --format yaml > walks.yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := backup.FormatFor(fo.Format, fo.Output)
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			j, err := openJournal(cmd.Context())
			if err != nil {
				return err
			}
			defer j.Close()

			s := backup.Backup{
				Service: j.svc,
				Output:  fo.Output,
				Format:  format,
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddFileArgs(cmd, fo)
	options.AddFormatArgs(cmd, fo)
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}

func addExport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export walks for other tools",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	fo := &options.FileOptions{}
	csv := &cobra.Command{
		Use:   "csv",
		Short: "Write one row per answer as CSV",
		Example: `
walkjournal export csv -o walks.csv
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := openJournal(cmd.Context())
			if err != nil {
				return err
			}
			defer j.Close()

			s := backup.Export{
				Service: j.svc,
				Output:  fo.Output,
			}
			return s.Do(cmd.Context())
		},
	}
	options.AddFileArgs(csv, fo)

	cmd.AddCommand(csv)
	topLevel.AddCommand(cmd)
}
