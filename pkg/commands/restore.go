package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/walkjournal/pkg/backup"
	"tableflip.dev/walkjournal/pkg/commands/options"
	"tableflip.dev/walkjournal/pkg/runner/restore"
)

func addRestore(topLevel *cobra.Command) {
	fo := &options.FileOptions{}

	cmd := &cobra.Command{
		Use:   "restore <file...>",
		Short: "Load walks from backup files",
		Long: options.Wrap80(`Loads every walk in the given backups. A walk with the same id is replaced, so
restoring the same file twice changes nothing. Files are restored in order and a
file that fails to parse stops the restore before any of its walks are written.`),
		Example: `
walkjournal restore walk_journal_backup.json
walkjournal restore --format yaml walks.txt
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var format backup.Format
			if fo.Format != "" {
				f, err := backup.ParseFormat(fo.Format)
				if err != nil {
					return err
				}
				format = f
			}
			cmd.SilenceUsage = true

			j, err := openJournal(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer j.Close()

			s := restore.Restore{
				Service: j.svc,
				Files:   args,
				Format:  format,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddFormatArgs(cmd, fo)
	topLevel.AddCommand(cmd)
}
