package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/walkjournal/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "walkjournal",
		Short: options.Wrap80("Record facility walk inspections, search them by week and keep backups."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddOutputArg(cmd, output)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addNew(topLevel)
	addDraft(topLevel)
	addHistory(topLevel)
	addShow(topLevel)
	addAnswer(topLevel)
	addSection(topLevel)
	addDelete(topLevel)
	addBackup(topLevel)
	addExport(topLevel)
	addRestore(topLevel)
	addFollowUps(topLevel)
	addReport(topLevel)
	addCalendar(topLevel)
	addTemplates(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
