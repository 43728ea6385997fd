package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/walkjournal/pkg/commands/options"
	"tableflip.dev/walkjournal/pkg/entry"
	"tableflip.dev/walkjournal/pkg/runner/compose"
)

func addNew(topLevel *cobra.Command) {
	no := &options.NewOptions{}
	do := &options.DateOptions{}
	co := &options.ConfirmOptions{}

	names := make([]string, 0, len(entry.Templates()))
	for _, t := range entry.Templates() {
		names = append(names, t.Name)
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Record a walk, one question at a time",
		Long: options.Wrap80(`Asks every question of the chosen template and saves the answers as a draft
after each one, so an interrupted walk can be resumed by running new again.
An empty answer keeps the current value.`) + "\n\nTemplates: " + strings.Join(names, ", "),
		Example: `
walkjournal new
walkjournal new --template "quick check" --tags "night shift"
walkjournal new --date 1/8
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			tmpl, ok := entry.TemplateByName(no.Template)
			if !ok {
				return fmt.Errorf("unknown template %q, see: walkjournal templates", no.Template)
			}
			date, err := do.GetDate()
			if err != nil {
				return err
			}

			j, err := openJournal(cmd.Context())
			if err != nil {
				return err
			}
			defer j.Close()

			s := compose.Compose{
				Service:  j.svc,
				Template: tmpl,
				Date:     date,
				Tags:     no.Tags,
				Resume:   co.Yes || !interactive(),
				In:       os.Stdin,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddNewArgs(cmd, no)
	options.AddDateArgs(cmd, do)
	options.AddConfirmArgs(cmd, co)
	_ = cmd.RegisterFlagCompletionFunc("template", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
