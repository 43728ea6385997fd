package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/walkjournal/pkg/runner/drafts"
)

func addDraft(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Inspect or drop the unsaved walk",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the unsaved walk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := openDrafts()
			if err != nil {
				return err
			}
			defer j.Close()
			if output.JSON {
				d, _, err := j.svc.LoadDraft()
				if err != nil {
					return output.HandleError(err)
				}
				return output.Print(d)
			}
			s := drafts.Show{Service: j.svc}
			return output.HandleError(s.Do(cmd.Context()))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "discard",
		Short: "Throw away the unsaved walk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			j, err := openDrafts()
			if err != nil {
				return err
			}
			defer j.Close()
			s := drafts.Discard{Service: j.svc}
			return output.HandleError(s.Do(cmd.Context()))
		},
	})

	topLevel.AddCommand(cmd)
}
