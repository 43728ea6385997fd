package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/walkjournal/pkg/runner/answer"
)

func addAnswer(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "answer <entry id> <section> <answer> <text...>",
		Short: "Replace one answer of a saved walk",
		Long: `Section and answer are the numbers printed by show, starting at 1.
An empty text clears the answer.`,
		Example: `
walkjournal answer 9b2f0c4e-... 2 3 "Replaced the door seal"
`,
		Args:              cobra.MinimumNArgs(3),
		ValidArgsFunction: entryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			section, err := position("section", args[1])
			if err != nil {
				return err
			}
			ans, err := position("answer", args[2])
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			j, err := openJournal(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer j.Close()

			s := answer.Answer{
				Service: j.svc,
				ID:      args[0],
				Section: section,
				Answer:  ans,
				Text:    strings.Join(args[3:], " "),
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}

func position(name, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a number starting at 1, got %q", name, arg)
	}
	return n, nil
}
