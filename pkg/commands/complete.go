package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/taskboard/pkg/commands/options"
	"tableflip.dev/taskboard/pkg/runner/complete"
)

func addComplete(topLevel *cobra.Command) {
	ro := &options.RefOptions{}

	cmd := &cobra.Command{
		Use:     "complete <id|position>",
		Aliases: []string{"done"},
		Short:   "mark a task as done",
		Example: `
taskboard complete 1
`,
		Args: ro.RefArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			c := complete.Complete{
				Store: s.Store,
				Ref:   ro.Ref,
				JSON:  oo.JSON,
				Out:   cmd.OutOrStdout(),
			}
			return oo.HandleError(c.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
