package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/taskboard/pkg/commands/options"
	"tableflip.dev/taskboard/pkg/prompt"
	"tableflip.dev/taskboard/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	to := &options.TaskOptions{}
	ii := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "add a task to the end of the board",
		Example: `
taskboard add -t "Write report" -s "Quarterly numbers"
taskboard add -i
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			a := add.Add{
				Store:   s.Store,
				Title:   to.Title,
				Summary: to.Summary,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			if ii.Interactive {
				a.Prompter = &prompt.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
			}
			return oo.HandleError(a.Do(cmd.Context()))
		},
	}

	options.AddTaskArgs(cmd, to)
	options.InteractiveArgs(cmd, ii)

	topLevel.AddCommand(cmd)
}
