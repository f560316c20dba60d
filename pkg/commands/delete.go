package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/taskboard/pkg/commands/options"
	"tableflip.dev/taskboard/pkg/prompt"
	"tableflip.dev/taskboard/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	ro := &options.RefOptions{}
	ii := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "delete <id|position>",
		Aliases: []string{"rm"},
		Short:   "remove a task from the board",
		Example: `
taskboard delete 2
taskboard delete 2 -i
`,
		Args: ro.RefArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			r := remove.Remove{
				Store: s.Store,
				Ref:   ro.Ref,
				JSON:  oo.JSON,
				Out:   cmd.OutOrStdout(),
			}
			if ii.Interactive {
				r.Prompter = &prompt.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVarP(&ii.Interactive, "interactive", "i", false,
		"Ask before deleting.")

	topLevel.AddCommand(cmd)
}
