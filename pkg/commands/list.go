package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/taskboard/pkg/commands/options"
	"tableflip.dev/taskboard/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "list the tasks in board order",
		Example: `
taskboard list
taskboard list -k
taskboard list --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			l := list.List{
				Store:  s.Store,
				ShowID: ido.ShowID,
				JSON:   oo.JSON,
				Out:    cmd.OutOrStdout(),
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, ido)

	topLevel.AddCommand(cmd)
}
