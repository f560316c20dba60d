package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/taskboard/pkg/commands/options"
	"tableflip.dev/taskboard/pkg/runner/move"
)

func addMove(topLevel *cobra.Command) {
	ro := &options.RefOptions{}
	position := 0

	cmd := &cobra.Command{
		Use:   "move <id|position> <position>",
		Short: "move a task to another position",
		Long: options.Wrap80("Move a task to another 1-based position. Every command " +
			"starts from the stored list, so the new order is always saved; " +
			"only the local backend can keep it."),
		Example: `
taskboard move 4 1
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires a task and the position to move it to")
			}
			if err := ro.RefArg(cmd, args[:1]); err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("position %q is not a number", args[1])
			}
			position = n
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			s.Store.PersistOrder = true

			m := move.Move{
				Store:    s.Store,
				Ref:      ro.Ref,
				Position: position,
				JSON:     oo.JSON,
				Out:      cmd.OutOrStdout(),
			}
			return oo.HandleError(m.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
