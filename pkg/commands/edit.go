package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/taskboard/pkg/commands/options"
	"tableflip.dev/taskboard/pkg/prompt"
	"tableflip.dev/taskboard/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	ro := &options.RefOptions{}
	to := &options.TaskOptions{}
	ii := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "edit <id|position>",
		Aliases: []string{"update"},
		Short:   "change the title or summary of a task",
		Example: `
taskboard edit 2 -t "Write the report"
taskboard edit id-3 -s "Numbers for Q3"
taskboard edit 1 -i
`,
		Args: ro.RefArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			setTitle, setSummary := to.Changed(cmd)
			e := edit.Edit{
				Store:      s.Store,
				Ref:        ro.Ref,
				Title:      to.Title,
				SetTitle:   setTitle,
				Summary:    to.Summary,
				SetSummary: setSummary,
				JSON:       oo.JSON,
				Out:        cmd.OutOrStdout(),
			}
			if ii.Interactive {
				e.Prompter = &prompt.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
			}
			return oo.HandleError(e.Do(cmd.Context()))
		},
	}

	options.AddTaskArgs(cmd, to)
	options.InteractiveArgs(cmd, ii)

	topLevel.AddCommand(cmd)
}
