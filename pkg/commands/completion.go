package commands

import (
	"github.com/spf13/cobra"
)

func addCompletion(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(taskboard completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(taskboard completion)
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return topLevel.GenBashCompletionV2(cmd.OutOrStdout(), true)
		},
	}

	topLevel.AddCommand(cmd)
}
