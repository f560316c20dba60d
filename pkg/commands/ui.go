package commands

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/taskboard/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the task board",
		Example: `
taskboard ui
taskboard ui --backend remote --remote-url http://localhost:8000
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return errors.New("ui needs a terminal, try `taskboard list`")
			}
			s, err := openSession(true)
			if err != nil {
				return err
			}
			defer s.Close()

			i := ui.UI{
				Store:   s.Store,
				Prefs:   s.Prefs,
				Watcher: s.Watcher,
				Log:     s.Log,
			}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
