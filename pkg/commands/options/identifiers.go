package options

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

// RefOptions holds the task a command acts on: an id, or a 1-based position
// as shown by `list`.
type RefOptions struct {
	Ref string
}

// RefArg is a cobra.PositionalArgs that captures the first argument as the
// task reference.
func (o *RefOptions) RefArg(_ *cobra.Command, args []string) error {
	if len(args) < 1 {
		return errors.New("requires a task id or position")
	}
	if len(args) > 1 {
		return errors.New("expected a single task id or position")
	}
	o.Ref = strings.TrimSpace(args[0])
	return nil
}

// IDOptions
type IDOptions struct {
	ShowID bool
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each task.")
}
