package options

import (
	"github.com/spf13/cobra"
)

// TaskOptions carries the editable task fields.
type TaskOptions struct {
	Title   string
	Summary string
}

func AddTaskArgs(cmd *cobra.Command, o *TaskOptions) {
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"Task title.")
	cmd.Flags().StringVarP(&o.Summary, "summary", "s", "",
		"Task summary.")
}

// Changed reports which of the task flags were set on the command line.
func (o *TaskOptions) Changed(cmd *cobra.Command) (title, summary bool) {
	return cmd.Flags().Changed("title"), cmd.Flags().Changed("summary")
}
