package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"go.trai.ch/stoke/internal/core/domain"
)

// newTaskCmd builds the command for one child-spawning task. The first
// positional argument names the build unless it looks like a flag; the
// rest is handed to the child untouched.
func (c *CLI) newTaskCmd(task domain.Task, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(task) + " [build-id] [args...]",
		Short: short,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			buildID := ""
			if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
				buildID = args[0]
				args = args[1:]
			}
			if len(args) > 0 && args[0] == "--" {
				args = args[1:]
			}

			return c.app.RunTask(cmd.Context(), task, buildID, args, runOptions(cmd))
		},
	}
	addRunFlags(cmd)

	return cmd
}
