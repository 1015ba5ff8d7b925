package commands

import (
	"github.com/spf13/cobra"

	"go.trai.ch/stoke/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the dependency cache and managed runtime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runtime, _ := cmd.Flags().GetBool("runtime")
			all, _ := cmd.Flags().GetBool("all")

			opts := app.CleanOptions{
				Deps:    false,
				Runtime: false,
			}

			switch {
			case all:
				opts.Deps = true
				opts.Runtime = true
			case runtime:
				opts.Runtime = true
			default:
				// Default behavior: clean the dependency cache
				opts.Deps = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("runtime", "r", false, "Remove the managed runtime installation")
	cmd.Flags().BoolP("all", "a", false, "Remove all caches (dependencies and runtime)")

	return cmd
}
