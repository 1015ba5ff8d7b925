// Package commands implements the CLI commands for the stoke build tool.
package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"

	"go.trai.ch/stoke/internal/app"
	"go.trai.ch/stoke/internal/build"
	"go.trai.ch/stoke/internal/core/domain"
)

// CLI represents the command line interface for stoke.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	RunTask(ctx context.Context, task domain.Task, buildID string, args []string, opts app.RunOptions) error
	RunScript(ctx context.Context, path string, args []string, opts app.RunOptions) error
	Session(ctx context.Context, opts app.RunOptions) error
	Install(ctx context.Context) error
	Clean(ctx context.Context, opts app.CleanOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "stoke [script] [args...]",
		Short:         "A build and run tool for the stoke toolchain",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := runOptions(cmd)

			if len(args) == 0 {
				return c.app.Session(cmd.Context(), opts)
			}

			if domain.ClassifyScript(args[0]) != domain.ScriptUnknown {
				return c.app.RunScript(cmd.Context(), args[0], args[1:], opts)
			}

			return zerr.Wrap(domain.ErrUnknownTask,
				fmt.Sprintf("%q is not a task or a script file, known tasks: %s",
					args[0], strings.Join(domain.KnownTaskNames(), ", ")))
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	addRunFlags(rootCmd)

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newTaskCmd(domain.TaskBuild, "Compile the configured build once"))
	rootCmd.AddCommand(c.newTaskCmd(domain.TaskWatch, "Rebuild whenever the configuration changes"))
	rootCmd.AddCommand(c.newTaskCmd(domain.TaskREPL, "Start a REPL on the project classpath"))
	rootCmd.AddCommand(c.newTaskCmd(domain.TaskFigwheel, "Run the figwheel development loop"))
	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// addRunFlags registers the terminal and telemetry flags shared by the
// commands that spawn children. Flag parsing stops at the first positional
// argument so everything after it reaches the child untouched.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("mode", "m", "auto", "Terminal handling: auto, interactive, or plain")
	cmd.Flags().Bool("ci", false, "Use plain terminal handling (shorthand for --mode=plain)")
	cmd.Flags().Bool("trace", false, "Write span telemetry to the workspace debug log")
	cmd.Flags().SetInterspersed(false)
}

// runOptions collects the flags registered by addRunFlags.
func runOptions(cmd *cobra.Command) app.RunOptions {
	mode, _ := cmd.Flags().GetString("mode")
	ci, _ := cmd.Flags().GetBool("ci")
	trace, _ := cmd.Flags().GetBool("trace")

	// If --ci is set, override mode to "plain"
	if ci {
		mode = "plain"
	}

	return app.RunOptions{Mode: mode, Trace: trace}
}
