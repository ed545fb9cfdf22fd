// Package commands implements the CLI commands for imprint.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/imprint/internal/app"
	"go.trai.ch/imprint/internal/build"
)

// CLI represents the command line interface for imprint.
type CLI struct {
	app      *app.App
	rootCmd  *cobra.Command
	envFiles []string
}

// New creates a new CLI instance with the given app.
// Without a subcommand the workflow runs, so the binary can serve as a plugin entrypoint.
func New(a *app.App) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "imprint",
		Short:         "Build a container image only when its fingerprinted inputs change",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Run(cmd.Context(), c.options())
		},
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringArrayVarP(&c.envFiles, "env-file", "e", nil,
		"Load variables from a dotenv file before reading the environment (repeatable)")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newPlanCmd())
	rootCmd.AddCommand(c.newFingerprintCmd())
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

func (c *CLI) options() app.Options {
	return app.Options{EnvFiles: c.envFiles}
}

// SetOut sets the destination for command output. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}
