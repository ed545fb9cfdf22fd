package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newFingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the image tag computed from the configured files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Fingerprint(cmd.Context(), c.options(), cmd.OutOrStdout())
		},
	}
}
