package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b := rootOpts.Build
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "chamicore-catalog %s (commit %s, built %s)\n", b.Version, b.Commit, b.BuildDate)
			return err
		},
	}
}
