package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version and Commit are set at build time with -ldflags "-X".
var (
	Version = "development"
	Commit  = "unknown"
)

// versionString returns the version including the commit hash if available.
func versionString() string {
	if Commit != "unknown" {
		return Version + "+" + Commit
	}
	return Version
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			fmt.Fprintf(c.OutOrStdout(), "volume-notify version %s\n", versionString())
			return nil
		},
	}
}
