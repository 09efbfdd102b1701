// SPDX-License-Identifier: MIT

// Package cli implements the latentfa command tree.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "latentfa:", err)
		return 1
	}
	return 0
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "latentfa",
		Short: "Factor-analyse survey measures and relate each dimension to a mental-health composite",
		Long: `latentfa reduces the survey variables of a behavioral dataset to latent
dimensions with maximum-likelihood factor analysis, picks the number of
dimensions by an information criterion and reports, per dimension, the
top-loading variables and the Bonferroni-corrected correlation of its scores
with the mean of the selected mental-health scales.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newSimulateCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "latentfa %s\n", Version)
			return err
		},
	}
}
