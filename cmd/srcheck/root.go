// Package main provides the entry point for the srcheck CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for srcheck.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "srcheck",
		Short: "Screen reader accessibility checker for HTML documents",
		Long: `srcheck audits HTML documents for screen reader accessibility.

It runs a catalog of WCAG-derived rules against a fetched or submitted
document and reports errors, warnings and open questions per rule. Some
rules cannot decide on markup alone; they pause the audit with a question
that is answered via 'srcheck resume'. Answers are stored per check, or
per domain when the check was created from a URL, so repeated audits of
the same site reuse them.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewResumeCmd())
	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
