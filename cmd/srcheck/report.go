package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/felixarntz/screen-reader-check/internal/database"
	"github.com/felixarntz/screen-reader-check/internal/report"
	"github.com/spf13/cobra"
)

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <check-id>",
		Short: "Print the report for a stored check",
		Long: `Report prints the results persisted for a check without running any rules.

This reproduces the report of an earlier audit from the database. Rules
that have not completed yet (because the audit is paused on an open
question) are simply absent from the output.

Examples:
  # Human-readable report
  srcheck report 3

  # JSON report written to a file
  srcheck report 3 --json -o report.json

  # Markdown report
  srcheck report 3 --markdown`,
		Args: cobra.ExactArgs(1),
		RunE: runReportCmd,
	}

	addReportFlags(cmd)

	cmd.Flags().String("db-dir", "",
		"Directory for the check database (default: XDG data directory)")

	return cmd
}

// runReportCmd executes the report command.
func runReportCmd(cmd *cobra.Command, args []string) error {
	checkID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid check ID %q: %w", args[0], err)
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	check, err := db.GetCheck(ctx, checkID)
	if err != nil {
		return err
	}
	if check == nil {
		return fmt.Errorf("no check with ID %d (use 'srcheck check' to create one)", checkID)
	}

	results, err := db.Results(ctx, checkID)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}
	if len(results) == 0 {
		return fmt.Errorf("no results stored for check %d yet (run 'srcheck resume %d')", checkID, checkID)
	}

	return outputReport(cfg, report.NewAudit(check, results))
}
