package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"log/slog"

	"github.com/felixarntz/screen-reader-check/internal/checks"
	"github.com/felixarntz/screen-reader-check/internal/log"
	"github.com/spf13/cobra"
)

// NewResumeCmd creates the resume command.
func NewResumeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resume <check-id>",
		Short: "Answer open questions and continue a paused audit",
		Long: `Resume continues an audit that paused because a rule needed answers.

Answers are given as --answer <slug>=<value> pairs, using the slugs that
'srcheck check' printed when the audit paused. They are stored with the
check (or its domain, for URL-created checks) before the rule runs again,
so repeated audits of the same site reuse them.

Examples:
  # Answer a yes/no question and continue
  srcheck resume 3 --answer image_alt_sensible_id_logo=yes

  # Answer several questions at once
  srcheck resume 3 -a has_lists=yes -a has_blockquotes=no

  # Continue without new answers (e.g. after editing the config file)
  srcheck resume 3`,
		Args: cobra.ExactArgs(1),
		RunE: runResumeCmd,
	}

	addAuditFlags(cmd)

	cmd.Flags().StringArrayP("answer", "a", nil,
		"Answer to an open question as <slug>=<value> (repeatable)")

	return cmd
}

// runResumeCmd executes the resume command.
func runResumeCmd(cmd *cobra.Command, args []string) error {
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

	rawAnswers, err := cmd.Flags().GetStringArray("answer")
	if err != nil {
		return err
	}
	answers, err := parseAnswers(rawAnswers)
	if err != nil {
		return err
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	// Resume never fetches; the document is already stored with the check.
	env, err := newAuditEnv(cfg, nil, logger)
	if err != nil {
		return err
	}
	defer env.Close()

	check, err := env.service.Get(ctx, checkID)
	if err != nil {
		if errors.Is(err, checks.ErrCheckNotFound) {
			return fmt.Errorf("no check with ID %d (use 'srcheck check' to create one)", checkID)
		}
		return err
	}

	results, err := env.runner.RunAll(ctx, checkID, answers)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	return concludeAudit(ctx, cmd, cfg, env, check, results)
}

// parseAnswers converts --answer flag values into an answer map.
func parseAnswers(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	answers := make(map[string]string, len(raw))
	for _, pair := range raw {
		slug, value, ok := strings.Cut(pair, "=")
		if !ok || slug == "" {
			return nil, fmt.Errorf("invalid answer %q: expected <slug>=<value>", pair)
		}
		answers[slug] = value
	}
	return answers, nil
}
