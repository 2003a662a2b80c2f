package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"log/slog"

	"github.com/felixarntz/screen-reader-check/internal/checks"
	"github.com/felixarntz/screen-reader-check/internal/config"
	"github.com/felixarntz/screen-reader-check/internal/database"
	"github.com/felixarntz/screen-reader-check/internal/fetch"
	"github.com/felixarntz/screen-reader-check/internal/log"
	"github.com/felixarntz/screen-reader-check/internal/model"
	"github.com/felixarntz/screen-reader-check/internal/report"
	"github.com/felixarntz/screen-reader-check/internal/rules"
	"github.com/felixarntz/screen-reader-check/internal/runner"
	"github.com/felixarntz/screen-reader-check/internal/validator"
	"github.com/spf13/cobra"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [url]",
		Short: "Audit an HTML document for screen reader accessibility",
		Long: `Check creates a new audit for an HTML document and runs the rule catalog
against it.

The document is either fetched from a URL or read from a local file via
--html-file. Each rule produces a verdict (passed, warning, error or
skipped). Rules that cannot decide on markup alone pause the audit with
open questions; answer them with 'srcheck resume'.

Examples:
  # Audit a page by URL
  srcheck check https://example.com/

  # Audit a local HTML file
  srcheck check --html-file page.html

  # Declare icon font class prefixes so icon tags are not flagged
  srcheck check --iconfont "fa glyphicon" https://example.com/

  # Output a Markdown report to a file
  srcheck check --markdown -o report.md https://example.com/

  # Use a custom configuration file
  srcheck check -c myconfig.yaml https://example.com/

Configuration file (.srcheck) example:
  validatorUrl: https://validator.example.org/nu/
  sites:
    example.com:
      answers:
        global_layout_table_usage: "no"
      headers:
        Authorization: "Bearer token"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheckCmd,
	}

	addAuditFlags(cmd)

	cmd.Flags().StringP("html-file", "f", "",
		"Read the HTML document from a file instead of fetching a URL")
	cmd.Flags().StringP("iconfont", "i", "",
		"Space-separated icon font class prefixes (stored as a global answer)")

	return cmd
}

// addAuditFlags registers the flags shared by the check and resume
// commands.
func addAuditFlags(cmd *cobra.Command) {
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for document fetches and validator calls")
	cmd.Flags().StringP("validator-url", "u", config.DefaultValidatorURL,
		"Nu HTML checker base URL (empty disables external markup validation)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .srcheck in current or home directory)")
	cmd.Flags().String("db-dir", "",
		"Directory for the check database (default: XDG data directory)")

	addReportFlags(cmd)
}

// addReportFlags registers the report output flags shared by the check,
// resume and report commands.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	htmlFile, err := cmd.Flags().GetString("html-file")
	if err != nil {
		return err
	}
	iconfont, err := cmd.Flags().GetString("iconfont")
	if err != nil {
		return err
	}

	target := ""
	if len(args) > 0 {
		target = args[0]
	}
	if (target == "") == (htmlFile == "") {
		return fmt.Errorf("provide either a URL argument or --html-file, not both")
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	siteConfig := siteConfigFor(cfg, target)

	env, err := newAuditEnv(cfg, siteConfig.Headers, logger)
	if err != nil {
		return err
	}
	defer env.Close()

	input := checks.CreateInput{URL: target}
	if htmlFile != "" {
		content, err := os.ReadFile(htmlFile) //nolint:gosec // Path comes from the user's own flag
		if err != nil {
			return fmt.Errorf("failed to read HTML file: %w", err)
		}
		input.HTML = string(content)
	}

	// Pre-seed answers from the config file and the iconfont flag.
	input.Options = seedOptions(siteConfig, iconfont)

	check, err := env.service.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create check: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created check %d for %s\n\n", check.ID, report.NewAudit(check, nil).Subject())

	results, err := env.runner.RunAll(ctx, check.ID, nil)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	return concludeAudit(ctx, cmd, cfg, env, check, results)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	if flag := cmd.Flags().Lookup("timeout"); flag != nil {
		cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
		if err != nil {
			return nil, err
		}
	}

	if flag := cmd.Flags().Lookup("validator-url"); flag != nil {
		cfg.ValidatorURL, err = cmd.Flags().GetString("validator-url")
		if err != nil {
			return nil, err
		}
	}

	if flag := cmd.Flags().Lookup("config"); flag != nil {
		cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
		if err != nil {
			return nil, err
		}
	}

	if flag := cmd.Flags().Lookup("db-dir"); flag != nil {
		dbDir, err := cmd.Flags().GetString("db-dir")
		if err != nil {
			return nil, err
		}
		if dbDir != "" {
			cfg.DBDir = dbDir
		}
	}

	// Load site-specific configurations from the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		// A flag given on the command line wins over the config file.
		if cfg.SiteConfigs.ValidatorURL != "" && !cmd.Flags().Changed("validator-url") {
			cfg.ValidatorURL = cfg.SiteConfigs.ValidatorURL
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.SiteConfigs = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	if flag := cmd.Flags().Lookup("json"); flag != nil {
		cfg.JSONReport, err = cmd.Flags().GetBool("json")
		if err != nil {
			return nil, err
		}
	}

	if flag := cmd.Flags().Lookup("markdown"); flag != nil {
		cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
		if err != nil {
			return nil, err
		}
	}

	if flag := cmd.Flags().Lookup("output"); flag != nil {
		cfg.ReportFile, err = cmd.Flags().GetString("output")
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// siteConfigFor resolves the per-site configuration for the audited
// target. Raw-HTML checks have no hostname and receive the defaults.
func siteConfigFor(cfg *config.Config, target string) config.SiteConfig {
	if cfg.SiteConfigs == nil {
		return config.SiteConfig{}
	}

	host := target
	for _, prefix := range []string{"http://", "https://"} {
		host = strings.TrimPrefix(host, prefix)
	}
	if idx := strings.IndexAny(host, "/?#"); idx >= 0 {
		host = host[:idx]
	}
	return cfg.SiteConfigs.GetSiteConfig(host)
}

// seedOptions collects option values to store at check creation time:
// pre-seeded answers from the matching site config plus the iconfont
// global option from the flag.
func seedOptions(siteConfig config.SiteConfig, iconfont string) map[string]string {
	options := make(map[string]string)

	for key, value := range siteConfig.Answers {
		options[key] = value
	}

	if iconfont != "" {
		options["global_iconfont"] = iconfont
	}

	if len(options) == 0 {
		return nil
	}
	return options
}

// auditEnv bundles the services a running audit needs.
type auditEnv struct {
	db      *database.CheckDB
	service *checks.Service
	runner  *runner.Runner
}

// newAuditEnv opens the database and wires up the check service and the
// rule runner.
func newAuditEnv(cfg *config.Config, headers map[string]string, logger *slog.Logger) (*auditEnv, error) {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Info("database opened", "dir", cfg.DBDir)

	fetchOpts := []fetch.Option{
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithTimeout(cfg.Timeout),
	}
	if cfg.MaxBodySize > 0 {
		fetchOpts = append(fetchOpts, fetch.WithMaxBodySize(cfg.MaxBodySize))
	}
	if len(headers) > 0 {
		fetchOpts = append(fetchOpts, fetch.WithHeaders(headers))
	}
	fetcher := fetch.New(nil, fetchOpts...)

	service := checks.NewService(db, fetcher, logger)

	// An empty validator URL disables external markup validation; the
	// markup validity rule then only checks the doctype.
	var htmlValidator rules.HTMLValidator
	if cfg.ValidatorURL != "" {
		htmlValidator = validator.New(nil,
			validator.WithServiceURL(cfg.ValidatorURL),
			validator.WithTimeout(cfg.Timeout),
			validator.WithLogger(logger),
		)
	}

	catalog := rules.Catalog(htmlValidator)

	return &auditEnv{
		db:      db,
		service: service,
		runner:  runner.New(db, service, catalog, logger),
	}, nil
}

// Close releases the environment's database connection.
func (e *auditEnv) Close() error {
	return e.db.Close()
}

// concludeAudit prints the audit outcome: the report over all persisted
// results when the catalog ran to the end, or the open questions of the
// rule the audit paused on.
func concludeAudit(ctx context.Context, cmd *cobra.Command, cfg *config.Config, env *auditEnv, check *model.Check, results []*model.Result) error {
	if n := len(results); n > 0 {
		last := results[n-1]
		if !last.IsDone() {
			printOpenQuestions(cmd, check.ID, last)
			return nil
		}
	}

	persisted, err := env.runner.Results(ctx, check.ID)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	return outputReport(cfg, report.NewAudit(check, persisted))
}

// printOpenQuestions lists a paused rule's open questions together with
// the resume invocation that answers them.
func printOpenQuestions(cmd *cobra.Command, checkID int64, result *model.Result) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "The audit is paused: rule %q needs more information.\n\n", result.TestTitle)

	for _, request := range result.RequestData {
		fmt.Fprintf(out, "  %s\n", request.Label)
		if request.Description != "" {
			fmt.Fprintf(out, "    %s\n", request.Description)
		}
		if len(request.Options) > 0 {
			values := make([]string, 0, len(request.Options))
			for _, choice := range request.Options {
				values = append(values, choice.Value)
			}
			fmt.Fprintf(out, "    Choices: %s\n", strings.Join(values, ", "))
		}
		if request.Default != "" {
			fmt.Fprintf(out, "    Default: %s\n", request.Default)
		}
		fmt.Fprintf(out, "    Answer with: --answer %s=<value>\n\n", request.Slug)
	}

	fmt.Fprintf(out, "Continue with:\n  srcheck resume %d --answer <slug>=<value>\n", checkID)
}

// outputReport writes the audit report in the requested format.
func outputReport(cfg *config.Config, audit *report.Audit) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(audit)
	return err
}
