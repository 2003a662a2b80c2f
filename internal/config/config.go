package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultValidatorURL is the public Nu HTML checker instance used by
	// the markup validity rule. Self-hosted instances can be configured
	// via the config file or the --validator-url flag.
	DefaultValidatorURL = "https://validator.w3.org/nu/"

	// DefaultTimeout is the per-request timeout for document fetches and
	// validator calls. 30 seconds is generous for a single HTML document
	// while still bounding a stalled audit.
	DefaultTimeout = 30 * time.Second

	// AppName is the application name used for XDG directory paths.
	AppName = "srcheck"

	// DefaultUserAgent identifies srcheck in HTTP requests.
	// A descriptive User-Agent allows operators to identify audit
	// traffic in their logs.
	DefaultUserAgent = "screen-reader-check/1.0"

	// DefaultMaxBodySize limits the maximum response body size to read.
	// 10MB covers even very large HTML pages while preventing memory
	// exhaustion from unexpected responses.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB
)

// Config holds all configuration options for srcheck.
// This struct is designed to be populated from CLI flags and the config
// file and passed through the application via dependency injection
// rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., FetchConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// ValidatorURL is the base URL of the Nu HTML checker service.
	// An empty value disables external markup validation; the markup
	// validity rule then only checks the doctype.
	ValidatorURL string

	// Timeout is the per-request timeout for fetches and validator calls.
	Timeout time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .srcheck in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// SiteConfigs holds site-specific configurations loaded from the
	// config file, such as pre-seeded rule answers per hostname.
	SiteConfigs *File

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// DBDir is the directory path for storing the SQLite database.
	// Defaults to the XDG data directory (~/.local/share/srcheck on Linux).
	DBDir string

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Set to 0 to use the default (10MB).
	MaxBodySize int64
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, URLs).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		ValidatorURL: DefaultValidatorURL,
		Timeout:      DefaultTimeout,
		UserAgent:    DefaultUserAgent,
		MaxBodySize:  DefaultMaxBodySize,
		DBDir:        XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for srcheck.
// On Linux: ~/.local/share/srcheck
// On macOS: ~/Library/Application Support/srcheck
// On Windows: %LOCALAPPDATA%\srcheck
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for srcheck.
// On Linux: ~/.config/srcheck
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any audit begins.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	return nil
}
