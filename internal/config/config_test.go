package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfigDefaults tests that the constructor applies sane defaults.
func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()
	cfg := NewConfig()

	if cfg.ValidatorURL != DefaultValidatorURL {
		t.Errorf("ValidatorURL = %q, expected %q", cfg.ValidatorURL, DefaultValidatorURL)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, expected %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q, expected %q", cfg.UserAgent, DefaultUserAgent)
	}
	if cfg.DBDir == "" {
		t.Error("DBDir should default to the XDG data directory")
	}
}

// TestValidate tests the validation rules.
func TestValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		mutate   func(*Config)
		expected error
	}{
		{
			name:     "valid defaults",
			mutate:   func(*Config) {},
			expected: nil,
		},
		{
			name:     "zero timeout",
			mutate:   func(c *Config) { c.Timeout = 0 },
			expected: ErrInvalidTimeout,
		},
		{
			name:     "negative timeout",
			mutate:   func(c *Config) { c.Timeout = -time.Second },
			expected: ErrInvalidTimeout,
		},
		{
			name:     "conflicting formats",
			mutate:   func(c *Config) { c.JSONReport = true; c.MarkdownReport = true },
			expected: ErrConflictingReportFormats,
		},
		{
			name:     "negative max body size",
			mutate:   func(c *Config) { c.MaxBodySize = -1 },
			expected: ErrInvalidMaxBodySize,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.expected) {
				t.Errorf("Validate() = %v, expected %v", err, tc.expected)
			}
		})
	}
}

// TestLoadConfigFile tests YAML loading and the not-found sentinel.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := filepath.Join(dir, DefaultConfigFile)
	content := `validatorUrl: https://validator.example.com/nu/
defaults:
  answers:
    global_layout_table_usage: "no"
sites:
  example.com:
    answers:
      global_iconfont: "fa- icon-"
    headers:
      Authorization: "Bearer token"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cf, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() returned error: %v", err)
	}
	if cf.ValidatorURL != "https://validator.example.com/nu/" {
		t.Errorf("ValidatorURL = %q", cf.ValidatorURL)
	}

	site := cf.GetSiteConfig("example.com")
	if site.Answers["global_iconfont"] != "fa- icon-" {
		t.Errorf("site answers = %v", site.Answers)
	}
	if site.Answers["global_layout_table_usage"] != "no" {
		t.Error("defaults should merge into site answers")
	}
	if site.Headers["Authorization"] != "Bearer token" {
		t.Errorf("site headers = %v", site.Headers)
	}

	other := cf.GetSiteConfig("other.org")
	if other.Answers["global_layout_table_usage"] != "no" {
		t.Error("unknown sites should still get the defaults")
	}
	if _, ok := other.Answers["global_iconfont"]; ok {
		t.Error("unknown sites must not inherit site-specific answers")
	}

	if _, err := LoadConfigFile(filepath.Join(dir, "missing")); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("expected ErrConfigNotFound, got %v", err)
	}
}

// TestFindConfigFile tests the search order.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	explicit := filepath.Join(dir, "custom.yml")
	if err := os.WriteFile(explicit, []byte("sites: {}\n"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if got := FindConfigFile(explicit); got != explicit {
		t.Errorf("FindConfigFile(explicit) = %q, expected %q", got, explicit)
	}
	if got := FindConfigFile(filepath.Join(dir, "nope.yml")); got != "" {
		t.Errorf("FindConfigFile(missing explicit) = %q, expected empty", got)
	}
}
