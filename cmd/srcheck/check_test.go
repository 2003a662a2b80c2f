package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/felixarntz/screen-reader-check/internal/config"
)

// TestNewCheckCmd tests the check command creation.
func TestNewCheckCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCheckCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "check [url]" {
			t.Errorf("expected use 'check [url]', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has html-file flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("html-file")
		if flag == nil {
			t.Fatal("expected html-file flag")
		}
		if flag.Shorthand != "f" {
			t.Errorf("expected shorthand 'f', got %q", flag.Shorthand)
		}
	})

	t.Run("has iconfont flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("iconfont") == nil {
			t.Fatal("expected iconfont flag")
		}
	})

	t.Run("has timeout flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("timeout")
		if flag == nil {
			t.Fatal("expected timeout flag")
		}
		if flag.Shorthand != "t" {
			t.Errorf("expected shorthand 't', got %q", flag.Shorthand)
		}
	})

	t.Run("has validator-url flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("validator-url")
		if flag == nil {
			t.Fatal("expected validator-url flag")
		}
		if flag.DefValue != config.DefaultValidatorURL {
			t.Errorf("expected default %q, got %q", config.DefaultValidatorURL, flag.DefValue)
		}
	})

	t.Run("has report flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"json", "markdown", "output"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %s flag", name)
			}
		}
	})
}

// TestBuildConfig tests config construction from flags.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewCheckCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}
		if cfg.ValidatorURL != config.DefaultValidatorURL {
			t.Errorf("expected default validator URL, got %q", cfg.ValidatorURL)
		}
		if cfg.Timeout != config.DefaultTimeout {
			t.Errorf("expected default timeout, got %v", cfg.Timeout)
		}
		if cfg.SiteConfigs == nil {
			t.Error("expected non-nil site configs")
		}
	})

	t.Run("applies flag values", func(t *testing.T) {
		t.Parallel()

		cmd := NewCheckCmd()
		args := []string{
			"--timeout", "5s",
			"--validator-url", "",
			"--db-dir", "/tmp/srcheck-test",
			"--json",
		}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}
		if cfg.Timeout != 5*time.Second {
			t.Errorf("expected 5s timeout, got %v", cfg.Timeout)
		}
		if cfg.ValidatorURL != "" {
			t.Errorf("expected empty validator URL, got %q", cfg.ValidatorURL)
		}
		if cfg.DBDir != "/tmp/srcheck-test" {
			t.Errorf("expected overridden db dir, got %q", cfg.DBDir)
		}
		if !cfg.JSONReport {
			t.Error("expected JSON report enabled")
		}
	})

	t.Run("errors on missing explicit config file", func(t *testing.T) {
		t.Parallel()

		cmd := NewCheckCmd()
		if err := cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}); err != nil {
			t.Fatal(err)
		}

		if _, err := buildConfig(cmd); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("config file validator URL yields to flag", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".srcheck")
		content := "validatorUrl: https://config.example.org/nu/\n"
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewCheckCmd()
		if err := cmd.ParseFlags([]string{"--config", configPath}); err != nil {
			t.Fatal(err)
		}
		cfg, err := buildConfig(cmd)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.ValidatorURL != "https://config.example.org/nu/" {
			t.Errorf("expected config file validator URL, got %q", cfg.ValidatorURL)
		}

		cmd = NewCheckCmd()
		if err := cmd.ParseFlags([]string{"--config", configPath, "--validator-url", "https://flag.example.org/nu/"}); err != nil {
			t.Fatal(err)
		}
		cfg, err = buildConfig(cmd)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.ValidatorURL != "https://flag.example.org/nu/" {
			t.Errorf("expected flag validator URL to win, got %q", cfg.ValidatorURL)
		}
	})
}

// TestSiteConfigFor tests site config resolution for audit targets.
func TestSiteConfigFor(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.SiteConfigs = &config.File{
		Defaults: config.SiteConfig{
			Answers: map[string]string{"global_layout_table_usage": "no"},
		},
		Sites: map[string]config.SiteConfig{
			"example.com": {
				Answers: map[string]string{"structural_lists_has_lists": "yes"},
				Headers: map[string]string{"Authorization": "Bearer token"},
			},
		},
	}

	tests := []struct {
		name        string
		target      string
		wantAnswers map[string]string
		wantHeaders int
	}{
		{
			name:   "url with scheme and path",
			target: "https://example.com/page?x=1",
			wantAnswers: map[string]string{
				"global_layout_table_usage":  "no",
				"structural_lists_has_lists": "yes",
			},
			wantHeaders: 1,
		},
		{
			name:   "bare hostname",
			target: "example.com",
			wantAnswers: map[string]string{
				"global_layout_table_usage":  "no",
				"structural_lists_has_lists": "yes",
			},
			wantHeaders: 1,
		},
		{
			name:   "unknown host gets defaults",
			target: "https://other.org/",
			wantAnswers: map[string]string{
				"global_layout_table_usage": "no",
			},
			wantHeaders: 0,
		},
		{
			name:   "raw html check gets defaults",
			target: "",
			wantAnswers: map[string]string{
				"global_layout_table_usage": "no",
			},
			wantHeaders: 0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := siteConfigFor(cfg, tt.target)
			if len(got.Answers) != len(tt.wantAnswers) {
				t.Fatalf("expected %d answers, got %d", len(tt.wantAnswers), len(got.Answers))
			}
			for key, want := range tt.wantAnswers {
				if got.Answers[key] != want {
					t.Errorf("answer %s = %q, want %q", key, got.Answers[key], want)
				}
			}
			if len(got.Headers) != tt.wantHeaders {
				t.Errorf("expected %d headers, got %d", tt.wantHeaders, len(got.Headers))
			}
		})
	}
}

// TestSeedOptions tests option seeding at check creation.
func TestSeedOptions(t *testing.T) {
	t.Parallel()

	t.Run("nil when nothing to seed", func(t *testing.T) {
		t.Parallel()
		if got := seedOptions(config.SiteConfig{}, ""); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("merges answers and iconfont", func(t *testing.T) {
		t.Parallel()

		siteConfig := config.SiteConfig{
			Answers: map[string]string{"table_markup_has_table_data": "no"},
		}
		got := seedOptions(siteConfig, "fa glyphicon")
		if got["table_markup_has_table_data"] != "no" {
			t.Errorf("expected seeded answer, got %v", got)
		}
		if got["global_iconfont"] != "fa glyphicon" {
			t.Errorf("expected iconfont option, got %v", got)
		}
	})
}
