// Package config provides configuration structures and utilities for
// screen-reader-check. It defines the main options for creating and
// running checks, the validator service endpoint, and report generation
// preferences.
package config
