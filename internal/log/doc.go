// Package log provides slog helpers for audit logging.
//
// Audit log records frequently carry raw HTML: fetched documents,
// markup snippets findings point at, validator extracts. The handler in
// this package truncates and flattens those values so log lines stay
// single-line and readable while the full markup remains available in
// the persisted results.
package log
