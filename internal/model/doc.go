// Package model defines the core data structures used throughout
// screen-reader-check.
//
// This package contains the following main types:
//   - Check: One accessibility audit session over one HTML document
//   - Domain: Shared option store keyed by hostname
//   - Result: The outcome of running one rule against one check
//   - RequestData: A pending clarifying question a rule needs answered
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (rules, runner, database, report) need to
// use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
