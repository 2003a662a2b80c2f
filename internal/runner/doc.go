// Package runner sequences rule execution for a check.
//
// An audit advances one rule per call: the next rule is derived from the
// last persisted result, newly supplied answers are committed to the
// option store first, and only completed results are persisted. Results
// that still carry open questions are returned to the caller and the
// same rule is re-run on the next call.
//
// Calls for the same check id are serialized internally; different
// checks are independent and may run in parallel.
package runner
