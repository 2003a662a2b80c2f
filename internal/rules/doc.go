// Package rules implements the accessibility rule catalog.
//
// A rule inspects a parsed HTML document and produces a Result: a verdict
// (success, info, warning, error, skipped) plus human-readable messages
// anchored to source lines. Rules that cannot decide on markup alone ask
// questions (RequestData) which the caller answers out of band; answers
// are persisted as options, so a re-run of the rule finds them and can
// conclude.
//
// Design decision: Rules are pure functions of (document, options). All
// state lives in the option store, which is why a rule that just asked a
// question can simply be run again once the answer arrived. The only rule
// with an external dependency is the markup validation rule, which talks
// to an Nu validator instance through a narrow interface.
package rules
