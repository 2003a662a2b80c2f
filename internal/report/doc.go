// Package report renders audit results in multiple output formats.
//
// An Audit bundles a check with its persisted rule results; writers
// turn it into terminal text, JSON for tool integration, or Markdown
// for documentation and sharing. All writers implement the same Writer
// interface so output destinations are interchangeable.
package report
