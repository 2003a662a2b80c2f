// Package main provides the entry point for the srcheck CLI.
//
// srcheck audits HTML documents for screen reader accessibility. It runs
// a catalog of WCAG-derived rules against a fetched or submitted document
// and reports errors, warnings and open questions per rule.
//
// Usage:
//
//	srcheck check <url>
//	srcheck check --html-file page.html
//	srcheck resume <check-id> --answer <slug>=<value>
//
// See --help for all available options.
package main

// main is the entry point for srcheck.
func main() {
	Execute()
}
