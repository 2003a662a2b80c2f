// Package dom provides a queryable, navigable view over a parsed HTML
// document, insulating accessibility rules from the underlying parser.
//
// The package wraps golang.org/x/net/html and exposes:
//   - CSS-selector querying (translated to XPath, evaluated via
//     github.com/antchfx/htmlquery)
//   - Sibling/parent/child navigation
//   - Attribute access and serialization (outer/inner HTML)
//   - Source line numbers for every element
//
// Design decision: Rules are written exclusively against this abstraction,
// never against the parser's native API, so the parser is swappable. Line
// numbers are reconstructed from a tokenizer pass over the raw source
// because the HTML tree itself has no position information; this keeps the
// heuristics that anchor rule messages to source lines working even though
// HTML has no formal line-number model.
package dom
