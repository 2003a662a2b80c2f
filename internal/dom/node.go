package dom

import (
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Document type identifiers as derived from the doctype declaration.
const (
	DocTypeHTML5   = "html5"
	DocTypeHTML4   = "html4"
	DocTypeHTML3   = "html3"
	DocTypeXHTML   = "xhtml"
	DocTypeXHTML1  = "xhtml1"
	DocTypeXHTML11 = "xhtml11"
	DocTypeUnknown = "unknown"
)

// Attribute is a single name/value attribute of an element.
type Attribute struct {
	Name  string
	Value string
}

// Node is a single node of a parsed document. It wraps the underlying
// parser node and carries a reference back to its document so that query
// results, line numbers and node identity stay consistent.
type Node struct {
	raw *html.Node
	doc *Document
}

// Document is the root node of a parsed document. It owns the source line
// index and the detected document type.
//
// Document embeds Node, so the full query and serialization API is
// available on it; the navigation methods that make no sense on the root
// (Parent, Next, Prev) are overridden to report absence.
type Document struct {
	Node

	docType string
	lines   map[*html.Node]int
	wrapped map[*html.Node]*Node
}

// Parse parses HTML source into a Document.
//
// Parsing is forgiving in the same way browsers are: malformed markup
// yields a best-effort tree rather than an error. Elements synthesized by
// the parser (an implied html or body tag, for example) have no source
// position and report line 0.
func Parse(source string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	d := &Document{
		docType: detectDocumentType(root),
		lines:   buildLineIndex(source, root),
		wrapped: make(map[*html.Node]*Node),
	}
	d.Node = Node{raw: root, doc: d}
	d.wrapped[root] = &d.Node
	return d, nil
}

// DocumentType reports which HTML or XHTML generation the doctype
// declaration announces. A missing or foreign doctype yields
// DocTypeUnknown.
func (d *Document) DocumentType() string { return d.docType }

// IsXHTML reports whether the doctype declares any XHTML generation.
func (d *Document) IsXHTML() bool { return strings.HasPrefix(d.docType, "xhtml") }

// Parent of the document root does not exist.
func (d *Document) Parent() *Node { return nil }

// Next sibling of the document root does not exist.
func (d *Document) Next() *Node { return nil }

// Prev sibling of the document root does not exist.
func (d *Document) Prev() *Node { return nil }

// HasParent reports false for the document root.
func (d *Document) HasParent() bool { return false }

// wrap returns the canonical Node for a raw parser node, so that two
// queries returning the same underlying node yield the same pointer.
func (d *Document) wrap(raw *html.Node) *Node {
	if raw == nil {
		return nil
	}
	if n, ok := d.wrapped[raw]; ok {
		return n
	}
	n := &Node{raw: raw, doc: d}
	d.wrapped[raw] = n
	return n
}

// Find returns all descendant elements matching the CSS selector, in
// document order. An unsupported selector yields no matches.
func (n *Node) Find(selector string) []*Node {
	expr := compileSelector(selector)
	if expr == nil {
		return nil
	}
	matches := htmlquery.QuerySelectorAll(n.raw, expr)
	out := make([]*Node, 0, len(matches))
	for _, m := range matches {
		out = append(out, n.doc.wrap(m))
	}
	return out
}

// FindFirst returns the first descendant element matching the CSS
// selector, or nil when nothing matches.
func (n *Node) FindFirst(selector string) *Node {
	expr := compileSelector(selector)
	if expr == nil {
		return nil
	}
	m := htmlquery.QuerySelector(n.raw, expr)
	if m == nil {
		return nil
	}
	return n.doc.wrap(m)
}

// TextNodes returns all non-empty text nodes in the subtree, in document
// order. Whitespace-only nodes are skipped.
func (n *Node) TextNodes() []*Node {
	var out []*Node
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.TextNode && strings.TrimSpace(cur.Data) != "" {
			out = append(out, n.doc.wrap(cur))
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n.raw)
	return out
}

// Children returns the direct children. With includeText false only
// element children are returned; with includeText true non-empty text
// children are included as well.
func (n *Node) Children(includeText bool) []*Node {
	var out []*Node
	for c := n.raw.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			out = append(out, n.doc.wrap(c))
		case html.TextNode:
			if includeText && strings.TrimSpace(c.Data) != "" {
				out = append(out, n.doc.wrap(c))
			}
		}
	}
	return out
}

// HasChildren reports whether Children with the same includeText flag
// would return at least one node.
func (n *Node) HasChildren(includeText bool) bool {
	return len(n.Children(includeText)) > 0
}

// Parent returns the parent node, or nil at the top of the tree.
func (n *Node) Parent() *Node {
	p := n.raw.Parent
	if p == nil || p.Type == html.DocumentNode {
		return nil
	}
	return n.doc.wrap(p)
}

// HasParent reports whether the node has an element parent.
func (n *Node) HasParent() bool { return n.Parent() != nil }

// Next returns the next sibling, including text siblings, or nil.
func (n *Node) Next() *Node {
	if n.raw.NextSibling == nil {
		return nil
	}
	return n.doc.wrap(n.raw.NextSibling)
}

// Prev returns the previous sibling, including text siblings, or nil.
func (n *Node) Prev() *Node {
	if n.raw.PrevSibling == nil {
		return nil
	}
	return n.doc.wrap(n.raw.PrevSibling)
}

// NextElement returns the next element sibling, skipping text and
// comments, or nil.
func (n *Node) NextElement() *Node {
	for s := n.raw.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return n.doc.wrap(s)
		}
	}
	return nil
}

// PrevElement returns the previous element sibling, skipping text and
// comments, or nil.
func (n *Node) PrevElement() *Node {
	for s := n.raw.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return n.doc.wrap(s)
		}
	}
	return nil
}

// TagName returns the lowercase tag name, or "" for non-element nodes.
func (n *Node) TagName() string {
	if n.raw.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.raw.Data)
}

// IsTextNode reports whether this is a text node.
func (n *Node) IsTextNode() bool { return n.raw.Type == html.TextNode }

// Text returns the concatenated text content of the subtree.
func (n *Node) Text() string { return htmlquery.InnerText(n.raw) }

// GetAttribute returns the attribute value and whether the attribute is
// present, so an empty value can be told apart from a missing one.
func (n *Node) GetAttribute(name string) (string, bool) {
	for _, a := range n.raw.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttribute reports whether the attribute is present, regardless of
// its value.
func (n *Node) HasAttribute(name string) bool {
	_, ok := n.GetAttribute(name)
	return ok
}

// Attributes returns all attributes of the node in source order.
func (n *Node) Attributes() []Attribute {
	out := make([]Attribute, 0, len(n.raw.Attr))
	for _, a := range n.raw.Attr {
		out = append(out, Attribute{Name: a.Key, Value: a.Val})
	}
	return out
}

// OuterHTML serializes the node including its own tag.
func (n *Node) OuterHTML() string {
	var b strings.Builder
	if err := html.Render(&b, n.raw); err != nil {
		return ""
	}
	return b.String()
}

// InnerHTML serializes the children of the node.
func (n *Node) InnerHTML() string {
	var b strings.Builder
	for c := n.raw.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return ""
		}
	}
	return b.String()
}

// LineNo returns the 1-based source line the element's start tag appears
// on, or 0 when the element has no source position.
func (n *Node) LineNo() int { return n.doc.lines[n.raw] }

// Path returns a stable slash-separated location path for the node, for
// example /html/body/div[2]/table. It is used to group nodes by common
// ancestor, not for re-querying.
func (n *Node) Path() string {
	if n.raw.Type == html.DocumentNode {
		return "/"
	}
	var segs []string
	for cur := n.raw; cur != nil && cur.Type != html.DocumentNode; cur = cur.Parent {
		if cur.Type != html.ElementNode {
			continue
		}
		idx := 1
		for s := cur.PrevSibling; s != nil; s = s.PrevSibling {
			if s.Type == html.ElementNode && s.Data == cur.Data {
				idx++
			}
		}
		seg := cur.Data
		if idx > 1 {
			seg = fmt.Sprintf("%s[%d]", seg, idx)
		}
		segs = append([]string{seg}, segs...)
	}
	return "/" + strings.Join(segs, "/")
}

// Is reports whether two wrappers refer to the same underlying node.
func (n *Node) Is(other *Node) bool {
	return other != nil && n.raw == other.raw
}

// detectDocumentType inspects the doctype declaration.
func detectDocumentType(root *html.Node) string {
	var dt *html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.DoctypeNode {
			dt = c
			break
		}
	}
	if dt == nil || strings.ToLower(dt.Data) != "html" {
		return DocTypeUnknown
	}
	var system string
	for _, a := range dt.Attr {
		if a.Key == "system" {
			system = strings.ToLower(a.Val)
		}
	}
	switch {
	case strings.Contains(system, "xhtml11"):
		return DocTypeXHTML11
	case strings.Contains(system, "xhtml1"):
		return DocTypeXHTML1
	case strings.Contains(system, "xhtml"):
		return DocTypeXHTML
	case strings.Contains(system, "html4"):
		return DocTypeHTML4
	case strings.Contains(system, "html3"):
		return DocTypeHTML3
	}
	return DocTypeHTML5
}

// buildLineIndex reconstructs source line numbers for element nodes.
//
// The tree produced by the parser carries no positions, so the raw source
// is tokenized once more, recording the line of every start tag per tag
// name in order of appearance. A document-order walk over the parsed tree
// then pops those queues. Tags the parser synthesized have no queue entry
// and keep line 0.
func buildLineIndex(source string, root *html.Node) map[*html.Node]int {
	queues := make(map[string][]int)
	z := html.NewTokenizer(strings.NewReader(source))
	line := 1
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		raw := string(z.Raw())
		if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
			name, _ := z.TagName()
			tag := strings.ToLower(string(name))
			queues[tag] = append(queues[tag], line)
		}
		line += strings.Count(raw, "\n")
	}

	lines := make(map[*html.Node]int)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if q := queues[n.Data]; len(q) > 0 {
				lines[n] = q[0]
				queues[n.Data] = q[1:]
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return lines
}
