package rules

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// srcSanitizer maps URL characters that may not appear in option keys.
var srcSanitizer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	".", "_",
	"[", "_",
	"]", "_",
	"=", "_",
	" ", "_",
	":", "_",
	"?", "_",
	"&", "_",
	"#", "_",
	"%", "_",
)

// SanitizeSrc turns a URL into an identifier safe to use inside an option
// key, so per-resource answers (one per image or frame) get stable keys.
func SanitizeSrc(src string) string {
	return srcSanitizer.Replace(strings.ToLower(src))
}

// DisplaySrc shortens a URL to its final path segment for use in
// messages, dropping query and fragment. An empty or bare URL is returned
// unchanged.
func DisplaySrc(src string) string {
	s := src
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimRight(s, "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	if s == "" {
		return src
	}
	return s
}

// ResolveSrc resolves a src value against the URL the audited document
// was fetched from. An empty base, an already absolute src or an
// unparseable value comes back unchanged.
func ResolveSrc(src, base string) string {
	if src == "" || base == "" {
		return src
	}
	b, err := url.Parse(base)
	if err != nil {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil || ref.IsAbs() {
		return src
	}
	return b.ResolveReference(ref).String()
}

// NodeIdentifier derives a stable identifier for a node, preferring its
// id, then its name attribute, then its source line. Used to key
// per-element questions.
func NodeIdentifier(n *dom.Node) string {
	if id, ok := n.GetAttribute("id"); ok && id != "" {
		return "id_" + id
	}
	if name, ok := n.GetAttribute("name"); ok && name != "" {
		return "name_" + name
	}
	return fmt.Sprintf("line_%d", n.LineNo())
}

// srcFileExtension returns the lowercase file extension of a URL's path,
// without the dot, or "" when there is none.
func srcFileExtension(src string) string {
	s := src
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	i := strings.LastIndex(s, ".")
	if i < 0 || i == len(s)-1 {
		return ""
	}
	return strings.ToLower(s[i+1:])
}

// yesNoChoices is the shared option list for confirmation questions.
func yesNoChoices() []model.Choice {
	return []model.Choice{
		{Value: "yes", Label: "Yes"},
		{Value: "no", Label: "No"},
	}
}
