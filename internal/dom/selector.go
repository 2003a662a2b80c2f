package dom

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/antchfx/xpath"
)

// replacement is one ordered regex substitution step of the CSS to XPath
// translation. Order is significant.
type replacement struct {
	re *regexp.Regexp
	to string
}

var (
	combinatorSpace = []replacement{
		{regexp.MustCompile(`\s*>\s*`), ">"},
		{regexp.MustCompile(`\s*~\s*`), "~"},
		{regexp.MustCompile(`\s*\+\s*`), "+"},
		{regexp.MustCompile(`\s*,\s*`), ","},
	}

	// attrSteps normalize pseudo classes and attribute selectors, ending
	// with every attribute value in double quotes.
	attrSteps = []replacement{
		// Alternative selectors separated by comma.
		{regexp.MustCompile(`,`), "|descendant-or-self::"},
		// Boolean pseudo classes that map to same-valued attributes.
		{regexp.MustCompile(`(.+)?:(checked|disabled|required|autofocus)`), `$1[@$2="$2"]`},
		{regexp.MustCompile(`(.+)?:(autocomplete)`), `$1[@$2="on"]`},
		// Input type pseudo classes.
		{regexp.MustCompile(`:(text|password|checkbox|radio|button|submit|reset|file|hidden|image|datetime|datetime-local|date|month|time|week|number|range|email|url|search|tel|color)`), `input[@type="$1"]`},
		// Attribute presence.
		{regexp.MustCompile(`(\w+)\[([_\w-]+[_\w\d-]*)\]`), `$1[@$2]`},
		{regexp.MustCompile(`\[([_\w-]+[_\w\d-]*)\]`), `*[@$1]`},
		// Attribute value, quotes optional.
		{regexp.MustCompile(`\[([_\w-]+[_\w\d-]*)=['"]?(.*?)['"]?\]`), `[@$1="$2"]`},
		// A bare attribute selector applies to any element.
		{regexp.MustCompile(`^\[`), "*["},
	}

	// pathSteps run with quoted attribute values masked out, so a dot or
	// hash inside a value is never mistaken for a class or id selector.
	pathSteps = []replacement{
		// ID selectors.
		{regexp.MustCompile(`([_\w-]+[_\w\d-]*)#([_\w-]+[_\w\d-]*)`), `$1[@id="$2"]`},
		{regexp.MustCompile(`#([_\w-]+[_\w\d-]*)`), `*[@id="$1"]`},
		// Class selectors.
		{regexp.MustCompile(`([_\w-]+[_\w\d-]*)\.([_\w-]+[_\w\d-]*)`), `$1[contains(concat(" ",@class," ")," $2 ")]`},
		{regexp.MustCompile(`\.([_\w-]+[_\w\d-]*)`), `*[contains(concat(" ",@class," ")," $1 ")]`},
		// Structural pseudo classes.
		{regexp.MustCompile(`([_\w-]+[_\w\d-]*):first-child`), `*/$1[position()=1]`},
		{regexp.MustCompile(`([_\w-]+[_\w\d-]*):last-child`), `*/$1[position()=last()]`},
		{regexp.MustCompile(`:first-child`), `*/*[position()=1]`},
		{regexp.MustCompile(`:last-child`), `*/*[position()=last()]`},
		{regexp.MustCompile(`:nth-last-child\((\d+)\)`), `[position()=(last() - ($1 - 1))]`},
		{regexp.MustCompile(`([_\w-]+[_\w\d-]*):nth-child\((\d+)\)`), `*/*[position()=$2 and self::$1]`},
		{regexp.MustCompile(`:nth-child\((\d+)\)`), `*/*[position()=$1]`},
		{regexp.MustCompile(`([_\w-]+[_\w\d-]*):contains\((.*?)\)`), `$1[contains(string(.),"$2")]`},
		// Combinators.
		{regexp.MustCompile(`>`), "/"},
		{regexp.MustCompile(`~`), "/following-sibling::"},
		{regexp.MustCompile(`\+([_\w-]+[_\w\d-]*)`), `/following-sibling::$1[position()=1]`},
		// Cleanup of artifacts from earlier steps.
		{regexp.MustCompile(`\]\*`), "]"},
		{regexp.MustCompile(`\]/\*`), "]"},
	}

	scopeRe   = regexp.MustCompile(`(\|)?descendant-or-self:::scope`)
	segmentRe = regexp.MustCompile(`(?:[^/]*/?/?)|$`)
	quotedRe  = regexp.MustCompile(`"[^"]*"`)
	maskedRe  = regexp.MustCompile("\x00(\\d+)\x00")
)

// TranslateSelector converts a CSS selector expression into an equivalent
// XPath expression.
//
// The supported subset covers tag, id, class and attribute selectors, the
// descendant, child, general sibling and adjacent sibling combinators,
// comma-separated alternatives, :scope, and the structural and form-state
// pseudo classes (:first-child, :last-child, :nth-child, :nth-last-child,
// :contains, :checked, :disabled, :required, :autofocus and the input type
// shorthands such as :checkbox).
//
// Design decision: translation is a fixed, ordered list of regular
// expression substitutions rather than a grammar-driven compiler. The
// selector subset the rules need is small and stable, and the substitution
// table is trivially auditable against the selectors the rule catalog
// actually uses.
//
// Quoted attribute values are opaque to the translation: once attrSteps
// have normalized them, they are masked while the path steps run, so a
// value like src="b.png" or href="#top" survives verbatim. Only the
// quotes protect a value; a dot in a bare #id selector is still read as
// a class separator.
func TranslateSelector(selector string) string {
	for _, r := range combinatorSpace {
		selector = r.re.ReplaceAllString(selector, r.to)
	}

	tokens := splitOutsideBrackets(selector)
	for i, tok := range tokens {
		for _, r := range attrSteps {
			tok = r.re.ReplaceAllString(tok, r.to)
		}

		var quoted []string
		tok = quotedRe.ReplaceAllStringFunc(tok, func(m string) string {
			quoted = append(quoted, m)
			return fmt.Sprintf("\x00%d\x00", len(quoted)-1)
		})
		for _, r := range pathSteps {
			tok = r.re.ReplaceAllString(tok, r.to)
		}
		tok = maskedRe.ReplaceAllStringFunc(tok, func(m string) string {
			idx, _ := strconv.Atoi(m[1 : len(m)-1])
			return quoted[idx]
		})

		tokens[i] = tok
	}

	selector = "descendant-or-self::" + strings.Join(tokens, "/descendant::")

	// :scope anchors the expression to the context node instead of the
	// whole subtree.
	selector = scopeRe.ReplaceAllString(selector, "${1}.")

	// A $ in a sub-selector marks the step whose ancestor should be
	// matched; translate by climbing back up with /.. steps.
	if strings.Contains(selector, "$") {
		selector = resolveAnchors(selector)
	}

	return selector
}

// exprCache holds compiled XPath expressions keyed by the CSS selector
// they were translated from. The rule catalog queries with a small fixed
// set of selectors, so every expression compiles once per process.
var exprCache sync.Map

// compileSelector translates and compiles a CSS selector. An unsupported
// selector yields nil.
func compileSelector(selector string) *xpath.Expr {
	if cached, ok := exprCache.Load(selector); ok {
		return cached.(*xpath.Expr)
	}
	expr, err := xpath.Compile(TranslateSelector(selector))
	if err != nil {
		expr = nil
	}
	exprCache.Store(selector, expr)
	return expr
}

// splitOutsideBrackets splits on runs of whitespace that are not inside an
// attribute bracket pair.
func splitOutsideBrackets(s string) []string {
	var (
		tokens []string
		cur    strings.Builder
		depth  int
	)
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '[':
			depth++
			cur.WriteRune(r)
		case r == ']':
			if depth > 0 {
				depth--
			}
			cur.WriteRune(r)
		case depth == 0 && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	if tokens == nil {
		return []string{s}
	}
	return tokens
}

// resolveAnchors rewrites each $-marked sub-selector so that the final
// location path points at the element preceding the marker.
func resolveAnchors(selector string) string {
	var parts []string
	for _, sub := range strings.Split(selector, ",") {
		idx := strings.Index(sub, "$")
		if idx < 0 {
			parts = append(parts, sub)
			continue
		}
		head, tail := sub[:idx], sub[idx+1:]
		segments := segmentRe.FindAllString(tail, -1)
		climbs := len(segments) - 2
		if climbs < 0 {
			climbs = 0
		}
		parts = append(parts, head+tail+strings.Repeat("/..", climbs))
	}
	return strings.Join(parts, ",")
}
