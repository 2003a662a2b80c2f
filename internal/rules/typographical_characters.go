package rules

import (
	"context"
	"regexp"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// typographicalCharacters checks text nodes for repeated non-breaking
// spaces used to format text and for hyphen or underscore runs used to
// draw horizontal lines.
type typographicalCharacters struct{}

// The parser decodes entities, so both the raw entity sequence and the
// decoded non-breaking space are covered.
var (
	repeatedNbspRe = regexp.MustCompile(`(&nbsp;|\x{00a0}){2,}`)
	fakeLineRe     = regexp.MustCompile(`(---|___)+`)
)

func (typographicalCharacters) Metadata() Metadata {
	return Metadata{
		Slug:        "misuse_typographical_characters",
		Title:       "Misuse of typographical characters",
		Description: "Typographical characters like whitespace must not be used to format text. Similarly, hyphens or similar characters should not be used to create horizontal lines.",
		Guideline: model.Guideline{
			Title:  "1.3.1 Info and Relationships",
			Anchor: "content-structure-separation-programmatic",
		},
	}
}

func (typographicalCharacters) Run(_ context.Context, rep *Report, doc *dom.Document, _ Options) error {
	for _, node := range doc.TextNodes() {
		text := node.Text()

		if match := repeatedNbspRe.FindString(text); match != "" {
			rep.ErrorSnippet("whitespace_formatting",
				"Whitespace must not be used to format text:", match, node.LineNo())
		}

		if match := fakeLineRe.FindString(text); match != "" {
			rep.ErrorSnippet("typographic_horizontal_line",
				"Hyphens or underscores must not be used to create horizontal lines:", match, node.LineNo())
		}
	}

	rep.Finish("No misused typographical characters have been found.")
	return nil
}
