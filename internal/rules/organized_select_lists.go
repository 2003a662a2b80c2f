package rules

import (
	"context"
	"regexp"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// organizedSelectLists checks that select lists use optgroup elements to
// group their options instead of typographic characters like dashes or
// arrows at the start of option texts.
type organizedSelectLists struct{}

// fakeGroupRe matches option texts that simulate groups typographically.
// The parser decodes entities, so both raw entity sequences and their
// decoded characters are covered.
var fakeGroupRe = regexp.MustCompile(`^(\x{00a0}|→|>|-|_|&nbsp;|&rarr;|&gt;)`)

func (organizedSelectLists) Metadata() Metadata {
	return Metadata{
		Slug:        "organized_select_lists",
		Title:       "Organized Select Lists",
		Description: "Groups inside select lists must be marked with the optgroup element instead of using typographic markup.",
		Guideline: model.Guideline{
			Title:  "1.3.1 Info and Relationships",
			Anchor: "content-structure-separation-programmatic",
		},
		Links: []model.Link{
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H85",
				Title:  "Using OPTGROUP to group OPTION elements inside a SELECT",
			},
		},
	}
}

func (organizedSelectLists) Run(_ context.Context, rep *Report, doc *dom.Document, _ Options) error {
	selects := doc.Find("select")
	if len(selects) == 0 {
		rep.Skip("There are no select lists in the HTML code provided. Therefore this test was skipped.")
		rep.Finish("")
		return nil
	}

	for _, sel := range selects {
		if len(sel.Find("optgroup")) > 0 {
			continue
		}
		for _, option := range sel.Find("option") {
			if fakeGroupRe.MatchString(option.Text()) {
				rep.ErrorAt(sel, "typographic_option_groups",
					"The following select list uses typographic characters to indicate groups:")
				break
			}
		}
	}

	rep.Finish("All select lists in the HTML code use valid markup.")
	return nil
}
