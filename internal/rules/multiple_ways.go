package rules

import (
	"context"
	"strings"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// multipleWays looks for a search form as an alternative way to reach
// content. A form with a single input qualifies when either the input
// or the form itself is recognizably search-related.
type multipleWays struct{}

func (multipleWays) Metadata() Metadata {
	return Metadata{
		Slug:        "multiple_ways",
		Title:       "Multiple ways",
		Description: "There must be at least two alternative ways to access content, for example through navigation and search.",
		Guideline: model.Guideline{
			Title:  "2.4.5 Multiple Ways",
			Anchor: "navigation-mechanisms-mult-loc",
		},
	}
}

// isSearchInput matches the common markup conventions for search boxes.
func isSearchInput(input *dom.Node) bool {
	if inputType, _ := input.GetAttribute("type"); inputType == "search" {
		return true
	}
	if id, _ := input.GetAttribute("id"); id == "search" || id == "s" {
		return true
	}
	if name, _ := input.GetAttribute("name"); name == "search" || name == "s" {
		return true
	}
	class, _ := input.GetAttribute("class")
	return strings.Contains(class, "search")
}

func isSearchForm(form *dom.Node) bool {
	if id, _ := form.GetAttribute("id"); id == "search" || id == "s" {
		return true
	}
	class, _ := form.GetAttribute("class")
	return strings.Contains(class, "search")
}

func (multipleWays) Run(_ context.Context, rep *Report, doc *dom.Document, _ Options) error {
	found := false
	for _, form := range doc.Find("form") {
		inputs := form.Find("input")
		if len(inputs) != 1 {
			continue
		}
		if isSearchInput(inputs[0]) || isSearchForm(form) {
			found = true
			break
		}
	}

	if !found {
		rep.Warn("missing_search_form",
			"No search form was detected on the page. It is recommended to provide such functionality.")
	}

	rep.Finish("A search form was successfully detected on the page.")
	return nil
}
