package rules

import (
	"context"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// structuralLists checks that lists use proper list markup. With no list
// elements present the rule asks whether the page visually contains
// lists; menus with more than three links must use list markup either
// way.
type structuralLists struct{}

func (structuralLists) Metadata() Metadata {
	return Metadata{
		Slug:        "structural_lists",
		Title:       "Structural elements for lists",
		Description: "Valid list markup, such as ul, ol and dl, should be used for lists on the page.",
		Guideline: model.Guideline{
			Title:  "1.3.1 Info and Relationships",
			Anchor: "content-structure-separation-programmatic",
		},
		Links: []model.Link{
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H48",
				Title:  "Using ol, ul and dl for lists or groups of links",
			},
		},
	}
}

func (structuralLists) Run(_ context.Context, rep *Report, doc *dom.Document, opts Options) error {
	lists := doc.Find("ul,ol,dl")
	navs := doc.Find("nav")

	if len(lists) == 0 {
		hasLists, answered := opts.Value("has_lists")
		switch {
		case !answered:
			rep.Request(model.RequestData{
				Slug:        "has_lists",
				Type:        "select",
				Label:       "Lists available",
				Description: "Specify whether the page contains lists.",
				Options:     yesNoChoices(),
				Default:     "yes",
			})
		case hasLists == "yes":
			rep.Error("missing_list_markup_for_lists",
				"The page contains lists that do not use proper list markup.")
		case len(navs) == 0:
			rep.Skip("There are no lists in the HTML code provided. Therefore this test was skipped.")
			rep.Finish("")
			return nil
		}
	}

	for _, nav := range navs {
		if len(nav.Find("a")) > 3 && nav.FindFirst("ul,ol") == nil {
			rep.ErrorAt(nav, "missing_list_markup_for_menu",
				"The following menu does not use list markup although it contains more than three links:")
		}
	}

	rep.Finish("All lists in the HTML code use proper list markup.")
	return nil
}
