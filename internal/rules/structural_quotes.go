package rules

import (
	"context"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// structuralQuotes checks that stand-alone quotes use blockquote markup.
// Whether the page contains such quotes at all cannot be derived from
// markup that lacks them, so the rule asks.
type structuralQuotes struct{}

func (structuralQuotes) Metadata() Metadata {
	return Metadata{
		Slug:        "structural_quotes",
		Title:       "Structural elements for quotes",
		Description: "Quotes that are their own paragraph should be marked with the structural HTML element blockquote.",
		Guideline: model.Guideline{
			Title:  "1.3.1 Info and Relationships",
			Anchor: "content-structure-separation-programmatic",
		},
		Links: []model.Link{
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H49",
				Title:  "Using semantic markup to mark emphasized or special text",
			},
		},
	}
}

func (structuralQuotes) Run(_ context.Context, rep *Report, doc *dom.Document, opts Options) error {
	if len(doc.Find("blockquote")) == 0 {
		answer, answered := opts.Value("has_blockquotes")
		switch {
		case !answered:
			rep.Request(model.RequestData{
				Slug:        "has_blockquotes",
				Type:        "select",
				Label:       "Quotes available",
				Description: "Specify whether the page contains quotes which are their own paragraph.",
				Options:     yesNoChoices(),
				Default:     "yes",
			})
		case answer == "yes":
			rep.Error("error_missing_blockquote_markup_for_quotes",
				"The page contains blockquotes that do not use proper blockquote markup.")
		default:
			rep.Skip("There are no blockquotes in the HTML code provided. Therefore this test was skipped.")
			rep.Finish("")
			return nil
		}
	}

	rep.Finish("All quotes in the HTML code use proper blockquote markup.")
	return nil
}
