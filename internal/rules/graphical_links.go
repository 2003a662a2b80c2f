package rules

import (
	"context"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// graphicalLinks checks that links consisting solely of an image carry an
// alternative text, either as aria-label on the link or alt on the image.
type graphicalLinks struct{}

func (graphicalLinks) Metadata() Metadata {
	return Metadata{
		Slug:        "graphical_ui_alternative_texts_links",
		Title:       "Alternative texts for graphical UI elements: Links",
		Description: "Graphical UI elements must have alternative texts. Alternative texts for linked graphics should describe the link target.",
		Guideline: model.Guideline{
			Title:  "1.1.1 Non-text Content",
			Anchor: "text-equiv",
		},
		Links: []model.Link{
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H30",
				Title:  "Providing link text that describes the purpose of a link for anchor elements",
			},
		},
	}
}

func (graphicalLinks) Run(_ context.Context, rep *Report, doc *dom.Document, _ Options) error {
	images := doc.Find("a > img")
	if len(images) == 0 {
		rep.Skip("There are no graphical links in the HTML code provided. Therefore this test was skipped.")
		rep.Finish("")
		return nil
	}

	found := false
	for _, image := range images {
		link := image.Parent()
		if link == nil || len(link.Children(true)) > 1 {
			// Links with additional content next to the image get their
			// accessible name from that content.
			continue
		}
		found = true

		ariaLabel, _ := link.GetAttribute("aria-label")
		alt, _ := image.GetAttribute("alt")
		if ariaLabel == "" && alt == "" {
			rep.ErrorAt(link, "missing_alternative_text",
				"The following graphical link is missing an alternative text:")
		}
	}

	if !found {
		rep.Skip("There are no graphical links in the HTML code provided. Therefore this test was skipped.")
	}

	rep.Finish("All graphical links in the HTML code have valid alternative texts provided.")
	return nil
}
