package rules

import (
	"context"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// graphicalImageMaps checks that every area of an image map has an
// alternative text.
type graphicalImageMaps struct{}

func (graphicalImageMaps) Metadata() Metadata {
	return Metadata{
		Slug:        "graphical_ui_alternative_texts_image_maps",
		Title:       "Alternative texts for graphical UI elements: Image Maps",
		Description: "Graphical UI elements must have alternative texts. All the area tags of image maps need to provide helpful alternative texts.",
		Guideline: model.Guideline{
			Title:  "1.1.1 Non-text Content",
			Anchor: "text-equiv-all",
		},
		Links: []model.Link{
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H24",
				Title:  "Providing text alternatives for the area elements of image maps",
			},
		},
	}
}

func (graphicalImageMaps) Run(_ context.Context, rep *Report, doc *dom.Document, _ Options) error {
	areas := doc.Find("map area")
	if len(areas) == 0 {
		rep.Skip("There are no image maps in the HTML code provided. Therefore this test was skipped.")
		rep.Finish("")
		return nil
	}

	for _, area := range areas {
		if alt, _ := area.GetAttribute("alt"); alt == "" {
			rep.ErrorAt(area, "missing_alternative_text",
				"The following area tag of an image map is missing an alternative text:")
		}
	}

	rep.Finish("All image maps in the HTML code have valid alternative texts provided.")
	return nil
}
