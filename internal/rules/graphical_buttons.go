package rules

import (
	"context"
	"strings"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// graphicalButtons checks that image buttons carry a meaningful alt text.
type graphicalButtons struct{}

func (graphicalButtons) Metadata() Metadata {
	return Metadata{
		Slug:        "graphical_ui_alternative_texts_buttons",
		Title:       "Alternative texts for graphical UI elements: Buttons",
		Description: "Graphical UI elements must have alternative texts. Alternative texts for buttons should describe the action they trigger.",
		Guideline: model.Guideline{
			Title:  "1.1.1 Non-text Content",
			Anchor: "text-equiv-all",
		},
		Links: []model.Link{
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H36",
				Title:  "Using alt attributes on images used as submit buttons",
			},
		},
	}
}

func (graphicalButtons) Run(_ context.Context, rep *Report, doc *dom.Document, _ Options) error {
	buttons := doc.Find(`input[type="image"]`)
	if len(buttons) == 0 {
		rep.Skip("There are no graphical buttons in the HTML code provided. Therefore this test was skipped.")
		rep.Finish("")
		return nil
	}

	for _, button := range buttons {
		alt, _ := button.GetAttribute("alt")
		if alt == "" {
			rep.ErrorAt(button, "missing_alternative_text",
				"The following graphical button is missing an alternative text:")
			continue
		}
		if src, ok := button.GetAttribute("src"); ok && strings.Contains(src, alt) {
			rep.ErrorAt(button, "alt_attribute_part_of_src",
				"The following graphical button seems to have an auto-generated alt attribute: Alt attributes should describe the image in clear human language.")
		}
	}

	rep.Finish("All graphical buttons in the HTML code have valid alternative texts provided.")
	return nil
}
