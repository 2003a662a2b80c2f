package rules

import (
	"context"
	"strings"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// objectsAlternativeTexts checks that embedded objects provide alternative
// content, and that an image serving as the sole alternative carries a
// usable alt text itself.
type objectsAlternativeTexts struct{}

func (objectsAlternativeTexts) Metadata() Metadata {
	return Metadata{
		Slug:        "objects_alternative_texts",
		Title:       "Alternative texts for objects",
		Description: "Embedded multimedia objects should have alternative content. If using an alternative text, it should at least provide a description of the content.",
		Guideline: model.Guideline{
			Title:  "1.1.1 Non-text Content",
			Anchor: "text-equiv-all",
		},
		Links: []model.Link{
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H53",
				Title:  "Using the body of the object element",
			},
		},
	}
}

func (objectsAlternativeTexts) Run(_ context.Context, rep *Report, doc *dom.Document, _ Options) error {
	objects := doc.Find("object,embed")
	if len(objects) == 0 {
		rep.Skip("There are no objects in the HTML code provided. Therefore this test was skipped.")
		rep.Finish("")
		return nil
	}

	for _, object := range objects {
		children := object.Children(true)
		if len(children) == 0 {
			rep.ErrorAt(object, "missing_alternative_content",
				"The following object does not have any alternative content:")
			continue
		}
		if len(children) != 1 || children[0].IsTextNode() {
			continue
		}
		alternative := children[0]
		switch alternative.TagName() {
		case "object", "embed", "":
			continue
		case "img":
			alt, _ := alternative.GetAttribute("alt")
			if alt == "" {
				rep.ErrorAt(object, "missing_alternative_image_alt",
					"The following object uses an image as alternative content which however does not provide an alternative text itself:")
				continue
			}
			if src, ok := alternative.GetAttribute("src"); ok {
				if strings.Contains(src, alt) {
					rep.ErrorAt(object, "alternative_image_alt_part_of_src",
						"The following object uses an image as alternative which itself seems to have an auto-generated alt attribute:")
				} else if len(alt) > maxAltLength {
					rep.ErrorAt(object, "alternative_image_alt_too_long",
						"The following object uses an image as alternative which itself uses a very long alt attribute:")
				}
			}
		}
	}

	rep.Finish("All objects in the HTML code have valid alternatives provided.")
	return nil
}
