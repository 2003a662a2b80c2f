package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// altPlaceholders are alt texts that carry no information at all.
var altPlaceholders = map[string]bool{
	"spacer":      true,
	"placeholder": true,
	"empty":       true,
	"leer":        true,
}

// maxAltLength is the length above which an alt text should move to a
// longdesc document instead.
const maxAltLength = 80

// imagesAlternativeTexts checks alt attributes of content images.
// CAPTCHA images and images serving as object/embed fallback content are
// covered by their own rules and excluded here.
type imagesAlternativeTexts struct{}

func (imagesAlternativeTexts) Metadata() Metadata {
	return Metadata{
		Slug:        "images_alternative_texts",
		Title:       "Alternative texts for images",
		Description: "Informative images must have alternative texts that should (if possible) serve the same purpose as the image itself. Images that do not have an informative purpose, such as spacers or decorative images, do not require an alternative text, but should use an empty alt attribute.",
		Guideline: model.Guideline{
			Title:  "1.1.1 Non-text Content",
			Anchor: "text-equiv-all",
		},
		Links: []model.Link{
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H37",
				Title:  "Using alt attributes on img elements",
			},
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H67",
				Title:  "Using null alt text and no title attribute on img elements for images that AT should ignore",
			},
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H45",
				Title:  "Using longdesc",
			},
		},
	}
}

// isCaptchaImage reports whether class, id or src hint at a CAPTCHA.
func isCaptchaImage(image *dom.Node) bool {
	for _, attr := range []string{"class", "id", "src"} {
		if v, ok := image.GetAttribute(attr); ok && strings.Contains(strings.ToLower(v), "captcha") {
			return true
		}
	}
	return false
}

func (imagesAlternativeTexts) Run(_ context.Context, rep *Report, doc *dom.Document, opts Options) error {
	images := doc.Find("img")
	if len(images) == 0 {
		rep.Skip("There are no images in the HTML code provided. Therefore this test was skipped.")
		rep.Finish("")
		return nil
	}

	requested := make(map[string]bool)
	found := false

	for _, image := range images {
		if isCaptchaImage(image) {
			continue
		}
		if parent := image.Parent(); parent != nil {
			if tag := parent.TagName(); tag == "object" || tag == "embed" {
				// Fallback content of objects is handled by the objects rule.
				continue
			}
		}
		found = true

		alt, hasAlt := image.GetAttribute("alt")
		src, hasSrc := image.GetAttribute("src")

		switch {
		case !hasAlt:
			rep.ErrorAt(image, "missing_alt_attribute",
				"The following image is missing an alt attribute:")

		case alt == "":
			if !hasSrc {
				break
			}
			sanitized := SanitizeSrc(src)
			imageType, answered := opts.Value("image_type_" + sanitized)
			if !answered {
				if !requested[sanitized] {
					requested[sanitized] = true
					rep.Request(model.RequestData{
						Slug:        "image_type_" + sanitized,
						Type:        "select",
						Label:       "Image Type",
						Description: fmt.Sprintf("Choose whether the image %s is a purely decorative image or part of informative content.", rep.LinkSrc(src)),
						Options: []model.Choice{
							{Value: "content", Label: "Part of content"},
							{Value: "decorative", Label: "Decorative"},
						},
						Default: "content",
					})
				}
				break
			}
			if imageType == "content" {
				rep.ErrorAt(image, "empty_alt_attribute_for_content_image",
					"The following image has an empty alt attribute although it is informative: An empty alt attribute is only acceptable for non-informative images.")
			} else if title, _ := image.GetAttribute("title"); title != "" {
				rep.WarnAt(image, "title_attribute_on_decorative_image",
					"The following non-informative image uses the title attribute:")
			}

		default:
			if !hasSrc {
				break
			}
			if strings.Contains(src, alt) {
				rep.ErrorAt(image, "alt_attribute_part_of_src",
					"The following image seems to have an auto-generated alt attribute: Alternative texts should describe the image in clear human language.")
			} else if altPlaceholders[strings.TrimSpace(strings.ToLower(alt))] {
				rep.ErrorAt(image, "non_descriptive_alt_attribute",
					"The following image uses a non-descriptive alt attribute: Alternative texts should describe the image in clear human language, or be empty for decorative images.")
			} else if len(alt) > maxAltLength {
				rep.ErrorAt(image, "alt_attribute_too_long",
					"The following image uses a very long alt attribute: If a longer description is necessary for the image, the longdesc attribute should be used.")
			}
		}
	}

	if !found {
		rep.Skip("There are no images in the HTML code provided. Therefore this test was skipped.")
	}

	rep.Finish("All images in the HTML code have valid alt attributes provided.")
	return nil
}
