package rules

import (
	"context"
	"strings"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// captchasAlternativeTexts checks that image-based CAPTCHAs carry an alt
// text that actually helps, rather than just naming the CAPTCHA.
type captchasAlternativeTexts struct{}

func (captchasAlternativeTexts) Metadata() Metadata {
	return Metadata{
		Slug:        "captchas_alternative_texts",
		Title:       "Alternative texts for CAPTCHAs",
		Description: "For image-based CAPTCHAs, the alternative text should describe the purpose of the CAPTCHA and where to find a non-image-based alternative.",
		Guideline: model.Guideline{
			Title:  "1.1.1 Non-text Content",
			Anchor: "text-equiv-all",
		},
	}
}

func (captchasAlternativeTexts) Run(_ context.Context, rep *Report, doc *dom.Document, _ Options) error {
	found := false
	for _, image := range doc.Find("img") {
		if !isCaptchaImage(image) {
			continue
		}
		found = true

		alt, _ := image.GetAttribute("alt")
		if alt == "" {
			rep.ErrorAt(image, "error_missing_alternative_text",
				"The following CAPTCHA is missing an alternative text:")
		} else if strings.ToLower(alt) == "captcha" {
			rep.ErrorAt(image, "error_non_descriptive_alternative_text",
				"The following CAPTCHA does not have a helpful alternative text:")
		}
	}

	if !found {
		rep.Skip("There are no CAPTCHAs in the HTML code provided. Therefore this test was skipped.")
	}

	rep.Finish("All CAPTCHAs in the HTML code have valid alt attributes provided.")
	return nil
}
