package rules

import (
	"context"
	"fmt"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// captchaAlternatives asks, per detected CAPTCHA, whether a non-image
// alternative exists, and reports an error when it does not.
type captchaAlternatives struct{}

func (captchaAlternatives) Metadata() Metadata {
	return Metadata{
		Slug:        "captcha_alternatives",
		Title:       "Alternatives for CAPTCHAs",
		Description: "Every image-based CAPTCHA should have a non-image-based alternative provided.",
		Guideline: model.Guideline{
			Title:  "1.1.1 Non-text Content",
			Anchor: "text-equiv-all",
		},
	}
}

func (captchaAlternatives) Run(_ context.Context, rep *Report, doc *dom.Document, opts Options) error {
	requested := make(map[string]bool)
	found := false

	for _, image := range doc.Find("img") {
		if !isCaptchaImage(image) {
			continue
		}
		found = true

		identifier, ok := image.GetAttribute("id")
		if !ok || identifier == "" {
			src, ok := image.GetAttribute("src")
			if !ok {
				continue
			}
			identifier = SanitizeSrc(src)
		}

		answer, answered := opts.Value(identifier + "_has_alternative")
		if !answered {
			if !requested[identifier] {
				requested[identifier] = true
				rep.Request(model.RequestData{
					Slug:        identifier + "_has_alternative",
					Type:        "select",
					Label:       "CAPTCHA Alternative",
					Description: fmt.Sprintf("Does the CAPTCHA in line %d have a non-image based alternative provided?", image.LineNo()),
					Options:     yesNoChoices(),
					Default:     "no",
				})
			}
			continue
		}
		if answer != "yes" {
			rep.ErrorAt(image, "error_missing_captcha_alternative",
				"The following CAPTCHA is missing a non-image based alternative:")
		}
	}

	if !found {
		rep.Skip("There are no CAPTCHAs in the HTML code provided. Therefore this test was skipped.")
	}

	rep.Finish("All CAPTCHAs in the HTML code have valid non-image alternatives provided.")
	return nil
}
