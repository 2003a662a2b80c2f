package rules

import (
	"context"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// uiComponentsRoles checks that anchors abused as interface components,
// recognizable by their href="#", declare a role attribute.
type uiComponentsRoles struct{}

func (uiComponentsRoles) Metadata() Metadata {
	return Metadata{
		Slug:        "ui_components_roles",
		Title:       "Proper Roles for UI Components",
		Description: "In case non-semantic elements are used as buttons or other interface components, they should have proper role attributes.",
		Guideline: model.Guideline{
			Title:  "4.1.2 Name, Role, Value",
			Anchor: "ensure-compat-rsv",
		},
		Links: []model.Link{
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H91",
				Title:  "Using HTML form controls and links",
			},
		},
	}
}

func (uiComponentsRoles) Run(_ context.Context, rep *Report, doc *dom.Document, _ Options) error {
	links := doc.Find(`a[href="#"]`)
	if len(links) == 0 {
		rep.Skip("There are no non-semantically used a tags in the HTML code provided. Therefore this test was skipped.")
		rep.Finish("")
		return nil
	}

	for _, link := range links {
		if role, _ := link.GetAttribute("role"); role == "" {
			rep.ErrorAt(link, "missing_role_attribute",
				"The following non-semantically used a tag is missing a role attribute:")
		}
	}

	rep.Finish("All non-semantically used a tags in the HTML code have valid role attributes provided.")
	return nil
}
