package rules

import (
	"context"
	"fmt"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// formControlLabels checks that every visible form control is connected
// to a label element or carries a title attribute, and that the label
// precedes the control in the source.
type formControlLabels struct{}

func (formControlLabels) Metadata() Metadata {
	return Metadata{
		Slug:        "form_control_labels",
		Title:       "Form Control Labels",
		Description: "Labels for form controls must be properly connected to and displayed before their respective control.",
		Guideline: model.Guideline{
			Title:  "3.3.2 Labels or Instructions",
			Anchor: "minimize-error-cues",
		},
		Links: []model.Link{
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H44",
				Title:  "Using label elements to associate text labels with form controls",
			},
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H65",
				Title:  "Using the title attribute to identify form controls when the label element cannot be used",
			},
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H71",
				Title:  "Providing a description for groups of form controls using fieldset and legend elements",
			},
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H90",
				Title:  "Indicating required form controls using label or legend",
			},
		},
	}
}

func (formControlLabels) Run(_ context.Context, rep *Report, doc *dom.Document, _ Options) error {
	controls := doc.Find("select,input")

	found := false
	for _, control := range controls {
		inputType, _ := control.GetAttribute("type")
		if control.TagName() == "input" && inputType == "hidden" {
			continue
		}
		found = true

		var label *dom.Node
		if id, _ := control.GetAttribute("id"); id != "" {
			label = doc.FindFirst(fmt.Sprintf(`label[for="%s"]`, id))
		}

		if label == nil {
			if title, _ := control.GetAttribute("title"); title == "" {
				rep.ErrorAt(control, "missing_label",
					"The following form control neither is connected to a label element nor provides a title attribute:")
			}
			continue
		}

		// Labels for radio buttons and checkboxes conventionally follow
		// the control, so the position check only applies to the rest.
		if control.TagName() == "input" && (inputType == "radio" || inputType == "checkbox") {
			continue
		}
		if label.LineNo() > control.LineNo() {
			rep.ErrorAt(control, "label_position_after_control",
				"The label element for the following form control is incorrectly positioned after it:")
		}
	}

	if !found {
		rep.Skip("There are no form controls in the HTML code provided. Therefore this test was skipped.")
		rep.Finish("")
		return nil
	}

	rep.Finish("All form controls in the HTML code have valid labels provided.")
	return nil
}
