package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// dynamicContent checks that content toggled by buttons appears right
// after its trigger, so screen reader users do not lose their position
// when it is inserted.
type dynamicContent struct{}

// noControlledElements is the answer value for buttons that do not
// toggle any element.
const noControlledElements = "NONE"

func (dynamicContent) Metadata() Metadata {
	return Metadata{
		Slug:        "dynamically_inserted_content",
		Title:       "Dynamically inserted content",
		Description: "Content that is dynamically added (for example through AJAX) should appear at a relevant position in the page.",
		Guideline: model.Guideline{
			Title:  "1.3.2 Meaningful Sequence",
			Anchor: "content-structure-separation-sequence",
		},
		Links: []model.Link{
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/SCR21",
				Title:  "Using functions of the Document Object Model (DOM) to add content to a page",
			},
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/SCR26",
				Title:  "Inserting dynamic content into the Document Object Model immediately following its trigger element",
			},
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/SCR37",
				Title:  "Creating Custom Dialogs in a Device Independent Way",
			},
		},
	}
}

// splitTargetIDs parses a space separated id list, tolerating the
// selector style prefixes found in data-target attributes.
func splitTargetIDs(value string) []string {
	var ids []string
	for _, field := range strings.Fields(value) {
		field = strings.TrimLeft(field, "#.")
		if field != "" {
			ids = append(ids, field)
		}
	}
	return ids
}

// isElementFollowing reports whether the element with the given id is
// the button's next sibling, inside it, or in the same position one
// level up through the button's parent.
func isElementFollowing(button *dom.Node, elementID string) bool {
	next := button.NextElement()
	if next == nil {
		parent := button.Parent()
		if parent == nil {
			return false
		}
		next = parent.NextElement()
	}
	if next == nil {
		return false
	}
	if id, _ := next.GetAttribute("id"); id == elementID {
		return true
	}
	// The quoted attribute form keeps ids containing selector
	// metacharacters intact.
	return next.FindFirst(fmt.Sprintf(`[id="%s"]`, elementID)) != nil
}

func (dynamicContent) Run(_ context.Context, rep *Report, doc *dom.Document, opts Options) error {
	buttons := doc.Find("button")
	if len(buttons) == 0 {
		rep.Skip("No dynamic content was detected in the HTML code provided. Therefore this test was skipped.")
		rep.Finish("")
		return nil
	}

	found := false

	for _, button := range buttons {
		if buttonType, _ := button.GetAttribute("type"); buttonType == "submit" {
			continue
		}

		var elementIDs []string
		hasAriaControls := false
		if ariaControls, ok := button.GetAttribute("aria-controls"); ok && ariaControls != "" {
			hasAriaControls = true
			elementIDs = splitTargetIDs(ariaControls)
		} else if dataTarget, ok := button.GetAttribute("data-target"); ok && dataTarget != "" {
			elementIDs = splitTargetIDs(dataTarget)
		} else {
			identifier := NodeIdentifier(button)
			questionSlug := "button_controlled_ids_" + identifier
			answer, answered := opts.Value(questionSlug)
			if answered {
				if strings.TrimSpace(answer) != noControlledElements {
					elementIDs = splitTargetIDs(answer)
				}
			} else {
				rep.Request(model.RequestData{
					Slug:        questionSlug,
					Type:        "text",
					Label:       "Controlled Elements",
					Description: fmt.Sprintf("If the button in line %d controls one or more specific elements, provide the element IDs, separated by a space. If the button is used for something else, enter \"NONE\".", button.LineNo()),
					Default:     noControlledElements,
				})
			}
		}

		if len(elementIDs) == 0 {
			continue
		}

		found = true

		if !hasAriaControls {
			rep.WarnAt(button, "missing_aria_controls",
				"The following button toggles content but does not declare it through an aria-controls attribute:")
		}

		for _, elementID := range elementIDs {
			element := doc.FindFirst(fmt.Sprintf(`[id="%s"]`, elementID))
			if element == nil {
				rep.ErrorAt(button, "controlled_element_missing",
					fmt.Sprintf("The element with the ID %s does not exist although it is controlled by the following button:", elementID))
				continue
			}
			if isElementFollowing(button, elementID) {
				continue
			}

			identifier := NodeIdentifier(button)
			questionSlug := "valid_focus_change_" + identifier + "_for_id_" + elementID
			answer, answered := opts.Value(questionSlug)
			if !answered {
				rep.Request(model.RequestData{
					Slug:        questionSlug,
					Type:        "select",
					Label:       "Focus Change",
					Description: fmt.Sprintf("Is the focus for the element with ID %s adjusted accordingly when it is toggled by the button in line %d?", elementID, button.LineNo()),
					Options:     yesNoChoices(),
					Default:     "no",
				})
				continue
			}
			if answer == "no" {
				rep.ErrorAt(button, "invalid_focus_change",
					fmt.Sprintf("The focus for the element with ID %s is not adjusted accordingly when it is toggled by the following button:", elementID))
			}
		}
	}

	if !found {
		rep.Skip("No dynamic content was detected in the HTML code provided. Therefore this test was skipped.")
		rep.Finish("")
		return nil
	}

	rep.Finish("All detected dynamic content is added properly.")
	return nil
}
