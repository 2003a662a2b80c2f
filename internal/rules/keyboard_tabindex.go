package rules

import (
	"context"
	"strconv"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// keyboardTabindex checks tabindex attributes: positive values break
// the natural tab order, -1 removes the element from it entirely.
type keyboardTabindex struct{}

func (keyboardTabindex) Metadata() Metadata {
	return Metadata{
		Slug:        "keyboard_controls_tabindex",
		Title:       "Keyboard Accessible: Tabindex",
		Description: "The website should also be accessible when using only the keyboard.",
		Guideline: model.Guideline{
			Title:  "2.1.1 Keyboard",
			Anchor: "keyboard-operation-keyboard-operable",
		},
	}
}

func (keyboardTabindex) Run(_ context.Context, rep *Report, doc *dom.Document, _ Options) error {
	elements := doc.Find("[tabindex]")
	if len(elements) == 0 {
		rep.Skip("There are no tags with tabindex attributes in the HTML code provided. Therefore this test was skipped.")
		rep.Finish("")
		return nil
	}

	for _, element := range elements {
		raw, _ := element.GetAttribute("tabindex")
		value, _ := strconv.Atoi(raw)
		switch {
		case value > 0:
			rep.ErrorAt(element, "tabindex_greater_than_0",
				"The tabindex attribute of the following element is greater than 0:")
		case value == -1:
			rep.WarnAt(element, "tabindex_minus_1",
				"The tabindex attribute of the following element is set to -1, thus can only reached via JavaScript:")
		}
	}

	rep.Finish("All tags with tabindex attributes in the HTML code use non-problematic values.")
	return nil
}
