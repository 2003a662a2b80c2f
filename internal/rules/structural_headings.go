package rules

import (
	"context"
	"strings"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// headingGroupAncestors are the elements that start a new heading scope.
var headingGroupAncestors = map[string]bool{
	"body": true, "main": true, "blockquote": true, "figure": true,
	"td": true, "details": true, "dialog": true, "fieldset": true,
	"section": true, "article": true, "nav": true, "aside": true,
}

// structuralHeadings checks the heading outline: headings must exist, may
// not skip levels downwards within a scope, and a page with several
// content areas should use more than one h1.
type structuralHeadings struct{}

func (structuralHeadings) Metadata() Metadata {
	return Metadata{
		Slug:        "structural_headings",
		Title:       "Structural elements for headings",
		Description: "Headings must be marked through the structural HTML elements h1 to h6 and provide a quick overview of the page contents.",
		Guideline: model.Guideline{
			Title:  "1.3.1 Info and Relationships",
			Anchor: "content-structure-separation-programmatic",
		},
		Links: []model.Link{
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H42",
				Title:  "Using h1-h6 to identify headings",
			},
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H69",
				Title:  "Providing heading elements at the beginning of each section of content",
			},
		},
	}
}

// headingsNestedIncorrectly checks a heading sequence for skipped levels
// on the way down. It returns a per-line "tag: text" snippet of the whole
// group when a skip was found, or "".
func headingsNestedIncorrectly(headings []*dom.Node) string {
	var lines []string
	prev := 0
	incorrect := false

	for _, heading := range headings {
		tag := heading.TagName()
		lines = append(lines, tag+": "+strings.TrimSpace(heading.Text()))

		level := int(tag[1] - '0')
		if !incorrect && prev != 0 && prev < level && level-prev != 1 {
			incorrect = true
		}
		prev = level
	}

	if incorrect {
		return strings.Join(lines, "\n")
	}
	return ""
}

// nextAncestor climbs to the nearest ancestor whose tag is in the set.
func nextAncestor(n *dom.Node, tags map[string]bool) *dom.Node {
	for parent := n.Parent(); parent != nil; parent = parent.Parent() {
		if tags[parent.TagName()] {
			return parent
		}
	}
	return nil
}

func (structuralHeadings) Run(_ context.Context, rep *Report, doc *dom.Document, _ Options) error {
	headings := doc.Find("h1,h2,h3,h4,h5,h6")
	if len(headings) == 0 {
		rep.Warn("no_headings_in_content",
			"There are no headings in the HTML code provided. Headings should be used to give your page an easily understandable structure.")
		rep.Finish("")
		return nil
	}

	sectioning := doc.Find("section,article,nav,aside")
	if len(sectioning) == 0 {
		// No sectioning content: the whole page shares one outline.
		if wrong := headingsNestedIncorrectly(headings); wrong != "" {
			rep.WarnSnippet("headings_nested_incorrectly_no_sectioning_content",
				"The following headings are nested incorrectly:", wrong, 0)
		}
	} else {
		h1Count := 0
		groupOrder := []string{}
		groups := make(map[string][]*dom.Node)

		for _, heading := range headings {
			group := "global"
			if ancestor := nextAncestor(heading, headingGroupAncestors); ancestor != nil {
				group = ancestor.Path()
			}
			if _, ok := groups[group]; !ok {
				groupOrder = append(groupOrder, group)
			}
			groups[group] = append(groups[group], heading)

			if heading.TagName() == "h1" {
				h1Count++
			}
		}

		for _, group := range groupOrder {
			if wrong := headingsNestedIncorrectly(groups[group]); wrong != "" {
				rep.WarnSnippet("headings_nested_incorrectly_sectioning_content",
					"The following headings are nested incorrectly:", wrong, 0)
			}
		}

		if h1Count <= 1 {
			articles := doc.Find("article")
			if len(articles) >= 2 || len(sectioning) > 3 {
				rep.Error("single_h1_only",
					"There is only one h1 heading in the entire page although it contains several separate areas of content.")
			}
		}
	}

	rep.Finish("The heading structure and resulting document outline of the HTML code appears to be correct.")
	return nil
}
