package rules

import (
	"context"
	"strings"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// organizedContent checks for presentational markup abuse: double br tags
// instead of paragraphs, b/i instead of strong/em, and radio or checkbox
// groups without a fieldset.
type organizedContent struct{}

func (organizedContent) Metadata() Metadata {
	return Metadata{
		Slug:        "organized_content",
		Title:       "Organized Content",
		Description: "Paragraphs and groups of form controls must be marked by appropriate structural HTML elements. To highlight parts of text, strong or em must be used.",
		Guideline: model.Guideline{
			Title:  "1.3.1 Info and Relationships",
			Anchor: "content-structure-separation-programmatic",
		},
		Links: []model.Link{
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H49",
				Title:  "Using semantic markup to mark emphasized or special text",
			},
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H71",
				Title:  "Providing a description for groups of form controls using fieldset and legend elements",
			},
		},
	}
}

// isIconFont reports whether the element's class list contains one of the
// configured icon font class prefixes.
func isIconFont(n *dom.Node, prefixes []string) bool {
	classes, _ := n.GetAttribute("class")
	if classes == "" {
		return false
	}
	for _, prefix := range prefixes {
		if strings.Contains(classes, prefix) {
			return true
		}
	}
	return false
}

// groupControls buckets form controls by their parent's location path,
// unwrapping a label parent first so controls wrapped in individual
// labels still land in the same group.
func groupControls(controls []*dom.Node) (order []string, groups map[string][]*dom.Node) {
	groups = make(map[string][]*dom.Node)
	for _, control := range controls {
		parent := control.Parent()
		if parent == nil {
			continue
		}
		if parent.TagName() == "label" && parent.Parent() != nil {
			parent = parent.Parent()
		}
		group := parent.Path()
		if _, ok := groups[group]; !ok {
			order = append(order, group)
		}
		groups[group] = append(groups[group], control)
	}
	return order, groups
}

// reportUngroupedControls emits one finding per multi-control group.
func reportUngroupedControls(rep *Report, order []string, groups map[string][]*dom.Node, code, text string) {
	for _, key := range order {
		group := groups[key]
		if len(group) <= 1 {
			continue
		}
		var snippets []string
		for _, item := range group {
			snippets = append(snippets, item.OuterHTML())
		}
		rep.ErrorSnippet(code, text, strings.Join(snippets, "\n"), group[0].LineNo())
	}
}

func (organizedContent) Run(_ context.Context, rep *Report, doc *dom.Document, opts Options) error {
	for _, lastBreak := range doc.Find("br") {
		firstBreak := lastBreak.Prev()
		if firstBreak == nil || firstBreak.TagName() != "br" {
			continue
		}
		rep.ErrorSnippet("misuse_of_br_tag",
			"Actual paragraph markup must be used instead of the following occurrence of two br tags:",
			firstBreak.OuterHTML()+lastBreak.OuterHTML(), firstBreak.LineNo())
	}

	for _, bold := range doc.Find("b") {
		rep.ErrorAt(bold, "misuse_of_b_tag",
			"The following content is highlighted using the old b tag and thus should use strong instead:")
	}

	iconfontPrefixes := opts.GlobalFields("iconfont")
	for _, italic := range doc.Find("i") {
		// aria-hidden or empty i tags are almost certainly icons.
		if italic.HasAttribute("aria-hidden") {
			continue
		}
		if strings.TrimSpace(italic.Text()) == "" {
			continue
		}
		if isIconFont(italic, iconfontPrefixes) {
			continue
		}
		rep.ErrorAt(italic, "misuse_of_i_tag",
			"The following content is highlighted using the old i tag and thus should use em instead:")
	}

	for _, form := range doc.Find("form") {
		if len(form.Find("fieldset")) > 0 {
			continue
		}

		order, groups := groupControls(form.Find(`input[type="radio"]`))
		reportUngroupedControls(rep, order, groups, "missing_fieldset_for_radio_group",
			"The following set of radio buttons should be properly grouped using fieldset:")

		order, groups = groupControls(form.Find(`input[type="checkbox"]`))
		reportUngroupedControls(rep, order, groups, "missing_fieldset_for_checkbox_group",
			"The following set of checkboxes should be properly grouped using fieldset:")
	}

	rep.Finish("No invalid usages of tags or lack of structure have been found.")
	return nil
}
