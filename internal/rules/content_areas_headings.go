package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// contentAreasHeadings checks that every content area (section, article,
// nav, aside, main) either starts with a heading or is the target of a
// skip link.
type contentAreasHeadings struct{}

func (contentAreasHeadings) Metadata() Metadata {
	return Metadata{
		Slug:        "structured_content_areas_headings",
		Title:       "Structured Content Areas: Headings",
		Description: "Different content areas, such as navigation, search or main content, should have section headings or be reachable through skip links.",
		Guideline: model.Guideline{
			Title:  "2.4.1 Bypass Blocks",
			Anchor: "navigation-mechanisms-skip",
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

// findSkipLinks collects the page's skip links: either every a.skip-link,
// or, lacking those, the leading run of fragment links at the top of the
// document.
func findSkipLinks(doc *dom.Document) []*dom.Node {
	if skipLinks := doc.Find("a.skip-link"); len(skipLinks) > 0 {
		return skipLinks
	}

	var skipLinks []*dom.Node
	for _, link := range doc.Find("a[href]") {
		href, _ := link.GetAttribute("href")
		if !strings.HasPrefix(href, "#") {
			break
		}
		skipLinks = append(skipLinks, link)
	}
	return skipLinks
}

func (contentAreasHeadings) Run(_ context.Context, rep *Report, doc *dom.Document, _ Options) error {
	areas := doc.Find("section,article,nav,aside,main")
	if len(areas) == 0 {
		rep.Skip("There are no sectioning content tags in the HTML code provided. Therefore this test was skipped.")
		rep.Finish("")
		return nil
	}

	skipLinks := findSkipLinks(doc)

	for _, area := range areas {
		if area.FindFirst("h1,h2,h3,h4,h5,h6") != nil {
			continue
		}

		id, _ := area.GetAttribute("id")
		linked := false
		if id != "" {
			for _, skipLink := range skipLinks {
				if href, _ := skipLink.GetAttribute("href"); href == "#"+id {
					linked = true
					break
				}
			}
		}
		if !linked {
			rep.ErrorSnippet("missing_heading_or_skip_link",
				fmt.Sprintf("The %s in line %d has neither a heading nor a skip link leading to it.", area.TagName(), area.LineNo()),
				"", area.LineNo())
		}
	}

	rep.Finish("All sectioning content tags in the HTML code have valid headings or skip links provided.")
	return nil
}
