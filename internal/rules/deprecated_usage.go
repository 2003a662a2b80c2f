package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// deprecatedUsage scans for tags and attributes deprecated since
// HTML 4.01 or never part of any specification.
type deprecatedUsage struct{}

var deprecatedTags = []string{
	"applet", "basefont", "blink", "center", "dir", "font",
	"isindex", "marqee", "menu", "s", "strike", "u",
}

var deprecatedAttributes = []string{
	"alink", "background", "bgcolor", "clear", "compact", "hspace",
	"language", "link", "noshade", "nowrap", "prompt", "start",
	"text", "version", "vlink", "vspace",
}

// Attributes that are deprecated only in combination with these tags.
var deprecatedAttributeTags = []struct {
	attribute string
	tags      []string
}{
	{"border", []string{"img", "object"}},
	{"height", []string{"th", "td"}},
	{"size", []string{"hr"}},
	{"type", []string{"li", "ol", "ul"}},
	{"value", []string{"li"}},
	{"width", []string{"hr", "th", "td", "pre"}},
}

// Attributes that are deprecated everywhere except on these tags.
var deprecatedAttributeExceptions = []struct {
	attribute string
	tags      []string
}{
	{"align", []string{"col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr"}},
}

func (deprecatedUsage) Metadata() Metadata {
	return Metadata{
		Slug:        "deprecated_usage",
		Title:       "Avoiding Usage of Deprecated Elements and Attributes",
		Description: "Elements and attributes that have been deprecated since HTML 4.01 or have never been part of any specification must not be used.",
		Guideline: model.Guideline{
			Title:  "4.1.1 Parsing",
			Anchor: "ensure-compat-parses",
		},
		Links: []model.Link{
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H88",
				Title:  "Using HTML according to spec",
			},
		},
	}
}

func (deprecatedUsage) Run(_ context.Context, rep *Report, doc *dom.Document, _ Options) error {
	for _, element := range doc.Find(strings.Join(deprecatedTags, ",")) {
		rep.Error("deprecated_tag",
			fmt.Sprintf("The deprecated tag %s is used in line %d.", element.TagName(), element.LineNo()))
	}

	for _, attribute := range deprecatedAttributes {
		for _, element := range doc.Find("[" + attribute + "]") {
			rep.Error("deprecated_attribute",
				fmt.Sprintf("The deprecated attribute %s is used in line %d.", attribute, element.LineNo()))
		}
	}

	for _, entry := range deprecatedAttributeTags {
		var selectors []string
		for _, tag := range entry.tags {
			selectors = append(selectors, tag+"["+entry.attribute+"]")
		}
		for _, element := range doc.Find(strings.Join(selectors, ",")) {
			rep.Error("deprecated_attribute_with_tag",
				fmt.Sprintf("The attribute %s is deprecated with the tag %s, but used that way in line %d.", entry.attribute, element.TagName(), element.LineNo()))
		}
	}

	for _, entry := range deprecatedAttributeExceptions {
		for _, element := range doc.Find("[" + entry.attribute + "]") {
			allowed := false
			for _, tag := range entry.tags {
				if element.TagName() == tag {
					allowed = true
					break
				}
			}
			if !allowed {
				rep.Error("deprecated_attribute_with_tag",
					fmt.Sprintf("The attribute %s is deprecated with the tag %s, but used that way in line %d.", entry.attribute, element.TagName(), element.LineNo()))
			}
		}
	}

	rep.Finish("No usage of deprecated tags or attributes was found.")
	return nil
}
