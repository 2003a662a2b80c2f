package rules

import (
	"context"
	"regexp"
	"strings"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// HTMLValidator reports markup issues for an HTML document. A nil or
// failing validator degrades the rule to doctype checking only.
type HTMLValidator interface {
	Validate(ctx context.Context, html string) ([]model.ValidationIssue, error)
}

// validHTML checks the document for a declared doctype and delegates
// markup validation to an external checker service.
type validHTML struct {
	validator HTMLValidator
}

// Issue categories owned by other rules are filtered out so a single
// problem is not reported twice.
var validatorSkipPatterns = []string{
	" role is unnecessary for element",
	" does not need a “role” attribute",
	" must have an “alt” attribute",
	" is missing required attribute “alt”",
	" document appears to be written in",
}

var issueCodeRe = regexp.MustCompile(`[^a-z0-9]+`)

// issueCode derives a stable message code from a validator message.
func issueCode(prefix, message string) string {
	code := issueCodeRe.ReplaceAllString(strings.ToLower(message), "_")
	return prefix + strings.Trim(code, "_")
}

func (validHTML) Metadata() Metadata {
	return Metadata{
		Slug:        "valid_html",
		Title:       "Valid HTML",
		Description: "HTML markup must be used correctly.",
		Guideline: model.Guideline{
			Title:  "4.1.1 Parsing",
			Anchor: "ensure-compat-parses",
		},
		Links: []model.Link{
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H74",
				Title:  "Ensuring that opening and closing tags are used according to specification",
			},
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H75",
				Title:  "Ensuring that Web pages are well-formed",
			},
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H88",
				Title:  "Using HTML according to spec",
			},
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H93",
				Title:  "Ensuring that id attributes are unique on a Web page",
			},
		},
	}
}

func skipIssue(message string) bool {
	for _, pattern := range validatorSkipPatterns {
		if strings.Contains(message, pattern) {
			return true
		}
	}
	return false
}

func (r validHTML) Run(ctx context.Context, rep *Report, doc *dom.Document, _ Options) error {
	if doc.DocumentType() == dom.DocTypeUnknown {
		rep.Error("error_missing_doctype", "No doctype has been declared for the page.")
		rep.Finish("")
		return nil
	}

	if r.validator != nil {
		// Validator failures degrade to no findings for this round.
		issues, err := r.validator.Validate(ctx, doc.OuterHTML())
		if err == nil {
			for _, issue := range issues {
				if skipIssue(issue.Message) {
					continue
				}
				switch {
				case issue.Type == "info" && issue.SubType == "warning":
					rep.WarnSnippet(issueCode("warning_", issue.Message), issue.Message, issue.Extract, issue.LastLine)
				case issue.Type == "error":
					rep.ErrorSnippet(issueCode("error_", issue.Message), issue.Message, issue.Extract, issue.LastLine)
				}
			}
		}
	}

	rep.Finish("No invalid usage of HTML code was detected.")
	return nil
}
