package rules

import (
	"context"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// Metadata describes a rule independently of any run.
type Metadata struct {
	// Slug is the stable rule identifier, also used to namespace the
	// option keys its answers are stored under.
	Slug string

	// Title is the short human-readable rule name.
	Title string

	// Description explains what the rule checks.
	Description string

	// Guideline is the WCAG guideline the rule belongs to.
	Guideline model.Guideline

	// Links are documentation references shown with the result.
	Links []model.Link
}

// Rule is a single accessibility rule.
//
// Run inspects the document and records findings, questions and the final
// verdict on the report. Implementations must end with rep.Finish. The
// returned error is reserved for infrastructure failures; a document that
// merely violates the rule is reported through the result, not the error.
type Rule interface {
	Metadata() Metadata
	Run(ctx context.Context, rep *Report, doc *dom.Document, opts Options) error
}

// Evaluate runs a single rule against a document and returns its result.
// baseURL is the URL the check was created from, used to resolve relative
// resource addresses in messages; it is empty for raw HTML checks.
func Evaluate(ctx context.Context, r Rule, checkID int64, baseURL string, doc *dom.Document, optionValues map[string]string) (*model.Result, error) {
	rep := NewReport(checkID, baseURL, r.Metadata())
	opts := NewOptions(r.Metadata().Slug, optionValues)
	if err := r.Run(ctx, rep, doc, opts); err != nil {
		return nil, err
	}
	return rep.Result(), nil
}
