package report

import (
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// Audit bundles one check with the rule results persisted for it.
// It is the unit all writers render.
type Audit struct {
	// Check is the audited document.
	Check *model.Check `json:"check"`

	// Results are the persisted rule results in catalog order.
	Results []*model.Result `json:"results"`
}

// NewAudit creates an Audit for a check and its results.
func NewAudit(check *model.Check, results []*model.Result) *Audit {
	return &Audit{Check: check, Results: results}
}

// CountByType returns how many results carry the given verdict.
func (a *Audit) CountByType(t model.ResultType) int {
	count := 0
	for _, r := range a.Results {
		if r.Type == t {
			count++
		}
	}
	return count
}

// ResultsByType returns the results carrying the given verdict, in
// catalog order.
func (a *Audit) ResultsByType(t model.ResultType) []*model.Result {
	var filtered []*model.Result
	for _, r := range a.Results {
		if r.Type == t {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// HasProblems reports whether any result is an error or a warning.
func (a *Audit) HasProblems() bool {
	return a.CountByType(model.ResultTypeError) > 0 || a.CountByType(model.ResultTypeWarning) > 0
}

// Subject returns the check's URL, or its title when the check was
// created from raw HTML.
func (a *Audit) Subject() string {
	if a.Check.URL != "" {
		return a.Check.URL
	}
	return a.Check.Title
}
