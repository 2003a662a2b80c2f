package rules

import (
	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// Success and skip message codes shared by all rules.
const (
	codeSuccess = "success"
	codeSkipped = "skipped"
)

// Report collects the findings of a single rule run and derives the final
// verdict in Finish.
type Report struct {
	result   *model.Result
	baseURL  string
	errors   int
	warnings int
	skipped  bool
	finished bool
}

// NewReport creates a report for one rule run, stamping the rule metadata
// onto the result so it stays meaningful after catalog changes. baseURL
// is the URL the check was created from, or empty for raw HTML checks.
func NewReport(checkID int64, baseURL string, meta Metadata) *Report {
	return &Report{
		baseURL: baseURL,
		result: &model.Result{
			TestSlug:        meta.Slug,
			TestTitle:       meta.Title,
			TestDescription: meta.Description,
			Guideline:       meta.Guideline,
			Links:           meta.Links,
			CheckID:         checkID,
			Type:            model.ResultTypeError,
		},
	}
}

func (r *Report) add(text, code, snippet string, line int) {
	r.result.Messages = append(r.result.Messages, model.Message{
		Text: text,
		Code: snippet,
		Line: line,
	})
	r.result.MessageCodes = append(r.result.MessageCodes, code)
}

// Error records a finding that violates the guideline, without a source
// anchor.
func (r *Report) Error(code, text string) {
	r.errors++
	r.add(text, code, "", 0)
}

// ErrorAt records a violation anchored to a node's markup and line.
func (r *Report) ErrorAt(n *dom.Node, code, text string) {
	r.errors++
	r.add(text, code, n.OuterHTML(), n.LineNo())
}

// ErrorSnippet records a violation with an explicit snippet and line.
func (r *Report) ErrorSnippet(code, text, snippet string, line int) {
	r.errors++
	r.add(text, code, snippet, line)
}

// Warn records a finding worth reviewing that is not a clear violation.
func (r *Report) Warn(code, text string) {
	r.warnings++
	r.add(text, code, "", 0)
}

// WarnAt records a warning anchored to a node's markup and line.
func (r *Report) WarnAt(n *dom.Node, code, text string) {
	r.warnings++
	r.add(text, code, n.OuterHTML(), n.LineNo())
}

// WarnSnippet records a warning with an explicit snippet and line.
func (r *Report) WarnSnippet(code, text, snippet string, line int) {
	r.warnings++
	r.add(text, code, snippet, line)
}

// Skip marks the run as not applicable, with an explanatory message.
// Findings recorded before or after are ignored by Finish.
func (r *Report) Skip(text string) {
	r.skipped = true
	r.add(text, codeSkipped, "", 0)
}

// LinkSrc formats a src value for a message or question: the short file
// name, followed by the address it resolves to when the check was
// created from a URL.
func (r *Report) LinkSrc(src string) string {
	short := DisplaySrc(src)
	resolved := ResolveSrc(src, r.baseURL)
	if resolved == src || resolved == short {
		return short
	}
	return short + " (" + resolved + ")"
}

// Request records a question the rule needs answered before it can reach
// a verdict.
func (r *Report) Request(req model.RequestData) {
	r.result.RequestData = append(r.result.RequestData, req)
}

// Finish derives the verdict and returns the result.
//
// Open questions dominate everything: a result with requests is
// informational only and carries no messages, because partial findings
// would be misleading while answers are outstanding. Otherwise skipped
// beats errors beats warnings; with no findings at all the run is a
// success carrying the given message.
func (r *Report) Finish(successText string) *model.Result {
	r.finished = true
	res := r.result

	if len(res.RequestData) > 0 {
		res.Type = model.ResultTypeInfo
		res.Messages = nil
		res.MessageCodes = nil
		return res
	}

	switch {
	case r.skipped:
		res.Type = model.ResultTypeSkipped
	case r.errors > 0:
		res.Type = model.ResultTypeError
	case r.warnings > 0:
		res.Type = model.ResultTypeWarning
	default:
		res.Type = model.ResultTypeSuccess
		r.add(successText, codeSuccess, "", 0)
	}
	return res
}

// Result returns the finished result. It panics when called before
// Finish, which indicates a rule that forgot its final verdict.
func (r *Report) Result() *model.Result {
	if !r.finished {
		panic("rules: Report.Result called before Finish")
	}
	return r.result
}
