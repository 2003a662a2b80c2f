package model

// ResultType classifies the verdict of a single rule run.
type ResultType string

// Result type constants, ordered roughly by severity.
const (
	// ResultTypeSuccess means the rule found nothing to complain about.
	ResultTypeSuccess ResultType = "success"

	// ResultTypeInfo means the result is informational only. A result that
	// still carries open questions (RequestData) is always of this type.
	ResultTypeInfo ResultType = "info"

	// ResultTypeWarning means problems were found that should be reviewed
	// but do not necessarily violate a guideline.
	ResultTypeWarning ResultType = "warning"

	// ResultTypeError means at least one guideline violation was found.
	ResultTypeError ResultType = "error"

	// ResultTypeSkipped means the document contains nothing the rule
	// applies to.
	ResultTypeSkipped ResultType = "skipped"
)

// Message is a single human-readable finding within a result.
//
// Line anchors the finding to a source line of the checked HTML document;
// zero means the message is not tied to a specific line. Code optionally
// carries the markup snippet the message refers to, reproduced verbatim
// from the source.
type Message struct {
	// Text is the human-readable message.
	Text string `json:"text"`

	// Code is the HTML snippet the message refers to, or empty.
	Code string `json:"code,omitempty"`

	// Line is the source line number the message refers to, or 0.
	Line int `json:"line,omitempty"`
}

// Choice is one allowed value of a select-type RequestData entry.
type Choice struct {
	// Value is the machine-readable option value.
	Value string `json:"value"`

	// Label is the human-readable option label.
	Label string `json:"label"`
}

// RequestData is a pending question a rule needs answered before it can
// reach a final verdict (e.g. "is this image decorative or content?").
//
// The Slug is the option key the answer will be persisted under, without
// the rule-slug prefix; the rule framework prefixes it on merge.
type RequestData struct {
	// Slug identifies the question and doubles as the option key suffix.
	Slug string `json:"slug"`

	// Type is the input type, either "select" or "text".
	Type string `json:"type"`

	// Label is a short human-readable caption for the question.
	Label string `json:"label"`

	// Description explains the question in full.
	Description string `json:"description"`

	// Options lists the allowed values for select-type questions.
	Options []Choice `json:"options,omitempty"`

	// Default is the suggested answer.
	Default string `json:"default,omitempty"`

	// Value holds the supplied answer, if any. A result is only complete
	// once every request carries a value or, equivalently, no requests
	// remain because all answers were persisted as options.
	Value string `json:"value,omitempty"`
}

// Link is a reference to external documentation about a rule.
type Link struct {
	// Target is the URL of the referenced document.
	Target string `json:"target"`

	// Title is the human-readable link title.
	Title string `json:"title"`
}

// Guideline identifies the WCAG guideline a rule belongs to.
type Guideline struct {
	// Title is the guideline's numbered title, e.g. "1.1.1 Non-text Content".
	Title string `json:"title"`

	// Anchor is the fragment identifier into the WCAG specification.
	Anchor string `json:"anchor"`
}

// Result is the outcome of running one rule against one check at one point
// in time. Rule metadata is denormalized onto the result at evaluation time
// so persisted results remain meaningful even if the catalog changes.
type Result struct {
	// TestSlug identifies the rule that produced this result.
	TestSlug string `json:"test_slug"`

	// TestTitle is the rule's title at the time of evaluation.
	TestTitle string `json:"test_title"`

	// TestDescription is the rule's description at the time of evaluation.
	TestDescription string `json:"test_description"`

	// Guideline is the WCAG guideline the rule belongs to.
	Guideline Guideline `json:"guideline"`

	// Links are documentation references for the rule.
	Links []Link `json:"links,omitempty"`

	// CheckID is the check this result belongs to.
	CheckID int64 `json:"check_id"`

	// Type is the verdict of the run.
	Type ResultType `json:"type"`

	// Messages are the ordered human-readable findings.
	Messages []Message `json:"messages"`

	// MessageCodes are machine-readable codes parallel to Messages.
	// Alignment is best-effort; not every message carries a code.
	MessageCodes []string `json:"message_codes,omitempty"`

	// RequestData lists open questions that must be answered before the
	// rule can conclude. A result with open requests is never persisted.
	RequestData []RequestData `json:"request_data,omitempty"`
}

// IsDone reports whether the result is complete: no request is missing an
// answer and at least one message exists. Incomplete results are transient
// and are returned to the caller to collect answers.
func (r *Result) IsDone() bool {
	if len(r.Messages) == 0 {
		return false
	}
	for _, req := range r.RequestData {
		if req.Value == "" {
			return false
		}
	}
	return true
}
