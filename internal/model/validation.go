package model

// ValidationIssue is one finding reported by the external markup
// validator service. Field names follow the Nu validator JSON output.
type ValidationIssue struct {
	// Type is the issue category, "error" or "info".
	Type string `json:"type"`

	// SubType refines Type; informational issues with subtype "warning"
	// are treated as warnings.
	SubType string `json:"subType,omitempty"`

	// Message is the human-readable issue description.
	Message string `json:"message"`

	// Extract is the markup excerpt the issue refers to.
	Extract string `json:"extract,omitempty"`

	// LastLine is the source line the issue ends on, or 0.
	LastLine int `json:"lastLine,omitempty"`
}
