package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/felixarntz/screen-reader-check/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether verdict sections without results are shown.
	showEmpty bool

	// verbose enables code snippets in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output including markup snippets.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// verdictOrder is the rendering order, most severe first.
var verdictOrder = []model.ResultType{
	model.ResultTypeError,
	model.ResultTypeWarning,
	model.ResultTypeInfo,
	model.ResultTypeSkipped,
	model.ResultTypeSuccess,
}

func verdictLabel(t model.ResultType) string {
	switch t {
	case model.ResultTypeError:
		return "ERRORS"
	case model.ResultTypeWarning:
		return "WARNINGS"
	case model.ResultTypeInfo:
		return "OPEN QUESTIONS"
	case model.ResultTypeSkipped:
		return "SKIPPED"
	case model.ResultTypeSuccess:
		return "PASSED"
	default:
		return strings.ToUpper(string(t))
	}
}

// Write outputs the audit in human-readable format.
func (w *SimpleWriter) Write(audit *Audit) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, audit)
	w.writeSummary(&sb, audit)
	w.writeResults(&sb, audit)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with check information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, audit *Audit) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                  SCREEN READER CHECK REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Document:   %s\n", audit.Subject()))
	if audit.Check.URL != "" {
		sb.WriteString(fmt.Sprintf("Title:      %s\n", audit.Check.Title))
	}
	sb.WriteString(fmt.Sprintf("Created:    %s\n", audit.Check.CreatedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Rules Run:  %d\n", len(audit.Results)))
	sb.WriteString("\n")
}

// writeSummary writes the verdict summary section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, audit *Audit) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("VERDICT SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  ERRORS:   %d\n", audit.CountByType(model.ResultTypeError)))
	sb.WriteString(fmt.Sprintf("  WARNINGS: %d\n", audit.CountByType(model.ResultTypeWarning)))
	sb.WriteString(fmt.Sprintf("  PASSED:   %d\n", audit.CountByType(model.ResultTypeSuccess)))
	sb.WriteString(fmt.Sprintf("  SKIPPED:  %d\n", audit.CountByType(model.ResultTypeSkipped)))
	sb.WriteString("\n")
}

// writeResults writes all results grouped by verdict.
func (w *SimpleWriter) writeResults(sb *strings.Builder, audit *Audit) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("RESULTS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, verdict := range verdictOrder {
		results := audit.ResultsByType(verdict)
		if len(results) == 0 && !w.showEmpty {
			continue
		}
		w.writeResultsForVerdict(sb, verdict, results)
	}
}

// writeResultsForVerdict writes results sharing one verdict.
func (w *SimpleWriter) writeResultsForVerdict(sb *strings.Builder, verdict model.ResultType, results []*model.Result) {
	sb.WriteString(fmt.Sprintf("[%s]\n", verdictLabel(verdict)))

	if len(results) == 0 {
		sb.WriteString("  No results\n\n")
		return
	}

	for _, result := range results {
		sb.WriteString(fmt.Sprintf("  * %s (%s)\n", result.TestTitle, result.Guideline.Title))
		for _, msg := range result.Messages {
			if msg.Line > 0 {
				sb.WriteString(fmt.Sprintf("    - %s (line %d)\n", msg.Text, msg.Line))
			} else {
				sb.WriteString(fmt.Sprintf("    - %s\n", msg.Text))
			}
			if w.verbose && msg.Code != "" {
				for _, line := range strings.Split(msg.Code, "\n") {
					sb.WriteString(fmt.Sprintf("        %s\n", line))
				}
			}
		}
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by screen-reader-check\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
