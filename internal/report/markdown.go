package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/felixarntz/screen-reader-check/internal/model"
)

// MarkdownWriter outputs audits in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the audit in Markdown format.
func (w *MarkdownWriter) Write(audit *Audit) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, audit)
	w.writeSummary(md, audit)
	w.writeResults(md, audit)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with check information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, audit *Audit) {
	md.H1("Screen Reader Check Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Document", "`" + audit.Subject() + "`"},
			{"Title", audit.Check.Title},
			{"Created", audit.Check.CreatedAt.Format("2006-01-02 15:04:05 MST")},
			{"Rules Run", strconv.Itoa(len(audit.Results))},
		},
	})
	md.PlainText("")
}

// writeSummary writes the verdict summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, audit *Audit) {
	md.H2("Verdict Summary")
	md.PlainText("")

	errorCount := audit.CountByType(model.ResultTypeError)
	warningCount := audit.CountByType(model.ResultTypeWarning)
	successCount := audit.CountByType(model.ResultTypeSuccess)
	skippedCount := audit.CountByType(model.ResultTypeSkipped)

	md.Table(markdown.TableSet{
		Header: []string{"Verdict", "Count"},
		Rows: [][]string{
			{"🔴 Errors", strconv.Itoa(errorCount)},
			{"🟡 Warnings", strconv.Itoa(warningCount)},
			{"🟢 Passed", strconv.Itoa(successCount)},
			{"⚪ Skipped", strconv.Itoa(skippedCount)},
		},
	})
	md.PlainText("")

	if len(audit.Results) > 0 {
		w.writePieChart(md, errorCount, warningCount, successCount, skippedCount)
	}

	switch {
	case errorCount > 0:
		md.Cautionf(
			"Accessibility violations detected! %d rule(s) reported errors that block screen reader users.",
			errorCount,
		)
	case warningCount > 0:
		md.Warningf(
			"%d rule(s) reported warnings that should be reviewed.",
			warningCount,
		)
	default:
		md.Tip("No accessibility problems detected.")
	}
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of the verdict distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, errors, warnings, passed, skipped int) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Rule Verdict Distribution"),
		piechart.WithShowData(true),
	)

	if errors > 0 {
		chart.LabelAndIntValue("Errors", uint64(errors))
	}
	if warnings > 0 {
		chart.LabelAndIntValue("Warnings", uint64(warnings))
	}
	if passed > 0 {
		chart.LabelAndIntValue("Passed", uint64(passed))
	}
	if skipped > 0 {
		chart.LabelAndIntValue("Skipped", uint64(skipped))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeResults writes all results grouped by verdict.
func (w *MarkdownWriter) writeResults(md *markdown.Markdown, audit *Audit) {
	md.H2("Results")
	md.PlainText("")

	if len(audit.Results) == 0 {
		md.PlainText("No rules have been run yet.")
		md.PlainText("")
		return
	}

	sections := []struct {
		verdict model.ResultType
		header  string
	}{
		{model.ResultTypeError, "### 🔴 Errors"},
		{model.ResultTypeWarning, "### 🟡 Warnings"},
		{model.ResultTypeInfo, "### ⏳ Open Questions"},
		{model.ResultTypeSkipped, "### ⚪ Skipped"},
		{model.ResultTypeSuccess, "### 🟢 Passed"},
	}

	for _, section := range sections {
		results := audit.ResultsByType(section.verdict)
		if len(results) == 0 {
			continue
		}

		md.PlainText(section.header)
		md.PlainText("")
		w.writeResultsTable(md, results)
	}
}

// writeResultsTable writes a table of results with their findings.
func (w *MarkdownWriter) writeResultsTable(md *markdown.Markdown, results []*model.Result) {
	rows := make([][]string, len(results))
	for i, result := range results {
		rows[i] = []string{
			result.TestTitle,
			result.Guideline.Title,
			strconv.Itoa(len(result.Messages)),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Rule", "Guideline", "Findings"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, result := range results {
		if len(result.Messages) == 0 {
			continue
		}
		detail := ""
		for _, msg := range result.Messages {
			if msg.Line > 0 {
				detail += fmt.Sprintf("- %s (line %d)\n", msg.Text, msg.Line)
			} else {
				detail += fmt.Sprintf("- %s\n", msg.Text)
			}
		}
		md.Details(result.TestTitle, detail)
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by screen-reader-check*")
}
