package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/felixarntz/screen-reader-check/internal/model"
)

func testAudit() *Audit {
	check := &model.Check{
		ID:        1,
		URL:       "https://example.com/",
		Title:     "Example",
		CreatedAt: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
	results := []*model.Result{
		{
			TestSlug:  "images_alternative_texts",
			TestTitle: "Alternative Texts for Images",
			Guideline: model.Guideline{Title: "1.1.1 Non-text Content"},
			CheckID:   1,
			Type:      model.ResultTypeError,
			Messages: []model.Message{
				{Text: "The following image is missing an alt attribute:", Code: "<img src=\"a.png\">", Line: 12},
			},
			MessageCodes: []string{"missing_alt_attribute"},
		},
		{
			TestSlug:  "document_language",
			TestTitle: "Document Language",
			Guideline: model.Guideline{Title: "3.1.1 Language of Page"},
			CheckID:   1,
			Type:      model.ResultTypeSuccess,
			Messages: []model.Message{
				{Text: "The document language is properly provided through the lang attribute of the html element."},
			},
			MessageCodes: []string{"success"},
		},
		{
			TestSlug:  "table_markup",
			TestTitle: "Valid table markup",
			Guideline: model.Guideline{Title: "1.3.1 Info and Relationships"},
			CheckID:   1,
			Type:      model.ResultTypeSkipped,
			Messages: []model.Message{
				{Text: "There are no tables in the HTML code provided. Therefore this test was skipped."},
			},
			MessageCodes: []string{"skipped"},
		},
	}
	return NewAudit(check, results)
}

// TestAuditCounts tests the verdict counting helpers.
func TestAuditCounts(t *testing.T) {
	t.Parallel()
	audit := testAudit()

	if got := audit.CountByType(model.ResultTypeError); got != 1 {
		t.Errorf("CountByType(error) = %d, expected 1", got)
	}
	if got := audit.CountByType(model.ResultTypeWarning); got != 0 {
		t.Errorf("CountByType(warning) = %d, expected 0", got)
	}
	if !audit.HasProblems() {
		t.Error("HasProblems() = false, expected true")
	}
	if audit.Subject() != "https://example.com/" {
		t.Errorf("Subject() = %q, expected the URL", audit.Subject())
	}
}

// TestSimpleWriter tests the text renderer output.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	n, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(testAudit())
	if err != nil {
		t.Fatalf("Write() returned error: %v", err)
	}
	if n != buf.Len() {
		t.Errorf("Write() reported %d bytes, buffer has %d", n, buf.Len())
	}

	out := buf.String()
	for _, want := range []string{
		"SCREEN READER CHECK REPORT",
		"ERRORS:   1",
		"Alternative Texts for Images",
		"line 12",
		"<img src=\"a.png\">",
		"[PASSED]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

// TestJSONWriter tests that the JSON output round-trips and carries the
// version envelope.
func TestJSONWriter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	if _, err := NewJSONWriter(&buf, WithPrettyPrint(), WithVersion("1.2.3")).Write(testAudit()); err != nil {
		t.Fatalf("Write() returned error: %v", err)
	}

	var decoded struct {
		Version string `json:"version"`
		Audit   Audit  `json:"audit"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Version != "1.2.3" {
		t.Errorf("Version = %q, expected 1.2.3", decoded.Version)
	}
	if len(decoded.Audit.Results) != 3 {
		t.Errorf("decoded %d results, expected 3", len(decoded.Audit.Results))
	}
}

// TestMarkdownWriter tests the markdown renderer output.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	if _, err := NewMarkdownWriter(&buf).Write(testAudit()); err != nil {
		t.Fatalf("Write() returned error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# Screen Reader Check Report",
		"## Verdict Summary",
		"Alternative Texts for Images",
		"1.1.1 Non-text Content",
		"```mermaid",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

// TestMultiWriter tests fan-out to several writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()
	var a, b bytes.Buffer

	mw := NewMultiWriter(NewSimpleWriter(&a), NewJSONWriter(&b))
	if _, err := mw.Write(testAudit()); err != nil {
		t.Fatalf("Write() returned error: %v", err)
	}
	if a.Len() == 0 || b.Len() == 0 {
		t.Error("MultiWriter should write to all destinations")
	}
}
