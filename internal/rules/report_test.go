package rules

import (
	"testing"

	"github.com/felixarntz/screen-reader-check/internal/model"
)

func testMetadata() Metadata {
	return Metadata{
		Slug:        "test_rule",
		Title:       "Test Rule",
		Description: "A rule used in tests.",
		Guideline:   model.Guideline{Title: "1.1.1 Non-text Content", Anchor: "non-text-content"},
	}
}

func TestReportVerdicts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		record   func(rep *Report)
		wantType model.ResultType
	}{
		{
			name:     "no findings is success",
			record:   func(*Report) {},
			wantType: model.ResultTypeSuccess,
		},
		{
			name: "error wins over warning",
			record: func(rep *Report) {
				rep.Warn("some_warning", "warning text")
				rep.Error("some_error", "error text")
			},
			wantType: model.ResultTypeError,
		},
		{
			name: "warning without error",
			record: func(rep *Report) {
				rep.Warn("some_warning", "warning text")
			},
			wantType: model.ResultTypeWarning,
		},
		{
			name: "skip wins over error",
			record: func(rep *Report) {
				rep.Error("some_error", "error text")
				rep.Skip("not applicable")
			},
			wantType: model.ResultTypeSkipped,
		},
		{
			name: "open question wins over everything",
			record: func(rep *Report) {
				rep.Error("some_error", "error text")
				rep.Request(model.RequestData{Slug: "really", Type: "select"})
			},
			wantType: model.ResultTypeInfo,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rep := NewReport(7, "", testMetadata())
			tt.record(rep)
			res := rep.Finish("all good")

			if res.Type != tt.wantType {
				t.Errorf("expected verdict %s, got %s", tt.wantType, res.Type)
			}
			if res.CheckID != 7 {
				t.Errorf("expected check ID 7, got %d", res.CheckID)
			}
			if res.TestSlug != "test_rule" {
				t.Errorf("expected rule metadata on result, got %q", res.TestSlug)
			}
		})
	}
}

func TestReportSuccessMessage(t *testing.T) {
	t.Parallel()

	rep := NewReport(1, "", testMetadata())
	res := rep.Finish("everything passed")

	if len(res.Messages) != 1 {
		t.Fatalf("expected one success message, got %d", len(res.Messages))
	}
	if res.Messages[0].Text != "everything passed" {
		t.Errorf("unexpected success text %q", res.Messages[0].Text)
	}
	if res.MessageCodes[0] != codeSuccess {
		t.Errorf("expected success code, got %q", res.MessageCodes[0])
	}
	if !res.IsDone() {
		t.Error("expected a finished success result to be done")
	}
}

func TestReportOpenQuestionClearsMessages(t *testing.T) {
	t.Parallel()

	rep := NewReport(1, "", testMetadata())
	rep.Error("partial_finding", "would be misleading")
	rep.Request(model.RequestData{Slug: "need_input", Type: "text"})
	res := rep.Finish("unused")

	if res.Messages != nil {
		t.Errorf("expected no messages on a result with open questions, got %v", res.Messages)
	}
	if len(res.RequestData) != 1 {
		t.Fatalf("expected one request, got %d", len(res.RequestData))
	}
	if res.IsDone() {
		t.Error("a result with open questions must not be done")
	}
}

func TestReportMessageAnchors(t *testing.T) {
	t.Parallel()

	rep := NewReport(1, "", testMetadata())
	rep.ErrorSnippet("bad_markup", "this is wrong", "<img src=\"a.png\">", 12)
	res := rep.Finish("unused")

	if res.Messages[0].Code != "<img src=\"a.png\">" {
		t.Errorf("expected snippet on message, got %q", res.Messages[0].Code)
	}
	if res.Messages[0].Line != 12 {
		t.Errorf("expected line 12, got %d", res.Messages[0].Line)
	}
	if res.MessageCodes[0] != "bad_markup" {
		t.Errorf("expected machine code, got %q", res.MessageCodes[0])
	}
}

func TestReportLinkSrc(t *testing.T) {
	t.Parallel()

	t.Run("relative src on a url check", func(t *testing.T) {
		t.Parallel()
		rep := NewReport(1, "https://example.com/about/", testMetadata())
		got := rep.LinkSrc("images/Logo.png")
		want := "Logo.png (https://example.com/about/images/Logo.png)"
		if got != want {
			t.Errorf("LinkSrc() = %q, want %q", got, want)
		}
	})

	t.Run("raw html check shows the short name only", func(t *testing.T) {
		t.Parallel()
		rep := NewReport(1, "", testMetadata())
		if got := rep.LinkSrc("images/Logo.png"); got != "Logo.png" {
			t.Errorf("LinkSrc() = %q, want %q", got, "Logo.png")
		}
	})

	t.Run("absolute src shows the short name only", func(t *testing.T) {
		t.Parallel()
		rep := NewReport(1, "https://example.com/", testMetadata())
		if got := rep.LinkSrc("https://cdn.example.com/a.png"); got != "a.png" {
			t.Errorf("LinkSrc() = %q, want %q", got, "a.png")
		}
	})
}

func TestReportResultPanicsBeforeFinish(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic when Result is called before Finish")
		}
	}()

	rep := NewReport(1, "", testMetadata())
	_ = rep.Result()
}
