package rules

import (
	"testing"

	"github.com/felixarntz/screen-reader-check/internal/model"
)

func TestStructuralHeadings(t *testing.T) {
	t.Parallel()

	t.Run("no headings warns", func(t *testing.T) {
		t.Parallel()

		res := evalRule(t, structuralHeadings{}, imagePage("<p>text without structure</p>"), nil)
		if res.Type != model.ResultTypeWarning {
			t.Fatalf("expected warning, got %s", res.Type)
		}
		if !hasCode(res, "no_headings_in_content") {
			t.Errorf("unexpected codes %v", res.MessageCodes)
		}
	})

	t.Run("clean outline passes", func(t *testing.T) {
		t.Parallel()

		body := `<h1>Title</h1><h2>Section</h2><h3>Subsection</h3><h2>Another</h2>`
		res := evalRule(t, structuralHeadings{}, imagePage(body), nil)
		if res.Type != model.ResultTypeSuccess {
			t.Errorf("expected success, got %s", res.Type)
		}
	})

	t.Run("skipped level warns", func(t *testing.T) {
		t.Parallel()

		body := `<h1>Title</h1><h3>Too deep</h3>`
		res := evalRule(t, structuralHeadings{}, imagePage(body), nil)
		if res.Type != model.ResultTypeWarning {
			t.Fatalf("expected warning, got %s", res.Type)
		}
		if !hasCode(res, "headings_nested_incorrectly_no_sectioning_content") {
			t.Errorf("unexpected codes %v", res.MessageCodes)
		}
		if res.Messages[0].Code == "" {
			t.Error("expected the heading group snippet on the finding")
		}
	})

	t.Run("sectioning scopes reset the outline", func(t *testing.T) {
		t.Parallel()

		// The h3 under section follows the section's own h2, not the
		// global h1, so nothing is skipped.
		body := `<h1>Title</h1><section><h2>Area</h2><h3>Detail</h3></section><h2>Next</h2>`
		res := evalRule(t, structuralHeadings{}, imagePage(body), nil)
		if res.Type != model.ResultTypeSuccess {
			t.Errorf("expected success, got %s", res.Type)
		}
	})

	t.Run("several articles with one h1 is an error", func(t *testing.T) {
		t.Parallel()

		body := `<h1>Blog</h1>
<article><h2>First post</h2></article>
<article><h2>Second post</h2></article>`
		res := evalRule(t, structuralHeadings{}, imagePage(body), nil)
		if res.Type != model.ResultTypeError {
			t.Fatalf("expected error, got %s", res.Type)
		}
		if !hasCode(res, "single_h1_only") {
			t.Errorf("unexpected codes %v", res.MessageCodes)
		}
	})

	t.Run("articles with own h1 headings pass", func(t *testing.T) {
		t.Parallel()

		body := `<h1>Blog</h1>
<article><h1>First post</h1></article>
<article><h1>Second post</h1></article>`
		res := evalRule(t, structuralHeadings{}, imagePage(body), nil)
		if res.Type != model.ResultTypeSuccess {
			t.Errorf("expected success, got %s", res.Type)
		}
	})
}
