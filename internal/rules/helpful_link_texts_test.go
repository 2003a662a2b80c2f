package rules

import (
	"testing"

	"github.com/felixarntz/screen-reader-check/internal/model"
)

func TestHelpfulLinkTexts(t *testing.T) {
	t.Parallel()

	t.Run("no links is skipped", func(t *testing.T) {
		t.Parallel()

		res := evalRule(t, helpfulLinkTexts{}, imagePage("<p>plain text</p>"), nil)
		if res.Type != model.ResultTypeSkipped {
			t.Errorf("expected skipped, got %s", res.Type)
		}
	})

	t.Run("descriptive link passes", func(t *testing.T) {
		t.Parallel()

		res := evalRule(t, helpfulLinkTexts{}, imagePage(`<a href="/pricing">See our pricing plans</a>`), nil)
		if res.Type != model.ResultTypeSuccess {
			t.Errorf("expected success, got %s with %v", res.Type, res.MessageCodes)
		}
	})

	t.Run("empty link text is an error", func(t *testing.T) {
		t.Parallel()

		res := evalRule(t, helpfulLinkTexts{}, imagePage(`<a href="/pricing"></a>`), nil)
		if !hasCode(res, "missing_link_text") {
			t.Errorf("unexpected codes %v", res.MessageCodes)
		}
	})

	t.Run("image alt counts as link text", func(t *testing.T) {
		t.Parallel()

		res := evalRule(t, helpfulLinkTexts{}, imagePage(`<a href="/home"><img src="logo.png" alt="Company home"></a>`), nil)
		if res.Type != model.ResultTypeSuccess {
			t.Errorf("expected success, got %s with %v", res.Type, res.MessageCodes)
		}
	})

	t.Run("same text for different targets is an error", func(t *testing.T) {
		t.Parallel()

		body := `<a href="/a">Details</a><a href="/b">Details</a>`
		res := evalRule(t, helpfulLinkTexts{}, imagePage(body), nil)
		if !hasCode(res, "duplicate_link_text") {
			t.Errorf("unexpected codes %v", res.MessageCodes)
		}
	})

	t.Run("same text for same target is fine", func(t *testing.T) {
		t.Parallel()

		body := `<a href="/a">Details</a><a href="/a">Details</a>`
		res := evalRule(t, helpfulLinkTexts{}, imagePage(body), nil)
		if res.Type != model.ResultTypeSuccess {
			t.Errorf("expected success, got %s with %v", res.Type, res.MessageCodes)
		}
	})

	t.Run("generic phrase is an error", func(t *testing.T) {
		t.Parallel()

		res := evalRule(t, helpfulLinkTexts{}, imagePage(`<a href="/post-7">Read more…</a>`), nil)
		if !hasCode(res, "non_descriptive_link_text") {
			t.Errorf("unexpected codes %v", res.MessageCodes)
		}
	})

	t.Run("pdf link must mention the file type", func(t *testing.T) {
		t.Parallel()

		res := evalRule(t, helpfulLinkTexts{}, imagePage(`<a href="/report.xlsx">Quarterly figures</a>`), nil)
		if !hasCode(res, "missing_non_html_content_link_text") {
			t.Errorf("unexpected codes %v", res.MessageCodes)
		}
	})

	t.Run("mentioned file type passes", func(t *testing.T) {
		t.Parallel()

		res := evalRule(t, helpfulLinkTexts{}, imagePage(`<a href="/report.xlsx">Quarterly figures (Excel spreadsheet)</a>`), nil)
		if res.Type != model.ResultTypeSuccess {
			t.Errorf("expected success, got %s with %v", res.Type, res.MessageCodes)
		}
	})

	t.Run("mailto link must announce email", func(t *testing.T) {
		t.Parallel()

		res := evalRule(t, helpfulLinkTexts{}, imagePage(`<a href="mailto:team@example.com">Contact the team</a>`), nil)
		if !hasCode(res, "missing_non_html_content_link_text") {
			t.Errorf("unexpected codes %v", res.MessageCodes)
		}

		res = evalRule(t, helpfulLinkTexts{}, imagePage(`<a href="mailto:team@example.com">Email the team</a>`), nil)
		if res.Type != model.ResultTypeSuccess {
			t.Errorf("expected success, got %s with %v", res.Type, res.MessageCodes)
		}
	})
}
