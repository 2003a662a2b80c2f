package rules

import "testing"

func TestCatalog(t *testing.T) {
	t.Parallel()

	catalog := Catalog(nil)

	t.Run("has 27 rules", func(t *testing.T) {
		t.Parallel()
		if len(catalog) != 27 {
			t.Errorf("expected 27 rules, got %d", len(catalog))
		}
	})

	t.Run("slugs are unique and non-empty", func(t *testing.T) {
		t.Parallel()
		seen := make(map[string]bool, len(catalog))
		for _, r := range catalog {
			slug := r.Metadata().Slug
			if slug == "" {
				t.Error("rule with empty slug in catalog")
			}
			if seen[slug] {
				t.Errorf("duplicate slug %q", slug)
			}
			seen[slug] = true
		}
	})

	t.Run("every rule carries metadata", func(t *testing.T) {
		t.Parallel()
		for _, r := range catalog {
			meta := r.Metadata()
			if meta.Title == "" {
				t.Errorf("rule %s has no title", meta.Slug)
			}
			if meta.Description == "" {
				t.Errorf("rule %s has no description", meta.Slug)
			}
			if meta.Guideline.Title == "" {
				t.Errorf("rule %s has no guideline", meta.Slug)
			}
		}
	})

	t.Run("starts with graphical rules and ends with document language", func(t *testing.T) {
		t.Parallel()
		if got := catalog[0].Metadata().Slug; got != "graphical_ui_alternative_texts_links" {
			t.Errorf("unexpected first rule %q", got)
		}
		if got := catalog[len(catalog)-1].Metadata().Slug; got != "document_language" {
			t.Errorf("unexpected last rule %q", got)
		}
	})
}

func TestIndexOf(t *testing.T) {
	t.Parallel()

	catalog := Catalog(nil)

	t.Run("finds known slug", func(t *testing.T) {
		t.Parallel()
		if got := IndexOf(catalog, "structural_lists"); got != 9 {
			t.Errorf("expected index 9, got %d", got)
		}
	})

	t.Run("unknown slug is -1", func(t *testing.T) {
		t.Parallel()
		if got := IndexOf(catalog, "no_such_rule"); got != -1 {
			t.Errorf("expected -1, got %d", got)
		}
	})
}
