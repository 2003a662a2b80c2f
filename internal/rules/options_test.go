package rules

import "testing"

func TestOptionKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		ruleSlug     string
		questionSlug string
		want         string
	}{
		{
			name:         "regular question is namespaced",
			ruleSlug:     "structural_lists",
			questionSlug: "has_lists",
			want:         "structural_lists_has_lists",
		},
		{
			name:         "global key stays global",
			ruleSlug:     "organized_content",
			questionSlug: "global_iconfont",
			want:         "global_iconfont",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := OptionKey(tt.ruleSlug, tt.questionSlug); got != tt.want {
				t.Errorf("OptionKey(%q, %q) = %q, want %q", tt.ruleSlug, tt.questionSlug, got, tt.want)
			}
		})
	}
}

func TestOptionsValue(t *testing.T) {
	t.Parallel()

	opts := NewOptions("images_alternative_texts", map[string]string{
		"images_alternative_texts_image_type_id_logo":  "content",
		"images_alternative_texts_image_type_id_blank": "",
		"other_rule_question":                          "hidden",
		"global_iconfont":                              "fa glyphicon",
	})

	t.Run("own answer is visible", func(t *testing.T) {
		t.Parallel()
		v, ok := opts.Value("image_type_id_logo")
		if !ok || v != "content" {
			t.Errorf("expected (content, true), got (%q, %v)", v, ok)
		}
	})

	t.Run("unanswered question is distinguishable", func(t *testing.T) {
		t.Parallel()
		v, ok := opts.Value("image_type_id_other")
		if ok || v != "" {
			t.Errorf("expected (\"\", false), got (%q, %v)", v, ok)
		}
	})

	t.Run("empty answer counts as unanswered", func(t *testing.T) {
		t.Parallel()
		if _, ok := opts.Value("image_type_id_blank"); ok {
			t.Error("a blank stored answer must make the rule ask again")
		}
	})

	t.Run("foreign answers are invisible", func(t *testing.T) {
		t.Parallel()
		if _, ok := opts.Value("question"); ok {
			t.Error("answers of other rules must not leak through the view")
		}
	})

	t.Run("global lookup", func(t *testing.T) {
		t.Parallel()
		v, ok := opts.Global("iconfont")
		if !ok || v != "fa glyphicon" {
			t.Errorf("expected (fa glyphicon, true), got (%q, %v)", v, ok)
		}
	})

	t.Run("global prefix addresses the global store", func(t *testing.T) {
		t.Parallel()
		v, ok := opts.Value("global_iconfont")
		if !ok || v != "fa glyphicon" {
			t.Errorf("expected global value through Value, got (%q, %v)", v, ok)
		}
	})
}

func TestOptionsGlobalFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values map[string]string
		want   []string
	}{
		{
			name:   "unset option",
			values: map[string]string{},
			want:   nil,
		},
		{
			name:   "blank option",
			values: map[string]string{"global_iconfont": "   "},
			want:   nil,
		},
		{
			name:   "space separated values",
			values: map[string]string{"global_iconfont": "fa  glyphicon\ticon-"},
			want:   []string{"fa", "glyphicon", "icon-"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NewOptions("any", tt.values).GlobalFields("iconfont")
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("field %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
