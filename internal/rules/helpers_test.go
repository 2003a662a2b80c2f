package rules

import (
	"testing"

	"github.com/felixarntz/screen-reader-check/internal/dom"
)

func TestSanitizeSrc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "url with path and query",
			src:  "https://example.com/images/Logo.PNG?v=2",
			want: "https___example_com_images_logo_png_v_2",
		},
		{
			name: "relative path",
			src:  "img/photo 1.jpg",
			want: "img_photo_1_jpg",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeSrc(tt.src); got != tt.want {
				t.Errorf("SanitizeSrc(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestDisplaySrc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "full url",
			src:  "https://example.com/images/logo.png?v=2",
			want: "logo.png",
		},
		{
			name: "trailing slash",
			src:  "https://example.com/gallery/",
			want: "gallery",
		},
		{
			name: "bare file name",
			src:  "logo.png",
			want: "logo.png",
		},
		{
			name: "empty stays empty",
			src:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DisplaySrc(tt.src); got != tt.want {
				t.Errorf("DisplaySrc(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestResolveSrc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		base string
		want string
	}{
		{
			name: "relative path",
			src:  "images/logo.png",
			base: "https://example.com/about/",
			want: "https://example.com/about/images/logo.png",
		},
		{
			name: "root relative path",
			src:  "/img/hero.jpg",
			base: "https://example.com/about/team",
			want: "https://example.com/img/hero.jpg",
		},
		{
			name: "scheme relative path",
			src:  "//cdn.example.com/a.png",
			base: "https://example.com/",
			want: "https://cdn.example.com/a.png",
		},
		{
			name: "absolute src stays untouched",
			src:  "https://cdn.example.com/a.png",
			base: "https://example.com/",
			want: "https://cdn.example.com/a.png",
		},
		{
			name: "no base for raw html checks",
			src:  "images/logo.png",
			base: "",
			want: "images/logo.png",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ResolveSrc(tt.src, tt.base); got != tt.want {
				t.Errorf("ResolveSrc(%q, %q) = %q, want %q", tt.src, tt.base, got, tt.want)
			}
		})
	}
}

func TestNodeIdentifier(t *testing.T) {
	t.Parallel()

	doc, err := dom.Parse("<!DOCTYPE html>\n<html><head><title>t</title></head><body>\n<img id=\"hero\" src=\"a.png\">\n<input name=\"email\">\n<img src=\"b.png\">\n</body></html>")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("prefers id", func(t *testing.T) {
		t.Parallel()
		n := doc.FindFirst("#hero")
		if n == nil {
			t.Fatal("fixture node not found")
		}
		if got := NodeIdentifier(n); got != "id_hero" {
			t.Errorf("expected id_hero, got %q", got)
		}
	})

	t.Run("falls back to name", func(t *testing.T) {
		t.Parallel()
		n := doc.FindFirst("input")
		if n == nil {
			t.Fatal("fixture node not found")
		}
		if got := NodeIdentifier(n); got != "name_email" {
			t.Errorf("expected name_email, got %q", got)
		}
	})

	t.Run("falls back to line number", func(t *testing.T) {
		t.Parallel()
		n := doc.FindFirst("img[src=\"b.png\"]")
		if n == nil {
			t.Fatal("fixture node not found")
		}
		if got := NodeIdentifier(n); got != "line_5" {
			t.Errorf("expected line_5, got %q", got)
		}
	})
}

func TestSrcFileExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want string
	}{
		{"https://example.com/docs/report.PDF", "pdf"},
		{"video.mp4?autoplay=1", "mp4"},
		{"https://example.com/page", ""},
		{"archive.", ""},
		{"https://example.com/a.b/c", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()
			if got := srcFileExtension(tt.src); got != tt.want {
				t.Errorf("srcFileExtension(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}
