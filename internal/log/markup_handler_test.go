package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestFlatten(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		value  string
		maxLen int
		want   string
	}{
		{
			name:   "short value unchanged",
			value:  "hello",
			maxLen: 20,
			want:   "hello",
		},
		{
			name:   "newlines collapsed",
			value:  "<div>\n\t<p>text</p>\n</div>",
			maxLen: 100,
			want:   "<div> <p>text</p> </div>",
		},
		{
			name:   "long value truncated",
			value:  strings.Repeat("a", 30),
			maxLen: 10,
			want:   "aaaaaaaaaa...",
		},
		{
			name:   "whitespace runs collapsed",
			value:  "a    b     c",
			maxLen: 100,
			want:   "a b c",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := flatten(tt.value, tt.maxLen)
			if got != tt.want {
				t.Errorf("flatten(%q, %d) = %q, want %q", tt.value, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestMarkupHandlerFlattensMarkupKeys(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewMarkupHandler(slog.NewTextHandler(&buf, nil)))

	logger.Info("fetched document", "html", "<html>\n<body>\n<p>hi</p>\n</body>\n</html>")

	output := buf.String()
	if strings.Contains(output, "\n<body>") {
		t.Errorf("output should not contain raw newlines from the html attribute: %q", output)
	}
	if !strings.Contains(output, "<html> <body>") {
		t.Errorf("output should contain the flattened markup, got %q", output)
	}
}

func TestMarkupHandlerTruncatesLongValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewMarkupHandler(slog.NewTextHandler(&buf, nil)))

	long := strings.Repeat("x", DefaultMaxValueLen+50)
	logger.Info("long attribute", "detail", long)

	output := buf.String()
	if strings.Contains(output, long) {
		t.Error("output should not contain the full untruncated value")
	}
	if !strings.Contains(output, "...") {
		t.Errorf("output should contain the truncation marker, got %q", output)
	}
}

func TestMarkupHandlerKeepsShortValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewMarkupHandler(slog.NewTextHandler(&buf, nil)))

	logger.Info("check created", "url", "https://example.com/", "id", 42)

	output := buf.String()
	if !strings.Contains(output, "url=https://example.com/") {
		t.Errorf("short values should pass through unchanged, got %q", output)
	}
	if !strings.Contains(output, "id=42") {
		t.Errorf("non-string values should pass through unchanged, got %q", output)
	}
}

func TestMarkupHandlerWithGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewMarkupHandler(slog.NewTextHandler(&buf, nil)))

	logger.With(slog.Group("validator",
		slog.String("extract", "<img\nsrc=\"a.png\">"),
		slog.String("type", "error"),
	)).Info("issue found")

	output := buf.String()
	if strings.Contains(output, "<img\nsrc") {
		t.Errorf("grouped markup attributes should be flattened, got %q", output)
	}
	if !strings.Contains(output, "validator.type=error") {
		t.Errorf("grouped short attributes should pass through, got %q", output)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)
		logger.Debug("debug message")
		if !strings.Contains(buf.String(), "debug message") {
			t.Error("verbose logger should emit debug messages")
		}
	})

	t.Run("quiet suppresses info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)
		logger.Info("info message")
		if buf.Len() != 0 {
			t.Errorf("quiet logger should suppress info messages, got %q", buf.String())
		}
	})
}

func TestNewJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, true)
	logger.Warn("validator unreachable", "html", "<p>\nbroken\n</p>")

	output := buf.String()
	if !strings.Contains(output, `"msg":"validator unreachable"`) {
		t.Errorf("expected JSON output, got %q", output)
	}
	if !strings.Contains(output, `"html":"<p> broken </p>"`) && !strings.Contains(output, `"html":"<p> broken </p>"`) {
		t.Errorf("expected flattened html attribute, got %q", output)
	}
}
