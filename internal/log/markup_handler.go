package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// DefaultMaxValueLen is the length string attribute values are capped
// at. Long enough to recognize a document or snippet, short enough to
// keep a log line scannable.
const DefaultMaxValueLen = 200

// markupKeys contains attribute keys whose values are known to carry
// raw HTML and are always flattened and truncated.
var markupKeys = map[string]bool{
	"html":    true,
	"markup":  true,
	"snippet": true,
	"extract": true,
	"body":    true,
}

// MarkupHandler wraps an slog.Handler to keep markup-heavy attribute
// values out of log lines. String values under known markup keys, and
// any string value spanning multiple lines or exceeding the length cap,
// are collapsed to a single truncated line.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites can log documents as-is without pre-formatting them
type MarkupHandler struct {
	// handler is the underlying slog handler that receives the records.
	handler slog.Handler

	// maxValueLen caps string attribute values.
	maxValueLen int
}

// NewMarkupHandler creates a MarkupHandler wrapping the given handler.
// If handler is nil, the returned MarkupHandler uses slog.Default().Handler().
func NewMarkupHandler(handler slog.Handler) *MarkupHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &MarkupHandler{handler: handler, maxValueLen: DefaultMaxValueLen}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *MarkupHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle flattens the record's attributes and passes it on.
func (h *MarkupHandler) Handle(ctx context.Context, r slog.Record) error {
	flattened := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		flattened.AddAttrs(h.flattenAttr(a))
		return true
	})
	return h.handler.Handle(ctx, flattened)
}

// WithAttrs returns a new handler with the given attributes added,
// flattened first.
func (h *MarkupHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	flattened := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		flattened[i] = h.flattenAttr(a)
	}
	return &MarkupHandler{handler: h.handler.WithAttrs(flattened), maxValueLen: h.maxValueLen}
}

// WithGroup returns a new handler with the given group name.
func (h *MarkupHandler) WithGroup(name string) slog.Handler {
	return &MarkupHandler{handler: h.handler.WithGroup(name), maxValueLen: h.maxValueLen}
}

// flattenAttr processes a single attribute, recursively handling groups.
func (h *MarkupHandler) flattenAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		flattened := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			flattened[i] = h.flattenAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(flattened...)}
	}

	if a.Value.Kind() != slog.KindString {
		return a
	}

	value := a.Value.String()
	if !markupKeys[strings.ToLower(a.Key)] && !needsFlattening(value, h.maxValueLen) {
		return a
	}
	return slog.String(a.Key, flatten(value, h.maxValueLen))
}

// needsFlattening reports whether a value would break the log line.
func needsFlattening(value string, maxLen int) bool {
	return len(value) > maxLen || strings.ContainsAny(value, "\n\r\t")
}

// flatten collapses whitespace runs to single spaces and truncates.
func flatten(value string, maxLen int) string {
	value = strings.Join(strings.Fields(value), " ")
	if len(value) <= maxLen {
		return value
	}
	return value[:maxLen] + "..."
}

// NewLogger creates a slog.Logger with markup flattening over a text
// handler.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewMarkupHandler(textHandler))
}

// NewJSONLogger creates a slog.Logger with markup flattening that
// outputs JSON format. Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewMarkupHandler(jsonHandler))
}
