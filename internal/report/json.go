package report

import (
	"encoding/json"
	"io"
)

// JSONWriter outputs audits in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because:
// 1. It's part of the standard library (no extra dependencies)
// 2. It's sufficient for our needs
// 3. It provides consistent behavior across Go versions
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string

	// version is stamped into the output envelope when set.
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// WithVersion stamps the generating tool version into the JSON envelope.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// jsonEnvelope wraps an audit with output metadata.
//
// Design decision: We wrap the audit rather than adding fields to it
// because this allows output-specific metadata without polluting the
// core data structure.
type jsonEnvelope struct {
	// Version is the tool version that generated this report, if known.
	Version string `json:"version,omitempty"`

	// Audit is the rendered audit.
	Audit *Audit `json:"audit"`
}

// Write outputs the audit in JSON format.
func (w *JSONWriter) Write(audit *Audit) (int, error) {
	envelope := jsonEnvelope{Version: w.version, Audit: audit}

	var data []byte
	var err error
	if w.indent {
		data, err = json.MarshalIndent(envelope, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(envelope)
	}
	if err != nil {
		return 0, err
	}

	// Trailing newline for better terminal output.
	data = append(data, '\n')

	return w.output.Write(data)
}
