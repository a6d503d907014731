package output

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/amineremache/dafty-mcp/pkg/listing"
)

// JSONWriter writes each document as one JSON value.
type JSONWriter struct {
	w   *bufio.Writer
	enc *json.Encoder
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	// Listing URLs carry query strings.
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", indent)
	}
	return &JSONWriter{w: bw, enc: enc}
}

// WriteListings writes the listings as a JSON array.
func (w *JSONWriter) WriteListings(listings []listing.Listing) error {
	return w.WriteValue(nonNil(listings))
}

// WriteValue writes v followed by a newline.
func (w *JSONWriter) WriteValue(v any) error {
	return w.enc.Encode(v)
}

// Close flushes the writer.
func (w *JSONWriter) Close() error {
	return w.w.Flush()
}

// JSONLWriter writes newline-delimited JSON (JSONL), one listing per line.
// Lines are flushed as they are written so a watcher's output can be tailed.
type JSONLWriter struct {
	w   *bufio.Writer
	enc *json.Encoder
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	return &JSONLWriter{w: bw, enc: enc}
}

// WriteListings writes one line per listing.
func (w *JSONLWriter) WriteListings(listings []listing.Listing) error {
	for _, l := range listings {
		if err := w.enc.Encode(l); err != nil {
			return err
		}
	}
	return w.w.Flush()
}

// WriteValue writes v as a single line.
func (w *JSONLWriter) WriteValue(v any) error {
	if err := w.enc.Encode(v); err != nil {
		return err
	}
	return w.w.Flush()
}

// Close flushes the writer.
func (w *JSONLWriter) Close() error {
	return w.w.Flush()
}
