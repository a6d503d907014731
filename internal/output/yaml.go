package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/amineremache/dafty-mcp/pkg/listing"
)

// YAMLWriter writes YAML documents, separated by "---" when more than one
// is written.
type YAMLWriter struct {
	enc *yaml.Encoder
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return &YAMLWriter{enc: enc}
}

// WriteListings writes the listings as a YAML sequence.
func (w *YAMLWriter) WriteListings(listings []listing.Listing) error {
	return w.enc.Encode(nonNil(listings))
}

// WriteValue writes v as a YAML document. Raw JSON is decoded first so it
// renders as YAML structure rather than a byte string.
func (w *YAMLWriter) WriteValue(v any) error {
	if raw, ok := v.(json.RawMessage); ok {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return err
		}
		v = decoded
	}
	return w.enc.Encode(v)
}

// Close finishes the YAML stream.
func (w *YAMLWriter) Close() error {
	return w.enc.Close()
}
