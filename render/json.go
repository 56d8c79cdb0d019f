package render

import (
	"encoding/json"
	"io"

	"github.com/bichngocdo/pp-attachment-candidate-extraction/extract"
)

// JSONRenderer writes records as JSON lines to a writer.
type JSONRenderer struct {
	enc *json.Encoder
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{enc: json.NewEncoder(w)}
}

// Write serializes one record on its own line.
func (r *JSONRenderer) Write(rec extract.Record) error {
	return r.enc.Encode(rec)
}

// compile-time interface check
var _ extract.RecordWriter = (*JSONRenderer)(nil)
