// Package json provides a JSON format for tree values.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/zoobzio/datafix"
	"github.com/zoobzio/datafix/tree"
)

var errTrailingData = errors.New("json: trailing data after top-level value")

// jsonFormat implements datafix.Format for JSON.
type jsonFormat struct{}

// New returns a JSON format.
func New() datafix.Format[tree.Value] {
	return &jsonFormat{}
}

// ContentType returns the MIME type for JSON.
func (f *jsonFormat) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON. Object keys are emitted in sorted order.
func (f *jsonFormat) Marshal(v tree.Value) ([]byte, error) {
	return json.Marshal(v.Native())
}

// Unmarshal decodes JSON data into a tree. Numbers are read exactly as
// written before being narrowed to float64; null is read as unit. Data
// after the first value is rejected.
func (f *jsonFormat) Unmarshal(data []byte) (tree.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return tree.Value{}, err
	}
	if err := dec.Decode(new(any)); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailingData
		}
		return tree.Value{}, err
	}
	return tree.FromNative(raw)
}
