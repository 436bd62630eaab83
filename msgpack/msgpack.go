// Package msgpack provides a MessagePack format for tree values.
package msgpack

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/datafix"
	"github.com/zoobzio/datafix/tree"
)

// msgpackFormat implements datafix.Format for MessagePack.
type msgpackFormat struct{}

// New returns a MessagePack format.
func New() datafix.Format[tree.Value] {
	return &msgpackFormat{}
}

// ContentType returns the MIME type for MessagePack.
func (f *msgpackFormat) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack. Map keys are sorted so equal trees
// always produce equal bytes.
func (f *msgpackFormat) Marshal(v tree.Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v.Native()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes MessagePack data into a tree. Integer and float
// encodings of any width become numbers; nil is read as unit.
func (f *msgpackFormat) Unmarshal(data []byte) (tree.Value, error) {
	var raw any
	if err := msgpack.Unmarshal(data, &raw); err != nil {
		return tree.Value{}, err
	}
	return tree.FromNative(raw)
}
