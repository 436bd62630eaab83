// Package bson provides a BSON format for tree values.
//
// BSON documents are maps at the top level, so only map-shaped trees can
// be marshaled.
package bson

import (
	"github.com/zoobzio/datafix"
	"github.com/zoobzio/datafix/tree"
	"go.mongodb.org/mongo-driver/bson"
)

// bsonFormat implements datafix.Format for BSON.
type bsonFormat struct{}

// New returns a BSON format.
func New() datafix.Format[tree.Value] {
	return &bsonFormat{}
}

// ContentType returns the MIME type for BSON.
func (f *bsonFormat) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as a BSON document with keys in sorted order.
func (f *bsonFormat) Marshal(v tree.Value) ([]byte, error) {
	if v.Shape() != datafix.ShapeMap {
		return nil, datafix.NewShapeError(datafix.ShapeMap, v.Shape())
	}
	return bson.Marshal(toDocument(v))
}

// Unmarshal decodes a BSON document into a tree.
func (f *bsonFormat) Unmarshal(data []byte) (tree.Value, error) {
	var doc bson.D
	if err := bson.Unmarshal(data, &doc); err != nil {
		return tree.Value{}, err
	}
	return tree.FromNative(fromBSON(doc))
}

// toDocument converts a tree into ordered BSON values.
func toDocument(v tree.Value) any {
	switch v.Shape() {
	case datafix.ShapeMap:
		keys := v.Keys()
		doc := make(bson.D, 0, len(keys))
		for _, k := range keys {
			field, _ := v.Field(k)
			doc = append(doc, bson.E{Key: k, Value: toDocument(field)})
		}
		return doc
	case datafix.ShapeList:
		out := make(bson.A, 0, v.Len())
		list, _ := tree.Ops{}.GetList(v)
		for item := range list.Values() {
			out = append(out, toDocument(item))
		}
		return out
	}
	return v.Native()
}

// fromBSON rewrites driver container types into plain maps and slices.
func fromBSON(v any) any {
	switch d := v.(type) {
	case bson.D:
		out := make(map[string]any, len(d))
		for _, e := range d {
			out[e.Key] = fromBSON(e.Value)
		}
		return out
	case bson.M:
		out := make(map[string]any, len(d))
		for k, item := range d {
			out[k] = fromBSON(item)
		}
		return out
	case bson.A:
		out := make([]any, len(d))
		for i, item := range d {
			out[i] = fromBSON(item)
		}
		return out
	}
	return v
}
