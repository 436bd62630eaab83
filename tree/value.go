// Package tree provides the reference in-memory representation backend.
//
// A Value is a JSON-shaped node: numbers are float64 (integers exact up to
// 2^53 in magnitude), strings are UTF-8 text, lists are ordered and maps are
// keyed by string with no meaningful key order. The unit value is an empty
// map. Ops implements datafix.Ops[Value] over it.
//
// The wire formats in the json, msgpack and bson packages marshal Values.
package tree

import (
	"maps"
	"slices"

	"github.com/zoobzio/datafix"
)

// Value is one node of a representation tree. The zero Value is the number 0.
//
// Copying a Value is shallow: copies share list and map storage, which is
// what lets views and rewrite rules repair a tree in place.
type Value struct {
	shape   datafix.Shape
	number  float64
	str     string
	boolean bool
	list    []Value
	fields  map[string]*Value
}

// Number returns a number node.
func Number(n float64) Value {
	return Value{shape: datafix.ShapeNumber, number: n}
}

// String returns a string node.
func String(s string) Value {
	return Value{shape: datafix.ShapeString, str: s}
}

// Bool returns a boolean node.
func Bool(b bool) Value {
	return Value{shape: datafix.ShapeBoolean, boolean: b}
}

// List returns a list node holding items in order.
func List(items ...Value) Value {
	return Value{shape: datafix.ShapeList, list: slices.Clone(items)}
}

// Map returns a map node holding the given fields.
func Map(fields map[string]Value) Value {
	v := Value{shape: datafix.ShapeMap, fields: make(map[string]*Value, len(fields))}
	for k, field := range fields {
		v.fields[k] = &field
	}
	return v
}

// Unit returns the unit node, an empty map.
func Unit() Value {
	return Value{shape: datafix.ShapeMap, fields: map[string]*Value{}}
}

// Shape reports the node's shape. An empty map reports ShapeMap; it is also
// accepted as unit.
func (v Value) Shape() datafix.Shape {
	return v.shape
}

// Len returns the number of list items or map fields, 0 otherwise.
func (v Value) Len() int {
	switch v.shape {
	case datafix.ShapeList:
		return len(v.list)
	case datafix.ShapeMap:
		return len(v.fields)
	}
	return 0
}

// Field returns the value stored under key and whether it exists.
func (v Value) Field(key string) (Value, bool) {
	if v.shape != datafix.ShapeMap {
		return Value{}, false
	}
	f, ok := v.fields[key]
	if !ok {
		return Value{}, false
	}
	return *f, true
}

// Keys returns the map keys in sorted order, nil for other shapes.
func (v Value) Keys() []string {
	if v.shape != datafix.ShapeMap {
		return nil
	}
	return slices.Sorted(maps.Keys(v.fields))
}

// Clone returns a deep copy that shares no storage with v.
func (v Value) Clone() Value {
	out := v
	switch v.shape {
	case datafix.ShapeList:
		out.list = make([]Value, len(v.list))
		for i, item := range v.list {
			out.list[i] = item.Clone()
		}
	case datafix.ShapeMap:
		out.fields = make(map[string]*Value, len(v.fields))
		for k, f := range v.fields {
			c := f.Clone()
			out.fields[k] = &c
		}
	}
	return out
}

// Equal reports whether v and other are structurally identical.
func (v Value) Equal(other Value) bool {
	if v.shape != other.shape {
		return false
	}
	switch v.shape {
	case datafix.ShapeNumber:
		return v.number == other.number
	case datafix.ShapeString:
		return v.str == other.str
	case datafix.ShapeBoolean:
		return v.boolean == other.boolean
	case datafix.ShapeList:
		return slices.EqualFunc(v.list, other.list, Value.Equal)
	case datafix.ShapeMap:
		if len(v.fields) != len(other.fields) {
			return false
		}
		for k, f := range v.fields {
			o, ok := other.fields[k]
			if !ok || !f.Equal(*o) {
				return false
			}
		}
		return true
	}
	return true
}
