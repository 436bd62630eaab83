package tree

import (
	"encoding/json"
	"fmt"

	"github.com/zoobzio/datafix"
)

// Native converts v into plain Go data: float64, string, bool, []any and
// map[string]any. Wire formats marshal this form.
func (v Value) Native() any {
	switch v.shape {
	case datafix.ShapeString:
		return v.str
	case datafix.ShapeBoolean:
		return v.boolean
	case datafix.ShapeList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Native()
		}
		return out
	case datafix.ShapeMap:
		out := make(map[string]any, len(v.fields))
		for k, f := range v.fields {
			out[k] = f.Native()
		}
		return out
	}
	return v.number
}

// FromNative converts decoded Go data into a Value. All integer and float
// kinds become numbers. nil is read as unit since the tree has no null.
func FromNative(data any) (Value, error) {
	switch d := data.(type) {
	case nil:
		return Unit(), nil
	case Value:
		return d, nil
	case bool:
		return Bool(d), nil
	case string:
		return String(d), nil
	case float64:
		return Number(d), nil
	case float32:
		return Number(float64(d)), nil
	case int:
		return Number(float64(d)), nil
	case int8:
		return Number(float64(d)), nil
	case int16:
		return Number(float64(d)), nil
	case int32:
		return Number(float64(d)), nil
	case int64:
		return Number(float64(d)), nil
	case uint:
		return Number(float64(d)), nil
	case uint8:
		return Number(float64(d)), nil
	case uint16:
		return Number(float64(d)), nil
	case uint32:
		return Number(float64(d)), nil
	case uint64:
		return Number(float64(d)), nil
	case json.Number:
		f, err := d.Float64()
		if err != nil {
			return Value{}, datafix.Validationf("number %q: %v", d.String(), err)
		}
		return Number(f), nil
	case []any:
		out := Value{shape: datafix.ShapeList, list: make([]Value, len(d))}
		for i, item := range d {
			converted, err := FromNative(item)
			if err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			out.list[i] = converted
		}
		return out, nil
	case map[string]any:
		out := Value{shape: datafix.ShapeMap, fields: make(map[string]*Value, len(d))}
		for k, item := range d {
			converted, err := FromNative(item)
			if err != nil {
				return Value{}, fmt.Errorf("field %q: %w", k, err)
			}
			out.fields[k] = &converted
		}
		return out, nil
	case map[any]any:
		out := Value{shape: datafix.ShapeMap, fields: make(map[string]*Value, len(d))}
		for k, item := range d {
			key, ok := k.(string)
			if !ok {
				return Value{}, datafix.Validationf("map key %v is not a string", k)
			}
			converted, err := FromNative(item)
			if err != nil {
				return Value{}, fmt.Errorf("field %q: %w", key, err)
			}
			out.fields[key] = &converted
		}
		return out, nil
	}
	return Value{}, datafix.Validationf("unsupported native type %T", data)
}
