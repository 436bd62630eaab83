package tree

import (
	"iter"
	"maps"
	"slices"

	"github.com/zoobzio/datafix"
)

// Ops implements datafix.Ops for Values. It is stateless; the zero value is
// ready to use.
type Ops struct{}

var _ datafix.Ops[Value] = Ops{}

func (Ops) CreateNumber(value float64) Value { return Number(value) }
func (Ops) CreateString(value string) Value  { return String(value) }
func (Ops) CreateBoolean(value bool) Value   { return Bool(value) }
func (Ops) CreateUnit() Value                { return Unit() }

func (Ops) CreateList(values []Value) Value {
	return Value{shape: datafix.ShapeList, list: slices.Clone(values)}
}

func (Ops) CreateMap(entries []datafix.Entry[Value]) Value {
	v := Value{shape: datafix.ShapeMap, fields: make(map[string]*Value, len(entries))}
	for _, e := range entries {
		field := e.Value
		v.fields[e.Key] = &field
	}
	return v
}

func (Ops) GetNumber(value Value) (float64, error) {
	if value.shape != datafix.ShapeNumber {
		return 0, datafix.NewShapeError(datafix.ShapeNumber, value.shape)
	}
	return value.number, nil
}

func (Ops) GetString(value Value) (string, error) {
	if value.shape != datafix.ShapeString {
		return "", datafix.NewShapeError(datafix.ShapeString, value.shape)
	}
	return value.str, nil
}

func (Ops) GetBoolean(value Value) (bool, error) {
	if value.shape != datafix.ShapeBoolean {
		return false, datafix.NewShapeError(datafix.ShapeBoolean, value.shape)
	}
	return value.boolean, nil
}

func (Ops) GetUnit(value Value) error {
	if value.shape != datafix.ShapeMap || len(value.fields) != 0 {
		return datafix.NewShapeError(datafix.ShapeUnit, value.shape)
	}
	return nil
}

// GetList returns a read-only view. Elements it hands out are deep copies,
// so editing them leaves value untouched.
func (Ops) GetList(value Value) (datafix.ListView[Value], error) {
	if value.shape != datafix.ShapeList {
		return nil, datafix.NewShapeError(datafix.ShapeList, value.shape)
	}
	return &listReader{items: value.list}, nil
}

func (Ops) GetListMut(value *Value) (datafix.ListViewMut[Value], error) {
	if value.shape != datafix.ShapeList {
		return nil, datafix.NewShapeError(datafix.ShapeList, value.shape)
	}
	return &listView{node: value}, nil
}

// GetMap returns a read-only view. Values it hands out are deep copies.
func (Ops) GetMap(value Value) (datafix.MapView[Value], error) {
	if value.shape != datafix.ShapeMap {
		return nil, datafix.NewShapeError(datafix.ShapeMap, value.shape)
	}
	return mapReader(value.fields), nil
}

func (Ops) GetMapMut(value *Value) (datafix.MapViewMut[Value], error) {
	if value.shape != datafix.ShapeMap {
		return nil, datafix.NewShapeError(datafix.ShapeMap, value.shape)
	}
	if value.fields == nil {
		value.fields = make(map[string]*Value)
	}
	return &mapView{node: value}, nil
}

type mapReader map[string]*Value

func (m mapReader) Get(key string) (Value, error) {
	f, ok := m[key]
	if !ok {
		return Value{}, datafix.NewKeyError(key)
	}
	return f.Clone(), nil
}

func (m mapReader) Keys() []string {
	return slices.Collect(maps.Keys(m))
}

type listReader struct {
	items    []Value
	consumed bool
}

func (l *listReader) Get(index int) (Value, error) {
	if index < 0 || index >= len(l.items) {
		return Value{}, datafix.NewIndexError(index, len(l.items))
	}
	return l.items[index].Clone(), nil
}

func (l *listReader) Len() int {
	return len(l.items)
}

func (l *listReader) Values() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		if l.consumed {
			return
		}
		l.consumed = true
		for _, item := range l.items {
			if !yield(item.Clone()) {
				return
			}
		}
	}
}

type mapView struct {
	node *Value
}

func (m *mapView) Get(key string) (Value, error) {
	f, ok := m.node.fields[key]
	if !ok {
		return Value{}, datafix.NewKeyError(key)
	}
	return *f, nil
}

func (m *mapView) Keys() []string {
	return slices.Collect(maps.Keys(m.node.fields))
}

func (m *mapView) GetMut(key string) (*Value, error) {
	f, ok := m.node.fields[key]
	if !ok {
		return nil, datafix.NewKeyError(key)
	}
	return f, nil
}

func (m *mapView) Set(key string, value Value) {
	m.node.fields[key] = &value
}

func (m *mapView) Remove(key string) (Value, error) {
	f, ok := m.node.fields[key]
	if !ok {
		return Value{}, datafix.NewKeyError(key)
	}
	delete(m.node.fields, key)
	return *f, nil
}

func (m *mapView) Update(key string, f func(*Value)) {
	if field, ok := m.node.fields[key]; ok {
		f(field)
	}
}

type listView struct {
	node     *Value
	consumed bool
}

func (l *listView) Get(index int) (Value, error) {
	if index < 0 || index >= len(l.node.list) {
		return Value{}, datafix.NewIndexError(index, len(l.node.list))
	}
	return l.node.list[index], nil
}

func (l *listView) Len() int {
	return len(l.node.list)
}

func (l *listView) Values() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		if l.consumed {
			return
		}
		l.consumed = true
		for _, item := range l.node.list {
			if !yield(item) {
				return
			}
		}
	}
}

func (l *listView) Append(value Value) {
	l.node.list = append(l.node.list, value)
}

func (l *listView) GetMut(index int) (*Value, error) {
	if index < 0 || index >= len(l.node.list) {
		return nil, datafix.NewIndexError(index, len(l.node.list))
	}
	return &l.node.list[index], nil
}
