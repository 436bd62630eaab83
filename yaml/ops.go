package yaml

import (
	"iter"
	"math"
	"strconv"

	"github.com/zoobzio/datafix"
	"gopkg.in/yaml.v3"
)

const (
	tagNull  = "!!null"
	tagBool  = "!!bool"
	tagInt   = "!!int"
	tagFloat = "!!float"
	tagStr   = "!!str"
	tagSeq   = "!!seq"
	tagMap   = "!!map"
)

// maxExactInt is the largest magnitude rendered as a YAML integer.
const maxExactInt = 1 << 53

// Ops implements datafix.Ops for *yaml.Node. Document and alias nodes are
// followed transparently. A null scalar and an empty mapping both read as
// unit.
type Ops struct{}

var _ datafix.Ops[*yaml.Node] = Ops{}

// resolve follows document wrappers and aliases to the node holding data.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch {
		case n.Kind == yaml.DocumentNode && len(n.Content) > 0:
			n = n.Content[0]
		case n.Kind == yaml.AliasNode && n.Alias != nil:
			n = n.Alias
		default:
			return n
		}
	}
	return n
}

// ShapeOf reports the shape of n.
func ShapeOf(n *yaml.Node) datafix.Shape {
	n = resolve(n)
	if n == nil {
		return datafix.ShapeUnit
	}
	switch n.Kind {
	case yaml.MappingNode:
		return datafix.ShapeMap
	case yaml.SequenceNode:
		return datafix.ShapeList
	}
	switch n.ShortTag() {
	case tagInt, tagFloat:
		return datafix.ShapeNumber
	case tagBool:
		return datafix.ShapeBoolean
	case tagNull:
		return datafix.ShapeUnit
	}
	return datafix.ShapeString
}

func (Ops) CreateNumber(value float64) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: tagFloat}
	switch {
	case math.IsNaN(value):
		n.Value = ".nan"
	case math.IsInf(value, 1):
		n.Value = ".inf"
	case math.IsInf(value, -1):
		n.Value = "-.inf"
	case value == 0 && math.Signbit(value):
		// "-0" resolves as the integer 0.
		n.Value = "-0.0"
	case value == math.Trunc(value) && math.Abs(value) < maxExactInt:
		n.Tag = tagInt
		n.Value = strconv.FormatInt(int64(value), 10)
	default:
		n.Value = strconv.FormatFloat(value, 'g', -1, 64)
	}
	return n
}

func (Ops) CreateString(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagStr, Value: value}
}

func (Ops) CreateBoolean(value bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagBool, Value: strconv.FormatBool(value)}
}

func (Ops) CreateUnit() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: tagMap, Style: yaml.FlowStyle}
}

func (Ops) CreateList(values []*yaml.Node) *yaml.Node {
	content := make([]*yaml.Node, len(values))
	copy(content, values)
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: tagSeq, Content: content}
}

func (Ops) CreateMap(entries []datafix.Entry[*yaml.Node]) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: tagMap}
	view := &mapView{node: n}
	for _, e := range entries {
		view.Set(e.Key, e.Value)
	}
	return n
}

func (Ops) GetNumber(value *yaml.Node) (float64, error) {
	if s := ShapeOf(value); s != datafix.ShapeNumber {
		return 0, datafix.NewShapeError(datafix.ShapeNumber, s)
	}
	var f float64
	if err := resolve(value).Decode(&f); err != nil {
		return 0, datafix.Validationf("number %q: %v", resolve(value).Value, err)
	}
	return f, nil
}

func (Ops) GetString(value *yaml.Node) (string, error) {
	if s := ShapeOf(value); s != datafix.ShapeString {
		return "", datafix.NewShapeError(datafix.ShapeString, s)
	}
	return resolve(value).Value, nil
}

func (Ops) GetBoolean(value *yaml.Node) (bool, error) {
	if s := ShapeOf(value); s != datafix.ShapeBoolean {
		return false, datafix.NewShapeError(datafix.ShapeBoolean, s)
	}
	var b bool
	if err := resolve(value).Decode(&b); err != nil {
		return false, datafix.Validationf("boolean %q: %v", resolve(value).Value, err)
	}
	return b, nil
}

func (Ops) GetUnit(value *yaml.Node) error {
	switch s := ShapeOf(value); s {
	case datafix.ShapeUnit:
		return nil
	case datafix.ShapeMap:
		if len(resolve(value).Content) == 0 {
			return nil
		}
		return datafix.NewShapeError(datafix.ShapeUnit, s)
	default:
		return datafix.NewShapeError(datafix.ShapeUnit, s)
	}
}

func (o Ops) GetList(value *yaml.Node) (datafix.ListView[*yaml.Node], error) {
	return o.GetListMut(&value)
}

func (Ops) GetListMut(value **yaml.Node) (datafix.ListViewMut[*yaml.Node], error) {
	if s := ShapeOf(*value); s != datafix.ShapeList {
		return nil, datafix.NewShapeError(datafix.ShapeList, s)
	}
	return &listView{node: resolve(*value)}, nil
}

func (o Ops) GetMap(value *yaml.Node) (datafix.MapView[*yaml.Node], error) {
	return o.GetMapMut(&value)
}

func (Ops) GetMapMut(value **yaml.Node) (datafix.MapViewMut[*yaml.Node], error) {
	if s := ShapeOf(*value); s != datafix.ShapeMap {
		return nil, datafix.NewShapeError(datafix.ShapeMap, s)
	}
	return &mapView{node: resolve(*value)}, nil
}

// mapView walks the key/value pairs stored flat in a mapping node's Content.
type mapView struct {
	node *yaml.Node
}

func (m *mapView) index(key string) int {
	for i := 0; i+1 < len(m.node.Content); i += 2 {
		if m.node.Content[i].Value == key {
			return i
		}
	}
	return -1
}

func (m *mapView) Get(key string) (*yaml.Node, error) {
	i := m.index(key)
	if i < 0 {
		return nil, datafix.NewKeyError(key)
	}
	return m.node.Content[i+1], nil
}

func (m *mapView) Keys() []string {
	keys := make([]string, 0, len(m.node.Content)/2)
	for i := 0; i+1 < len(m.node.Content); i += 2 {
		keys = append(keys, m.node.Content[i].Value)
	}
	return keys
}

func (m *mapView) GetMut(key string) (**yaml.Node, error) {
	i := m.index(key)
	if i < 0 {
		return nil, datafix.NewKeyError(key)
	}
	return &m.node.Content[i+1], nil
}

func (m *mapView) Set(key string, value *yaml.Node) {
	if i := m.index(key); i >= 0 {
		m.node.Content[i+1] = value
		return
	}
	k := &yaml.Node{Kind: yaml.ScalarNode, Tag: tagStr, Value: key}
	m.node.Content = append(m.node.Content, k, value)
}

func (m *mapView) Remove(key string) (*yaml.Node, error) {
	i := m.index(key)
	if i < 0 {
		return nil, datafix.NewKeyError(key)
	}
	old := m.node.Content[i+1]
	m.node.Content = append(m.node.Content[:i], m.node.Content[i+2:]...)
	return old, nil
}

func (m *mapView) Update(key string, f func(**yaml.Node)) {
	if i := m.index(key); i >= 0 {
		f(&m.node.Content[i+1])
	}
}

type listView struct {
	node     *yaml.Node
	consumed bool
}

func (l *listView) Get(index int) (*yaml.Node, error) {
	if index < 0 || index >= len(l.node.Content) {
		return nil, datafix.NewIndexError(index, len(l.node.Content))
	}
	return l.node.Content[index], nil
}

func (l *listView) Len() int {
	return len(l.node.Content)
}

func (l *listView) Values() iter.Seq[*yaml.Node] {
	return func(yield func(*yaml.Node) bool) {
		if l.consumed {
			return
		}
		l.consumed = true
		for _, item := range l.node.Content {
			if !yield(item) {
				return
			}
		}
	}
}

func (l *listView) Append(value *yaml.Node) {
	l.node.Content = append(l.node.Content, value)
}

func (l *listView) GetMut(index int) (**yaml.Node, error) {
	if index < 0 || index >= len(l.node.Content) {
		return nil, datafix.NewIndexError(index, len(l.node.Content))
	}
	return &l.node.Content[index], nil
}
