// Package testing provides fixture types and helpers for codec tests.
//
// The fixtures are generic over the representation type, so the same
// codecs drive the tree, JSON, MessagePack, BSON and YAML tests.
package testing

import (
	"testing"

	"github.com/zoobzio/datafix"
)

// GameConfig is a small settings record with bounded fields.
type GameConfig struct {
	Volume         int32
	Gamma          int32
	RenderDistance *uint8
}

// Field keys used by GameConfigCodec.
const (
	KeyVolume         = "volume"
	KeyGamma          = "gamma"
	KeyRenderDistance = "render_distance"
)

// GameConfigCodec encodes GameConfig as a map. Volume must lie in [0, 100],
// gamma in [1, 30) and render distance, when present, in [2, 32].
func GameConfigCodec[R any]() datafix.Codec[GameConfig, R] {
	volume := datafix.FieldOf(KeyVolume,
		datafix.Bounded(datafix.Int32[R](), datafix.Closed[int32](0, 100)),
		func(c GameConfig) int32 { return c.Volume })
	gamma := datafix.FieldOf(KeyGamma,
		datafix.Bounded(datafix.Int32[R](), datafix.Between[int32](1, 30)),
		func(c GameConfig) int32 { return c.Gamma })
	distance := datafix.OptionalFieldOf(KeyRenderDistance,
		datafix.Bounded(datafix.Uint8[R](), datafix.Closed[uint8](2, 32)),
		func(c GameConfig) *uint8 { return c.RenderDistance })

	return datafix.NewRecord[GameConfig, R]().
		With(volume, gamma, distance).
		Build(func(a datafix.Args) (GameConfig, error) {
			return GameConfig{
				Volume:         volume.From(a),
				Gamma:          gamma.From(a),
				RenderDistance: distance.From(a),
			}, nil
		})
}

// LegacyGameConfigRules upgrades configs written before "vol" was renamed to
// "volume" and before gamma existed.
func LegacyGameConfigRules[R any]() datafix.Rule[R] {
	return datafix.Rules(
		datafix.RenameField[R]("vol", KeyVolume),
		datafix.DefaultField(KeyGamma, func(ops datafix.Ops[R]) R {
			return ops.CreateNumber(15)
		}),
	)
}

// Chain is a singly linked list of integers.
type Chain struct {
	Value int
	Next  *Chain
}

// ChainCodec encodes a Chain as nested maps, omitting "next" at the tail.
func ChainCodec[R any]() datafix.Codec[Chain, R] {
	return datafix.Recursive(func(self datafix.Codec[Chain, R]) datafix.Codec[Chain, R] {
		value := datafix.FieldOf("value", datafix.Int[R](), func(c Chain) int { return c.Value })
		next := datafix.OptionalFieldOf("next", self, func(c Chain) *Chain { return c.Next })
		return datafix.NewRecord[Chain, R]().
			With(value, next).
			Build(func(a datafix.Args) (Chain, error) {
				return Chain{Value: value.From(a), Next: next.From(a)}, nil
			})
	})
}

// NewChain links values head first.
func NewChain(values ...int) *Chain {
	var head *Chain
	for i := len(values) - 1; i >= 0; i-- {
		head = &Chain{Value: values[i], Next: head}
	}
	return head
}

// Values flattens the chain starting at c.
func (c *Chain) Values() []int {
	var out []int
	for n := c; n != nil; n = n.Next {
		out = append(out, n.Value)
	}
	return out
}

// Node is a labelled rose tree.
type Node struct {
	Label    string
	Children []*Node
}

// NodeCodec encodes a Node as {"label": ..., "children": [...]}.
func NodeCodec[R any]() datafix.Codec[Node, R] {
	return datafix.Recursive(func(self datafix.Codec[Node, R]) datafix.Codec[Node, R] {
		label := datafix.FieldOf("label", datafix.String[R](), func(n Node) string { return n.Label })
		children := datafix.FieldOf("children", datafix.ListOf(datafix.Boxed(self)),
			func(n Node) []*Node { return n.Children })
		return datafix.NewRecord[Node, R]().
			With(label, children).
			Build(func(a datafix.Args) (Node, error) {
				return Node{Label: label.From(a), Children: children.From(a)}, nil
			})
	})
}

// Count returns the number of nodes in the tree rooted at n.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// RoundTrip encodes value with c and decodes the result, failing tb on error.
func RoundTrip[T, R any](tb testing.TB, c datafix.Codec[T, R], ops datafix.Ops[R], value T) T {
	tb.Helper()
	encoded, err := c.Encode(ops, value)
	if err != nil {
		tb.Fatalf("Encode() error: %v", err)
	}
	decoded, err := c.Decode(ops, &encoded)
	if err != nil {
		tb.Fatalf("Decode() error: %v", err)
	}
	return decoded
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
