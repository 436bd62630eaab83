package datafix

import (
	"cmp"
	"fmt"
)

type xmapCodec[A, B, R any] struct {
	inner Codec[A, R]
	to    func(A) B
	from  func(B) A
}

func (c xmapCodec[A, B, R]) Encode(ops Ops[R], value B) (R, error) {
	return c.inner.Encode(ops, c.from(value))
}

func (c xmapCodec[A, B, R]) Decode(ops Ops[R], value *R) (B, error) {
	decoded, err := c.inner.Decode(ops, value)
	if err != nil {
		var zero B
		return zero, err
	}
	return c.to(decoded), nil
}

// XMap relabels a codec for A as a codec for B. The caller guarantees that
// to and from are inverses on the values that flow through; this is not
// checked.
func XMap[A, B, R any](c Codec[A, R], to func(A) B, from func(B) A) Codec[B, R] {
	return xmapCodec[A, B, R]{inner: c, to: to, from: from}
}

// Tuple is the value carried by a Pair codec.
type Tuple[A, B any] struct {
	Left  A
	Right B
}

const (
	pairLeft  = "left"
	pairRight = "right"
)

type pairCodec[A, B, R any] struct {
	left  Codec[A, R]
	right Codec[B, R]
}

func (c pairCodec[A, B, R]) Encode(ops Ops[R], value Tuple[A, B]) (R, error) {
	var zero R
	left, err := c.left.Encode(ops, value.Left)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", pairLeft, err)
	}
	right, err := c.right.Encode(ops, value.Right)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", pairRight, err)
	}
	return ops.CreateMap([]Entry[R]{
		{Key: pairLeft, Value: left},
		{Key: pairRight, Value: right},
	}), nil
}

func (c pairCodec[A, B, R]) Decode(ops Ops[R], value *R) (Tuple[A, B], error) {
	var out Tuple[A, B]
	view, err := ops.GetMapMut(value)
	if err != nil {
		return out, err
	}
	node, err := view.GetMut(pairLeft)
	if err != nil {
		return out, err
	}
	if out.Left, err = c.left.Decode(ops, node); err != nil {
		return Tuple[A, B]{}, fmt.Errorf("%s: %w", pairLeft, err)
	}
	node, err = view.GetMut(pairRight)
	if err != nil {
		return Tuple[A, B]{}, err
	}
	if out.Right, err = c.right.Decode(ops, node); err != nil {
		return Tuple[A, B]{}, fmt.Errorf("%s: %w", pairRight, err)
	}
	return out, nil
}

// Pair combines two codecs into one for a Tuple, represented as a map with
// exactly the keys "left" and "right".
func Pair[A, B, R any](left Codec[A, R], right Codec[B, R]) Codec[Tuple[A, B], R] {
	return pairCodec[A, B, R]{left: left, right: right}
}

type listCodec[T, R any] struct {
	inner Codec[T, R]
}

func (c listCodec[T, R]) Encode(ops Ops[R], value []T) (R, error) {
	items := make([]R, 0, len(value))
	for i, element := range value {
		encoded, err := c.inner.Encode(ops, element)
		if err != nil {
			var zero R
			return zero, fmt.Errorf("element %d: %w", i, err)
		}
		items = append(items, encoded)
	}
	return ops.CreateList(items), nil
}

func (c listCodec[T, R]) Decode(ops Ops[R], value *R) ([]T, error) {
	view, err := ops.GetListMut(value)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		node, err := view.GetMut(i)
		if err != nil {
			return nil, err
		}
		decoded, err := c.inner.Decode(ops, node)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, decoded)
	}
	return out, nil
}

// ListOf returns a codec for homogeneous slices. Both directions stop at the
// first failing element and return no partial result.
func ListOf[T, R any](c Codec[T, R]) Codec[[]T, R] {
	return listCodec[T, R]{inner: c}
}

type boundedCodec[T cmp.Ordered, R any] struct {
	inner Codec[T, R]
	rng   Range[T]
}

func (c boundedCodec[T, R]) Encode(ops Ops[R], value T) (R, error) {
	if !c.rng.Contains(value) {
		var zero R
		return zero, Validationf("value %v must be in bounds of %s", value, c.rng)
	}
	return c.inner.Encode(ops, value)
}

func (c boundedCodec[T, R]) Decode(ops Ops[R], value *R) (T, error) {
	decoded, err := c.inner.Decode(ops, value)
	if err != nil {
		return decoded, err
	}
	if !c.rng.Contains(decoded) {
		var zero T
		return zero, Validationf("value %v must be in bounds of %s", decoded, c.rng)
	}
	return decoded, nil
}

// Bounded rejects values outside rng: before encoding, and after decoding.
// Neither direction hands an out-of-range value to the caller.
func Bounded[T cmp.Ordered, R any](c Codec[T, R], rng Range[T]) Codec[T, R] {
	return boundedCodec[T, R]{inner: c, rng: rng}
}

type tryElseCodec[T, R any] struct {
	first  Codec[T, R]
	second Codec[T, R]
}

func (c tryElseCodec[T, R]) Encode(ops Ops[R], value T) (R, error) {
	if encoded, err := c.first.Encode(ops, value); err == nil {
		return encoded, nil
	}
	return c.second.Encode(ops, value)
}

func (c tryElseCodec[T, R]) Decode(ops Ops[R], value *R) (T, error) {
	if decoded, err := c.first.Decode(ops, value); err == nil {
		return decoded, nil
	}
	return c.second.Decode(ops, value)
}

// TryElse uses c and falls back to other when c fails, in either direction.
// It fails only when both fail, returning the error from other.
//
// Repairs performed in place by c before it failed are visible to other.
func TryElse[T, R any](c, other Codec[T, R]) Codec[T, R] {
	return tryElseCodec[T, R]{first: c, second: other}
}

type orElseCodec[T, R any] struct {
	inner    Codec[T, R]
	fallback func() T
}

func (c orElseCodec[T, R]) Encode(ops Ops[R], value T) (R, error) {
	return c.inner.Encode(ops, value)
}

func (c orElseCodec[T, R]) Decode(ops Ops[R], value *R) (T, error) {
	decoded, err := c.inner.Decode(ops, value)
	if err != nil {
		return c.fallback(), nil
	}
	return decoded, nil
}

// OrElse substitutes a freshly computed default when decoding fails.
// Encoding is unaffected. For absent record fields use OptionalFieldOf.
func OrElse[T, R any](c Codec[T, R], fallback func() T) Codec[T, R] {
	return orElseCodec[T, R]{inner: c, fallback: fallback}
}
