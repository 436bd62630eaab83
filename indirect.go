package datafix

// DynamicCodec holds a codec behind an interface so codecs of different
// concrete types can be stored and swapped at runtime. It has a single owner
// and is not safe for concurrent use unless the wrapped codec is.
type DynamicCodec[T, R any] struct {
	codec Codec[T, R]
}

// Dynamic wraps c behind dynamic dispatch.
func Dynamic[T, R any](c Codec[T, R]) *DynamicCodec[T, R] {
	return &DynamicCodec[T, R]{codec: c}
}

func (d *DynamicCodec[T, R]) Encode(ops Ops[R], value T) (R, error) {
	return d.codec.Encode(ops, value)
}

func (d *DynamicCodec[T, R]) Decode(ops Ops[R], value *R) (T, error) {
	return d.codec.Decode(ops, value)
}

// SharedCodec is a reference to a codec that may be copied freely and used
// from many goroutines at once. Use it when the same codec is embedded in
// several places, such as inside a recursive structure.
type SharedCodec[T, R any] struct {
	shared *DynamicCodec[T, R]
}

// Arc wraps c for shared ownership.
func Arc[T, R any](c Codec[T, R]) SharedCodec[T, R] {
	return SharedCodec[T, R]{shared: Dynamic(c)}
}

func (s SharedCodec[T, R]) Encode(ops Ops[R], value T) (R, error) {
	return s.shared.Encode(ops, value)
}

func (s SharedCodec[T, R]) Decode(ops Ops[R], value *R) (T, error) {
	return s.shared.Decode(ops, value)
}

type boxedCodec[T, R any] struct {
	inner Codec[T, R]
}

func (c boxedCodec[T, R]) Encode(ops Ops[R], value *T) (R, error) {
	if value == nil {
		var zero R
		return zero, Validationf("cannot encode nil pointer")
	}
	return c.inner.Encode(ops, *value)
}

func (c boxedCodec[T, R]) Decode(ops Ops[R], value *R) (*T, error) {
	decoded, err := c.inner.Decode(ops, value)
	if err != nil {
		return nil, err
	}
	return &decoded, nil
}

// Boxed lifts a codec for T to a codec for *T, for recursive data whose
// size is otherwise unbounded. Encoding a nil pointer fails; use
// OptionalFieldOf for fields that may be absent.
func Boxed[T, R any](c Codec[T, R]) Codec[*T, R] {
	return boxedCodec[T, R]{inner: c}
}
