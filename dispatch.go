package datafix

type dispatchCodec[T, R any] struct {
	byValue func(value T) (Codec[T, R], error)
	byRepr  func(ops Ops[R], value R) (Codec[T, R], error)
}

func (c dispatchCodec[T, R]) Encode(ops Ops[R], value T) (R, error) {
	var zero R
	selected, err := c.byValue(value)
	if err != nil {
		return zero, err
	}
	if selected == nil {
		return zero, Validationf("no codec selected for value %v", value)
	}
	return selected.Encode(ops, value)
}

func (c dispatchCodec[T, R]) Decode(ops Ops[R], value *R) (T, error) {
	var zero T
	selected, err := c.byRepr(ops, *value)
	if err != nil {
		return zero, err
	}
	if selected == nil {
		return zero, Validationf("no codec selected for representation")
	}
	return selected.Decode(ops, value)
}

// Dispatch picks a concrete codec per call: byValue chooses for encoding,
// byRepr inspects the node to choose for decoding.
//
// The two selectors must agree: whatever the codec chosen by byValue
// produces has to be accepted by the codec byRepr chooses for it. Selector
// failures should be reported with a *ValidationError.
func Dispatch[T, R any](
	byValue func(value T) (Codec[T, R], error),
	byRepr func(ops Ops[R], value R) (Codec[T, R], error),
) Codec[T, R] {
	return dispatchCodec[T, R]{byValue: byValue, byRepr: byRepr}
}
