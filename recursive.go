package datafix

import "sync/atomic"

// Recursive builds a codec that refers to itself. build receives a
// placeholder standing in for the finished codec and may embed it anywhere,
// typically inside an optional field or behind Boxed. The result of build is
// installed into the placeholder before Recursive returns.
//
// Using the placeholder before installation, for example by encoding with it
// inside build, is a programming error and panics with ErrUninitialized.
//
//	chain := datafix.Recursive(func(self datafix.Codec[Chain, tree.Value]) datafix.Codec[Chain, tree.Value] {
//	    value := datafix.FieldOf("value", datafix.Int[tree.Value](), func(c Chain) int { return c.Value })
//	    next := datafix.OptionalFieldOf("next", self, func(c Chain) *Chain { return c.Next })
//	    return datafix.NewRecord[Chain, tree.Value]().With(value, next).Build(func(a datafix.Args) (Chain, error) {
//	        return Chain{Value: value.From(a), Next: next.From(a)}, nil
//	    })
//	})
func Recursive[T, R any](build func(self Codec[T, R]) Codec[T, R]) SharedCodec[T, R] {
	var cell atomic.Pointer[SharedCodec[T, R]]

	placeholder := Dynamic[T, R](CodecFunc[T, R]{
		EncodeFunc: func(ops Ops[R], value T) (R, error) {
			return installed(&cell).Encode(ops, value)
		},
		DecodeFunc: func(ops Ops[R], value *R) (T, error) {
			return installed(&cell).Decode(ops, value)
		},
	})

	codec := Arc(build(placeholder))
	cell.Store(&codec)
	return codec
}

func installed[T, R any](cell *atomic.Pointer[SharedCodec[T, R]]) SharedCodec[T, R] {
	codec := cell.Load()
	if codec == nil {
		panic(ErrUninitialized)
	}
	return *codec
}
