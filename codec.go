package datafix

import (
	"math"
)

// Codec converts values of type T to and from representation nodes of type R.
//
// Codecs are immutable once built. Encode and Decode must be pure and
// deterministic for identical inputs. Decode receives the node by pointer
// and may repair it in place before reading.
type Codec[T, R any] interface {
	Encode(ops Ops[R], value T) (R, error)
	Decode(ops Ops[R], value *R) (T, error)
}

// CodecFunc adapts a pair of functions into a Codec.
type CodecFunc[T, R any] struct {
	EncodeFunc func(ops Ops[R], value T) (R, error)
	DecodeFunc func(ops Ops[R], value *R) (T, error)
}

func (c CodecFunc[T, R]) Encode(ops Ops[R], value T) (R, error) {
	return c.EncodeFunc(ops, value)
}

func (c CodecFunc[T, R]) Decode(ops Ops[R], value *R) (T, error) {
	return c.DecodeFunc(ops, value)
}

// Numeric lists the Go number types carried by the number shape.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

type numberCodec[N Numeric, R any] struct{}

func (numberCodec[N, R]) Encode(ops Ops[R], value N) (R, error) {
	f := float64(value)
	if isInteger[N]() && math.Abs(f) >= maxExactInt {
		if math.Abs(f) > maxExactInt || N(f) != value {
			var zero R
			return zero, Validationf("integer %v exceeds 2^53 and cannot be stored exactly", value)
		}
	}
	return ops.CreateNumber(f), nil
}

func (numberCodec[N, R]) Decode(ops Ops[R], value *R) (N, error) {
	f, err := ops.GetNumber(*value)
	if err != nil {
		return 0, err
	}
	return fromFloat[N](f)
}

// maxExactInt is the largest integer magnitude a float64 holds exactly
// together with all its neighbours.
const maxExactInt = 1 << 53

func isInteger[N Numeric]() bool {
	half := 0.5
	return N(half) == 0
}

// fromFloat narrows f to N. Integer targets truncate toward zero and reject
// NaN and values outside their range.
func fromFloat[N Numeric](f float64) (N, error) {
	if !isInteger[N]() {
		return N(f), nil
	}
	if math.IsNaN(f) {
		return 0, Validationf("cannot represent NaN as an integer")
	}
	t := math.Trunc(f)
	n := N(t)
	if float64(n) != t {
		return 0, Validationf("number %v out of range", f)
	}
	return n, nil
}

// Number returns the codec for any Go numeric type. Values travel through
// the backend as float64, so integer encodes fail with a ValidationError
// once the magnitude passes 2^53.
func Number[N Numeric, R any]() Codec[N, R] {
	return numberCodec[N, R]{}
}

func Float64[R any]() Codec[float64, R] { return Number[float64, R]() }
func Float32[R any]() Codec[float32, R] { return Number[float32, R]() }
func Int[R any]() Codec[int, R]         { return Number[int, R]() }
func Int8[R any]() Codec[int8, R]       { return Number[int8, R]() }
func Int16[R any]() Codec[int16, R]     { return Number[int16, R]() }
func Int32[R any]() Codec[int32, R]     { return Number[int32, R]() }
// Int64 covers integers up to 2^53 in magnitude; larger values fail to encode.
func Int64[R any]() Codec[int64, R]     { return Number[int64, R]() }
func Uint[R any]() Codec[uint, R]       { return Number[uint, R]() }
func Uint8[R any]() Codec[uint8, R]     { return Number[uint8, R]() }
func Uint16[R any]() Codec[uint16, R]   { return Number[uint16, R]() }
func Uint32[R any]() Codec[uint32, R]   { return Number[uint32, R]() }
// Uint64 covers integers up to 2^53; larger values fail to encode.
func Uint64[R any]() Codec[uint64, R]   { return Number[uint64, R]() }

type stringCodec[R any] struct{}

func (stringCodec[R]) Encode(ops Ops[R], value string) (R, error) {
	return ops.CreateString(value), nil
}

func (stringCodec[R]) Decode(ops Ops[R], value *R) (string, error) {
	return ops.GetString(*value)
}

// String returns the codec for Go strings.
func String[R any]() Codec[string, R] {
	return stringCodec[R]{}
}

type boolCodec[R any] struct{}

func (boolCodec[R]) Encode(ops Ops[R], value bool) (R, error) {
	return ops.CreateBoolean(value), nil
}

func (boolCodec[R]) Decode(ops Ops[R], value *R) (bool, error) {
	return ops.GetBoolean(*value)
}

// Bool returns the codec for Go booleans.
func Bool[R any]() Codec[bool, R] {
	return boolCodec[R]{}
}

type unitCodec[R any] struct{}

func (unitCodec[R]) Encode(ops Ops[R], _ struct{}) (R, error) {
	return ops.CreateUnit(), nil
}

func (unitCodec[R]) Decode(ops Ops[R], value *R) (struct{}, error) {
	return struct{}{}, ops.GetUnit(*value)
}

// Unit returns the codec for the empty value.
func Unit[R any]() Codec[struct{}, R] {
	return unitCodec[R]{}
}
