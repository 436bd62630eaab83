package datafix

// Either holds a value of exactly one of two unrelated types.
// The zero value holds the zero A.
type Either[A, B any] struct {
	left    A
	right   B
	isRight bool
}

// Left returns an Either occupying its left arm.
func Left[A, B any](value A) Either[A, B] {
	return Either[A, B]{left: value}
}

// Right returns an Either occupying its right arm.
func Right[A, B any](value B) Either[A, B] {
	return Either[A, B]{right: value, isRight: true}
}

func (e Either[A, B]) IsLeft() bool  { return !e.isRight }
func (e Either[A, B]) IsRight() bool { return e.isRight }

// Left returns the left value and whether the left arm is occupied.
func (e Either[A, B]) Left() (A, bool) {
	return e.left, !e.isRight
}

// Right returns the right value and whether the right arm is occupied.
func (e Either[A, B]) Right() (B, bool) {
	return e.right, e.isRight
}

type eitherCodec[A, B, R any] struct {
	left  Codec[A, R]
	right Codec[B, R]
}

func (c eitherCodec[A, B, R]) Encode(ops Ops[R], value Either[A, B]) (R, error) {
	if value.isRight {
		return c.right.Encode(ops, value.right)
	}
	return c.left.Encode(ops, value.left)
}

func (c eitherCodec[A, B, R]) Decode(ops Ops[R], value *R) (Either[A, B], error) {
	if left, err := c.left.Decode(ops, value); err == nil {
		return Left[A, B](left), nil
	}
	right, err := c.right.Decode(ops, value)
	if err != nil {
		return Either[A, B]{}, err
	}
	return Right[A](right), nil
}

// EitherOf returns a codec for the union of two types. Encoding follows the
// occupied arm. Decoding tries left first and only falls back to right when
// left fails, so a node accepted by both arms always decodes as left. When
// both fail, the right arm's error is returned.
func EitherOf[A, B, R any](left Codec[A, R], right Codec[B, R]) Codec[Either[A, B], R] {
	return eitherCodec[A, B, R]{left: left, right: right}
}
