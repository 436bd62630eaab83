package datafix

import (
	"cmp"
	"fmt"
)

type boundKind uint8

const (
	unbounded boundKind = iota
	included
	excluded
)

type bound[T cmp.Ordered] struct {
	kind  boundKind
	value T
}

// Range is an interval of ordered values used by Bounded.
type Range[T cmp.Ordered] struct {
	lower bound[T]
	upper bound[T]
}

// Between is the half-open range [lo, hi).
func Between[T cmp.Ordered](lo, hi T) Range[T] {
	return Range[T]{lower: bound[T]{included, lo}, upper: bound[T]{excluded, hi}}
}

// Closed is the range [lo, hi].
func Closed[T cmp.Ordered](lo, hi T) Range[T] {
	return Range[T]{lower: bound[T]{included, lo}, upper: bound[T]{included, hi}}
}

// AtLeast is the range [lo, ∞).
func AtLeast[T cmp.Ordered](lo T) Range[T] {
	return Range[T]{lower: bound[T]{kind: included, value: lo}}
}

// Above is the range (lo, ∞).
func Above[T cmp.Ordered](lo T) Range[T] {
	return Range[T]{lower: bound[T]{kind: excluded, value: lo}}
}

// AtMost is the range (-∞, hi].
func AtMost[T cmp.Ordered](hi T) Range[T] {
	return Range[T]{upper: bound[T]{kind: included, value: hi}}
}

// Below is the range (-∞, hi).
func Below[T cmp.Ordered](hi T) Range[T] {
	return Range[T]{upper: bound[T]{kind: excluded, value: hi}}
}

// Contains reports whether v lies inside the range. NaN is never inside.
func (r Range[T]) Contains(v T) bool {
	if isNaN(v) {
		return false
	}
	switch r.lower.kind {
	case included:
		if v < r.lower.value {
			return false
		}
	case excluded:
		if v <= r.lower.value {
			return false
		}
	}
	switch r.upper.kind {
	case included:
		return v <= r.upper.value
	case excluded:
		return v < r.upper.value
	}
	return true
}

func isNaN[T cmp.Ordered](v T) bool {
	return v != v
}

func (r Range[T]) String() string {
	var lo, hi string
	switch r.lower.kind {
	case included:
		lo = fmt.Sprintf("[%v", r.lower.value)
	case excluded:
		lo = fmt.Sprintf("(%v", r.lower.value)
	default:
		lo = "(-∞"
	}
	switch r.upper.kind {
	case included:
		hi = fmt.Sprintf("%v]", r.upper.value)
	case excluded:
		hi = fmt.Sprintf("%v)", r.upper.value)
	default:
		hi = "∞)"
	}
	return lo + ", " + hi
}
