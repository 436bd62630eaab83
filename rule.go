package datafix

// Rule rewrites a representation shaped for an older schema into the shape
// the current codec expects. Rules are immutable and never fail: a rule that
// does not apply returns the value unchanged.
//
// Deciding which rules apply to which stored version is left to the caller.
type Rule[R any] interface {
	Fix(ops Ops[R], value R) R
}

// RuleFunc adapts a function into a Rule.
type RuleFunc[R any] func(ops Ops[R], value R) R

func (f RuleFunc[R]) Fix(ops Ops[R], value R) R {
	return f(ops, value)
}

// Repair applies rule to value using ops.
func Repair[R any](ops Ops[R], value R, rule Rule[R]) R {
	return rule.Fix(ops, value)
}

type fixedCodec[T, R any] struct {
	inner Codec[T, R]
	rule  Rule[R]
}

func (c fixedCodec[T, R]) Encode(ops Ops[R], value T) (R, error) {
	return c.inner.Encode(ops, value)
}

func (c fixedCodec[T, R]) Decode(ops Ops[R], value *R) (T, error) {
	*value = c.rule.Fix(ops, *value)
	return c.inner.Decode(ops, value)
}

// Fixed wraps c so that every decode first repairs the node in place with
// rule. Encoding always produces the current shape and is unaffected.
func Fixed[T, R any](c Codec[T, R], rule Rule[R]) Codec[T, R] {
	return fixedCodec[T, R]{inner: c, rule: rule}
}

type ruleSequence[R any] []Rule[R]

func (s ruleSequence[R]) Fix(ops Ops[R], value R) R {
	for _, rule := range s {
		value = rule.Fix(ops, value)
	}
	return value
}

// Rules composes rules into one that applies them in the given order.
func Rules[R any](rules ...Rule[R]) Rule[R] {
	seq := make(ruleSequence[R], len(rules))
	copy(seq, rules)
	return seq
}

// RenameField moves the value stored under from to the key to. Values that
// are not maps, or lack from, are returned unchanged.
func RenameField[R any](from, to string) Rule[R] {
	return RuleFunc[R](func(ops Ops[R], value R) R {
		view, err := ops.GetMapMut(&value)
		if err != nil {
			return value
		}
		moved, err := view.Remove(from)
		if err != nil {
			return value
		}
		view.Set(to, moved)
		return value
	})
}

// RemoveField drops key from map values.
func RemoveField[R any](key string) Rule[R] {
	return RuleFunc[R](func(ops Ops[R], value R) R {
		if view, err := ops.GetMapMut(&value); err == nil {
			_, _ = view.Remove(key)
		}
		return value
	})
}

// DefaultField stores the result of build under key when a map value lacks it.
func DefaultField[R any](key string, build func(ops Ops[R]) R) Rule[R] {
	return RuleFunc[R](func(ops Ops[R], value R) R {
		view, err := ops.GetMapMut(&value)
		if err != nil {
			return value
		}
		if _, err := view.Get(key); err != nil {
			view.Set(key, build(ops))
		}
		return value
	})
}

// UpdateField hands the value under key to f for in-place rewriting. Map
// values lacking key are returned unchanged.
func UpdateField[R any](key string, f func(field *Cursor[R])) Rule[R] {
	return RuleFunc[R](func(ops Ops[R], value R) R {
		if view, err := ops.GetMapMut(&value); err == nil {
			view.Update(key, func(node *R) {
				f(NewCursor(ops, node))
			})
		}
		return value
	})
}
