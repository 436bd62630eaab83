package datafix

import (
	"errors"
	"fmt"
	"iter"
)

// RecordField is one named slot of a record type S. It is implemented by
// *Field and *OptionalField.
type RecordField[S, R any] interface {
	// Key returns the map key the field is stored under.
	Key() string

	encodeField(ops Ops[R], record S) (*Entry[R], error)
	decodeField(ops Ops[R], view MapViewMut[R]) (any, error)
}

// Field is a required record field of type F.
type Field[S, F, R any] struct {
	key   string
	codec Codec[F, R]
	get   func(S) F
}

// FieldOf describes a required field stored under key, read from the record
// with get and converted with c.
func FieldOf[S, F, R any](key string, c Codec[F, R], get func(S) F) *Field[S, F, R] {
	return &Field[S, F, R]{key: key, codec: c, get: get}
}

func (f *Field[S, F, R]) Key() string { return f.key }

// From returns this field's decoded value from the constructor arguments.
func (f *Field[S, F, R]) From(args Args) F {
	v, _ := args.lookup(f).(F)
	return v
}

func (f *Field[S, F, R]) encodeField(ops Ops[R], record S) (*Entry[R], error) {
	encoded, err := f.codec.Encode(ops, f.get(record))
	if err != nil {
		return nil, err
	}
	return &Entry[R]{Key: f.key, Value: encoded}, nil
}

func (f *Field[S, F, R]) decodeField(ops Ops[R], view MapViewMut[R]) (any, error) {
	node, err := view.GetMut(f.key)
	if err != nil {
		return nil, err
	}
	decoded, err := f.codec.Decode(ops, node)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}

// OptionalField is a record field that may be absent. Absence is a nil
// pointer in Go and a missing key in the representation, never a null.
type OptionalField[S, F, R any] struct {
	key   string
	codec Codec[F, R]
	get   func(S) *F
}

// OptionalFieldOf describes a field that is omitted when get returns nil.
func OptionalFieldOf[S, F, R any](key string, c Codec[F, R], get func(S) *F) *OptionalField[S, F, R] {
	return &OptionalField[S, F, R]{key: key, codec: c, get: get}
}

func (f *OptionalField[S, F, R]) Key() string { return f.key }

// From returns this field's decoded value, nil when it was absent.
func (f *OptionalField[S, F, R]) From(args Args) *F {
	v, _ := args.lookup(f).(*F)
	return v
}

func (f *OptionalField[S, F, R]) encodeField(ops Ops[R], record S) (*Entry[R], error) {
	value := f.get(record)
	if value == nil {
		return nil, nil
	}
	encoded, err := f.codec.Encode(ops, *value)
	if err != nil {
		return nil, err
	}
	return &Entry[R]{Key: f.key, Value: encoded}, nil
}

func (f *OptionalField[S, F, R]) decodeField(ops Ops[R], view MapViewMut[R]) (any, error) {
	node, err := view.GetMut(f.key)
	if errors.Is(err, ErrKeyNotFound) {
		return (*F)(nil), nil
	}
	if err != nil {
		return nil, err
	}
	decoded, err := f.codec.Decode(ops, node)
	if err != nil {
		return nil, err
	}
	return &decoded, nil
}

// Args holds decoded field values in declared order for a record constructor.
type Args struct {
	fields []any
	values []any
}

// Len returns the number of decoded fields.
func (a Args) Len() int { return len(a.values) }

func (a Args) lookup(field any) any {
	for i, f := range a.fields {
		if f == field {
			return a.values[i]
		}
	}
	return nil
}

// Arg returns the i-th decoded value. It panics if i is out of range or the
// value is not an F; both are programming errors in the constructor.
func Arg[F any](args Args, i int) F {
	return args.values[i].(F)
}

// RecordBuilder accumulates field descriptors for a record codec. There is
// no limit on the number of fields.
type RecordBuilder[S, R any] struct {
	fields []RecordField[S, R]
}

// NewRecord starts a record codec for S.
func NewRecord[S, R any]() *RecordBuilder[S, R] {
	return &RecordBuilder[S, R]{}
}

// With appends fields in declaration order. Keys must be unique; a repeated
// key silently overwrites the earlier one on encode.
func (b *RecordBuilder[S, R]) With(fields ...RecordField[S, R]) *RecordBuilder[S, R] {
	b.fields = append(b.fields, fields...)
	return b
}

// Build finalizes the codec. construct receives the decoded values in the
// order the fields were declared.
func (b *RecordBuilder[S, R]) Build(construct func(args Args) (S, error)) Codec[S, R] {
	fields := make([]RecordField[S, R], len(b.fields))
	copy(fields, b.fields)
	return recordCodec[S, R]{fields: fields, construct: construct}
}

type recordCodec[S, R any] struct {
	fields    []RecordField[S, R]
	construct func(args Args) (S, error)
}

func (c recordCodec[S, R]) Encode(ops Ops[R], value S) (R, error) {
	return CreateMapSpecial(ops, c.entries(ops, value))
}

func (c recordCodec[S, R]) entries(ops Ops[R], value S) iter.Seq2[*Entry[R], error] {
	return func(yield func(*Entry[R], error) bool) {
		for _, f := range c.fields {
			entry, err := f.encodeField(ops, value)
			if err != nil {
				err = fmt.Errorf("field %q: %w", f.Key(), err)
			}
			if !yield(entry, err) {
				return
			}
		}
	}
}

func (c recordCodec[S, R]) Decode(ops Ops[R], value *R) (S, error) {
	var zero S
	view, err := ops.GetMapMut(value)
	if err != nil {
		return zero, err
	}
	args := Args{
		fields: make([]any, len(c.fields)),
		values: make([]any, len(c.fields)),
	}
	for i, f := range c.fields {
		decoded, err := f.decodeField(ops, view)
		if err != nil {
			return zero, fmt.Errorf("field %q: %w", f.Key(), err)
		}
		args.fields[i] = f
		args.values[i] = decoded
	}
	return c.construct(args)
}
