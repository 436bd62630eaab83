package datafix

import "iter"

// Ops is the capability set a representation backend exposes. R is the
// backend's node type.
//
// Implementations are stateless and may be copied and shared freely. Every
// backend must round-trip all six shapes for values within its numeric and
// string range.
//
// Decoding works on *R so that repairs and views mutate the node in place.
// The caller owning a *R is the only writer of that subtree for the duration
// of a decode.
type Ops[R any] interface {
	CreateNumber(value float64) R
	CreateString(value string) R
	CreateBoolean(value bool) R
	CreateList(values []R) R
	// CreateMap builds a map node. When a key repeats, the last entry wins.
	CreateMap(entries []Entry[R]) R
	// CreateUnit builds a node with no fields and no value.
	CreateUnit() R

	GetNumber(value R) (float64, error)
	GetString(value R) (string, error)
	GetBoolean(value R) (bool, error)
	GetUnit(value R) error

	GetList(value R) (ListView[R], error)
	GetListMut(value *R) (ListViewMut[R], error)
	GetMap(value R) (MapView[R], error)
	GetMapMut(value *R) (MapViewMut[R], error)
}

// Entry is a single key/value pair of a map under construction.
type Entry[R any] struct {
	Key   string
	Value R
}

// MapView is a read-only lens into a map node.
type MapView[R any] interface {
	// Get returns the value stored under key or a *KeyError.
	Get(key string) (R, error)
	// Keys returns a snapshot of the keys. Order is unspecified.
	Keys() []string
}

// MapViewMut is a lens that mutates the map node it was derived from.
// Changes are visible in that node immediately.
type MapViewMut[R any] interface {
	MapView[R]
	// GetMut returns a pointer to the stored value or a *KeyError.
	GetMut(key string) (*R, error)
	// Set inserts or replaces the value under key.
	Set(key string, value R)
	// Remove deletes key and returns its old value, or a *KeyError.
	Remove(key string) (R, error)
	// Update applies f to the value under key. Absent keys are left alone.
	Update(key string, f func(*R))
}

// ListView is a read-only lens into a list node. Indices are zero-based.
type ListView[R any] interface {
	// Get returns the element at index or an *IndexError.
	Get(index int) (R, error)
	Len() int
	// Values consumes the view, yielding each element once in order.
	// Calling it again yields nothing.
	Values() iter.Seq[R]
}

// ListViewMut is a lens that mutates the list node it was derived from.
type ListViewMut[R any] interface {
	ListView[R]
	// Append adds value at the end of the list in amortized O(1).
	Append(value R)
	// GetMut returns a pointer to the element at index or an *IndexError.
	GetMut(index int) (*R, error)
}

// CreateMapSpecial builds a map from optional, fallible entries. A nil entry
// is absent and its key is omitted entirely. The first error aborts the
// construction and nothing is built.
func CreateMapSpecial[R any](ops Ops[R], entries iter.Seq2[*Entry[R], error]) (R, error) {
	var built []Entry[R]
	for entry, err := range entries {
		if err != nil {
			var zero R
			return zero, err
		}
		if entry == nil {
			continue
		}
		built = append(built, *entry)
	}
	return ops.CreateMap(built), nil
}
