package datafix

import (
	"reflect"
	"sync"
)

// registryKey combines the value type and representation type for lookup.
type registryKey struct {
	value reflect.Type
	repr  reflect.Type
}

var (
	registry   = make(map[registryKey]any)
	registryMu sync.RWMutex
)

func keyFor[T, R any]() registryKey {
	return registryKey{value: reflect.TypeFor[T](), repr: reflect.TypeFor[R]()}
}

// Register makes c the default codec for T on backends with node type R,
// replacing any earlier registration.
func Register[T, R any](c Codec[T, R]) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[keyFor[T, R]()] = c
}

// Default returns the registered codec for T, or the built-in codec when T
// is a Go primitive. The second result is false when neither exists.
func Default[T, R any]() (Codec[T, R], bool) {
	key := keyFor[T, R]()

	// Fast path: read-lock cache check
	registryMu.RLock()
	if cached, ok := registry[key]; ok {
		registryMu.RUnlock()
		return cached.(Codec[T, R]), true
	}
	registryMu.RUnlock()

	codec, ok := builtin[T, R]()
	if !ok {
		return nil, false
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	// Double-check pattern
	if cached, ok := registry[key]; ok {
		return cached.(Codec[T, R]), true
	}
	registry[key] = codec
	return codec, true
}

// Reset clears the registry.
// This is primarily useful for test isolation.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[registryKey]any)
}

func builtin[T, R any]() (Codec[T, R], bool) {
	var c any
	var zero T
	switch any(zero).(type) {
	case float64:
		c = Float64[R]()
	case float32:
		c = Float32[R]()
	case int:
		c = Int[R]()
	case int8:
		c = Int8[R]()
	case int16:
		c = Int16[R]()
	case int32:
		c = Int32[R]()
	case int64:
		c = Int64[R]()
	case uint:
		c = Uint[R]()
	case uint8:
		c = Uint8[R]()
	case uint16:
		c = Uint16[R]()
	case uint32:
		c = Uint32[R]()
	case uint64:
		c = Uint64[R]()
	case string:
		c = String[R]()
	case bool:
		c = Bool[R]()
	case struct{}:
		c = Unit[R]()
	}
	codec, ok := c.(Codec[T, R])
	return codec, ok
}
