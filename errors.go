package datafix

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrShapeMismatch indicates a destructor was called on a node of another shape.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrKeyNotFound indicates a map lookup or removal missed.
	ErrKeyNotFound = errors.New("key not found")

	// ErrIndexOutOfBounds indicates a list access outside the list.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrValidation indicates a combinator rejected a value.
	ErrValidation = errors.New("validation failed")

	// ErrUnmarshal indicates the format failed to parse input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the format failed to render output data.
	ErrMarshal = errors.New("marshal failed")

	// ErrUninitialized is the panic value raised when a recursive codec
	// placeholder is used before its definition was installed.
	ErrUninitialized = errors.New("recursive codec used before initialization")
)

// ShapeError reports a destructor invoked against a node of a different shape.
type ShapeError struct {
	Expected Shape
	Actual   Shape
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: expected %s, found %s", ErrShapeMismatch.Error(), e.Expected, e.Actual)
}

func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

// KeyError reports a map key that was not present.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("%s: %q", ErrKeyNotFound.Error(), e.Key)
}

func (e *KeyError) Unwrap() error {
	return ErrKeyNotFound
}

// IndexError reports a list index outside [0, Length).
type IndexError struct {
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d, length %d", ErrIndexOutOfBounds.Error(), e.Index, e.Length)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfBounds
}

// ValidationError is a combinator-level rejection: bounds violations,
// dispatch selection failures and custom constraints.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// CodecError represents a marshal/unmarshal error from a Format.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the format
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// NewShapeError creates a ShapeError. Backends use it from their destructors.
func NewShapeError(expected, actual Shape) error {
	return &ShapeError{Expected: expected, Actual: actual}
}

// NewKeyError creates a KeyError.
func NewKeyError(key string) error {
	return &KeyError{Key: key}
}

// NewIndexError creates an IndexError.
func NewIndexError(index, length int) error {
	return &IndexError{Index: index, Length: length}
}

// Validationf creates a ValidationError with a formatted message.
func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}
