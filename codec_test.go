package datafix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/zoobzio/datafix"
	codectest "github.com/zoobzio/datafix/testing"
	"github.com/zoobzio/datafix/tree"
)

var ops = tree.Ops{}

func TestFloat64_RoundTrip(t *testing.T) {
	got := codectest.RoundTrip(t, datafix.Float64[tree.Value](), ops, 10.0)
	if got != 10.0 {
		t.Errorf("got %v, want 10", got)
	}
}

func TestString_RoundTrip(t *testing.T) {
	got := codectest.RoundTrip(t, datafix.String[tree.Value](), ops, "Hello!")
	if got != "Hello!" {
		t.Errorf("got %q, want %q", got, "Hello!")
	}
}

func TestBool_RoundTrip(t *testing.T) {
	for _, b := range []bool{true, false} {
		if got := codectest.RoundTrip(t, datafix.Bool[tree.Value](), ops, b); got != b {
			t.Errorf("got %v, want %v", got, b)
		}
	}
}

func TestUnit_RoundTrip(t *testing.T) {
	c := datafix.Unit[tree.Value]()
	encoded, err := c.Encode(ops, struct{}{})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if encoded.Shape() != datafix.ShapeMap || encoded.Len() != 0 {
		t.Errorf("unit should encode as an empty map, got %v with %d fields", encoded.Shape(), encoded.Len())
	}
	if _, err := c.Decode(ops, &encoded); err != nil {
		t.Errorf("Decode() error: %v", err)
	}

	nonEmpty := tree.Map(map[string]tree.Value{"x": tree.Number(1)})
	if _, err := c.Decode(ops, &nonEmpty); !errors.Is(err, datafix.ErrShapeMismatch) {
		t.Errorf("Decode(non-empty map) error = %v, want ErrShapeMismatch", err)
	}
}

func TestIntegerCodecs(t *testing.T) {
	if got := codectest.RoundTrip(t, datafix.Int64[tree.Value](), ops, int64(1)<<53); got != 1<<53 {
		t.Errorf("Int64 got %d", got)
	}
	if got := codectest.RoundTrip(t, datafix.Int8[tree.Value](), ops, int8(-128)); got != -128 {
		t.Errorf("Int8 got %d", got)
	}
	if got := codectest.RoundTrip(t, datafix.Uint16[tree.Value](), ops, uint16(65535)); got != 65535 {
		t.Errorf("Uint16 got %d", got)
	}
	if got := codectest.RoundTrip(t, datafix.Float32[tree.Value](), ops, float32(1.5)); got != 1.5 {
		t.Errorf("Float32 got %v", got)
	}
}

func TestIntegerEncode_BeyondExactRange(t *testing.T) {
	tests := []struct {
		name string
		enc  func() error
	}{
		{"int64 2^53+1", func() error {
			_, err := datafix.Int64[tree.Value]().Encode(ops, int64(1)<<53+1)
			return err
		}},
		{"int64 -2^53-1", func() error {
			_, err := datafix.Int64[tree.Value]().Encode(ops, -(int64(1)<<53)-1)
			return err
		}},
		{"int64 max", func() error {
			_, err := datafix.Int64[tree.Value]().Encode(ops, math.MaxInt64)
			return err
		}},
		{"uint64 max", func() error {
			_, err := datafix.Uint64[tree.Value]().Encode(ops, math.MaxUint64)
			return err
		}},
		{"uint64 2^60", func() error {
			_, err := datafix.Uint64[tree.Value]().Encode(ops, uint64(1)<<60)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.enc()
			var ve *datafix.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("Encode() error = %v, want ValidationError", err)
			}
		})
	}

	if got := codectest.RoundTrip(t, datafix.Int64[tree.Value](), ops, -(int64(1) << 53)); got != -(1 << 53) {
		t.Errorf("Int64 got %d", got)
	}
	if got := codectest.RoundTrip(t, datafix.Uint64[tree.Value](), ops, uint64(1)<<53); got != 1<<53 {
		t.Errorf("Uint64 got %d", got)
	}
	if got := codectest.RoundTrip(t, datafix.Float64[tree.Value](), ops, 1e300); got != 1e300 {
		t.Errorf("Float64 got %v", got)
	}
}

func TestIntegerDecode_Narrowing(t *testing.T) {
	tests := []struct {
		name    string
		node    tree.Value
		want    int8
		wantErr bool
	}{
		{"exact", tree.Number(42), 42, false},
		{"truncates toward zero", tree.Number(-3.9), -3, false},
		{"too large", tree.Number(128), 0, true},
		{"too small", tree.Number(-129), 0, true},
		{"nan", tree.Number(math.NaN()), 0, true},
		{"infinity", tree.Number(math.Inf(1)), 0, true},
	}

	c := datafix.Int8[tree.Value]()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := tt.node
			got, err := c.Decode(ops, &node)
			if tt.wantErr {
				if !errors.Is(err, datafix.ErrValidation) {
					t.Errorf("Decode() error = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUintDecode_Negative(t *testing.T) {
	node := tree.Number(-1)
	if _, err := datafix.Uint32[tree.Value]().Decode(ops, &node); !errors.Is(err, datafix.ErrValidation) {
		t.Errorf("Decode(-1) error = %v, want ErrValidation", err)
	}
}

func TestPrimitive_ShapeMismatch(t *testing.T) {
	str := tree.String("ten")
	if _, err := datafix.Float64[tree.Value]().Decode(ops, &str); !errors.Is(err, datafix.ErrShapeMismatch) {
		t.Errorf("number from string error = %v, want ErrShapeMismatch", err)
	}

	num := tree.Number(1)
	if _, err := datafix.Bool[tree.Value]().Decode(ops, &num); !errors.Is(err, datafix.ErrShapeMismatch) {
		t.Errorf("bool from number error = %v, want ErrShapeMismatch", err)
	}

	var shapeErr *datafix.ShapeError
	if _, err := datafix.String[tree.Value]().Decode(ops, &num); !errors.As(err, &shapeErr) {
		t.Fatalf("string from number should yield *ShapeError, got %v", err)
	}
	if shapeErr.Expected != datafix.ShapeString || shapeErr.Actual != datafix.ShapeNumber {
		t.Errorf("ShapeError = %+v", shapeErr)
	}
}

type celsius float64

func TestNumber_NamedType(t *testing.T) {
	got := codectest.RoundTrip(t, datafix.Number[celsius, tree.Value](), ops, celsius(21.5))
	if got != 21.5 {
		t.Errorf("got %v, want 21.5", got)
	}
}

func TestCodecFunc(t *testing.T) {
	upper := datafix.CodecFunc[string, tree.Value]{
		EncodeFunc: func(ops datafix.Ops[tree.Value], value string) (tree.Value, error) {
			return ops.CreateString(value + "!"), nil
		},
		DecodeFunc: func(ops datafix.Ops[tree.Value], value *tree.Value) (string, error) {
			return ops.GetString(*value)
		},
	}

	encoded, err := upper.Encode(ops, "hi")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	got, err := upper.Decode(ops, &encoded)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if got != "hi!" {
		t.Errorf("got %q, want %q", got, "hi!")
	}
}
