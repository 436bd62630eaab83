package yaml

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/zoobzio/datafix"
	"gopkg.in/yaml.v3"
)

func parse(t *testing.T, text string) *yaml.Node {
	t.Helper()
	n, err := New().Unmarshal([]byte(text))
	if err != nil {
		t.Fatalf("Unmarshal(%q) error: %v", text, err)
	}
	return n
}

func TestShapeOf(t *testing.T) {
	tests := []struct {
		text string
		want datafix.Shape
	}{
		{"42", datafix.ShapeNumber},
		{"-1.5", datafix.ShapeNumber},
		{".inf", datafix.ShapeNumber},
		{"true", datafix.ShapeBoolean},
		{"hello", datafix.ShapeString},
		{`"42"`, datafix.ShapeString},
		{"null", datafix.ShapeUnit},
		{"~", datafix.ShapeUnit},
		{"[1, 2]", datafix.ShapeList},
		{"{a: 1}", datafix.ShapeMap},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := ShapeOf(parse(t, tt.text)); got != tt.want {
				t.Errorf("ShapeOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOps_Numbers(t *testing.T) {
	var o Ops

	tests := []struct {
		value float64
		tag   string
		text  string
	}{
		{10, tagInt, "10"},
		{-3, tagInt, "-3"},
		{0.25, tagFloat, "0.25"},
		{1 << 60, tagFloat, "1.152921504606847e+18"},
		{math.Inf(1), tagFloat, ".inf"},
		{math.Inf(-1), tagFloat, "-.inf"},
	}

	for _, tt := range tests {
		n := o.CreateNumber(tt.value)
		if n.Tag != tt.tag || n.Value != tt.text {
			t.Errorf("CreateNumber(%v) = %s %q, want %s %q", tt.value, n.Tag, n.Value, tt.tag, tt.text)
		}
		got, err := o.GetNumber(n)
		if err != nil {
			t.Errorf("GetNumber(%q) error: %v", tt.text, err)
			continue
		}
		if got != tt.value {
			t.Errorf("GetNumber(%q) = %v, want %v", tt.text, got, tt.value)
		}
	}

	nan, err := o.GetNumber(o.CreateNumber(math.NaN()))
	if err != nil || !math.IsNaN(nan) {
		t.Errorf("NaN round-trip = %v, %v", nan, err)
	}

	negZero := o.CreateNumber(math.Copysign(0, -1))
	if negZero.Tag != tagFloat || negZero.Value != "-0.0" {
		t.Errorf("CreateNumber(-0) = %s %q, want %s %q", negZero.Tag, negZero.Value, tagFloat, "-0.0")
	}
	if z, err := o.GetNumber(negZero); err != nil || z != 0 || !math.Signbit(z) {
		t.Errorf("-0 round-trip = %v (signbit %v), %v", z, math.Signbit(z), err)
	}
}

func TestNegativeZero_SurvivesMarshal(t *testing.T) {
	var o Ops
	f := New()

	data, err := f.Marshal(o.CreateList([]*yaml.Node{o.CreateNumber(math.Copysign(0, -1))}))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	node, err := f.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal(%q) error: %v", data, err)
	}
	view, err := o.GetList(node)
	if err != nil {
		t.Fatalf("GetList() error: %v", err)
	}
	item, _ := view.Get(0)
	z, err := o.GetNumber(item)
	if err != nil {
		t.Fatalf("GetNumber() error: %v", err)
	}
	if z != 0 || !math.Signbit(z) {
		t.Errorf("decoded %v from %q, want -0", z, data)
	}
}

func TestOps_Scalars(t *testing.T) {
	var o Ops

	if s, err := o.GetString(o.CreateString("true")); err != nil || s != "true" {
		t.Errorf("GetString() = %q, %v", s, err)
	}
	if b, err := o.GetBoolean(o.CreateBoolean(false)); err != nil || b {
		t.Errorf("GetBoolean() = %v, %v", b, err)
	}
	if err := o.GetUnit(o.CreateUnit()); err != nil {
		t.Errorf("GetUnit(CreateUnit) error: %v", err)
	}
	if err := o.GetUnit(parse(t, "null")); err != nil {
		t.Errorf("GetUnit(null) error: %v", err)
	}

	if _, err := o.GetNumber(o.CreateString("1")); !errors.Is(err, datafix.ErrShapeMismatch) {
		t.Errorf("GetNumber(string) error = %v, want ErrShapeMismatch", err)
	}
	if err := o.GetUnit(parse(t, "{a: 1}")); !errors.Is(err, datafix.ErrShapeMismatch) {
		t.Errorf("GetUnit(non-empty map) error = %v, want ErrShapeMismatch", err)
	}
}

func TestOps_QuotedStringSurvivesMarshal(t *testing.T) {
	var o Ops
	f := New()

	data, err := f.Marshal(o.CreateMap([]datafix.Entry[*yaml.Node]{
		{Key: "flag", Value: o.CreateString("true")},
	}))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	back, err := f.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	view, _ := o.GetMap(back)
	flag, _ := view.Get("flag")
	if ShapeOf(flag) != datafix.ShapeString {
		t.Errorf("string %q re-read as %v from %s", "true", ShapeOf(flag), data)
	}
}

func TestOps_CreateMap_LastWins(t *testing.T) {
	var o Ops
	n := o.CreateMap([]datafix.Entry[*yaml.Node]{
		{Key: "a", Value: o.CreateNumber(1)},
		{Key: "b", Value: o.CreateNumber(2)},
		{Key: "a", Value: o.CreateNumber(3)},
	})

	view, _ := o.GetMap(n)
	if keys := view.Keys(); !slices.Equal(keys, []string{"a", "b"}) {
		t.Errorf("Keys() = %v, want [a b]", keys)
	}
	a, _ := view.Get("a")
	if v, _ := o.GetNumber(a); v != 3 {
		t.Errorf("a = %v, want 3", v)
	}
}

func TestMapView(t *testing.T) {
	var o Ops
	n := parse(t, "a: 1\nb: 2\n")

	view, err := o.GetMapMut(&n)
	if err != nil {
		t.Fatalf("GetMapMut() error: %v", err)
	}

	if _, err := view.Get("missing"); !errors.Is(err, datafix.ErrKeyNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrKeyNotFound", err)
	}

	ptr, _ := view.GetMut("a")
	*ptr = o.CreateString("changed")

	removed, err := view.Remove("b")
	if err != nil {
		t.Fatalf("Remove(b) error: %v", err)
	}
	if v, _ := o.GetNumber(removed); v != 2 {
		t.Errorf("removed = %v, want 2", v)
	}
	if _, err := view.Remove("b"); !errors.Is(err, datafix.ErrKeyNotFound) {
		t.Errorf("second Remove(b) error = %v, want ErrKeyNotFound", err)
	}

	view.Set("c", o.CreateBoolean(true))
	view.Update("c", func(v **yaml.Node) { *v = o.CreateBoolean(false) })

	check, _ := o.GetMap(n)
	if keys := check.Keys(); !slices.Equal(keys, []string{"a", "c"}) {
		t.Errorf("Keys() = %v, want [a c]", keys)
	}
	a, _ := check.Get("a")
	if s, _ := o.GetString(a); s != "changed" {
		t.Errorf("a = %q, want changed", s)
	}
	c, _ := check.Get("c")
	if b, _ := o.GetBoolean(c); b {
		t.Error("c should be false")
	}
}

func TestListView(t *testing.T) {
	var o Ops
	n := parse(t, "[10, 20]")

	view, err := o.GetListMut(&n)
	if err != nil {
		t.Fatalf("GetListMut() error: %v", err)
	}
	if _, err := view.Get(5); !errors.Is(err, datafix.ErrIndexOutOfBounds) {
		t.Errorf("Get(5) error = %v, want ErrIndexOutOfBounds", err)
	}

	view.Append(o.CreateNumber(30))
	ptr, _ := view.GetMut(0)
	*ptr = o.CreateNumber(11)

	var got []float64
	for item := range view.Values() {
		v, _ := o.GetNumber(item)
		got = append(got, v)
	}
	if !slices.Equal(got, []float64{11, 20, 30}) {
		t.Errorf("Values() = %v", got)
	}
	for range view.Values() {
		t.Error("second pass should yield nothing")
	}
}

func TestAliases(t *testing.T) {
	var o Ops
	n := parse(t, "base: &b 7\ncopy: *b\n")

	view, _ := o.GetMap(n)
	alias, _ := view.Get("copy")
	if v, err := o.GetNumber(alias); err != nil || v != 7 {
		t.Errorf("GetNumber(alias) = %v, %v", v, err)
	}
}

type config struct {
	Volume int
	Name   string
	Tags   []string
}

func configCodec() datafix.Codec[config, *yaml.Node] {
	volume := datafix.FieldOf("volume", datafix.Int[*yaml.Node](), func(c config) int { return c.Volume })
	name := datafix.FieldOf("name", datafix.String[*yaml.Node](), func(c config) string { return c.Name })
	tags := datafix.FieldOf("tags", datafix.ListOf(datafix.String[*yaml.Node]()), func(c config) []string { return c.Tags })
	return datafix.NewRecord[config, *yaml.Node]().
		With(volume, name, tags).
		Build(func(a datafix.Args) (config, error) {
			return config{Volume: volume.From(a), Name: name.From(a), Tags: tags.From(a)}, nil
		})
}

func TestCodecOverYAML(t *testing.T) {
	var o Ops
	c := configCodec()

	n := parse(t, "volume: 80\nname: steve\ntags: [fast, quiet]\nextra: ignored\n")
	got, err := c.Decode(o, &n)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if got.Volume != 80 || got.Name != "steve" || !slices.Equal(got.Tags, []string{"fast", "quiet"}) {
		t.Errorf("Decode() = %+v", got)
	}

	encoded, err := c.Encode(o, got)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	data, err := New().Marshal(encoded)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := "volume: 80\nname: steve\ntags:\n    - fast\n    - quiet\n"
	if string(data) != want {
		t.Errorf("Marshal() = %q, want %q", data, want)
	}
}

func TestRepairOverYAML(t *testing.T) {
	var o Ops
	c := datafix.Fixed(configCodec(), datafix.Rules(
		datafix.RenameField[*yaml.Node]("vol", "volume"),
		datafix.DefaultField("tags", func(ops datafix.Ops[*yaml.Node]) *yaml.Node {
			return ops.CreateList(nil)
		}),
	))

	n := parse(t, "vol: 3\nname: old\n")
	got, err := c.Decode(o, &n)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if got.Volume != 3 || len(got.Tags) != 0 {
		t.Errorf("Decode() = %+v", got)
	}
}
