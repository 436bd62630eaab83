package yaml

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil format")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/yaml" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/yaml")
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	c := New()
	input := "volume: 80 # loud\ngamma: 1.5\nname: steve\nflags: [a, b]\n"

	node, err := c.Unmarshal([]byte(input))
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	data, err := c.Marshal(node)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	out := string(data)
	if !strings.Contains(out, "# loud") {
		t.Errorf("comment lost: %q", out)
	}
	if strings.Index(out, "volume") > strings.Index(out, "gamma") {
		t.Errorf("key order lost: %q", out)
	}
}

func TestUnmarshalEmpty(t *testing.T) {
	c := New()

	if _, err := c.Unmarshal([]byte("")); !errors.Is(err, errEmptyDocument) {
		t.Errorf("Unmarshal(empty) error = %v, want errEmptyDocument", err)
	}
}

func TestMarshalNil(t *testing.T) {
	c := New()

	if _, err := c.Marshal(nil); err == nil {
		t.Error("Marshal(nil) should return error")
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	if _, err := c.Unmarshal([]byte("name: [invalid")); err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}
