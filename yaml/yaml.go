// Package yaml provides a YAML backend and format.
//
// Unlike the tree backend, Ops works directly on *yaml.Node, so decoded
// documents keep their key order and comments through a repair.
package yaml

import (
	"errors"

	"github.com/zoobzio/datafix"
	"gopkg.in/yaml.v3"
)

// errEmptyDocument is returned when input holds no YAML document.
var errEmptyDocument = errors.New("yaml: empty document")

// yamlFormat implements datafix.Format for YAML nodes.
type yamlFormat struct{}

// New returns a YAML format.
func New() datafix.Format[*yaml.Node] {
	return &yamlFormat{}
}

// ContentType returns the MIME type for YAML.
func (f *yamlFormat) ContentType() string {
	return "application/yaml"
}

// Marshal encodes n as a YAML document.
func (f *yamlFormat) Marshal(n *yaml.Node) ([]byte, error) {
	if n == nil {
		return nil, errEmptyDocument
	}
	return yaml.Marshal(n)
}

// Unmarshal parses data and returns the root node of its first document.
func (f *yamlFormat) Unmarshal(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errEmptyDocument
	}
	return doc.Content[0], nil
}
