package datafix

// Format renders representation nodes of type R to bytes and parses them
// back. It is the boundary between the codec core and a wire syntax.
type Format[R any] interface {
	// ContentType returns the MIME type for this format (e.g., "application/json").
	ContentType() string

	// Marshal encodes a node into bytes.
	Marshal(value R) ([]byte, error)

	// Unmarshal parses bytes into a node.
	Unmarshal(data []byte) (R, error)
}
