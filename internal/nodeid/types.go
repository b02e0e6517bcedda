// internal/nodeid/types.go
package nodeid

// ID is the expanded, opaque identifier of a graph node.
type ID string

// String returns the raw identifier.
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is empty.
func (id ID) IsZero() bool {
	return id == ""
}

// Namespaces is an ordered table of prefix bindings. It is not safe for
// concurrent mutation; graphs finish binding prefixes before they are shared.
type Namespaces struct {
	prefixes []string
	iris     map[string]string
}

// NewNamespaces creates an empty namespace table.
func NewNamespaces() *Namespaces {
	return &Namespaces{iris: make(map[string]string)}
}
