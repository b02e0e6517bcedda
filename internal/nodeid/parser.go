// internal/nodeid/parser.go
package nodeid

import (
	"fmt"
	"regexp"
	"strings"
)

// prefixRegex restricts the prefix part of a compact name.
var prefixRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.-]*$`)

// Bind registers prefix for iri. Re-binding a prefix to the same IRI is a
// no-op; binding it to a different IRI is an error.
func (n *Namespaces) Bind(prefix, iri string) error {
	if !prefixRegex.MatchString(prefix) {
		return fmt.Errorf("invalid namespace prefix: %q", prefix)
	}
	if iri == "" {
		return fmt.Errorf("namespace %q has an empty IRI", prefix)
	}
	if existing, ok := n.iris[prefix]; ok {
		if existing != iri {
			return fmt.Errorf("namespace %q already bound to %q, cannot rebind to %q", prefix, existing, iri)
		}
		return nil
	}
	n.prefixes = append(n.prefixes, prefix)
	n.iris[prefix] = iri
	return nil
}

// MustBind is Bind for static tables; it panics on error.
func (n *Namespaces) MustBind(prefix, iri string) *Namespaces {
	if err := n.Bind(prefix, iri); err != nil {
		panic(err)
	}
	return n
}

// Merge binds every prefix of other into n, in other's order.
func (n *Namespaces) Merge(other *Namespaces) error {
	if other == nil {
		return nil
	}
	for _, p := range other.prefixes {
		if err := n.Bind(p, other.iris[p]); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns an independent copy of the table.
func (n *Namespaces) Clone() *Namespaces {
	c := NewNamespaces()
	for _, p := range n.prefixes {
		c.prefixes = append(c.prefixes, p)
		c.iris[p] = n.iris[p]
	}
	return c
}

// Prefixes returns the bound prefixes in binding order.
func (n *Namespaces) Prefixes() []string {
	out := make([]string, len(n.prefixes))
	copy(out, n.prefixes)
	return out
}

// IRI returns the IRI bound to prefix.
func (n *Namespaces) IRI(prefix string) (string, bool) {
	iri, ok := n.iris[prefix]
	return iri, ok
}

// Expand turns a compact name into an ID. Absolute IRIs, names with an
// unknown prefix and plain names are returned unchanged.
func (n *Namespaces) Expand(raw string) ID {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, "://") {
		return ID(raw)
	}
	prefix, local, ok := strings.Cut(raw, ":")
	if !ok {
		return ID(raw)
	}
	if iri, found := n.iris[prefix]; found {
		return ID(iri + local)
	}
	return ID(raw)
}

// Compact returns the `prefix:local` form of id using the longest matching
// IRI, or the raw identifier when no prefix matches.
func (n *Namespaces) Compact(id ID) string {
	if n == nil {
		return string(id)
	}
	best := ""
	for _, p := range n.prefixes {
		iri := n.iris[p]
		if strings.HasPrefix(string(id), iri) && len(iri) > len(n.iris[best]) {
			best = p
		}
	}
	if best == "" {
		return string(id)
	}
	return best + ":" + strings.TrimPrefix(string(id), n.iris[best])
}
