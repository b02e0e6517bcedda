package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// Namespace binds a prefix for compact ids:
//
//	namespace "ex" { iri = "https://example.org/pickplace#" }
type Namespace struct {
	Prefix string `hcl:"prefix,label"`
	IRI    string `hcl:"iri"`
}

// Node declares a graph node, its type tags and its outgoing edges. Several
// blocks with the same id, in one or many files, merge into one node.
type Node struct {
	ID      string     `hcl:"id,label"`
	Types   []string   `hcl:"types,optional"`
	Links   []*Link    `hcl:"link,block"`
	Values  []*Value   `hcl:"value,block"`
	HoldsAt []*HoldsAt `hcl:"holds_at,block"`
}

// Link adds one edge per element of To. Strings are node ids; nested lists
// become list terms.
type Link struct {
	Predicate string         `hcl:"predicate,label"`
	To        hcl.Expression `hcl:"to"`
}

// Value adds a literal edge.
type Value struct {
	Predicate string         `hcl:"predicate,label"`
	Is        hcl.Expression `hcl:"is"`
}

// HoldsAt declares a time constraint inline on a fluent clause. Without an
// explicit id the constraint node gets a name-based UUID derived from the
// clause id, so reloading the same files yields the same id.
type HoldsAt struct {
	Type   string            `hcl:"type,label"`
	ID     *string           `hcl:"id,optional"`
	Events map[string]string `hcl:"events"`
}
