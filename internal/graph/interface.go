package graph

import (
	"github.com/specialistvlad/bddgrid/internal/nodeid"
)

// Graph is the read-only view of a scenario graph.
type Graph interface {
	// Namespaces returns the prefix table used to compact ids for display.
	Namespaces() *nodeid.Namespaces

	// Contains reports whether id appears as a subject, type holder or
	// node object anywhere in the graph.
	Contains(id nodeid.ID) bool

	// TypesOf returns the type tags of id in the order they were declared.
	TypesOf(id nodeid.ID) []nodeid.ID

	// HasType reports whether id carries type tag t.
	HasType(id nodeid.ID, t nodeid.ID) bool

	// ObjectsOf returns the objects of (subject, predicate) in insertion order.
	ObjectsOf(subject, predicate nodeid.ID) []Term

	// SubjectsOf returns every subject linked to the node object through
	// predicate, in insertion order.
	SubjectsOf(predicate, object nodeid.ID) []nodeid.ID

	// NodesOfType returns every node carrying t in first-seen order.
	NodesOfType(t nodeid.ID) []nodeid.ID
}
