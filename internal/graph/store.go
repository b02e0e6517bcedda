package graph

import (
	"fmt"
	"slices"
	"sync"

	"github.com/specialistvlad/bddgrid/internal/nodeid"
)

// Triple is a single (subject, predicate, object) edge.
type Triple struct {
	Subject   nodeid.ID
	Predicate nodeid.ID
	Object    Term
}

type pair struct {
	a, b nodeid.ID
}

// Store implements Graph using maps and a mutex for thread-safe concurrent
// access. Every index preserves insertion order.
type Store struct {
	mu      sync.RWMutex
	ns      *nodeid.Namespaces
	nodes   []nodeid.ID
	known   map[nodeid.ID]struct{}
	types   map[nodeid.ID][]nodeid.ID
	byType  map[nodeid.ID][]nodeid.ID
	triples []Triple
	out     map[pair][]Term      // Key: subject, predicate
	in      map[pair][]nodeid.ID // Key: predicate, node object
}

// NewStore creates an empty store that compacts ids with ns.
func NewStore(ns *nodeid.Namespaces) *Store {
	if ns == nil {
		ns = nodeid.NewNamespaces()
	}
	return &Store{
		ns:     ns,
		known:  make(map[nodeid.ID]struct{}),
		types:  make(map[nodeid.ID][]nodeid.ID),
		byType: make(map[nodeid.ID][]nodeid.ID),
		out:    make(map[pair][]Term),
		in:     make(map[pair][]nodeid.ID),
	}
}

// Namespaces implements Graph.
func (s *Store) Namespaces() *nodeid.Namespaces {
	return s.ns
}

// AddNode records id. Adding the same node twice is idempotent.
func (s *Store) AddNode(id nodeid.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addNodeLocked(id)
}

func (s *Store) addNodeLocked(id nodeid.ID) {
	if _, ok := s.known[id]; ok {
		return
	}
	s.known[id] = struct{}{}
	s.nodes = append(s.nodes, id)
}

// AddType tags id with type t.
func (s *Store) AddType(id, t nodeid.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addNodeLocked(id)
	if slices.Contains(s.types[id], t) {
		return
	}
	s.types[id] = append(s.types[id], t)
	s.byType[t] = append(s.byType[t], id)
}

// AddEdge appends the edge (subject, predicate, object). Repeating an edge
// appends it again: list-valued predicates keep their multiplicity.
func (s *Store) AddEdge(subject, predicate nodeid.ID, object Term) error {
	if subject.IsZero() || predicate.IsZero() {
		return fmt.Errorf("edge requires a subject and a predicate, got (%q, %q)", subject, predicate)
	}
	if object.Kind == NodeTerm && object.ID.IsZero() {
		return fmt.Errorf("edge %s %s references an empty node id", subject, predicate)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.addNodeLocked(subject)
	if object.Kind == NodeTerm {
		s.addNodeLocked(object.ID)
		k := pair{predicate, object.ID}
		s.in[k] = append(s.in[k], subject)
	}
	k := pair{subject, predicate}
	s.out[k] = append(s.out[k], object)
	s.triples = append(s.triples, Triple{Subject: subject, Predicate: predicate, Object: object})
	return nil
}

// Merge copies every node, type and edge of other into s, binding other's
// namespaces first. Edges are appended as they are, repeats included.
func (s *Store) Merge(other *Store) error {
	if other == nil {
		return nil
	}
	if err := s.ns.Merge(other.ns); err != nil {
		return fmt.Errorf("merging namespaces: %w", err)
	}

	other.mu.RLock()
	nodes := slices.Clone(other.nodes)
	triples := slices.Clone(other.triples)
	types := make(map[nodeid.ID][]nodeid.ID, len(other.types))
	for id, ts := range other.types {
		types[id] = slices.Clone(ts)
	}
	other.mu.RUnlock()

	for _, id := range nodes {
		s.AddNode(id)
		for _, t := range types[id] {
			s.AddType(id, t)
		}
	}
	for _, tr := range triples {
		if err := s.AddEdge(tr.Subject, tr.Predicate, tr.Object); err != nil {
			return err
		}
	}
	return nil
}

// Contains implements Graph.
func (s *Store) Contains(id nodeid.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.known[id]
	return ok
}

// TypesOf implements Graph.
func (s *Store) TypesOf(id nodeid.ID) []nodeid.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.types[id])
}

// HasType implements Graph.
func (s *Store) HasType(id, t nodeid.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.types[id], t)
}

// ObjectsOf implements Graph.
func (s *Store) ObjectsOf(subject, predicate nodeid.ID) []Term {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.out[pair{subject, predicate}])
}

// SubjectsOf implements Graph.
func (s *Store) SubjectsOf(predicate, object nodeid.ID) []nodeid.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.in[pair{predicate, object}])
}

// NodesOfType implements Graph.
func (s *Store) NodesOfType(t nodeid.ID) []nodeid.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.byType[t])
}

// Nodes returns every node in first-seen order.
func (s *Store) Nodes() []nodeid.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.nodes)
}

// Len returns the number of edges.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.triples)
}
