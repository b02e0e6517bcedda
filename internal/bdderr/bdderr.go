// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the error model shared by every stage of scenario
// resolution.
//
// Why typed errors?
//
// A scenario graph can be wrong in several distinct ways: its clause edges can
// form a loop, a variation can list three variables but only two domains, a
// clause can reference a variable nothing binds, or a node can carry a type
// tag no handler understands. Callers (the CLI, tests, a future editor
// integration) need to tell these apart without parsing messages, so every
// failure raised while loading or rendering a variant is an *Error carrying a
// Kind, the offending node and, where it applies, the expected and actual
// counts. errors.Is works against the Err* sentinels through any amount of
// fmt.Errorf wrapping.
package bdderr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/bddgrid/internal/nodeid"
)

// Kind classifies a resolution failure.
type Kind int

const (
	// KindInternal marks a broken contract between components. A graph that
	// passed upstream loading should never trigger it.
	KindInternal Kind = iota
	// KindStructural covers loops, duplicate clauses and role mismatches.
	KindStructural
	// KindConstraint covers arity and shape violations.
	KindConstraint
	// KindUnbound covers variables without a value during rendering.
	KindUnbound
	// KindUnhandledType is raised when no handler is registered for a node.
	KindUnhandledType
)

func (k Kind) String() string {
	switch k {
	case KindStructural:
		return "structural"
	case KindConstraint:
		return "constraint"
	case KindUnbound:
		return "unbound reference"
	case KindUnhandledType:
		return "unhandled type"
	default:
		return "internal"
	}
}

// Sentinels for errors.Is.
var (
	ErrInternal      = &Error{Kind: KindInternal}
	ErrStructural    = &Error{Kind: KindStructural}
	ErrConstraint    = &Error{Kind: KindConstraint}
	ErrUnbound       = &Error{Kind: KindUnbound}
	ErrUnhandledType = &Error{Kind: KindUnhandledType}
)

// Error is a resolution failure tied to a graph node.
type Error struct {
	Kind Kind
	Node nodeid.ID
	Msg  string

	// Types is the full type-tag set of Node for KindUnhandledType.
	Types []nodeid.ID

	// Expected and Actual are set when HasCounts is true.
	HasCounts bool
	Expected  int
	Actual    int

	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Msg)
	if sb.Len() == 0 {
		sb.WriteString(e.Kind.String() + " error")
	}
	if e.HasCounts {
		fmt.Fprintf(&sb, " (expected %d, got %d)", e.Expected, e.Actual)
	}
	if len(e.Types) > 0 {
		tags := make([]string, len(e.Types))
		for i, t := range e.Types {
			tags[i] = t.String()
		}
		fmt.Fprintf(&sb, " [types: %s]", strings.Join(tags, ", "))
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the Err* sentinels by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Node == "" && t.Msg == "" {
		return t.Kind == e.Kind
	}
	return t == e
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindInternal, false
}

// Structural builds a KindStructural error.
func Structural(node nodeid.ID, format string, args ...any) *Error {
	return &Error{Kind: KindStructural, Node: node, Msg: fmt.Sprintf(format, args...)}
}

// Loop reports a clause node reached twice during a depth-first walk.
func Loop(node nodeid.ID) *Error {
	return Structural(node, "structural loop detected at %s", node)
}

// Constraint builds a KindConstraint error carrying expected and actual counts.
func Constraint(node nodeid.ID, expected, actual int, format string, args ...any) *Error {
	return &Error{
		Kind:      KindConstraint,
		Node:      node,
		Msg:       fmt.Sprintf(format, args...),
		HasCounts: true,
		Expected:  expected,
		Actual:    actual,
	}
}

// Invalid builds a KindConstraint error without counts.
func Invalid(node nodeid.ID, format string, args ...any) *Error {
	return &Error{Kind: KindConstraint, Node: node, Msg: fmt.Sprintf(format, args...)}
}

// Unbound reports a variable with no value in the current bindings.
func Unbound(node, variable nodeid.ID) *Error {
	return &Error{Kind: KindUnbound, Node: node, Msg: fmt.Sprintf("clause %s references unbound variable %s", node, variable)}
}

// NotIterable reports a set reference that resolved to a single value.
func NotIterable(node, variable nodeid.ID) *Error {
	return &Error{Kind: KindUnbound, Node: node, Msg: fmt.Sprintf("quantifier %s: value bound to %s is not iterable", node, variable)}
}

// UnhandledType reports a node no registered handler accepts.
func UnhandledType(node nodeid.ID, what string, types []nodeid.ID) *Error {
	return &Error{
		Kind:  KindUnhandledType,
		Node:  node,
		Msg:   fmt.Sprintf("unhandled %s type for %s", what, node),
		Types: append([]nodeid.ID(nil), types...),
	}
}

// Internal builds a KindInternal error.
func Internal(node nodeid.ID, format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Node: node, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to e and returns it.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}
