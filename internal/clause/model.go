// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the clause models produced by the tree loader.
//
// Why a separate clause model?
//
// The graph describes a scenario as a web of typed nodes, but rendering only
// needs a small, fixed shape per clause: which step it belongs to, which
// variables fill which roles, and which handler turns those values into
// text. Loading resolves every type-tag dispatch and arity check once, up
// front, so the renderer never touches the graph and a broken model fails
// before a single line of output is produced.
package clause

import (
	"github.com/specialistvlad/bddgrid/internal/binding"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
	"github.com/specialistvlad/bddgrid/internal/registry"
)

// Step is the Given/When/Then section a clause belongs to.
type Step int

const (
	Given Step = iota
	When
	Then
)

// AllSteps lists the steps in rendering order.
var AllSteps = []Step{Given, When, Then}

// Keyword returns the Gherkin keyword of the step.
func (s Step) Keyword() string {
	switch s {
	case When:
		return "When"
	case Then:
		return "Then"
	default:
		return "Given"
	}
}

func (s Step) String() string { return s.Keyword() }

// Steps holds the given/when/then node ids of a scenario.
type Steps struct {
	Given nodeid.ID
	When  nodeid.ID
	Then  nodeid.ID
}

// StepOf maps a clause-of target to its step.
func (s Steps) StepOf(id nodeid.ID) (Step, bool) {
	switch id {
	case s.Given:
		return Given, true
	case s.When:
		return When, true
	case s.Then:
		return Then, true
	}
	return 0, false
}

// Clause is a loaded clause node.
type Clause interface {
	ClauseID() nodeid.ID
	ClauseStep() Step
	// Refs returns every variable the clause itself references.
	Refs() []nodeid.ID
}

// TimeKind selects the shape of a time constraint.
type TimeKind int

const (
	BeforeEvent TimeKind = iota
	AfterEvent
	DuringEvents
)

// TimeConstraint restricts when a fluent holds. Before and After events are
// set according to Kind; DuringEvents sets both.
type TimeConstraint struct {
	ID     nodeid.ID
	Kind   TimeKind
	Before nodeid.ID
	After  nodeid.ID
}

// FluentClause asserts a fluent such as "object is located at workspace".
type FluentClause struct {
	ID      nodeid.ID
	Step    Step
	Fluent  nodeid.ID
	Handler *registry.ClauseHandler
	Args    []registry.Arg
	Time    *TimeConstraint
}

// BehaviourClause invokes a behaviour in the When step.
type BehaviourClause struct {
	ID        nodeid.ID
	Step      Step
	Behaviour nodeid.ID
	Handler   *registry.ClauseHandler
	Args      []registry.Arg
}

// QuantifierKind distinguishes ForAll from ThereExists.
type QuantifierKind int

const (
	ForAll QuantifierKind = iota
	ThereExists
)

func (k QuantifierKind) String() string {
	if k == ThereExists {
		return "ThereExists"
	}
	return "ForAll"
}

// SetRef is the in-set of a quantifier: either a literal collection fixed in
// the graph or a variable whose bound value is iterated.
type SetRef struct {
	Literal  []binding.Value
	Variable nodeid.ID
}

// IsVariable reports whether the set is taken from the bindings.
func (s SetRef) IsVariable() bool {
	return !s.Variable.IsZero()
}

// Quantifier binds Variable over InSet and scopes its Children.
type Quantifier struct {
	ID       nodeid.ID
	Step     Step
	Kind     QuantifierKind
	Variable nodeid.ID
	InSet    SetRef
	Children []nodeid.ID
}

func (c *FluentClause) ClauseID() nodeid.ID    { return c.ID }
func (c *FluentClause) ClauseStep() Step       { return c.Step }
func (c *BehaviourClause) ClauseID() nodeid.ID { return c.ID }
func (c *BehaviourClause) ClauseStep() Step    { return c.Step }
func (c *Quantifier) ClauseID() nodeid.ID      { return c.ID }
func (c *Quantifier) ClauseStep() Step         { return c.Step }

func (c *FluentClause) Refs() []nodeid.ID    { return argVars(c.Args) }
func (c *BehaviourClause) Refs() []nodeid.ID { return argVars(c.Args) }

func (c *Quantifier) Refs() []nodeid.ID {
	if c.InSet.IsVariable() {
		return []nodeid.ID{c.InSet.Variable}
	}
	return nil
}

func argVars(args []registry.Arg) []nodeid.ID {
	out := make([]nodeid.ID, len(args))
	for i, a := range args {
		out[i] = a.Variable
	}
	return out
}
