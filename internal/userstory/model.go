// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package userstory

import (
	"github.com/specialistvlad/bddgrid/internal/binding"
	"github.com/specialistvlad/bddgrid/internal/clause"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
)

// Entity is a scene member with its type tags.
type Entity struct {
	ID    nodeid.ID
	Types []nodeid.ID
}

// Scene lists the objects, workspaces and agents a variant runs in.
type Scene struct {
	ID         nodeid.ID
	Objects    []Entity
	Workspaces []Entity
	Agents     []Entity
}

// Scenario is the shared skeleton of a scenario template.
type Scenario struct {
	ID    nodeid.ID
	Given nodeid.ID
	When  nodeid.ID
	Then  nodeid.ID
	// Behaviour is the behaviour invoked in the When step, if any.
	Behaviour nodeid.ID
	// Task comes from the scenario or, failing that, the task variation.
	Task nodeid.ID
}

// Steps returns the given/when/then ids for clause loading.
func (s Scenario) Steps() clause.Steps {
	return clause.Steps{Given: s.Given, When: s.When, Then: s.Then}
}

// ScenarioVariant is a fully loaded variant: its clause tree and the value
// table its free variables range over. It is immutable once cached.
type ScenarioVariant struct {
	ID        nodeid.ID
	Story     nodeid.ID
	Template  nodeid.ID
	Scenario  Scenario
	Scene     *Scene
	Variation *binding.Table
	Tree      *clause.Tree
}

// Binding is one variable assignment of a variation, both sides compacted.
type Binding struct {
	Variable string `json:"variable"`
	Value    string `json:"value"`
}

// Variation is one concrete scenario produced from a variant.
type Variation struct {
	Name     string    `json:"name"`
	Bindings []Binding `json:"bindings"`
	Clauses  []string  `json:"clauses"`
}

// VariantData is the display-ready form of a scenario variant.
type VariantData struct {
	Name       string      `json:"name"`
	Scenario   string      `json:"scenario"`
	Template   string      `json:"template"`
	Behaviour  string      `json:"behaviour,omitempty"`
	Task       string      `json:"task,omitempty"`
	Variables  []string    `json:"variables"`
	Variations []Variation `json:"variations"`
}

// SceneData is the display-ready form of a scene.
type SceneData struct {
	Name       string   `json:"name"`
	Objects    []string `json:"objects,omitempty"`
	Workspaces []string `json:"workspaces,omitempty"`
	Agents     []string `json:"agents,omitempty"`
}

// UserStoryData is everything needed to write one feature file.
type UserStoryData struct {
	Name     string         `json:"name"`
	Scene    SceneData      `json:"scene"`
	Criteria []*VariantData `json:"criteria"`
}
