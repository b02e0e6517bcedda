// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package vocab lists the IRIs of every type tag and predicate the scenario
// engine reads from a graph.
package vocab

import "github.com/specialistvlad/bddgrid/internal/nodeid"

const sesame = "https://hbrs-sesame.github.io/metamodels/"

// Base IRIs of the metamodels.
const (
	BDD  = sesame + "acceptance-criteria/bdd#"
	BHV  = sesame + "behaviour#"
	Time = sesame + "time#"
	Env  = sesame + "environment#"
	Agn  = sesame + "agent#"
	Task = sesame + "task#"
)

// Namespaces returns a fresh table with the built-in prefixes bound.
func Namespaces() *nodeid.Namespaces {
	return nodeid.NewNamespaces().
		MustBind("bdd", BDD).
		MustBind("bhv", BHV).
		MustBind("time", Time).
		MustBind("env", Env).
		MustBind("agn", Agn).
		MustBind("task", Task)
}

// Acceptance-criteria types.
const (
	TypeUserStory          nodeid.ID = BDD + "UserStory"
	TypeScenario           nodeid.ID = BDD + "Scenario"
	TypeGiven              nodeid.ID = BDD + "Given"
	TypeWhen               nodeid.ID = BDD + "When"
	TypeThen               nodeid.ID = BDD + "Then"
	TypeScenarioTemplate   nodeid.ID = BDD + "ScenarioTemplate"
	TypeScenarioVariant    nodeid.ID = BDD + "ScenarioVariant"
	TypeScenarioVariable   nodeid.ID = BDD + "ScenarioVariable"
	TypeTaskVariation      nodeid.ID = BDD + "TaskVariation"
	TypeTableVariation     nodeid.ID = BDD + "TableVariation"
	TypeCartesianProduct   nodeid.ID = BDD + "CartesianProductVariation"
	TypeForAll             nodeid.ID = BDD + "ForAll"
	TypeThereExists        nodeid.ID = BDD + "ThereExists"
	TypeScene              nodeid.ID = BDD + "Scene"
	TypeSceneHasObjects    nodeid.ID = BDD + "SceneHasObjects"
	TypeSceneHasWorkspaces nodeid.ID = BDD + "SceneHasWorkspaces"
	TypeSceneHasAgents     nodeid.ID = BDD + "SceneHasAgents"
	TypeSet                nodeid.ID = BDD + "Set"
	TypeConstantSet        nodeid.ID = BDD + "ConstantSet"
	TypeCombination        nodeid.ID = BDD + "Combination"
	TypePermutation        nodeid.ID = BDD + "Permutation"
	TypeWhenBehaviour      nodeid.ID = BDD + "WhenBehaviour"
	TypeFluentClause       nodeid.ID = BDD + "FluentClause"
	TypeLocatedAt          nodeid.ID = BDD + "LocatedAtPredicate"
	TypeIsHeld             nodeid.ID = BDD + "IsHeldPredicate"
	TypeIsNear             nodeid.ID = BDD + "IsNearPredicate"
)

// Acceptance-criteria predicates.
const (
	PredGiven             nodeid.ID = BDD + "given"
	PredWhen              nodeid.ID = BDD + "when"
	PredThen              nodeid.ID = BDD + "then"
	PredOfScenario        nodeid.ID = BDD + "of-scenario"
	PredOfTemplate        nodeid.ID = BDD + "of-template"
	PredHasScene          nodeid.ID = BDD + "has-scene"
	PredHasClause         nodeid.ID = BDD + "has-clause"
	PredClauseOf          nodeid.ID = BDD + "clause-of"
	PredHolds             nodeid.ID = BDD + "holds"
	PredHoldsAt           nodeid.ID = BDD + "holds-at"
	PredRefObject         nodeid.ID = BDD + "ref-object"
	PredRefWorkspace      nodeid.ID = BDD + "ref-workspace"
	PredRefAgent          nodeid.ID = BDD + "ref-agent"
	PredElements          nodeid.ID = BDD + "elements"
	PredHasVariation      nodeid.ID = BDD + "has-variation"
	PredVariableList      nodeid.ID = BDD + "variable-list"
	PredRefVariable       nodeid.ID = BDD + "ref-variable"
	PredRows              nodeid.ID = BDD + "rows"
	PredOfSets            nodeid.ID = BDD + "of-sets"
	PredInSet             nodeid.ID = BDD + "in-set"
	PredHasCriteria       nodeid.ID = BDD + "has-criteria"
	PredFrom              nodeid.ID = BDD + "from"
	PredLength            nodeid.ID = BDD + "length"
	PredRepetitionAllowed nodeid.ID = BDD + "repetition-allowed"
)

// Behaviour vocabulary.
const (
	TypePick      nodeid.ID = BHV + "Pick"
	TypePlace     nodeid.ID = BHV + "Place"
	TypePickPlace nodeid.ID = BHV + "PickPlace"

	PredOfBehaviour    nodeid.ID = BHV + "of-behaviour"
	PredTargetObject   nodeid.ID = BHV + "target-object"
	PredTargetAgent    nodeid.ID = BHV + "target-agent"
	PredPickWorkspace  nodeid.ID = BHV + "pick-workspace"
	PredPlaceWorkspace nodeid.ID = BHV + "place-workspace"
)

// Time constraints.
const (
	TypeBeforeEvent nodeid.ID = Time + "BeforeEventConstraint"
	TypeAfterEvent  nodeid.ID = Time + "AfterEventConstraint"
	TypeDuring      nodeid.ID = Time + "DuringEventsConstraint"

	PredRefEvent    nodeid.ID = Time + "ref-event"
	PredBeforeEvent nodeid.ID = Time + "before-event"
	PredAfterEvent  nodeid.ID = Time + "after-event"
)

// Scene composition and task predicates.
const (
	PredHasObject    nodeid.ID = Env + "has-object"
	PredHasWorkspace nodeid.ID = Env + "has-workspace"
	PredHasAgent     nodeid.ID = Agn + "has-agent"
	PredOfTask       nodeid.ID = Task + "of-task"
)
