package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/bddgrid/internal/graph"
	"github.com/specialistvlad/bddgrid/internal/hcl_adapter"
	"github.com/specialistvlad/bddgrid/internal/vocab"
	"github.com/stretchr/testify/require"
)

// ExampleIRI is the namespace bound to the "ex" prefix by the fixtures.
const ExampleIRI = "https://example.org/pickplace#"

// LoadHCLGraph writes files (relative path to HCL content) to a temporary
// directory and loads them with the built-in prefixes bound.
func LoadHCLGraph(t *testing.T, ctx context.Context, files map[string]string) *graph.Store {
	t.Helper()
	root := WriteFiles(t, files)
	store, err := hcl_adapter.NewLoader(vocab.Namespaces()).Load(ctx, root)
	require.NoError(t, err, "fixture graph failed to load")
	return store
}

// LoadHCLString loads a single HCL document.
func LoadHCLString(t *testing.T, ctx context.Context, src string) *graph.Store {
	t.Helper()
	return LoadHCLGraph(t, ctx, map[string]string{filepath.Join("graph", "main.hcl"): src})
}

// PickPlaceFixture is a complete user story: one scenario template with a
// before/after located-at pair around a pick-and-place behaviour, one
// variant adding an is-near precondition, a scene and a cartesian product
// over 2 objects x 2 pick workspaces x 2 place workspaces x 1 agent.
const PickPlaceFixture = `
namespace "ex" { iri = "https://example.org/pickplace#" }

# --- environment ---------------------------------------------------------

node "ex:box"   { types = ["env:Object"] }
node "ex:ball"  { types = ["env:Object"] }
node "ex:table" { types = ["env:Workspace"] }
node "ex:shelf" { types = ["env:Workspace"] }
node "ex:robot" { types = ["agn:Agent"] }

node "ex:objects" {
  types = ["bdd:ConstantSet"]
  link "bdd:elements" { to = ["ex:box", "ex:ball"] }
}

node "ex:place-workspaces" {
  types = ["bdd:ConstantSet"]
  link "bdd:elements" { to = ["ex:shelf", "ex:table"] }
}

node "ex:agents" {
  types = ["bdd:ConstantSet"]
  link "bdd:elements" { to = ["ex:robot"] }
}

node "ex:scene" {
  types = ["bdd:Scene"]
  link "bdd:has-scene" { to = ["ex:scene-objects", "ex:scene-workspaces", "ex:scene-agents"] }
}

node "ex:scene-objects" {
  types = ["bdd:SceneHasObjects"]
  link "env:has-object" { to = ["ex:box", "ex:ball"] }
}

node "ex:scene-workspaces" {
  types = ["bdd:SceneHasWorkspaces"]
  link "env:has-workspace" { to = ["ex:table", "ex:shelf"] }
}

node "ex:scene-agents" {
  types = ["bdd:SceneHasAgents"]
  link "agn:has-agent" { to = ["ex:robot"] }
}

# --- scenario ------------------------------------------------------------

node "ex:var-obj"      { types = ["bdd:ScenarioVariable"] }
node "ex:var-pick-ws"  { types = ["bdd:ScenarioVariable"] }
node "ex:var-place-ws" { types = ["bdd:ScenarioVariable"] }
node "ex:var-agn"      { types = ["bdd:ScenarioVariable"] }

node "ex:pickplace"      { types = ["bhv:PickPlace"] }
node "ex:fluent-located" { types = ["bdd:LocatedAtPredicate"] }
node "ex:fluent-near"    { types = ["bdd:IsNearPredicate"] }

node "ex:given" { types = ["bdd:Given"] }
node "ex:when"  { types = ["bdd:When"] }
node "ex:then"  { types = ["bdd:Then"] }

node "ex:scenario" {
  types = ["bdd:Scenario"]
  link "bdd:given" { to = ["ex:given"] }
  link "bdd:when"  { to = ["ex:when"] }
  link "bdd:then"  { to = ["ex:then"] }
  link "task:of-task" { to = ["ex:task"] }
}

node "ex:template" {
  types = ["bdd:ScenarioTemplate"]
  link "bdd:of-scenario" { to = ["ex:scenario"] }
  link "bdd:has-clause"  { to = ["ex:given-located", "ex:when-pickplace", "ex:then-located"] }
}

node "ex:given-located" {
  types = ["bdd:FluentClause"]
  link "bdd:clause-of"     { to = ["ex:given"] }
  link "bdd:holds"         { to = ["ex:fluent-located"] }
  link "bdd:ref-object"    { to = ["ex:var-obj"] }
  link "bdd:ref-workspace" { to = ["ex:var-pick-ws"] }
  holds_at "time:BeforeEventConstraint" {
    events = { "time:ref-event" = "ex:evt-start" }
  }
}

node "ex:when-pickplace" {
  types = ["bdd:WhenBehaviour"]
  link "bdd:clause-of"       { to = ["ex:when"] }
  link "bhv:of-behaviour"    { to = ["ex:pickplace"] }
  link "bhv:target-object"   { to = ["ex:var-obj"] }
  link "bhv:target-agent"    { to = ["ex:var-agn"] }
  link "bhv:pick-workspace"  { to = ["ex:var-pick-ws"] }
  link "bhv:place-workspace" { to = ["ex:var-place-ws"] }
}

node "ex:then-located" {
  types = ["bdd:FluentClause"]
  link "bdd:clause-of"     { to = ["ex:then"] }
  link "bdd:holds"         { to = ["ex:fluent-located"] }
  link "bdd:ref-object"    { to = ["ex:var-obj"] }
  link "bdd:ref-workspace" { to = ["ex:var-place-ws"] }
  holds_at "time:AfterEventConstraint" {
    events = { "time:ref-event" = "ex:evt-end" }
  }
}

# --- variant -------------------------------------------------------------

node "ex:variant" {
  types = ["bdd:ScenarioVariant"]
  link "bdd:of-template"   { to = ["ex:template"] }
  link "bdd:has-scene"     { to = ["ex:scene"] }
  link "bdd:has-variation" { to = ["ex:variation"] }
  link "bdd:has-clause"    { to = ["ex:given-near"] }
}

node "ex:given-near" {
  types = ["bdd:FluentClause"]
  link "bdd:clause-of"  { to = ["ex:given"] }
  link "bdd:holds"      { to = ["ex:fluent-near"] }
  link "bdd:ref-agent"  { to = ["ex:var-agn"] }
  link "bdd:ref-object" { to = ["ex:var-obj"] }
}

node "ex:variation" {
  types = ["bdd:CartesianProductVariation"]
  link "task:of-task"      { to = ["ex:task"] }
  link "bdd:variable-list" { to = ["ex:var-obj", "ex:var-pick-ws", "ex:var-place-ws", "ex:var-agn"] }
  link "bdd:of-sets"       { to = ["ex:objects", ["ex:table", "ex:shelf"], "ex:place-workspaces", "ex:agents"] }
}

node "ex:story" {
  types = ["bdd:UserStory"]
  link "bdd:has-criteria" { to = ["ex:variant"] }
}
`

// PickPlaceFirstScenario is the rendering of the first variation of
// ex:variant in PickPlaceFixture.
var PickPlaceFirstScenario = []string{
	`Given "ex:box" is located at "ex:table" before event "ex:evt-start"`,
	`And "ex:robot" is near "ex:box"`,
	`When "ex:robot" picks "ex:box" from "ex:table" and places it at "ex:shelf"`,
	`Then "ex:box" is located at "ex:shelf" after event "ex:evt-end"`,
}
