package render_test

import (
	"testing"

	"github.com/specialistvlad/bddgrid/internal/bdderr"
	"github.com/specialistvlad/bddgrid/internal/binding"
	"github.com/specialistvlad/bddgrid/internal/clause"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
	"github.com/specialistvlad/bddgrid/internal/registry"
	"github.com/specialistvlad/bddgrid/internal/render"
	"github.com/specialistvlad/bddgrid/internal/testutil"
	"github.com/specialistvlad/bddgrid/modules/isnear"
	"github.com/specialistvlad/bddgrid/modules/locatedat"
	"github.com/specialistvlad/bddgrid/modules/pickplace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func ex(local string) nodeid.ID {
	return nodeid.ID(testutil.ExampleIRI + local)
}

var steps = clause.Steps{Given: ex("given"), When: ex("when"), Then: ex("then")}

func newRegistry() *registry.Registry {
	r := registry.New()
	(&locatedat.Module{}).Register(r)
	(&isnear.Module{}).Register(r)
	(&pickplace.Module{}).Register(r)
	return r
}

// quantifiedHCL holds one quantifier per step around a located-at clause.
// The Given quantifier ranges over a literal set, the Then quantifier over
// the value bound to ex:set-var.
const quantifiedHCL = `
namespace "ex" { iri = "https://example.org/pickplace#" }

node "ex:located" { types = ["bdd:LocatedAtPredicate"] }

node "ex:tmpl" {
  link "bdd:has-clause" { to = ["ex:all", "ex:some"] }
}

node "ex:all" {
  types = ["bdd:ForAll"]
  link "bdd:clause-of"    { to = ["ex:given"] }
  link "bdd:ref-variable" { to = ["ex:obj"] }
  link "bdd:in-set"       { to = [["x", "y", "z"]] }
  link "bdd:has-clause"   { to = ["ex:all-located"] }
}

node "ex:all-located" {
  types = ["bdd:FluentClause"]
  link "bdd:clause-of"     { to = ["ex:given"] }
  link "bdd:holds"         { to = ["ex:located"] }
  link "bdd:ref-object"    { to = ["ex:obj"] }
  link "bdd:ref-workspace" { to = ["ex:ws"] }
}

node "ex:some" {
  types = ["bdd:ThereExists"]
  link "bdd:clause-of"    { to = ["ex:then"] }
  link "bdd:ref-variable" { to = ["ex:target"] }
  link "bdd:in-set"       { to = ["ex:set-var"] }
  link "bdd:has-clause"   { to = ["ex:some-located"] }
}

node "ex:some-located" {
  types = ["bdd:FluentClause"]
  link "bdd:clause-of"     { to = ["ex:then"] }
  link "bdd:holds"         { to = ["ex:located"] }
  link "bdd:ref-object"    { to = ["ex:target"] }
  link "bdd:ref-workspace" { to = ["ex:ws"] }
  holds_at "time:DuringEventsConstraint" {
    events = {
      "time:after-event"  = "ex:start"
      "time:before-event" = "ex:end"
    }
  }
}
`

func loadQuantified(t *testing.T) (*clause.Tree, *render.Engine) {
	t.Helper()
	ctx, _ := testutil.NewContext(t)
	g := testutil.LoadHCLString(t, ctx, quantifiedHCL)
	tree, err := clause.Load(ctx, g, newRegistry(), steps, ex("tmpl"))
	require.NoError(t, err)
	return tree, render.New(g.Namespaces())
}

func nodes(ids ...nodeid.ID) []binding.Value {
	out := make([]binding.Value, len(ids))
	for i, id := range ids {
		out[i] = binding.Node{ID: id}
	}
	return out
}

func TestRender_Fixture(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	g := testutil.LoadHCLString(t, ctx, testutil.PickPlaceFixture)
	tree, err := clause.Load(ctx, g, newRegistry(), steps, ex("template"), ex("variant"))
	require.NoError(t, err)

	b := binding.NewMap(
		[]nodeid.ID{ex("var-obj"), ex("var-pick-ws"), ex("var-place-ws"), ex("var-agn")},
		nodes(ex("box"), ex("table"), ex("shelf"), ex("robot")),
	)
	lines, err := render.New(g.Namespaces()).Render(tree, b)
	require.NoError(t, err)
	assert.Equal(t, testutil.PickPlaceFirstScenario, lines)
}

func TestRender_Quantifiers(t *testing.T) {
	tree, engine := loadQuantified(t)

	b := binding.NewMap(
		[]nodeid.ID{ex("ws"), ex("set-var")},
		[]binding.Value{
			binding.Node{ID: ex("table")},
			binding.Tuple{Items: nodes("x", "y", "z")},
		},
	)

	lines, err := engine.Render(tree, b)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`Given "x" is located at "ex:table"`,
		`And "y" is located at "ex:table"`,
		`And "z" is located at "ex:table"`,
		`Then "any of ['x','y','z']" is located at "ex:table" after event "ex:start" and before event "ex:end"`,
	}, lines)

	t.Run("bindings are not mutated", func(t *testing.T) {
		_, ok := b.Get(ex("obj"))
		assert.False(t, ok)
		assert.Equal(t, 2, b.Len())
	})

	t.Run("steps keep texts apart", func(t *testing.T) {
		bySteps, err := engine.Steps(tree, b)
		require.NoError(t, err)
		assert.Len(t, bySteps[clause.Given], 3)
		assert.Empty(t, bySteps[clause.When])
		require.Len(t, bySteps[clause.Then], 1)
		assert.Contains(t, bySteps[clause.Then][0], "any of ['x','y','z']")
	})

	t.Run("rendering is repeatable", func(t *testing.T) {
		again, err := engine.Render(tree, b)
		require.NoError(t, err)
		assert.Equal(t, lines, again)
	})
}

func TestRender_Errors(t *testing.T) {
	tree, engine := loadQuantified(t)

	testCases := []struct {
		name     string
		bindings binding.Map
		contains string
	}{
		{
			name:     "role variable unbound",
			bindings: binding.NewMap([]nodeid.ID{ex("set-var")}, []binding.Value{binding.Tuple{Items: nodes("x")}}),
			contains: "references unbound variable " + ex("ws").String(),
		},
		{
			name:     "set variable unbound",
			bindings: binding.NewMap([]nodeid.ID{ex("ws")}, nodes(ex("table"))),
			contains: "references unbound variable " + ex("set-var").String(),
		},
		{
			name:     "set variable bound to a single node",
			bindings: binding.NewMap([]nodeid.ID{ex("ws"), ex("set-var")}, nodes(ex("table"), ex("box"))),
			contains: "is not iterable",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lines, err := engine.Render(tree, tc.bindings)
			require.Error(t, err)
			assert.Nil(t, lines)
			assert.ErrorIs(t, err, bdderr.ErrUnbound)
			assert.ErrorContains(t, err, tc.contains)
		})
	}
}

func TestRender_KeywordsPerStep(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	g := testutil.LoadHCLString(t, ctx, `
namespace "ex" { iri = "https://example.org/pickplace#" }

node "ex:located" { types = ["bdd:LocatedAtPredicate"] }

node "ex:tmpl" {
  link "bdd:has-clause" { to = ["ex:t1", "ex:g1", "ex:t2"] }
}

node "ex:g1" {
  types = ["bdd:FluentClause"]
  link "bdd:clause-of"     { to = ["ex:given"] }
  link "bdd:holds"         { to = ["ex:located"] }
  link "bdd:ref-object"    { to = ["ex:a"] }
  link "bdd:ref-workspace" { to = ["ex:b"] }
}

node "ex:t1" {
  types = ["bdd:FluentClause"]
  link "bdd:clause-of"     { to = ["ex:then"] }
  link "bdd:holds"         { to = ["ex:located"] }
  link "bdd:ref-object"    { to = ["ex:a"] }
  link "bdd:ref-workspace" { to = ["ex:a"] }
}

node "ex:t2" {
  types = ["bdd:FluentClause"]
  link "bdd:clause-of"     { to = ["ex:then"] }
  link "bdd:holds"         { to = ["ex:located"] }
  link "bdd:ref-object"    { to = ["ex:b"] }
  link "bdd:ref-workspace" { to = ["ex:b"] }
}
`)
	tree, err := clause.Load(ctx, g, newRegistry(), steps, ex("tmpl"))
	require.NoError(t, err)

	lines, err := render.New(g.Namespaces()).Render(tree, binding.NewMap(
		[]nodeid.ID{ex("a"), ex("b")},
		[]binding.Value{binding.Node{ID: ex("box")}, binding.Literal{Value: cty.StringVal("shelf")}},
	))
	require.NoError(t, err)
	assert.Equal(t, []string{
		`Given "ex:box" is located at "shelf"`,
		`Then "ex:box" is located at "ex:box"`,
		`And "shelf" is located at "shelf"`,
	}, lines)
}
