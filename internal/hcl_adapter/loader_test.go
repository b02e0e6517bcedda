package hcl_adapter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/bddgrid/internal/graph"
	"github.com/specialistvlad/bddgrid/internal/hcl_adapter"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
	"github.com/specialistvlad/bddgrid/internal/testutil"
	"github.com/specialistvlad/bddgrid/internal/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ex(local string) nodeid.ID {
	return nodeid.ID(testutil.ExampleIRI + local)
}

func TestLoad_NodesTypesAndLinks(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	g := testutil.LoadHCLString(t, ctx, `
namespace "ex" { iri = "https://example.org/pickplace#" }

node "ex:comb" {
  types = ["bdd:Combination"]
  link "bdd:from" { to = ["ex:objects"] }
  value "bdd:length" { is = 2 }
  value "bdd:repetition-allowed" { is = true }
}

node "ex:objects" {
  types = ["bdd:ConstantSet"]
  link "bdd:elements" { to = ["ex:a", "ex:b", "ex:c"] }
}
`)

	assert.True(t, g.HasType(ex("comb"), vocab.TypeCombination))
	assert.Equal(t, []graph.Term{graph.Node(ex("objects"))}, g.ObjectsOf(ex("comb"), vocab.PredFrom))

	n, ok, err := graph.Int(g, ex("comb"), vocab.PredLength)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	rep, err := graph.Bool(g, ex("comb"), vocab.PredRepetitionAllowed, false)
	require.NoError(t, err)
	assert.True(t, rep)

	ids, err := graph.Nodes(g, ex("objects"), vocab.PredElements)
	require.NoError(t, err)
	assert.Equal(t, []nodeid.ID{ex("a"), ex("b"), ex("c")}, ids)
}

func TestLoad_NestedListsBecomeListTerms(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	g := testutil.LoadHCLString(t, ctx, `
namespace "ex" { iri = "https://example.org/pickplace#" }

node "ex:table-var" {
  types = ["bdd:TableVariation"]
  link "bdd:rows" { to = [["ex:a", "ex:x"], ["ex:b", "ex:y"]] }
  link "bdd:of-sets" { to = ["ex:set", ["ex:p", "ex:q"]] }
}
`)

	rows := g.ObjectsOf(ex("table-var"), vocab.PredRows)
	require.Len(t, rows, 2)
	assert.Equal(t, graph.List(graph.Node(ex("a")), graph.Node(ex("x"))), rows[0])
	assert.Equal(t, graph.List(graph.Node(ex("b")), graph.Node(ex("y"))), rows[1])

	sets := g.ObjectsOf(ex("table-var"), vocab.PredOfSets)
	require.Len(t, sets, 2)
	assert.Equal(t, graph.NodeTerm, sets[0].Kind)
	assert.Equal(t, graph.ListTerm, sets[1].Kind)
}

func TestLoad_HoldsAtBlock(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	g := testutil.LoadHCLString(t, ctx, `
namespace "ex" { iri = "https://example.org/pickplace#" }

node "ex:clause" {
  holds_at "time:DuringEventsConstraint" {
    events = {
      "time:after-event"  = "ex:start"
      "time:before-event" = "ex:end"
    }
  }
}

node "ex:named" {
  holds_at "time:AfterEventConstraint" {
    id     = "ex:tc"
    events = { "time:ref-event" = "ex:end" }
  }
}
`)

	t.Run("anonymous constraint gets a stable id", func(t *testing.T) {
		tc, err := graph.OneNode(g, ex("clause"), vocab.PredHoldsAt)
		require.NoError(t, err)
		assert.Equal(t, graph.BlankID(ex("clause"), "holds-at"), tc)
		assert.True(t, g.HasType(tc, vocab.TypeDuring))

		after, err := graph.OneNode(g, tc, vocab.PredAfterEvent)
		require.NoError(t, err)
		assert.Equal(t, ex("start"), after)
		before, err := graph.OneNode(g, tc, vocab.PredBeforeEvent)
		require.NoError(t, err)
		assert.Equal(t, ex("end"), before)
	})

	t.Run("explicit id is kept", func(t *testing.T) {
		tc, err := graph.OneNode(g, ex("named"), vocab.PredHoldsAt)
		require.NoError(t, err)
		assert.Equal(t, ex("tc"), tc)
		assert.True(t, g.HasType(tc, vocab.TypeAfterEvent))
	})
}

func TestLoad_MergesAcrossFiles(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	g := testutil.LoadHCLGraph(t, ctx, map[string]string{
		"a/ns.hcl": `namespace "ex" { iri = "https://example.org/pickplace#" }`,
		"a/one.hcl": `
node "ex:set" {
  types = ["bdd:ConstantSet"]
  link "bdd:elements" { to = ["ex:a"] }
}`,
		"b/two.hcl": `
node "ex:set" {
  types = ["bdd:ConstantSet", "bdd:Set"]
  link "bdd:elements" { to = ["ex:b"] }
}`,
		"b/ignored.txt": `not hcl`,
	})

	assert.Equal(t, []nodeid.ID{vocab.TypeConstantSet, vocab.TypeSet}, g.TypesOf(ex("set")))
	assert.Len(t, g.ObjectsOf(ex("set"), vocab.PredElements), 2)
}

func TestLoad_FullFixture(t *testing.T) {
	ctx, buf := testutil.NewContext(t)
	g := testutil.LoadHCLString(t, ctx, testutil.PickPlaceFixture)

	assert.Equal(t, []nodeid.ID{ex("story")}, g.NodesOfType(vocab.TypeUserStory))
	assert.Equal(t, []nodeid.ID{ex("story")}, g.SubjectsOf(vocab.PredHasCriteria, ex("variant")))
	assert.Equal(t, "ex:variant", graph.Label(g, ex("variant")))
	testutil.AssertLogged(t, buf, "HCL loading complete.")
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{name: "syntax error", src: `node "ex:a" {`},
		{name: "unknown attribute", src: `node "a" { colour = "red" }`},
		{name: "conflicting namespace", src: `
namespace "bdd" { iri = "https://example.org/other#" }
`},
		{name: "null link target", src: `node "a" {
  link "p" { to = null }
}`},
		{name: "object link target", src: `node "a" {
  link "p" { to = [{ k = "v" }] }
}`},
		{name: "empty node id", src: `node "" {}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, _ := testutil.NewContext(t)
			dir := t.TempDir()
			path := filepath.Join(dir, "bad.hcl")
			require.NoError(t, os.WriteFile(path, []byte(tc.src), 0644))

			_, err := hcl_adapter.NewLoader(vocab.Namespaces()).Load(ctx, path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingPath(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	_, err := hcl_adapter.NewLoader(nil).Load(ctx, filepath.Join(t.TempDir(), "missing.hcl"))
	assert.ErrorContains(t, err, "error accessing path")
}
