package locatedat

import (
	"testing"

	"github.com/specialistvlad/bddgrid/internal/graph"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
	"github.com/specialistvlad/bddgrid/internal/registry"
	"github.com/specialistvlad/bddgrid/internal/vocab"
	"github.com/specialistvlad/bddgrid/modules/isheld"
	"github.com/specialistvlad/bddgrid/modules/isnear"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFluentRenderers(t *testing.T) {
	v := registry.Values{
		vocab.PredRefObject:    "ex:box",
		vocab.PredRefWorkspace: "ex:table",
		vocab.PredRefAgent:     "ex:robot",
	}
	assert.Equal(t, `"ex:box" is located at "ex:table"`, Render(v))
	assert.Equal(t, `"ex:box" is held by "ex:robot"`, isheld.Render(v))
	assert.Equal(t, `"ex:robot" is near "ex:box"`, isnear.Render(v))
}

func TestLoad_RequiresBothRoles(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)
	h, err := r.Fluent("ex:f", []nodeid.ID{vocab.TypeLocatedAt})
	require.NoError(t, err)

	g := graph.NewStore(vocab.Namespaces())
	require.NoError(t, g.AddEdge("c", vocab.PredRefObject, graph.Node("v-obj")))

	_, err = h.Load(g, "c")
	assert.Error(t, err)

	require.NoError(t, g.AddEdge("c", vocab.PredRefWorkspace, graph.Node("v-ws")))
	args, err := h.Load(g, "c")
	require.NoError(t, err)
	assert.Equal(t, []registry.Arg{
		{Role: vocab.PredRefObject, Variable: "v-obj"},
		{Role: vocab.PredRefWorkspace, Variable: "v-ws"},
	}, args)
}
