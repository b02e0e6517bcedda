package pickplace

import (
	"testing"

	"github.com/specialistvlad/bddgrid/internal/nodeid"
	"github.com/specialistvlad/bddgrid/internal/registry"
	"github.com/specialistvlad/bddgrid/internal/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderers(t *testing.T) {
	v := registry.Values{
		vocab.PredTargetAgent:    "ex:robot",
		vocab.PredTargetObject:   "ex:box",
		vocab.PredPickWorkspace:  "ex:table",
		vocab.PredPlaceWorkspace: "ex:shelf",
	}

	assert.Equal(t, `"ex:robot" picks "ex:box" from "ex:table" and places it at "ex:shelf"`, RenderPickPlace(v))
	assert.Equal(t, `"ex:robot" picks "ex:box" from "ex:table"`, RenderPick(v))
	assert.Equal(t, `"ex:robot" places "ex:box" at "ex:shelf"`, RenderPlace(v))
}

func TestRegister(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)
	assert.Equal(t, []nodeid.ID{vocab.TypePickPlace, vocab.TypePick, vocab.TypePlace}, r.BehaviourTypes())

	h, err := r.Behaviour("ex:b", []nodeid.ID{"ex:Other", vocab.TypePlace})
	require.NoError(t, err)
	assert.Equal(t, "place", h.Name)
}
