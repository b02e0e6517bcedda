package binding

import (
	"testing"

	"github.com/specialistvlad/bddgrid/internal/graph"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
	"github.com/stretchr/testify/assert"
	"github.com/zclconf/go-cty/cty"
)

func TestRender(t *testing.T) {
	ns := nodeid.NewNamespaces().MustBind("ex", "https://example.org/")
	x, y := Node{ID: "https://example.org/x"}, Node{ID: "https://example.org/y"}

	assert.Equal(t, "ex:x", x.Render(ns))
	assert.Equal(t, "['ex:x','ex:y']", Tuple{Items: []Value{x, y}}.Render(ns))
	assert.Equal(t, "any of ['ex:x','ex:y']", Exists{Items: []Value{x, y}}.Render(ns))
	assert.Equal(t, "[['ex:x'],'3']", Tuple{Items: []Value{
		Tuple{Items: []Value{x}},
		Literal{Value: cty.NumberIntVal(3)},
	}}.Render(ns))
}

func TestFromTerm(t *testing.T) {
	v := FromTerm(graph.List(graph.Node("a"), graph.Literal(cty.StringVal("b"))))
	items, ok := Items(v)
	assert.True(t, ok)
	assert.Equal(t, []Value{Node{ID: "a"}, Literal{Value: cty.StringVal("b")}}, items)

	_, ok = Items(Node{ID: "a"})
	assert.False(t, ok)
	_, ok = Items(Exists{Items: items})
	assert.False(t, ok)
}

func TestMap_WithCopies(t *testing.T) {
	base := NewMap([]nodeid.ID{"v1"}, []Value{Node{ID: "a"}})
	left := base.With("v2", Node{ID: "b"})
	right := base.With("v2", Node{ID: "c"})

	_, ok := base.Get("v2")
	assert.False(t, ok)

	lv, _ := left.Get("v2")
	rv, _ := right.Get("v2")
	assert.Equal(t, Node{ID: "b"}, lv)
	assert.Equal(t, Node{ID: "c"}, rv)
	assert.Equal(t, []nodeid.ID{"v1", "v2"}, left.Keys())
	assert.Equal(t, 1, base.Len())

	assert.Panics(t, func() { NewMap([]nodeid.ID{"v1"}, nil) })
}
