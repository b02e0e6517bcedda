package publish_test

import (
	"net"
	"testing"
	"time"

	"github.com/specialistvlad/bddgrid/internal/publish"
	"github.com/specialistvlad/bddgrid/internal/testutil"
	"github.com/specialistvlad/bddgrid/internal/userstory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload(t *testing.T) {
	story := &userstory.UserStoryData{
		Name:  "ex:story",
		Scene: userstory.SceneData{Name: "ex:scene", Objects: []string{"ex:box"}},
		Criteria: []*userstory.VariantData{{
			Name:      "ex:variant",
			Variables: []string{"ex:var-obj"},
			Variations: []userstory.Variation{{
				Name:     "ex:variant #1",
				Bindings: []userstory.Binding{{Variable: "ex:var-obj", Value: "ex:box"}},
				Clauses:  []string{`Given "ex:box" is here`},
			}},
		}},
	}

	p, err := publish.Payload(story)
	require.NoError(t, err)

	assert.Equal(t, "ex:story", p["name"])
	assert.Equal(t, map[string]any{"name": "ex:scene", "objects": []any{"ex:box"}}, p["scene"])

	criteria := p["criteria"].([]any)
	require.Len(t, criteria, 1)
	variant := criteria[0].(map[string]any)
	assert.NotContains(t, variant, "behaviour", "empty behaviour is omitted")
	variations := variant["variations"].([]any)
	assert.Equal(t, []any{`Given "ex:box" is here`}, variations[0].(map[string]any)["clauses"])
}

func TestPublish_Validation(t *testing.T) {
	ctx, _ := testutil.NewContext(t)

	err := (&publish.Publisher{Event: "feature"}).Publish(ctx, nil)
	assert.ErrorContains(t, err, "URL is required")

	err = (&publish.Publisher{URL: "http://localhost:1"}).Publish(ctx, nil)
	assert.ErrorContains(t, err, "event name is required")
}

func TestPublish_Unreachable(t *testing.T) {
	ctx, _ := testutil.NewContext(t)

	// Reserve a port and close it so nothing is listening.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	p := &publish.Publisher{
		URL:     "http://" + addr + "/socket.io/",
		Event:   "feature",
		Timeout: 2 * time.Second,
	}
	start := time.Now()
	err = p.Publish(ctx, []*userstory.UserStoryData{{Name: "ex:story"}})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 10*time.Second)
}
