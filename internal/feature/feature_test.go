package feature_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/bddgrid/internal/feature"
	"github.com/specialistvlad/bddgrid/internal/userstory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storyData() *userstory.UserStoryData {
	return &userstory.UserStoryData{
		Name: "ex:story",
		Scene: userstory.SceneData{
			Name:       "ex:scene",
			Objects:    []string{"ex:box", "ex:ball"},
			Workspaces: []string{"ex:table"},
		},
		Criteria: []*userstory.VariantData{{
			Name:      "ex:variant",
			Scenario:  "ex:scenario",
			Template:  "ex:template",
			Behaviour: "ex:pickplace",
			Variables: []string{"ex:var-obj"},
			Variations: []userstory.Variation{
				{
					Name:     "ex:variant #1",
					Bindings: []userstory.Binding{{Variable: "ex:var-obj", Value: "ex:box"}},
					Clauses:  []string{`Given "ex:box" is located at "ex:table"`, `Then "ex:box" is located at "ex:table"`},
				},
				{
					Name:     "ex:variant #2",
					Bindings: []userstory.Binding{{Variable: "ex:var-obj", Value: "ex:ball"}},
					Clauses:  []string{`Given "ex:ball" is located at "ex:table"`},
				},
			},
		}},
	}
}

func TestDefault_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, feature.Default().Render(&buf, storyData()))

	want := `Feature: ex:story
  # scene: ex:scene
  # objects: ex:box, ex:ball
  # workspaces: ex:table

  # ex:variant from ex:template, behaviour ex:pickplace

  Scenario: ex:variant #1
    Given "ex:box" is located at "ex:table"
    Then "ex:box" is located at "ex:table"

  Scenario: ex:variant #2
    Given "ex:ball" is located at "ex:table"
`
	assert.Equal(t, want, buf.String())
}

func TestDefault_EmptyStory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, feature.Default().Render(&buf, &userstory.UserStoryData{Name: "ex:empty"}))
	assert.Equal(t, "Feature: ex:empty\n", buf.String())
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("custom template", func(t *testing.T) {
		path := filepath.Join(dir, "custom.tmpl")
		require.NoError(t, os.WriteFile(path, []byte(`{{ .Name }}:{{ range .Criteria }} {{ join .Variables "," }}{{ end }}`), 0644))

		r, err := feature.FromFile(path)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, storyData()))
		assert.Equal(t, "ex:story: ex:var-obj", buf.String())
	})

	t.Run("syntax error", func(t *testing.T) {
		path := filepath.Join(dir, "broken.tmpl")
		require.NoError(t, os.WriteFile(path, []byte(`{{ .Name `), 0644))
		_, err := feature.FromFile(path)
		assert.ErrorContains(t, err, "parsing feature template")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := feature.FromFile(filepath.Join(dir, "nope.tmpl"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("execution error", func(t *testing.T) {
		path := filepath.Join(dir, "bad-field.tmpl")
		require.NoError(t, os.WriteFile(path, []byte(`{{ .Missing }}`), 0644))
		r, err := feature.FromFile(path)
		require.NoError(t, err)
		err = r.Render(&bytes.Buffer{}, storyData())
		assert.ErrorContains(t, err, "rendering feature for ex:story")
	})
}

func TestFilename(t *testing.T) {
	testCases := []struct {
		in, want string
		wantErr  bool
	}{
		{in: "ex:story", want: "ex__story.feature"},
		{in: "pick place/story", want: "pick_place_story.feature"},
		{in: "https://example.org/s#1", want: "https____example.org_s1.feature"},
		{in: "  ", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := feature.Filename(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
