// Package feature writes prepared user stories as Gherkin feature files.
package feature

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/specialistvlad/bddgrid/internal/nodeid"
	"github.com/specialistvlad/bddgrid/internal/userstory"
)

//go:embed feature.tmpl
var defaultTemplate string

var funcs = template.FuncMap{
	"join": strings.Join,
}

// Renderer executes a feature template against user story data.
type Renderer struct {
	tmpl *template.Template
}

// Default returns a Renderer using the built-in Gherkin template.
func Default() *Renderer {
	return &Renderer{tmpl: template.Must(template.New("feature").Funcs(funcs).Parse(defaultTemplate))}
}

// FromFile parses a custom template. The template sees a
// *userstory.UserStoryData and may use the join function.
func FromFile(path string) (*Renderer, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feature template: %w", err)
	}
	tmpl, err := template.New(filepath.Base(path)).Funcs(funcs).Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parsing feature template %q: %w", path, err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the feature for story to w.
func (r *Renderer) Render(w io.Writer, story *userstory.UserStoryData) error {
	if err := r.tmpl.Execute(w, story); err != nil {
		return fmt.Errorf("rendering feature for %s: %w", story.Name, err)
	}
	return nil
}

// Filename derives the feature file name for a compacted story id.
func Filename(story string) (string, error) {
	name, err := nodeid.ValidFilename(story)
	if err != nil {
		return "", err
	}
	return name + ".feature", nil
}
