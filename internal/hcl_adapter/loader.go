package hcl_adapter

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/bddgrid/internal/ctxlog"
	"github.com/specialistvlad/bddgrid/internal/fsutil"
	"github.com/specialistvlad/bddgrid/internal/graph"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
)

// Loader is the HCL-specific implementation of the graph.Loader interface.
type Loader struct {
	base *nodeid.Namespaces
}

// NewLoader creates a new HCL graph loader. Prefixes bound in base are
// available to every file in addition to the files' own namespace blocks.
func NewLoader(base *nodeid.Namespaces) *Loader {
	if base == nil {
		base = nodeid.NewNamespaces()
	}
	return &Loader{base: base}
}

// Extensions implements graph.Loader.
func (l *Loader) Extensions() []string {
	return []string{".hcl"}
}

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Namespaces []*Namespace `hcl:"namespace,block"`
	Nodes      []*Node      `hcl:"node,block"`
	Remain     hcl.Body     `hcl:",remain"`
}

// Load orchestrates the entire HCL graph loading process. Namespace blocks
// from all files are bound before any node is translated, so a prefix
// declared in one file can be used in every other.
func (l *Loader) Load(ctx context.Context, paths ...string) (*graph.Store, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	var roots []*fileRoot

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		roots = append(roots, &root)
	}

	ns := l.base.Clone()
	for _, root := range roots {
		for _, n := range root.Namespaces {
			if err := ns.Bind(n.Prefix, n.IRI); err != nil {
				return nil, fmt.Errorf("namespace %q: %w", n.Prefix, err)
			}
		}
	}

	store := graph.NewStore(ns)
	nodes := 0
	for _, root := range roots {
		for _, n := range root.Nodes {
			if err := l.translateNode(ctx, store, n); err != nil {
				return nil, err
			}
			nodes++
		}
	}

	logger.Debug("HCL loading complete.", "files", len(hclFiles), "node_blocks", nodes, "edges", store.Len())
	return store, nil
}

// findAllHCLFiles expands directories into the .hcl files below them and
// drops repeated paths.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}
		files, err := fsutil.FindFilesByExtension(path, l.Extensions()...)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			add(f)
		}
	}
	return allFiles, nil
}
