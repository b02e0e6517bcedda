// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package yamlgraph loads scenario graphs written in YAML. It is the
// alternative to the HCL format and produces the same graph.Store shape:
//
//	version: 1
//	namespaces: { ex: "https://example.org/pickplace#" }
//	nodes:
//	  - id: ex:comb-2
//	    types: [bdd:Combination]
//	    links: { "bdd:from": [ex:objects] }
//	    values: { "bdd:length": 2 }
//
// Strings under links are node ids, nested sequences become list terms and
// numbers or booleans become literals. Scalars under values are always
// literals.
package yamlgraph

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/bddgrid/internal/ctxlog"
	"github.com/specialistvlad/bddgrid/internal/fsutil"
	"github.com/specialistvlad/bddgrid/internal/graph"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
	"gopkg.in/yaml.v3"
)

// FormatVersion is the only document version this loader accepts.
const FormatVersion = 1

// Loader implements graph.Loader for .yaml and .yml files.
type Loader struct {
	base *nodeid.Namespaces
}

// NewLoader creates a YAML graph loader. Prefixes bound in base are available
// to every document.
func NewLoader(base *nodeid.Namespaces) *Loader {
	if base == nil {
		base = nodeid.NewNamespaces()
	}
	return &Loader{base: base}
}

// Extensions implements graph.Loader.
func (l *Loader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

type document struct {
	path       string
	Version    int        `yaml:"version"`
	Namespaces yaml.Node  `yaml:"namespaces"`
	Nodes      []*nodeDoc `yaml:"nodes"`
}

type nodeDoc struct {
	ID      string        `yaml:"id"`
	Types   []string      `yaml:"types"`
	Links   yaml.Node     `yaml:"links"`
	Values  yaml.Node     `yaml:"values"`
	HoldsAt []*holdsAtDoc `yaml:"holds_at"`
}

type holdsAtDoc struct {
	Type   string    `yaml:"type"`
	ID     string    `yaml:"id"`
	Events yaml.Node `yaml:"events"`
}

// Load parses every YAML document under paths into one store. Namespaces of
// all documents are bound before any node is translated.
func (l *Loader) Load(ctx context.Context, paths ...string) (*graph.Store, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := l.findFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML graph files.", "count", len(files))

	docs := make([]*document, 0, len(files))
	for _, f := range files {
		doc, err := readDocument(f)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	ns := l.base.Clone()
	for _, doc := range docs {
		if err := bindNamespaces(ns, &doc.Namespaces); err != nil {
			return nil, fmt.Errorf("%s: %w", doc.path, err)
		}
	}

	store := graph.NewStore(ns)
	for _, doc := range docs {
		for i, n := range doc.Nodes {
			if err := translateNode(store, n); err != nil {
				return nil, fmt.Errorf("%s: nodes[%d]: %w", doc.path, i, err)
			}
		}
	}

	logger.Debug("YAML loading complete.", "files", len(files), "edges", store.Len())
	return store, nil
}

func readDocument(path string) (*document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %w", path, err)
	}
	doc := &document{path: path}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}
	if doc.Version != FormatVersion {
		return nil, fmt.Errorf("%s: unsupported graph version %d (want %d)", path, doc.Version, FormatVersion)
	}
	return doc, nil
}

func (l *Loader) findFiles(paths []string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", p, err)
		}
		files := []string{p}
		if info.IsDir() {
			if files, err = fsutil.FindFilesByExtension(p, l.Extensions()...); err != nil {
				return nil, err
			}
		}
		for _, f := range files {
			if _, ok := seen[f]; !ok {
				seen[f] = struct{}{}
				out = append(out, f)
			}
		}
	}
	return out, nil
}
