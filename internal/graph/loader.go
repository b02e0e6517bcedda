package graph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/specialistvlad/bddgrid/internal/ctxlog"
	"github.com/specialistvlad/bddgrid/internal/fsutil"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
)

// Loader turns graph files of one format into a Store.
type Loader interface {
	// Extensions lists the file suffixes the loader reads, e.g. ".hcl".
	Extensions() []string
	// Load parses the given files into a new Store.
	Load(ctx context.Context, files ...string) (*Store, error)
}

// LoadAll discovers graph files under paths, hands each format's files to
// its loader and merges the results into one Store seeded with base.
func LoadAll(ctx context.Context, base *nodeid.Namespaces, loaders []Loader, paths ...string) (*Store, error) {
	logger := ctxlog.FromContext(ctx)

	byExt := make(map[string]Loader)
	var exts []string
	for _, l := range loaders {
		for _, ext := range l.Extensions() {
			byExt[ext] = l
			exts = append(exts, ext)
		}
	}

	filesByLoader := make(map[Loader][]string)
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("reading graph path %q: %w", p, err)
		}
		var files []string
		if info.IsDir() {
			files, err = fsutil.FindFilesByExtension(p, exts...)
			if err != nil {
				return nil, fmt.Errorf("searching %q for graph files: %w", p, err)
			}
			if len(files) == 0 {
				logger.Warn("No graph files found in directory.", "path", p, "extensions", exts)
			}
		} else {
			files = []string{p}
		}
		for _, f := range files {
			l, ok := byExt[strings.ToLower(filepath.Ext(f))]
			if !ok {
				return nil, fmt.Errorf("no graph loader for file %q", f)
			}
			filesByLoader[l] = append(filesByLoader[l], f)
		}
	}

	store := NewStore(base.Clone())
	for _, l := range loaders {
		files := filesByLoader[l]
		if len(files) == 0 {
			continue
		}
		sort.Strings(files)
		part, err := l.Load(ctx, files...)
		if err != nil {
			return nil, err
		}
		if err := store.Merge(part); err != nil {
			return nil, err
		}
		logger.Debug("Graph files loaded.", "files", len(files), "edges", part.Len())
	}
	return store, nil
}
