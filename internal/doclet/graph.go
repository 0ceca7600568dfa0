package doclet

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/doclinks/internal/foundation/errors"
	"git.home.luguber.info/inful/doclinks/internal/logfields"
)

// Graph is the symbol graph for one generation run. Doclet order is the order
// the upstream parser produced and is the traversal order for link registration.
type Graph struct {
	doclets    []*Doclet
	byLongname map[string][]*Doclet
}

// NewGraph indexes doclets by longname.
func NewGraph(doclets []*Doclet) *Graph {
	g := &Graph{}
	g.reindex(doclets)
	return g
}

func (g *Graph) reindex(doclets []*Doclet) {
	g.doclets = doclets
	g.byLongname = make(map[string][]*Doclet, len(doclets))
	for _, d := range doclets {
		g.byLongname[d.Longname] = append(g.byLongname[d.Longname], d)
	}
}

// All returns every doclet in traversal order.
func (g *Graph) All() []*Doclet {
	return g.doclets
}

// Len returns the number of doclets.
func (g *Graph) Len() int {
	return len(g.doclets)
}

// Find returns the doclets matching pred in traversal order.
func (g *Graph) Find(pred func(*Doclet) bool) []*Doclet {
	var out []*Doclet
	for _, d := range g.doclets {
		if pred(d) {
			out = append(out, d)
		}
	}
	return out
}

// ByLongname returns the doclets registered under longname.
func (g *Graph) ByLongname(longname string) []*Doclet {
	return g.byLongname[longname]
}

// First returns the first doclet with the given longname.
func (g *Graph) First(longname string) (*Doclet, bool) {
	ds := g.byLongname[longname]
	if len(ds) == 0 {
		return nil, false
	}
	return ds[0], true
}

// Remove drops every doclet matching pred and returns how many were removed.
func (g *Graph) Remove(pred func(*Doclet) bool) int {
	kept := make([]*Doclet, 0, len(g.doclets))
	for _, d := range g.doclets {
		if !pred(d) {
			kept = append(kept, d)
		}
	}
	removed := len(g.doclets) - len(kept)
	if removed > 0 {
		g.reindex(kept)
	}
	return removed
}

// Parse decodes a doclet list. JSON dumps are accepted as well as YAML.
func Parse(data []byte) ([]*Doclet, error) {
	var doclets []*Doclet
	if err := yaml.Unmarshal(data, &doclets); err != nil {
		return nil, errors.WrapError(err, errors.CategoryInput, "failed to decode doclets").Build()
	}
	return doclets, nil
}

// Load reads a doclet list from path.
func Load(path string) (*Graph, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.FileSystemError("failed to read doclets").
			WithCause(err).
			WithContext(logfields.KeyPath, path).
			Build()
	}
	doclets, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return NewGraph(doclets), nil
}
