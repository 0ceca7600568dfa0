// Package symbols derives page-level views of the symbol graph: member
// groupings, attribute labels, signatures, ancestor chains, event listeners
// and access-based pruning.
package symbols

import (
	"strings"

	"git.home.luguber.info/inful/doclinks/internal/doclet"
)

// Members groups the top-level symbols a navigation index is built from.
type Members struct {
	Classes    []*doclet.Doclet
	Externals  []*doclet.Doclet
	Events     []*doclet.Doclet
	Globals    []*doclet.Doclet
	Mixins     []*doclet.Doclet
	Modules    []*doclet.Doclet
	Namespaces []*doclet.Doclet
	Interfaces []*doclet.Doclet
}

func ofKind(k doclet.Kind) func(*doclet.Doclet) bool {
	return func(d *doclet.Doclet) bool { return d.Kind == k }
}

// GetMembers groups g by kind. Globals are members, functions, constants and
// typedefs with no parent, except module exports. Quotes around external
// names are stripped.
func GetMembers(g *doclet.Graph) Members {
	m := Members{
		Classes:    g.Find(ofKind(doclet.KindClass)),
		Externals:  g.Find(ofKind(doclet.KindExternal)),
		Events:     g.Find(ofKind(doclet.KindEvent)),
		Mixins:     g.Find(ofKind(doclet.KindMixin)),
		Modules:    g.Find(ofKind(doclet.KindModule)),
		Namespaces: g.Find(ofKind(doclet.KindNamespace)),
		Interfaces: g.Find(ofKind(doclet.KindInterface)),
	}
	m.Globals = g.Find(func(d *doclet.Doclet) bool {
		switch d.Kind {
		case doclet.KindMember, doclet.KindFunction, doclet.KindConstant, doclet.KindTypedef:
			return !d.HasMemberof() && !d.IsModuleExports()
		}
		return false
	})
	for _, d := range m.Externals {
		d.Name = strings.TrimSuffix(strings.TrimPrefix(d.Name, `"`), `"`)
	}
	return m
}
