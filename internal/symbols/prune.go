package symbols

import (
	"git.home.luguber.info/inful/doclinks/internal/doclet"
	"git.home.luguber.info/inful/doclinks/internal/util/sets"
)

// Access levels accepted by AccessFilter besides the doclet.Access values.
const (
	AccessAll       = "all"
	AccessUndefined = "undefined"
)

// AccessFilter selects which access levels survive Prune.
type AccessFilter struct {
	// Access lists the levels to keep: "public", "protected", "private",
	// "package", "undefined" (no @access tag) or "all". Empty keeps everything
	// except private symbols.
	Access []string
	// Private keeps private symbols even when Access does not list them.
	Private bool
}

// Prune removes undocumented, ignored and anonymous-scope doclets from g, then
// every doclet whose access level f does not keep. It returns how many doclets
// were removed.
func Prune(g *doclet.Graph, f AccessFilter) int {
	removed := g.Remove(func(d *doclet.Doclet) bool {
		return d.Undocumented || d.Ignore || d.Memberof == doclet.AnonymousMemberof
	})

	keep := sets.New(f.Access...)
	if keep.Has(AccessAll) {
		return removed
	}
	listed := len(f.Access) > 0
	drop := sets.New[doclet.Access]()
	if listed {
		for _, a := range []doclet.Access{doclet.AccessPublic, doclet.AccessProtected, doclet.AccessPackage} {
			if !keep.Has(string(a)) {
				drop.Add(a)
			}
		}
		if !keep.Has(AccessUndefined) {
			drop.Add(doclet.AccessUndefined)
		}
	}
	if !f.Private && !keep.Has(string(doclet.AccessPrivate)) {
		drop.Add(doclet.AccessPrivate)
	}

	return removed + g.Remove(func(d *doclet.Doclet) bool { return drop.Has(d.Access) })
}
