package symbols

import (
	"git.home.luguber.info/inful/doclinks/internal/doclet"
	"git.home.luguber.info/inful/doclinks/internal/links"
)

// GetAncestors returns the chain of parents of d, outermost first. The walk
// stops at a missing parent or at a longname it has already visited.
func GetAncestors(g *doclet.Graph, d *doclet.Doclet) []*doclet.Doclet {
	var ancestors []*doclet.Doclet
	seen := map[string]bool{d.Longname: true}
	for doc := d; doc.HasMemberof(); {
		parent, ok := g.First(doc.Memberof)
		if !ok || parent == doc || seen[parent.Longname] {
			break
		}
		seen[parent.Longname] = true
		ancestors = append(ancestors, parent)
		doc = parent
	}
	// Collected innermost first.
	for i, j := 0, len(ancestors)-1; i < j; i, j = i+1, j-1 {
		ancestors[i], ancestors[j] = ancestors[j], ancestors[i]
	}
	return ancestors
}

// AncestorLinks links every ancestor of d, each labelled with its scope
// punctuation and name. The last link also carries d's own punctuation so the
// chain reads like d's longname.
func AncestorLinks(r *links.Resolver, g *doclet.Graph, d *doclet.Doclet, cssClass string) []string {
	ancestors := GetAncestors(g, d)
	out := make([]string, 0, len(ancestors))
	for _, a := range ancestors {
		text := doclet.ScopeToPunc[a.Scope] + a.Name
		out = append(out, r.LinkTo(a.Longname, text, cssClass, ""))
	}
	if len(out) > 0 {
		out[len(out)-1] += doclet.ScopeToPunc[d.Scope]
	}
	return out
}
