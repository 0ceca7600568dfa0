package symbols

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/doclinks/internal/doclet"
	"git.home.luguber.info/inful/doclinks/internal/foundation"
	"git.home.luguber.info/inful/doclinks/internal/links"
)

// GetAttribs returns the display attributes of d, e.g. "async", "static",
// "readonly" or "nullable", in a fixed order.
func GetAttribs(d *doclet.Doclet) []string {
	if d == nil {
		return nil
	}
	var attribs []string
	if d.Async {
		attribs = append(attribs, "async")
	}
	if d.Generator {
		attribs = append(attribs, "generator")
	}
	if d.Virtual {
		attribs = append(attribs, "abstract")
	}
	if d.Access != doclet.AccessUndefined && d.Access != doclet.AccessPublic {
		attribs = append(attribs, string(d.Access))
	}
	if d.Scope != "" && d.Scope != doclet.ScopeInstance && d.Scope != doclet.ScopeGlobal {
		switch d.Kind {
		case doclet.KindFunction, doclet.KindMember, doclet.KindConstant:
			attribs = append(attribs, string(d.Scope))
		}
	}
	if d.Readonly && d.Kind == doclet.KindMember {
		attribs = append(attribs, "readonly")
	}
	if d.Kind == doclet.KindConstant {
		attribs = append(attribs, "constant")
	}
	return append(attribs, nullability(d.Nullable)...)
}

func nullability(o foundation.Option[bool]) []string {
	v, ok := o.Get()
	switch {
	case !ok:
		return nil
	case v:
		return []string{"nullable"}
	default:
		return []string{"non-null"}
	}
}

// attribsString renders attribs as "(a, b) ", escaped, or "" when empty.
func attribsString(attribs []string) string {
	if len(attribs) == 0 {
		return ""
	}
	return links.HTMLSafe(fmt.Sprintf("(%s) ", strings.Join(attribs, ", ")))
}

// AddAttribs stores the rendered attribute labels of d in d.Attribs.
func AddAttribs(d *doclet.Doclet) {
	d.Attribs = fmt.Sprintf(`<span class="type-signature">%s</span>`, attribsString(GetAttribs(d)))
}
