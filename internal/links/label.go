package links

import (
	"regexp"
	"strings"

	"git.home.luguber.info/inful/doclinks/internal/typeexpr"
)

var (
	anchorPattern       = regexp.MustCompile(`(<a\b[^>]*>)([^<]*)(</a>)`)
	singleAnchorPattern = regexp.MustCompile(`^(<a\b[^>]*>)([^<]*)</a>$`)
)

// pathLabel shortens a namespaced path to its last segment for display:
// "module:app/models~User" becomes "models~User". Other text is unchanged.
func (r *Resolver) pathLabel(text string) string {
	loc := r.nsPrefix.FindStringIndex(text)
	if loc == nil {
		return text
	}
	rest := text[loc[1]:]
	if i := strings.LastIndex(rest, "/"); i >= 0 {
		rest = rest[i+1:]
	}
	if rest == "" {
		return text
	}
	return rest
}

// stripAnchorLabels applies pathLabel to the text of every anchor in markup.
// Attributes, and with them the href, are left alone.
func (r *Resolver) stripAnchorLabels(markup string) string {
	return anchorPattern.ReplaceAllStringFunc(markup, func(m string) string {
		sub := anchorPattern.FindStringSubmatch(m)
		return sub[1] + r.pathLabel(sub[2]) + sub[3]
	})
}

// arrayLabel renders a stringified `Array.<T>` element as `T[]`, keeping the
// element's anchor when it has one.
func arrayLabel(elem string) string {
	if m := singleAnchorPattern.FindStringSubmatch(elem); m != nil {
		return m[1] + m[2] + "[]</a>"
	}
	return elem + "[]"
}

// plainArrayElement returns T for `Array.<T>` when T is an unmodified name and
// the array itself carries no modifiers.
func plainArrayElement(n typeexpr.Node) (*typeexpr.NameExpr, bool) {
	if *n.Mods() != (typeexpr.Modifiers{}) {
		return nil, false
	}
	elem, ok := typeexpr.ArrayElement(n)
	if !ok {
		return nil, false
	}
	name, ok := elem.(*typeexpr.NameExpr)
	if !ok || *name.Mods() != (typeexpr.Modifiers{}) {
		return nil, false
	}
	return name, true
}

// ShortName returns the last member segment of a longname: "Foo#bar" -> "bar".
func ShortName(longname string) string {
	inQuote := byte(0)
	cut := -1
	for i := 0; i < len(longname); i++ {
		c := longname[i]
		switch {
		case inQuote != 0:
			if c == inQuote {
				inQuote = 0
			}
		case c == '"' || c == '\'':
			inQuote = c
		case c == '.' || c == '#' || c == '~':
			cut = i
		}
	}
	if cut < 0 || cut == len(longname)-1 {
		return longname
	}
	return longname[cut+1:]
}
