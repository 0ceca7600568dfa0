package symbols

import (
	"fmt"
	"slices"
	"strings"

	"git.home.luguber.info/inful/doclinks/internal/doclet"
	"git.home.luguber.info/inful/doclinks/internal/links"
)

// Signer renders signatures, linking type names through a Resolver.
type Signer struct {
	r *links.Resolver
}

// NewSigner returns a Signer that links types with r.
func NewSigner(r *links.Resolver) *Signer {
	return &Signer{r: r}
}

func (s *Signer) typeLink(name, cssClass string) string {
	// Type expressions are escaped by the stringifier; names only need an
	// explicit text when escaping changes them.
	text := ""
	if !links.IsTypeExpression(name) {
		if esc := links.HTMLSafe(name); esc != name {
			text = esc
		}
	}
	return s.r.BuildLink(name, text, links.LinkOptions{CSSClass: cssClass})
}

func (s *Signer) typeLinks(t *doclet.TypeInfo, cssClass string) []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.Names))
	for _, name := range t.Names {
		out = append(out, s.typeLink(name, cssClass))
	}
	return out
}

// SignatureTypes links every type name of d.
func (s *Signer) SignatureTypes(d *doclet.Doclet, cssClass string) []string {
	return s.typeLinks(d.Type, cssClass)
}

// SignatureParams returns the names of d's top-level parameters. Optional
// parameters are wrapped in a span with optClass when one is given.
func SignatureParams(d *doclet.Doclet, optClass string) []string {
	var names []string
	for _, p := range d.Params {
		if p.Name == "" || strings.Contains(p.Name, ".") {
			continue
		}
		if p.Optional && optClass != "" {
			names = append(names, fmt.Sprintf(`<span class="%s">%s</span>`, optClass, p.Name))
			continue
		}
		names = append(names, p.Name)
	}
	return names
}

// returnSource prefers yields over returns, as generators document both.
func returnSource(d *doclet.Doclet) []doclet.Return {
	if len(d.Yields) > 0 {
		return d.Yields
	}
	return d.Returns
}

// SignatureReturns links the types of the first return (or yield) entry that
// declares any.
func (s *Signer) SignatureReturns(d *doclet.Doclet, cssClass string) []string {
	for _, r := range returnSource(d) {
		if r.Type != nil && len(r.Type.Names) > 0 {
			return s.typeLinks(r.Type, cssClass)
		}
	}
	return nil
}

func paramAttribs(p doclet.Param) []string {
	var attribs []string
	if p.Optional {
		attribs = append(attribs, "opt")
	}
	return append(attribs, nullability(p.Nullable)...)
}

func paramName(p doclet.Param) string {
	name := p.Name
	if p.Variable {
		name = "&hellip;" + name
	}
	if attribs := paramAttribs(p); len(attribs) > 0 {
		name = fmt.Sprintf(`%s<span class="signature-attributes">%s</span>`, name, strings.Join(attribs, ", "))
	}
	return name
}

// AddSignatureParams appends "(a, b)" to d.Signature. Nested parameters
// ("options.key") are left out.
func AddSignatureParams(d *doclet.Doclet) {
	var params []string
	for _, p := range d.Params {
		if p.Name == "" || strings.Contains(p.Name, ".") {
			continue
		}
		params = append(params, paramName(p))
	}
	d.Signature = fmt.Sprintf("%s(%s)", d.Signature, strings.Join(params, ", "))
}

// AddSignatureReturns wraps d.Signature and appends " &rarr; {T}" listing every
// return type. Attributes of all return entries are merged.
func (s *Signer) AddSignatureReturns(d *doclet.Doclet) {
	source := returnSource(d)

	var attribs []string
	var types []string
	for _, r := range source {
		for _, a := range nullability(r.Nullable) {
			if !slices.Contains(attribs, a) {
				attribs = append(attribs, a)
			}
		}
		types = append(types, s.typeLinks(r.Type, "")...)
	}

	returns := ""
	if len(types) > 0 {
		returns = fmt.Sprintf(" &rarr; %s{%s}", attribsString(attribs), strings.Join(types, "|"))
	}
	d.Signature = fmt.Sprintf(`<span class="signature">%s</span><span class="type-signature">%s</span>`, d.Signature, returns)
}

// AddSignatureTypes appends " :T" for d's declared types.
func (s *Signer) AddSignatureTypes(d *doclet.Doclet) {
	types := s.typeLinks(d.Type, "")
	suffix := ""
	if len(types) > 0 {
		suffix = " :" + strings.Join(types, "|")
	}
	d.Signature = fmt.Sprintf(`%s<span class="type-signature">%s</span>`, d.Signature, suffix)
}
