package links

import (
	"cmp"
	"regexp"

	"git.home.luguber.info/inful/doclinks/internal/doclet"
)

var kindPrefix = regexp.MustCompile(`(\S+):`)

// fakeContainer returns the kind prefix of longnames such as "module:foo~bar"
// when that kind owns its own page.
func fakeContainer(longname string) (doclet.Kind, bool) {
	m := kindPrefix.FindStringSubmatch(longname)
	if m == nil {
		return "", false
	}
	k := doclet.Kind(m[1])
	return k, doclet.IsContainer(k)
}

// FragmentLabel is the fragment text requested for a member: the namespaced
// name plus variation, preceded by its scope punctuation unless that is '#'.
func (r *Resolver) FragmentLabel(d *doclet.Doclet) string {
	name := d.Name + d.Variation
	if r.dict.IsNamespace(d.Kind) {
		name = string(d.Kind) + ":" + name
	}
	if punc := doclet.ScopeToPunc[d.Scope]; punc != "#" {
		name = punc + name
	}
	return name
}

// CreateLink derives the percent-encoded URL of a doclet's documentation,
// ready to be used as an href.
func (r *Resolver) CreateLink(d *doclet.Doclet) string {
	return EncodeURI(r.RawLink(d))
}

// RawLink derives the URL of a doclet's documentation as the registry holds
// it, unencoded, allocating its filename and fragment on first use. Containers
// and module exports get a page of their own; everything else is a fragment on
// its parent's page.
func (r *Resolver) RawLink(d *doclet.Doclet) string {
	var filename, fragment string

	_, fake := fakeContainer(d.Longname)
	switch {
	case doclet.IsContainer(d.Kind) || d.IsModuleExports():
		filename = r.registry.Filename(d.Longname)

	case fake:
		filename = r.registry.Filename(cmp.Or(d.Memberof, d.Longname))
		if d.Name != d.Longname {
			fragment = r.registry.FragmentFor(d.Longname, filename, r.FragmentLabel(d))
		}

	default:
		filename = r.registry.Filename(cmp.Or(d.Memberof, r.globalName))
		if d.Name != d.Longname || d.Scope == doclet.ScopeGlobal {
			fragment = r.registry.FragmentFor(d.Longname, filename, r.FragmentLabel(d))
		}
	}

	return filename + fragmentHash(fragment)
}
