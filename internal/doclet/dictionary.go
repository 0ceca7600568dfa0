package doclet

import (
	"regexp"
	"slices"
	"strings"

	"git.home.luguber.info/inful/doclinks/internal/util/sets"
)

// Dictionary is the slice of the tag dictionary link resolution depends on:
// which kinds introduce a namespace prefix such as "module:".
type Dictionary interface {
	IsNamespace(kind Kind) bool
	Namespaces() []string
}

// TagDictionary is a static Dictionary.
type TagDictionary struct {
	namespaces sets.Set[string]
}

// NewTagDictionary returns a dictionary recognising the given namespace kinds.
func NewTagDictionary(namespaces ...string) *TagDictionary {
	return &TagDictionary{namespaces: sets.New(namespaces...)}
}

// DefaultDictionary recognises the namespaces defined by the standard tag set.
func DefaultDictionary() *TagDictionary {
	return NewTagDictionary(string(KindEvent), string(KindExternal), string(KindModule))
}

func (d *TagDictionary) IsNamespace(kind Kind) bool {
	return d.namespaces.Has(string(kind))
}

// Namespaces returns the namespace kinds in sorted order.
func (d *TagDictionary) Namespaces() []string {
	return sets.Sorted(d.namespaces, strings.Compare)
}

// NamespacePrefixPattern builds a regexp matching a leading "ns:" for any namespace
// of dict. The namespace is captured in group 1.
func NamespacePrefixPattern(dict Dictionary) *regexp.Regexp {
	names := slices.Clone(dict.Namespaces())
	for i, n := range names {
		names[i] = regexp.QuoteMeta(n)
	}
	if len(names) == 0 {
		// Matches nothing.
		return regexp.MustCompile(`^\b\B`)
	}
	return regexp.MustCompile(`^(` + strings.Join(names, "|") + `):`)
}
