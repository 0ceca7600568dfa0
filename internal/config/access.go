package config

import (
	"git.home.luguber.info/inful/doclinks/internal/foundation/normalization"
)

// AccessLevel is one entry of opts.access.
type AccessLevel string

const (
	AccessPublic    AccessLevel = "public"
	AccessProtected AccessLevel = "protected"
	AccessPrivate   AccessLevel = "private"
	AccessPackage   AccessLevel = "package"
	AccessUndefined AccessLevel = "undefined"
	AccessAll       AccessLevel = "all"
)

var accessNormalizer = normalization.NewNormalizer(map[string]AccessLevel{
	"public":    AccessPublic,
	"protected": AccessProtected,
	"private":   AccessPrivate,
	"package":   AccessPackage,
	"undefined": AccessUndefined,
	"all":       AccessAll,
}, "")

// NormalizeAccessLevel returns the canonical access level or an error listing
// the accepted values.
func NormalizeAccessLevel(raw string) (AccessLevel, error) {
	return accessNormalizer.NormalizeWithError(raw)
}

// AccessStrings returns the levels as plain strings for symbols.AccessFilter.
func (o OptsConfig) AccessStrings() []string {
	out := make([]string, 0, len(o.Access))
	for _, a := range o.Access {
		out = append(out, string(a))
	}
	return out
}
