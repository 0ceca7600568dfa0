package links

import (
	"regexp"
	"strings"
)

var authorEmail = regexp.MustCompile(`^\s?([\s\S]+)\b\s+<(\S+@\S+)>\s?$`)

// ResolveAuthorLinks turns "Jane Doe <jane@example.com>" into a mailto link.
// Anything else is returned escaped.
func ResolveAuthorLinks(author string) string {
	m := authorEmail.FindStringSubmatch(author)
	if m == nil {
		return HTMLSafe(author)
	}
	name := HTMLSafe(strings.TrimSpace(m[1]))
	return anchor("mailto:"+EncodeURI(m[2]), "", name)
}
