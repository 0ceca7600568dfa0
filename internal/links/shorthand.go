package links

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const mdnGlobals = "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Global_Objects/"

// shorthand is a well-known type reference with a fixed external page.
type shorthand struct {
	Text string // empty keeps the caller's text
	URL  string
}

// arrayShorthands are keyed by normalizeTypeKey.
var arrayShorthands = map[string]shorthand{
	"array<string>":        {Text: "String[]", URL: mdnGlobals + "String"},
	"array<number>":        {Text: "Number[]", URL: mdnGlobals + "Number"},
	"array<array<number>>": {Text: "Number[][]", URL: mdnGlobals + "Number"},
	"array<object>":        {Text: "Object[]", URL: mdnGlobals + "Object"},
	"array<*>":             {Text: "*[]", URL: mdnGlobals + "Array"},
}

// builtinShorthands apply to bare names that have no link of their own.
var builtinShorthands = func() map[string]shorthand {
	title := cases.Title(language.Und)
	m := map[string]shorthand{
		"Array": {URL: mdnGlobals + "Array"},
	}
	for _, name := range []string{"boolean", "function", "number", "string"} {
		text := title.String(name)
		m[name] = shorthand{Text: text, URL: mdnGlobals + text}
	}
	return m
}()

var (
	spaces        = regexp.MustCompile(`\s+`)
	dottedGeneric = regexp.MustCompile(`\.<`)
)

// normalizeTypeKey folds spelling differences that do not change meaning:
// case, whitespace, and `Array.<T>` versus `Array<T>`.
func normalizeTypeKey(expr string) string {
	key := strings.ToLower(spaces.ReplaceAllString(expr, ""))
	return dottedGeneric.ReplaceAllString(key, "<")
}

func lookupArrayShorthand(expr string) (shorthand, bool) {
	s, ok := arrayShorthands[normalizeTypeKey(expr)]
	return s, ok
}

func lookupBuiltin(name string) (shorthand, bool) {
	s, ok := builtinShorthands[name]
	return s, ok
}
