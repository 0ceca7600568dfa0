package links

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doclinks/internal/diagnostics"
	"git.home.luguber.info/inful/doclinks/internal/doclet"
	"git.home.luguber.info/inful/doclinks/internal/foundation/errors"
	"git.home.luguber.info/inful/doclinks/internal/linkid"
)

// tutorialSet maps tutorial names to titles.
type tutorialSet map[string]string

func (t tutorialSet) Has(name string) bool {
	_, ok := t[name]
	return ok
}

func (t tutorialSet) Title(name string) (string, bool) {
	title, ok := t[name]
	return title, ok
}

func newTestResolver(t *testing.T, opts ...Option) *Resolver {
	t.Helper()
	diags := diagnostics.New(diagnostics.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return NewResolver(linkid.New(), append([]Option{WithDiagnostics(diags)}, opts...)...)
}

const mdnString = mdnGlobals + "String"

func TestBuildLinkPlainSymbols(t *testing.T) {
	r := newTestResolver(t)

	got := r.BuildLink("Foo", "", LinkOptions{LinkMap: linkid.StaticMap{"Foo": "Foo.html"}})
	assert.Equal(t, `<a href="Foo.html">Foo</a>`, got)

	got = r.BuildLink("Bar", "custom text", LinkOptions{LinkMap: linkid.StaticMap{}})
	assert.Equal(t, "custom text", got)

	got = r.BuildLink("Bar", "", LinkOptions{LinkMap: linkid.StaticMap{}})
	assert.Equal(t, "Bar", got)
}

func TestBuildLinkOptions(t *testing.T) {
	r := newTestResolver(t)
	lm := linkid.StaticMap{"Foo": "Foo.html", "Foo#bar": "Foo.html#bar"}

	got := r.BuildLink("Foo", "", LinkOptions{LinkMap: lm, CSSClass: "x", FragmentID: "bar", Monospace: true})
	assert.Equal(t, `<a href="Foo.html#bar" class="x"><code>Foo</code></a>`, got)

	got = r.BuildLink("Foo#bar", "", LinkOptions{LinkMap: lm, ShortenName: true})
	assert.Equal(t, `<a href="Foo.html#bar">bar</a>`, got)

	got = r.BuildLink("Missing", "", LinkOptions{LinkMap: lm, Monospace: true})
	assert.Equal(t, "<code>Missing</code>", got)
}

func TestBuildLinkUsesRegistryByDefault(t *testing.T) {
	r := newTestResolver(t)
	r.Registry().RegisterLink("Foo", "Foo.html")

	assert.Equal(t, `<a href="Foo.html">the foo</a>`, r.LinkTo("Foo", "the foo", "", ""))
	assert.Equal(t, `<a href="Foo.html#x" class="c">Foo</a>`, r.LinkTo("Foo", "", "c", "x"))
}

func TestBuildLinkURLPassthrough(t *testing.T) {
	r := newTestResolver(t)
	lm := linkid.StaticMap{"https://example.com/docs": "wrong.html"}

	tests := []struct {
		target, text, want string
	}{
		{"https://example.com/docs", "", `<a href="https://example.com/docs">https://example.com/docs</a>`},
		{"<http://example.com/docs>", "", `<a href="http://example.com/docs">http://example.com/docs</a>`},
		{"ftp://example.com/pub", "files", `<a href="ftp://example.com/pub">files</a>`},
		{"https://example.com/a b", "x", `<a href="https://example.com/a%20b">x</a>`},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			assert.Equal(t, tt.want, r.BuildLink(tt.target, tt.text, LinkOptions{LinkMap: lm}))
		})
	}
}

func TestBuildLinkArrayShorthands(t *testing.T) {
	r := newTestResolver(t)
	want := `<a href="` + mdnString + `">String[]</a>`
	for _, target := range []string{"Array.<string>", "array.<String>", "Array<string>", "ARRAY.< STRING >"} {
		t.Run(target, func(t *testing.T) {
			assert.Equal(t, want, r.BuildLink(target, "", LinkOptions{}))
		})
	}

	assert.Equal(t, `<a href="`+mdnGlobals+`Number">Number[][]</a>`,
		r.BuildLink("Array.<Array.<number>>", "", LinkOptions{}))
	assert.Equal(t, `<a href="`+mdnGlobals+`Array">*[]</a>`,
		r.BuildLink("Array.<*>", "", LinkOptions{}))
	assert.Equal(t, `<a href="`+mdnString+`">names</a>`,
		r.BuildLink("Array.<string>", "names", LinkOptions{}))
}

func TestBuildLinkBuiltins(t *testing.T) {
	r := newTestResolver(t)

	assert.Equal(t, `<a href="`+mdnString+`">String</a>`, r.BuildLink("string", "", LinkOptions{}))
	assert.Equal(t, `<a href="`+mdnGlobals+`Boolean">Boolean</a>`, r.BuildLink("boolean", "", LinkOptions{}))
	assert.Equal(t, `<a href="`+mdnGlobals+`Array">Array</a>`, r.BuildLink("Array", "", LinkOptions{}))
	assert.Equal(t, `<a href="`+mdnString+`">text</a>`, r.BuildLink("string", "text", LinkOptions{}))

	// A documented symbol with the same name wins.
	lm := linkid.StaticMap{"string": "string.html"}
	assert.Equal(t, `<a href="string.html">string</a>`, r.BuildLink("string", "", LinkOptions{LinkMap: lm}))
}

func TestBuildLinkTypeExpressions(t *testing.T) {
	r := newTestResolver(t)
	lm := linkid.StaticMap{
		"Foo":                    "Foo.html",
		"module:app/models~User": "module-app_models-User.html",
	}

	tests := []struct {
		name, target, class, want string
	}{
		{"array of linked", "Array.<Foo>", "", `<a href="Foo.html">Foo[]</a>`},
		{"array of plain", "Array.<Bar>", "", "Bar[]"},
		{"union", "Foo|Bar", "", `<a href="Foo.html">Foo</a>|Bar`},
		{"class", "Foo|null", "type", `<a href="Foo.html" class="type">Foo</a>|null`},
		{"path label", "Array.<module:app/models~User>", "", `<a href="module-app_models-User.html">models~User[]</a>`},
		{"escaped", "Object.<string, Foo>", "", `Object.&lt;string, <a href="Foo.html">Foo</a>>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.BuildLink(tt.target, "", LinkOptions{LinkMap: lm, CSSClass: tt.class})
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Zero(t, r.Diagnostics().Len())
}

func TestBuildLinkTypeExpressionParseFailure(t *testing.T) {
	r := newTestResolver(t)

	got := r.BuildLink("{a: <b>}", "", LinkOptions{})
	assert.Equal(t, "{a: &lt;b>}", got)

	require.Equal(t, 1, r.Diagnostics().Len())
	d := r.Diagnostics().Entries()[0]
	assert.Equal(t, errors.CategoryTypeExpr, d.Category())
	assert.False(t, d.IsFatal())

	// Later expressions are unaffected.
	assert.Equal(t, "Foo|Bar", r.BuildLink("Foo|Bar", "", LinkOptions{}))
}

func TestBuildLinkPathLabel(t *testing.T) {
	r := newTestResolver(t)
	lm := linkid.StaticMap{"module:foo/bar": "module-foo_bar.html"}

	assert.Equal(t, `<a href="module-foo_bar.html">bar</a>`, r.BuildLink("module:foo/bar", "", LinkOptions{LinkMap: lm}))
	assert.Equal(t, "foo", r.BuildLink("module:foo", "", LinkOptions{LinkMap: lm}))
}

func TestCreateLink(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name string
		d    doclet.Doclet
		want string
	}{
		{"class", doclet.Doclet{Longname: "Foo", Name: "Foo", Kind: doclet.KindClass}, "Foo.html"},
		{"instance", doclet.Doclet{Longname: "Foo#bar", Name: "bar", Kind: doclet.KindFunction, Memberof: "Foo", Scope: doclet.ScopeInstance}, "Foo.html#bar"},
		{"static", doclet.Doclet{Longname: "Foo.baz", Name: "baz", Kind: doclet.KindMember, Memberof: "Foo", Scope: doclet.ScopeStatic}, "Foo.html#.baz"},
		{"inner", doclet.Doclet{Longname: "Foo~qux", Name: "qux", Kind: doclet.KindFunction, Memberof: "Foo", Scope: doclet.ScopeInner}, "Foo.html#~qux"},
		{"global", doclet.Doclet{Longname: "globalFn", Name: "globalFn", Kind: doclet.KindFunction, Scope: doclet.ScopeGlobal}, "global.html#globalFn"},
		{"module export", doclet.Doclet{Longname: "module:foo", Name: "module:foo", Kind: doclet.KindFunction}, "module-foo.html"},
		{"member of module", doclet.Doclet{Longname: "module:foo.bar", Name: "bar", Kind: doclet.KindMember, Memberof: "module:foo", Scope: doclet.ScopeStatic}, "module-foo.html#.bar"},
		{"event", doclet.Doclet{Longname: "Foo#event:change", Name: "change", Kind: doclet.KindEvent, Memberof: "Foo", Scope: doclet.ScopeInstance}, "Foo.html#event:change"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.d
			assert.Equal(t, tt.want, r.CreateLink(&d))
			assert.Equal(t, tt.want, r.CreateLink(&d), "second call must return the same URL")
		})
	}
}

func TestCreateLinkEncodes(t *testing.T) {
	r := newTestResolver(t)
	d := &doclet.Doclet{Longname: "Café", Name: "Café", Kind: doclet.KindClass}
	assert.Equal(t, "Caf%C3%A9.html", r.CreateLink(d))
	assert.Equal(t, "Café.html", r.RawLink(d))

	url, ok := r.Registry().Lookup("Café")
	require.True(t, ok)
	assert.Equal(t, "Café.html", url, "the registry holds unencoded filenames")
	assert.Equal(t, `<a href="Caf%C3%A9.html">Café</a>`, r.LinkTo("Café", "", "", ""))
}

func TestResolveLinks(t *testing.T) {
	r := newTestResolver(t)
	r.Registry().RegisterLink("Foo", "Foo.html")

	tests := []struct {
		name, in, want string
	}{
		{"plain", "See {@link Foo}.", `See <a href="Foo.html">Foo</a>.`},
		{"leading text", "[Custom]{@link Foo}", `<a href="Foo.html">Custom</a>`},
		{"leading text not adjacent", "[Custom][{@link Foo}]", `[Custom][<a href="Foo.html">Foo</a>]`},
		{"pipe", "{@link Foo|the foo}", `<a href="Foo.html">the foo</a>`},
		{"space", "{@link Foo the\nfoo}", `<a href="Foo.html">the foo</a>`},
		{"linkcode", "{@linkcode Foo}", `<a href="Foo.html"><code>Foo</code></a>`},
		{"case insensitive", "{@LINK Foo}", `<a href="Foo.html">Foo</a>`},
		{"unresolved", "{@link Foo} and {@link Bar}", `<a href="Foo.html">Foo</a> and Bar`},
		{"malformed", "{@link} and {@unknown Foo}", "{@link} and {@unknown Foo}"},
		{"no tags", "nothing here", "nothing here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ResolveLinks(tt.in))
		})
	}
}

func TestResolveLinksMonospaceConfig(t *testing.T) {
	const (
		plainURL = `<a href="https://example.com">https://example.com</a>`
		codeURL  = `<a href="https://example.com"><code>https://example.com</code></a>`
	)
	tests := []struct {
		name      string
		opts      []Option
		link      string
		linkURL   string
		linkcode  string
		linkplain string
	}{
		{
			name:      "defaults",
			link:      `<a href="Foo.html">Foo</a>`,
			linkURL:   plainURL,
			linkcode:  codeURL,
			linkplain: `<a href="Foo.html">Foo</a>`,
		},
		{
			name:      "monospace links",
			opts:      []Option{WithMonospaceLinks(true)},
			link:      `<a href="Foo.html"><code>Foo</code></a>`,
			linkURL:   codeURL,
			linkcode:  codeURL,
			linkplain: `<a href="Foo.html">Foo</a>`,
		},
		{
			name:      "clever links",
			opts:      []Option{WithCleverLinks(true)},
			link:      `<a href="Foo.html"><code>Foo</code></a>`,
			linkURL:   plainURL,
			linkcode:  codeURL,
			linkplain: `<a href="Foo.html">Foo</a>`,
		},
		{
			name:      "clever links win over monospace links",
			opts:      []Option{WithMonospaceLinks(true), WithCleverLinks(true)},
			link:      `<a href="Foo.html"><code>Foo</code></a>`,
			linkURL:   plainURL,
			linkcode:  codeURL,
			linkplain: `<a href="Foo.html">Foo</a>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(t, tt.opts...)
			r.Registry().RegisterLink("Foo", "Foo.html")

			assert.Equal(t, tt.link, r.ResolveLinks("{@link Foo}"))
			assert.Equal(t, tt.linkURL, r.ResolveLinks("{@link https://example.com}"))
			assert.Equal(t, tt.linkcode, r.ResolveLinks("{@linkcode https://example.com}"))
			assert.Equal(t, tt.linkplain, r.ResolveLinks("{@linkplain Foo}"))
		})
	}
}

func TestTutorials(t *testing.T) {
	r := newTestResolver(t, WithTutorials(tutorialSet{"intro": ""}))

	assert.Equal(t, `<a href="tutorial-intro.html">intro</a>`, r.ResolveLinks("{@tutorial intro}"))
	assert.Equal(t, `<a href="tutorial-intro.html">Start here</a>`, r.ResolveLinks("[Start here]{@tutorial intro}"))

	url, ok := r.TutorialURL("intro")
	assert.True(t, ok)
	assert.Equal(t, "tutorial-intro.html", url)
	assert.Zero(t, r.Diagnostics().Len())
}

func TestTutorialTitles(t *testing.T) {
	r := newTestResolver(t, WithTutorials(tutorialSet{"advanced": "Advanced usage", "intro": ""}))

	assert.Equal(t, `<a href="tutorial-advanced.html">Advanced usage</a>`, r.ResolveLinks("{@tutorial advanced}"))
	assert.Equal(t, `<a href="tutorial-advanced.html">Read on</a>`, r.ResolveLinks("[Read on]{@tutorial advanced}"))
	assert.Equal(t, `<a href="tutorial-intro.html">intro</a>`, r.ResolveLinks("{@tutorial intro}"))

	got, ok := r.ToTutorial("advanced", "", nil)
	assert.True(t, ok)
	assert.Equal(t, `<a href="tutorial-advanced.html">Advanced usage</a>`, got)
	assert.Zero(t, r.Diagnostics().Len())
}

func TestTutorialMissing(t *testing.T) {
	r := newTestResolver(t, WithTutorials(tutorialSet{}))

	got, ok := r.ToTutorial("name", "", &MissingTutorial{Prefix: "Tutorial: ", Tag: "tag"})
	assert.True(t, ok)
	assert.Equal(t, "<tag>Tutorial: name</tag>", got)

	got, _ = r.ToTutorial("name", "", &MissingTutorial{Tag: "em", ClassName: "disabled"})
	assert.Equal(t, `<em class="disabled">name</em>`, got)

	got, _ = r.ToTutorial("name", "", nil)
	assert.Equal(t, "name", got)

	require.Equal(t, 3, r.Diagnostics().Count(errors.CategoryTutorial))
	assert.Equal(t, errors.SeverityError, r.Diagnostics().Entries()[0].Severity())
	assert.True(t, r.Diagnostics().HasErrors())

	url, ok := r.TutorialURL("name")
	assert.False(t, ok)
	assert.Empty(t, url)
	assert.False(t, r.Registry().HasFile("tutorial-name.html"))
}

func TestTutorialWithoutName(t *testing.T) {
	r := newTestResolver(t)

	got, ok := r.ToTutorial("", "content", nil)
	assert.False(t, ok)
	assert.Empty(t, got)
	require.Equal(t, 1, r.Diagnostics().Len())
	assert.Equal(t, errors.SeverityError, r.Diagnostics().Entries()[0].Severity())
}

func TestResolveAuthorLinks(t *testing.T) {
	assert.Equal(t, `<a href="mailto:jane@example.com">Jane Doe</a>`, ResolveAuthorLinks("Jane Doe <jane@example.com>"))
	assert.Equal(t, "Jane &lt;b>", ResolveAuthorLinks("Jane <b>"))
	assert.Equal(t, "Jane &amp; John", ResolveAuthorLinks("Jane & John"))
}

func TestEncodeURI(t *testing.T) {
	tests := map[string]string{
		"a b.html":     "a%20b.html",
		"café.html":    "caf%C3%A9.html",
		"a%20b.html":   "a%20b.html",
		"100%":         "100%25",
		"Foo.html#bar": "Foo.html#bar",
		"x?a=1&b=[2]":  "x?a=1&b=%5B2%5D",
	}
	for in, want := range tests {
		assert.Equal(t, want, EncodeURI(in), in)
	}
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "bar", ShortName("Foo#bar"))
	assert.Equal(t, "baz", ShortName("module:foo~Bar.baz"))
	assert.Equal(t, `"a.b"`, ShortName(`Foo."a.b"`))
	assert.Equal(t, "Foo", ShortName("Foo"))
}

func TestIsTypeExpression(t *testing.T) {
	for _, expr := range []string{"{a: number}", "string|number", "Array.<Foo>", "Object<string, *>"} {
		assert.True(t, IsTypeExpression(expr), expr)
	}
	for _, expr := range []string{"Foo", "module:foo/bar", "{@link Foo}", "<b>Foo</b>", "|x", ""} {
		assert.False(t, IsTypeExpression(expr), expr)
	}
}
