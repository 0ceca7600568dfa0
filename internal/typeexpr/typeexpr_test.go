package typeexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"string", "string"},
		{"module:foo/bar~Baz", "module:foo/bar~Baz"},
		{`external:"jquery.fn"`, `external:"jquery.fn"`},
		{"Array.<string>", "Array.<string>"},
		{"Array<string>", "Array.<string>"},
		{"string[]", "Array.<string>"},
		{"number[][]", "Array.<Array.<number>>"},
		{"Object.<string, number>", "Object.<string, number>"},
		{"string|number", "string|number"},
		{"(string|number)", "string|number"},
		{"Array.<(string|number)>", "Array.<(string|number)>"},
		{"Array.<string|number>", "Array.<(string|number)>"},
		{"?string", "?string"},
		{"string?", "?string"},
		{"!Object", "!Object"},
		{"number=", "number="},
		{"...number", "...number"},
		{"?(string|number)", "?(string|number)"},
		{"*", "*"},
		{"?", "?"},
		{"null", "null"},
		{"undefined|string", "undefined|string"},
		{"'small'|'large'", "'small'|'large'"},
		{"42", "42"},
		{"{a: number, b}", "{a: number, b}"},
		{"{}", "{}"},
		{"{'quoted key': string}", "{'quoted key': string}"},
		{"function(string, number=): boolean", "function(string, number=): boolean"},
		{"function(new:Foo, ...*)", "function(new:Foo, ...*)"},
		{"function(this:Foo)", "function(this:Foo)"},
		{"function()", "function()"},
		{"function", "function"},
		{"  Array.<  Foo  >  ", "Array.<Foo>"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			n, err := Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, Stringify(n, Options{}))
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "   ", "Array.<", "Array.<string", "(string|number", "string|", "{a: }", "{a", "Foo>", "'open", "function(string"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, in, perr.Expr)
		})
	}
}

func TestParseTree(t *testing.T) {
	n, err := Parse("Object.<string, Array.<Foo>>|null")
	require.NoError(t, err)

	u, ok := n.(*UnionExpr)
	require.True(t, ok)
	require.Len(t, u.Elements, 2)

	app, ok := u.Elements[0].(*ApplicationExpr)
	require.True(t, ok)
	assert.Equal(t, "Object", app.Base.Name)
	require.Len(t, app.Params, 2)

	elem, ok := ArrayElement(app.Params[1])
	require.True(t, ok)
	assert.Equal(t, "Foo", elem.(*NameExpr).Name)

	lit, ok := u.Elements[1].(*LiteralExpr)
	require.True(t, ok)
	assert.Equal(t, LiteralNull, lit.Kind)

	assert.Equal(t, []string{"Object", "string", "Array", "Foo"}, Names(n))
}

func TestArrayElement(t *testing.T) {
	n, err := Parse("Set.<Foo>")
	require.NoError(t, err)
	_, ok := ArrayElement(n)
	assert.False(t, ok)

	n, err = Parse("Foo[]")
	require.NoError(t, err)
	elem, ok := ArrayElement(n)
	require.True(t, ok)
	assert.Equal(t, "Foo", elem.(*NameExpr).Name)
}

func TestStringifyLinksAndEscapes(t *testing.T) {
	links := map[string]string{"Foo": "Foo.html", "module:a/b~C": "module-a_b-C.html"}
	opts := Options{
		CSSClass: "type",
		HTMLSafe: true,
		Link: func(name string) (string, bool) {
			u, ok := links[name]
			return u, ok
		},
	}

	n, err := Parse("Array.<Foo>|module:a/b~C|Bar")
	require.NoError(t, err)
	assert.Equal(t,
		`Array.&lt;<a href="Foo.html" class="type">Foo</a>>|<a href="module-a_b-C.html" class="type">module:a/b~C</a>|Bar`,
		Stringify(n, opts))

	n, err = Parse("function(Foo): Foo")
	require.NoError(t, err)
	opts.CSSClass = ""
	assert.Equal(t, `function(<a href="Foo.html">Foo</a>): <a href="Foo.html">Foo</a>`, Stringify(n, opts))
}

func TestStringifyIsPure(t *testing.T) {
	n, err := Parse("?Foo=")
	require.NoError(t, err)
	first := Stringify(n, Options{})
	assert.Equal(t, first, Stringify(n, Options{}))
	assert.Equal(t, "?Foo=", first)
}
