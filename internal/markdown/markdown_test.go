package markdown

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doclinks/internal/diagnostics"
	"git.home.luguber.info/inful/doclinks/internal/linkid"
	"git.home.luguber.info/inful/doclinks/internal/links"
	"git.home.luguber.info/inful/doclinks/internal/tutorial"
)

func newRenderer(t *testing.T, opts Options) *Renderer {
	t.Helper()
	reg := linkid.New()
	reg.RegisterLink("Foo", "Foo.html")
	diags := diagnostics.New(diagnostics.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	r := links.NewResolver(reg, links.WithDiagnostics(diags))
	return NewRenderer(r, opts)
}

func TestRenderResolvesInlineTags(t *testing.T) {
	r := newRenderer(t, Options{})

	got, err := r.Render("Returns a *new* {@link Foo}.")
	require.NoError(t, err)
	assert.Equal(t, `<p>Returns a <em>new</em> <a href="Foo.html">Foo</a>.</p>`, got)
}

func TestRenderKeepsLeadingLabel(t *testing.T) {
	r := newRenderer(t, Options{})

	got, err := r.Render("See [the foo]{@link Foo} and [docs](https://example.com).")
	require.NoError(t, err)
	assert.Equal(t, `<p>See <a href="Foo.html">the foo</a> and <a href="https://example.com">docs</a>.</p>`, got)
}

func TestRenderManyTags(t *testing.T) {
	r := newRenderer(t, Options{})
	src := ""
	for i := 0; i < 12; i++ {
		src += "{@link Foo} "
	}
	got, err := r.Render(src)
	require.NoError(t, err)
	assert.Equal(t, 12, strings.Count(got, `<a href="Foo.html">Foo</a>`))
	assert.NotContains(t, got, "doclinksinline")
}

func TestRenderEmpty(t *testing.T) {
	got, err := newRenderer(t, Options{}).Render("  \n")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRenderHardWraps(t *testing.T) {
	got, err := newRenderer(t, Options{HardWraps: true}).Render("a\nb")
	require.NoError(t, err)
	assert.Equal(t, "<p>a<br>\nb</p>", got)
}

func TestRenderTutorial(t *testing.T) {
	r := newRenderer(t, Options{})

	got, err := r.RenderTutorial(&tutorial.Tutorial{Type: tutorial.TypeHTML, Content: "<p>{@link Foo}</p>"})
	require.NoError(t, err)
	assert.Equal(t, `<p><a href="Foo.html">Foo</a></p>`, got)

	got, err = r.RenderTutorial(&tutorial.Tutorial{Type: tutorial.TypeMarkdown, Content: "# Title"})
	require.NoError(t, err)
	assert.Equal(t, "<h1>Title</h1>", got)
}

func TestRenderKeepsRawHTML(t *testing.T) {
	got, err := newRenderer(t, Options{}).Render("<span>raw</span> {@link Foo}")
	require.NoError(t, err)
	assert.Equal(t, `<p><span>raw</span> <a href="Foo.html">Foo</a></p>`, got)
}
