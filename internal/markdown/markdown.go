// Package markdown renders doc comment descriptions and tutorial bodies to
// HTML with inline {@link} tags resolved.
package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"git.home.luguber.info/inful/doclinks/internal/foundation/errors"
	"git.home.luguber.info/inful/doclinks/internal/tutorial"
)

// LinkResolver rewrites inline reference tags into markup. *links.Resolver satisfies it.
type LinkResolver interface {
	ResolveLinks(text string) string
}

// Options controls Markdown rendering.
type Options struct {
	// HardWraps renders single newlines as <br>.
	HardWraps bool
}

// Renderer converts Markdown to HTML and resolves inline tags afterwards.
type Renderer struct {
	md       goldmark.Markdown
	resolver LinkResolver
}

// NewRenderer returns a Renderer that resolves inline tags with r.
func NewRenderer(r LinkResolver, opts Options) *Renderer {
	rendererOpts := []goldmark.Option{
		goldmark.WithExtensions(extension.GFM),
	}
	htmlOpts := []renderer.Option{html.WithUnsafe()}
	if opts.HardWraps {
		htmlOpts = append(htmlOpts, html.WithHardWraps())
	}
	rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(htmlOpts...))
	return &Renderer{md: goldmark.New(rendererOpts...), resolver: r}
}

// protectedTag matches an inline tag together with its optional [label], which
// Markdown would otherwise read as a link reference.
var protectedTag = regexp.MustCompile(`(?i)(?:\[[^\]]+\])?\{@(?:link|linkcode|linkplain|tutorial)\s+[^}]+\}`)

const placeholderFormat = "doclinksinline%dtag"

// Render converts a Markdown description to HTML. Inline tags are lifted out
// before Markdown parsing and resolved into the output unchanged by it.
func (r *Renderer) Render(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}

	var tags []string
	protected := protectedTag.ReplaceAllStringFunc(src, func(m string) string {
		tags = append(tags, m)
		return fmt.Sprintf(placeholderFormat, len(tags)-1)
	})

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(protected), &buf); err != nil {
		return "", errors.WrapError(err, errors.CategoryInput, "failed to render markdown").Build()
	}

	out := buf.String()
	for i := range tags {
		out = strings.ReplaceAll(out, fmt.Sprintf(placeholderFormat, i), r.resolver.ResolveLinks(tags[i]))
	}
	return strings.TrimRight(out, "\n"), nil
}

// RenderTutorial renders a tutorial body. HTML tutorials only get their inline
// tags resolved.
func (r *Renderer) RenderTutorial(t *tutorial.Tutorial) (string, error) {
	if t.Type == tutorial.TypeHTML {
		return r.resolver.ResolveLinks(t.Content), nil
	}
	return r.Render(t.Content)
}
