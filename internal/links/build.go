package links

import (
	"cmp"
	"fmt"
	"regexp"

	"git.home.luguber.info/inful/doclinks/internal/foundation/errors"
	"git.home.luguber.info/inful/doclinks/internal/logfields"
	"git.home.luguber.info/inful/doclinks/internal/metrics"
	"git.home.luguber.info/inful/doclinks/internal/typeexpr"
)

// LinkOptions tune a single BuildLink call.
type LinkOptions struct {
	// LinkMap overrides the resolver's registry as the source of URLs.
	LinkMap LinkMap
	// CSSClass is added to the anchor's class attribute.
	CSSClass string
	// FragmentID is appended to the URL as #FragmentID.
	FragmentID string
	// Monospace wraps the link text in <code>.
	Monospace bool
	// ShortenName displays only the last member segment when no text is given.
	ShortenName bool
}

var (
	complexPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\{.+\}$`),
		regexp.MustCompile(`^.+\|.+$`),
		regexp.MustCompile(`^.+<.+>$`),
	}
	inlineTagPattern = regexp.MustCompile(`\{@.+\}`)
	markupPattern    = regexp.MustCompile(`^<[\s\S]+>`)
)

// IsTypeExpression reports whether expr is a composite type expression (a
// record, a union or a type application) rather than a single name. Inline
// tags and raw markup are not type expressions.
func IsTypeExpression(expr string) bool {
	if inlineTagPattern.MatchString(expr) || markupPattern.MatchString(expr) {
		return false
	}
	for _, re := range complexPatterns {
		if re.MatchString(expr) {
			return true
		}
	}
	return false
}

func trimAngles(s string) string {
	if len(s) > 0 && s[0] == '<' {
		s = s[1:]
	}
	if len(s) > 0 && s[len(s)-1] == '>' {
		s = s[:len(s)-1]
	}
	return s
}

// BuildLink renders target as a hyperlink, or as plain text when no URL can be
// found for it. Target may be a longname, an absolute URL (optionally wrapped
// in angle brackets) or a type expression. linkText, when non-empty, replaces
// the displayed text.
func (r *Resolver) BuildLink(target, linkText string, opts LinkOptions) string {
	linkMap := opts.LinkMap
	if linkMap == nil {
		linkMap = r.registry
	}

	var fileURL, text string
	var outcome metrics.LinkOutcome

	stripped := trimAngles(target)
	switch {
	case HasURLPrefix(stripped):
		fileURL = stripped
		text = cmp.Or(linkText, stripped)
		outcome = metrics.LinkExternal

	case IsTypeExpression(target):
		sh, ok := lookupArrayShorthand(target)
		if !ok {
			return r.typeExpressionLink(target, linkMap, opts)
		}
		fileURL = sh.URL
		text = cmp.Or(linkText, sh.Text)
		outcome = metrics.LinkShorthand

	default:
		text = linkText
		if text == "" {
			text = target
			if opts.ShortenName {
				text = ShortName(target)
			}
		}
		if u, ok := linkMap.Lookup(target); ok && u != "" {
			fileURL = u
			outcome = metrics.LinkInternal
		} else if sh, ok := lookupBuiltin(target); ok {
			fileURL = sh.URL
			if linkText == "" && sh.Text != "" {
				text = sh.Text
			}
			outcome = metrics.LinkShorthand
		} else {
			outcome = metrics.LinkUnresolved
		}
	}

	r.recorder.IncLinkOutcome(outcome)

	text = r.pathLabel(text)
	if opts.Monospace {
		text = "<code>" + text + "</code>"
	}
	if fileURL == "" {
		return text
	}
	return anchor(EncodeURI(fileURL+fragmentHash(opts.FragmentID)), opts.CSSClass, text)
}

func anchor(href, class, text string) string {
	if class != "" {
		return fmt.Sprintf(`<a href="%s" class="%s">%s</a>`, href, class, text)
	}
	return fmt.Sprintf(`<a href="%s">%s</a>`, href, text)
}

// typeExpressionLink renders a composite type expression with each linkable
// name turned into an anchor. Expressions that do not parse come back escaped.
func (r *Resolver) typeExpressionLink(expr string, linkMap LinkMap, opts LinkOptions) string {
	node, err := typeexpr.Parse(expr)
	if err != nil {
		r.diags.Add(errors.TypeExprError("unable to parse type expression").
			WithCause(err).
			WithContext(logfields.KeyTypeExpr, expr).
			Build())
		r.recorder.IncLinkOutcome(metrics.LinkUnresolved)
		return HTMLSafe(expr)
	}
	r.recorder.IncLinkOutcome(metrics.LinkTypeExpr)

	sopts := typeexpr.Options{
		CSSClass: opts.CSSClass,
		HTMLSafe: true,
		Link: func(name string) (string, bool) {
			u, ok := linkMap.Lookup(name)
			if !ok || u == "" {
				return "", false
			}
			return EncodeURI(u), true
		},
	}
	if elem, ok := plainArrayElement(node); ok {
		return arrayLabel(r.stripAnchorLabels(typeexpr.Stringify(elem, sopts)))
	}
	return r.stripAnchorLabels(typeexpr.Stringify(node, sopts))
}

// LinkTo links longname using the resolver's registry. An empty linkText shows
// the longname itself.
func (r *Resolver) LinkTo(longname, linkText, cssClass, fragmentID string) string {
	return r.BuildLink(longname, linkText, LinkOptions{CSSClass: cssClass, FragmentID: fragmentID})
}
