package links

import (
	"regexp"
	"strings"
)

var (
	inlineTag   = regexp.MustCompile(`(?i)\{@(link|linkcode|linkplain|tutorial)\s+([^}]+)\}`)
	leadingText = regexp.MustCompile(`\[([^\]]+?)\]$`)
	firstSpace  = regexp.MustCompile(`\s`)
	newlines    = regexp.MustCompile(`\n+`)
)

// ResolveLinks replaces every inline {@link}, {@linkcode}, {@linkplain} and
// {@tutorial} tag in text with markup. Text directly in front of a tag in the
// form [label] becomes the link text. Tags that do not match are left as is.
func (r *Resolver) ResolveLinks(text string) string {
	matches := inlineTag.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		tag := strings.ToLower(text[m[2]:m[3]])
		content := strings.TrimSpace(text[m[4]:m[5]])

		pending := text[last:start]
		leading := ""
		if lm := leadingText.FindStringSubmatchIndex(pending); lm != nil {
			leading = pending[lm[2]:lm[3]]
			pending = pending[:lm[0]]
		}
		b.WriteString(pending)
		b.WriteString(r.replaceTag(tag, content, leading))
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

func (r *Resolver) replaceTag(tag, content, leading string) string {
	if tag == "tutorial" {
		out, _ := r.ToTutorial(content, leading, nil)
		return out
	}
	target, linkText := splitLinkText(content)
	if leading != "" {
		linkText = leading
	}
	return r.BuildLink(target, linkText, LinkOptions{Monospace: r.useMonospace(tag, target)})
}

// splitLinkText splits "target|text" or "target text" into its parts.
func splitLinkText(content string) (target, linkText string) {
	i := strings.IndexByte(content, '|')
	if i < 0 {
		if loc := firstSpace.FindStringIndex(content); loc != nil {
			i = loc[0]
		}
	}
	if i < 0 {
		return content, ""
	}
	target = content[:i]
	if target == "" {
		target = content
	}
	linkText = strings.TrimSpace(newlines.ReplaceAllString(content[i+1:], " "))
	return target, linkText
}

// useMonospace decides whether link text goes in <code>. The tag variant wins
// over configuration; cleverLinks exempts URLs, monospaceLinks does not.
func (r *Resolver) useMonospace(tag, target string) bool {
	switch {
	case tag == "linkplain":
		return false
	case tag == "linkcode":
		return true
	case r.cleverLinks:
		return !HasURLPrefix(trimAngles(target))
	}
	return r.monospaceLinks
}
