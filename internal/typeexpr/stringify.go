package typeexpr

import (
	"fmt"
	"strings"
)

// LinkFunc returns the URL for a type name, if the name is linkable. The URL is
// written verbatim into the href attribute.
type LinkFunc func(name string) (url string, ok bool)

// Options control Stringify.
type Options struct {
	// CSSClass is added to every generated anchor.
	CSSClass string
	// HTMLSafe escapes `&` and `<` in names and in application brackets.
	HTMLSafe bool
	// Link, when set, turns linkable names into anchors.
	Link LinkFunc
}

// Stringify renders n as text. It does not modify n.
func Stringify(n Node, opts Options) string {
	var b strings.Builder
	s := stringifier{opts: opts, b: &b}
	s.node(n, true)
	return b.String()
}

type stringifier struct {
	opts Options
	b    *strings.Builder
}

func (s *stringifier) text(t string) {
	if s.opts.HTMLSafe {
		t = escape(t)
	}
	s.b.WriteString(t)
}

func escape(t string) string {
	t = strings.ReplaceAll(t, "&", "&amp;")
	return strings.ReplaceAll(t, "<", "&lt;")
}

func (s *stringifier) name(name string) {
	if s.opts.Link != nil {
		if url, ok := s.opts.Link(name); ok {
			class := ""
			if s.opts.CSSClass != "" {
				class = fmt.Sprintf(` class="%s"`, s.opts.CSSClass)
			}
			fmt.Fprintf(s.b, `<a href="%s"%s>`, url, class)
			s.text(name)
			s.b.WriteString("</a>")
			return
		}
	}
	s.text(name)
}

func (s *stringifier) list(nodes []Node) {
	for i, n := range nodes {
		if i > 0 {
			s.b.WriteString(", ")
		}
		s.node(n, false)
	}
}

func (s *stringifier) node(n Node, top bool) {
	m := n.Mods()
	if m.Repeatable {
		s.b.WriteString("...")
	}
	switch m.Nullability {
	case Nullable:
		s.b.WriteString("?")
	case NonNullable:
		s.b.WriteString("!")
	}

	switch t := n.(type) {
	case *NameExpr:
		s.name(t.Name)
	case *LiteralExpr:
		s.text(t.Value)
	case *ApplicationExpr:
		s.name(t.Base.Name)
		s.text(".<")
		s.list(t.Params)
		s.b.WriteString(">")
	case *UnionExpr:
		paren := !top || m.Nullability != NullabilityUnspecified || m.Repeatable || m.Optional
		if paren {
			s.b.WriteString("(")
		}
		for i, e := range t.Elements {
			if i > 0 {
				s.b.WriteString("|")
			}
			s.node(e, false)
		}
		if paren {
			s.b.WriteString(")")
		}
	case *RecordExpr:
		s.b.WriteString("{")
		for i, f := range t.Fields {
			if i > 0 {
				s.b.WriteString(", ")
			}
			s.text(f.Key)
			if f.Value != nil {
				s.b.WriteString(": ")
				s.node(f.Value, false)
			}
		}
		s.b.WriteString("}")
	case *FunctionExpr:
		s.b.WriteString("function(")
		var parts []func()
		if t.New != nil {
			parts = append(parts, func() { s.b.WriteString("new:"); s.node(t.New, false) })
		}
		if t.This != nil {
			parts = append(parts, func() { s.b.WriteString("this:"); s.node(t.This, false) })
		}
		for _, p := range t.Params {
			parts = append(parts, func() { s.node(p, false) })
		}
		for i, part := range parts {
			if i > 0 {
				s.b.WriteString(", ")
			}
			part()
		}
		s.b.WriteString(")")
		if t.Result != nil {
			s.b.WriteString(": ")
			s.node(t.Result, false)
		}
	}

	if m.Optional {
		s.b.WriteString("=")
	}
}
