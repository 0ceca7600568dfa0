package typeexpr

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseError reports where and why an expression could not be parsed.
type ParseError struct {
	Expr   string
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse %s: %s at offset %d", e.Expr, e.Msg, e.Offset)
}

// Parse parses a single type expression.
func Parse(expr string) (Node, error) {
	p := &parser{src: expr}
	p.skipSpace()
	if p.eof() {
		return nil, p.errorf("empty type expression")
	}
	n, err := p.union()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected %q", p.peek())
	}
	return n, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Expr: p.src, Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return r
}

func (p *parser) has(prefix string) bool {
	return strings.HasPrefix(p.src[p.pos:], prefix)
}

func (p *parser) skipSpace() {
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

func (p *parser) expect(s string) error {
	p.skipSpace()
	if !p.has(s) {
		if p.eof() {
			return p.errorf("expected %q, found end of expression", s)
		}
		return p.errorf("expected %q, found %q", s, p.peek())
	}
	p.pos += len(s)
	return nil
}

// union parses `T` or `T|U|...`.
func (p *parser) union() (Node, error) {
	first, err := p.modified()
	if err != nil {
		return nil, err
	}
	elems := []Node{first}
	for {
		p.skipSpace()
		if p.peek() != '|' {
			break
		}
		p.pos++
		next, err := p.modified()
		if err != nil {
			return nil, err
		}
		elems = append(elems, next)
	}
	if len(elems) == 1 {
		return first, nil
	}
	return &UnionExpr{Elements: elems}, nil
}

// modified parses prefix modifiers, a primary type and postfix modifiers.
func (p *parser) modified() (Node, error) {
	var prefix Modifiers
	p.skipSpace()
	if p.has("...") {
		prefix.Repeatable = true
		p.pos += 3
		p.skipSpace()
	}
	switch p.peek() {
	case '?':
		if p.startsType(p.pos + 1) {
			prefix.Nullability = Nullable
			p.pos++
		}
	case '!':
		prefix.Nullability = NonNullable
		p.pos++
	}

	n, err := p.postfix()
	if err != nil {
		return nil, err
	}
	m := n.Mods()
	if prefix.Repeatable {
		m.Repeatable = true
	}
	if prefix.Nullability != NullabilityUnspecified {
		m.Nullability = prefix.Nullability
	}
	return n, nil
}

// startsType reports whether a type begins at offset i (after optional space).
func (p *parser) startsType(i int) bool {
	for i < len(p.src) && p.src[i] == ' ' {
		i++
	}
	if i >= len(p.src) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(p.src[i:])
	return isNameStart(r) || strings.ContainsRune(`({*"'!`, r) || unicode.IsDigit(r)
}

func (p *parser) postfix() (Node, error) {
	n, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.has("[]"):
			p.pos += 2
			n = &ApplicationExpr{Base: &NameExpr{Name: "Array"}, Params: []Node{n}}
		case p.peek() == '=':
			p.pos++
			n.Mods().Optional = true
		case p.peek() == '?' && !p.startsType(p.pos+1):
			p.pos++
			n.Mods().Nullability = Nullable
		case p.peek() == '!':
			p.pos++
			n.Mods().Nullability = NonNullable
		default:
			return n, nil
		}
	}
}

func (p *parser) primary() (Node, error) {
	p.skipSpace()
	if p.eof() {
		return nil, p.errorf("expected a type, found end of expression")
	}
	r := p.peek()
	switch {
	case r == '(':
		p.pos++
		inner, err := p.union()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return inner, nil
	case r == '{':
		return p.record()
	case r == '*':
		p.pos++
		return &LiteralExpr{Kind: LiteralAll, Value: "*"}, nil
	case r == '?':
		p.pos++
		return &LiteralExpr{Kind: LiteralUnknown, Value: "?"}, nil
	case r == '"' || r == '\'':
		s, err := p.quoted()
		if err != nil {
			return nil, err
		}
		return &LiteralExpr{Kind: LiteralString, Value: s}, nil
	case unicode.IsDigit(r) || (r == '-' && p.startsDigit(p.pos+1)):
		return p.number(), nil
	case isNameStart(r):
		return p.named()
	}
	return nil, p.errorf("unexpected %q", r)
}

func (p *parser) startsDigit(i int) bool {
	return i < len(p.src) && p.src[i] >= '0' && p.src[i] <= '9'
}

func (p *parser) number() Node {
	start := p.pos
	if p.peek() == '-' {
		p.pos++
	}
	for !p.eof() && (unicode.IsDigit(p.peek()) || p.peek() == '.') {
		if p.peek() == '.' && !p.startsDigit(p.pos+1) {
			break
		}
		p.pos++
	}
	return &LiteralExpr{Kind: LiteralNumber, Value: p.src[start:p.pos]}
}

func (p *parser) quoted() (string, error) {
	quote := p.src[p.pos]
	start := p.pos
	p.pos++
	for !p.eof() {
		c := p.src[p.pos]
		switch c {
		case '\\':
			p.pos += 2
			continue
		case quote:
			p.pos++
			return p.src[start:p.pos], nil
		}
		p.pos++
	}
	p.pos = start
	return "", p.errorf("unterminated string")
}

func isNameStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$' || r == '@'
}

// isNameChar covers longname punctuation: scopes (.#~), namespaces (:), and
// module paths (/ and -).
func isNameChar(r rune) bool {
	return isNameStart(r) || unicode.IsDigit(r) || strings.ContainsRune(".:/~#-", r)
}

// name scans a longname. Quoted segments are allowed after punctuation, as in
// `external:"jquery.fn"`.
func (p *parser) name() (string, error) {
	start := p.pos
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if r == '.' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '<' {
			break
		}
		if (r == '"' || r == '\'') && p.pos > start && strings.ContainsRune(".:/~#", rune(p.src[p.pos-1])) {
			if _, err := p.quoted(); err != nil {
				return "", err
			}
			continue
		}
		if !isNameChar(r) {
			break
		}
		p.pos += size
	}
	return p.src[start:p.pos], nil
}

func (p *parser) named() (Node, error) {
	name, err := p.name()
	if err != nil {
		return nil, err
	}
	switch name {
	case "null":
		return &LiteralExpr{Kind: LiteralNull, Value: name}, nil
	case "undefined":
		return &LiteralExpr{Kind: LiteralUndefined, Value: name}, nil
	case "function":
		p.skipSpace()
		if p.peek() == '(' {
			return p.function()
		}
	}

	base := &NameExpr{Name: name}
	switch {
	case p.has(".<"):
		p.pos += 2
	case p.has("<"):
		p.pos++
	default:
		return base, nil
	}
	app := &ApplicationExpr{Base: base}
	for {
		param, err := p.union()
		if err != nil {
			return nil, err
		}
		app.Params = append(app.Params, param)
		p.skipSpace()
		if p.peek() == ',' {
			p.pos++
			continue
		}
		if err := p.expect(">"); err != nil {
			return nil, err
		}
		return app, nil
	}
}

func (p *parser) record() (Node, error) {
	p.pos++ // {
	rec := &RecordExpr{}
	p.skipSpace()
	if p.peek() == '}' {
		p.pos++
		return rec, nil
	}
	for {
		p.skipSpace()
		key, err := p.recordKey()
		if err != nil {
			return nil, err
		}
		field := Field{Key: key}
		p.skipSpace()
		if p.peek() == ':' {
			p.pos++
			if field.Value, err = p.union(); err != nil {
				return nil, err
			}
			p.skipSpace()
		}
		rec.Fields = append(rec.Fields, field)
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return rec, nil
		default:
			if p.eof() {
				return nil, p.errorf("unterminated record type")
			}
			return nil, p.errorf("unexpected %q in record type", p.peek())
		}
	}
}

func (p *parser) recordKey() (string, error) {
	r := p.peek()
	if r == '"' || r == '\'' {
		return p.quoted()
	}
	start := p.pos
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !isNameStart(r) && !unicode.IsDigit(r) {
			break
		}
		p.pos += size
	}
	if p.pos == start {
		return "", p.errorf("expected record key")
	}
	return p.src[start:p.pos], nil
}

func (p *parser) function() (Node, error) {
	p.pos++ // (
	fn := &FunctionExpr{}
	p.skipSpace()
	if p.peek() != ')' {
		for {
			p.skipSpace()
			var err error
			switch {
			case p.has("new:"):
				p.pos += len("new:")
				fn.New, err = p.modified()
			case p.has("this:"):
				p.pos += len("this:")
				fn.This, err = p.modified()
			default:
				var param Node
				param, err = p.modified()
				fn.Params = append(fn.Params, param)
			}
			if err != nil {
				return nil, err
			}
			p.skipSpace()
			if p.peek() != ',' {
				break
			}
			p.pos++
		}
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}

	save := p.pos
	p.skipSpace()
	if p.peek() == ':' {
		p.pos++
		result, err := p.modified()
		if err != nil {
			return nil, err
		}
		fn.Result = result
	} else {
		p.pos = save
	}
	return fn, nil
}
