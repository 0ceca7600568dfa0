// Package typeexpr parses type expressions such as `Array.<string>`,
// `(Foo|Bar)` or `function(string): number` into a tree, and renders trees
// back to text with optional hyperlinks on type names.
package typeexpr

// Nullability is the tri-state nullable modifier (`?T`, `!T`, or neither).
type Nullability int

const (
	NullabilityUnspecified Nullability = iota
	Nullable
	NonNullable
)

// Modifiers are the decorations any type may carry.
type Modifiers struct {
	Nullability Nullability
	Optional    bool // T=
	Repeatable  bool // ...T
}

// Mods gives access to a node's modifiers.
func (m *Modifiers) Mods() *Modifiers { return m }

// Node is one element of a parsed type expression.
type Node interface {
	Mods() *Modifiers
}

// NameExpr is a named type, for example `string` or `module:foo~Bar`.
type NameExpr struct {
	Modifiers
	Name string
}

// ApplicationExpr is a generic type applied to parameters: `Array.<T>`,
// `Object.<K, V>`. The `T[]` shorthand parses to an Array application.
type ApplicationExpr struct {
	Modifiers
	Base   *NameExpr
	Params []Node
}

// UnionExpr is `A|B|...`.
type UnionExpr struct {
	Modifiers
	Elements []Node
}

// Field is one entry of a record type. Value is nil for `{key}`.
type Field struct {
	Key   string
	Value Node
}

// RecordExpr is `{key: T, ...}`.
type RecordExpr struct {
	Modifiers
	Fields []Field
}

// FunctionExpr is `function(new:T, this:U, A, B): R`. Any part may be absent.
type FunctionExpr struct {
	Modifiers
	New    Node
	This   Node
	Params []Node
	Result Node
}

// LiteralKind distinguishes the literal forms.
type LiteralKind int

const (
	LiteralAll       LiteralKind = iota // *
	LiteralUnknown                      // ?
	LiteralNull                         // null
	LiteralUndefined                    // undefined
	LiteralString                       // "x" or 'x', quotes kept in Value
	LiteralNumber                       // 42
)

// LiteralExpr is one of the literal forms.
type LiteralExpr struct {
	Modifiers
	Kind  LiteralKind
	Value string
}

// ArrayElement returns T when n is `Array.<T>` (or `T[]`).
func ArrayElement(n Node) (Node, bool) {
	app, ok := n.(*ApplicationExpr)
	if !ok || app.Base == nil || app.Base.Name != "Array" || len(app.Params) != 1 {
		return nil, false
	}
	return app.Params[0], true
}

// Names returns every type name referenced by n, in source order.
func Names(n Node) []string {
	var out []string
	var walk func(Node)
	walk = func(n Node) {
		switch t := n.(type) {
		case *NameExpr:
			out = append(out, t.Name)
		case *ApplicationExpr:
			out = append(out, t.Base.Name)
			for _, p := range t.Params {
				walk(p)
			}
		case *UnionExpr:
			for _, e := range t.Elements {
				walk(e)
			}
		case *RecordExpr:
			for _, f := range t.Fields {
				if f.Value != nil {
					walk(f.Value)
				}
			}
		case *FunctionExpr:
			for _, p := range []Node{t.New, t.This} {
				if p != nil {
					walk(p)
				}
			}
			for _, p := range t.Params {
				walk(p)
			}
			if t.Result != nil {
				walk(t.Result)
			}
		}
	}
	walk(n)
	return out
}
