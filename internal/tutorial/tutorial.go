// Package tutorial holds the tutorial graph: free-standing pages that are
// linked from doc comments by name and may be nested under one another.
package tutorial

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/doclinks/internal/foundation/errors"
	"git.home.luguber.info/inful/doclinks/internal/logfields"
)

// ContentType is the markup a tutorial is written in.
type ContentType string

const (
	TypeMarkdown ContentType = "markdown"
	TypeHTML     ContentType = "html"
)

// Tutorial is one node in the tutorial graph.
type Tutorial struct {
	Name     string
	Title    string
	Content  string
	Type     ContentType
	Parent   *Tutorial
	Children []*Tutorial
}

// DisplayTitle returns the configured title, or the name when none is set.
func (t *Tutorial) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return t.Name
}

func (t *Tutorial) removeChild(child *Tutorial) {
	t.Children = slices.DeleteFunc(t.Children, func(c *Tutorial) bool { return c == child })
}

// Tree indexes tutorials by name under an unnamed root.
type Tree struct {
	root   *Tutorial
	byName map[string]*Tutorial
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{root: &Tutorial{}, byName: make(map[string]*Tutorial)}
}

// Add places t directly under the root. Names are unique.
func (tr *Tree) Add(t *Tutorial) error {
	if t == nil || strings.TrimSpace(t.Name) == "" {
		return errors.TutorialError("tutorial name is required").Build()
	}
	if _, dup := tr.byName[t.Name]; dup {
		return errors.TutorialError("duplicate tutorial").
			WithContext(logfields.KeyTutorial, t.Name).
			Build()
	}
	tr.byName[t.Name] = t
	t.Parent = tr.root
	tr.root.Children = append(tr.root.Children, t)
	return nil
}

// GetByName returns the named tutorial.
func (tr *Tree) GetByName(name string) (*Tutorial, bool) {
	t, ok := tr.byName[name]
	return t, ok
}

// Has reports whether a tutorial with that name exists.
func (tr *Tree) Has(name string) bool {
	_, ok := tr.byName[name]
	return ok
}

// Title returns the display title of the named tutorial.
func (tr *Tree) Title(name string) (string, bool) {
	t, ok := tr.byName[name]
	if !ok {
		return "", false
	}
	return t.DisplayTitle(), true
}

// Root returns the unnamed root; its children are the top-level tutorials.
func (tr *Tree) Root() *Tutorial {
	return tr.root
}

// Len returns the number of tutorials.
func (tr *Tree) Len() int {
	return len(tr.byName)
}

// Names returns every tutorial name in sorted order.
func (tr *Tree) Names() []string {
	names := make([]string, 0, len(tr.byName))
	for n := range tr.byName {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Reparent moves child under parent. Moves that would create a cycle are rejected.
func (tr *Tree) Reparent(parentName, childName string) error {
	parent, ok := tr.byName[parentName]
	if !ok {
		return errors.TutorialError("unknown parent tutorial").
			WithContext(logfields.KeyTutorial, parentName).
			Build()
	}
	child, ok := tr.byName[childName]
	if !ok {
		return errors.TutorialError("unknown child tutorial").
			WithContext(logfields.KeyTutorial, childName).
			WithContext("parent", parentName).
			Build()
	}
	for p := parent; p != nil; p = p.Parent {
		if p == child {
			return errors.TutorialError("tutorial cannot be nested under itself").
				WithContext(logfields.KeyTutorial, childName).
				WithContext("parent", parentName).
				Build()
		}
	}
	if child.Parent != nil {
		child.Parent.removeChild(child)
	}
	child.Parent = parent
	parent.Children = append(parent.Children, child)
	return nil
}
