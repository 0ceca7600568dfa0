package tutorial

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/doclinks/internal/foundation/errors"
	"git.home.luguber.info/inful/doclinks/internal/logfields"
)

// contentTypes maps recognised file extensions to their markup.
var contentTypes = map[string]ContentType{
	".md":       TypeMarkdown,
	".markdown": TypeMarkdown,
	".txt":      TypeMarkdown,
	".html":     TypeHTML,
	".htm":      TypeHTML,
}

// configNames are the hierarchy files looked for, in order.
var configNames = []string{"tutorials.yaml", "tutorials.yml", "tutorials.json"}

// Entry configures one tutorial in a hierarchy file.
type Entry struct {
	Title    string   `yaml:"title"`
	Children Children `yaml:"children"`
}

// Children accepts either a list of names or a mapping of name to Entry.
type Children map[string]Entry

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Children) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}
		m := make(Children, len(names))
		for _, n := range names {
			m[n] = Entry{}
		}
		*c = m
		return nil
	case yaml.MappingNode:
		m := make(map[string]Entry)
		if err := node.Decode(&m); err != nil {
			return err
		}
		*c = m
		return nil
	default:
		return fmt.Errorf("children must be a list or a mapping, got %s", node.Tag)
	}
}

// Hierarchy is the decoded hierarchy file: top-level tutorial names to their configuration.
type Hierarchy map[string]Entry

// LoadDir reads every tutorial file in dir (not recursively) and applies the
// hierarchy file if one is present. Problems with single entries are collected
// and returned together with the tree built from everything else.
func LoadDir(dir string) (*Tree, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read tutorial directory").
			WithContext(logfields.KeyPath, dir).
			Build()
	}

	tree := NewTree()
	var result *multierror.Error
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		ct, ok := contentTypes[ext]
		if !ok {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			result = multierror.Append(result, errors.WrapError(err, errors.CategoryFileSystem, "failed to read tutorial").
				WithContext(logfields.KeyPath, path).
				Build())
			continue
		}
		t := &Tutorial{
			Name:    strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			Content: string(data),
			Type:    ct,
		}
		if err := tree.Add(t); err != nil {
			result = multierror.Append(result, err)
		}
	}

	h, err := readHierarchy(dir)
	if err != nil {
		result = multierror.Append(result, err)
	} else if h != nil {
		if err := tree.Apply(h); err != nil {
			result = multierror.Append(result, err)
		}
	}

	slog.Debug("Loaded tutorials", logfields.Path(dir), logfields.Count(tree.Len()))
	return tree, result.ErrorOrNil()
}

func readHierarchy(dir string) (Hierarchy, error) {
	for _, name := range configNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read tutorial hierarchy").
				WithContext(logfields.KeyPath, path).
				Build()
		}
		h, err := ParseHierarchy(data)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryInput, "invalid tutorial hierarchy").
				WithContext(logfields.KeyPath, path).
				Build()
		}
		return h, nil
	}
	return nil, nil
}

// ParseHierarchy decodes a hierarchy file. JSON is accepted as YAML.
func ParseHierarchy(data []byte) (Hierarchy, error) {
	var h Hierarchy
	if err := yaml.Unmarshal(data, &h); err != nil {
		return nil, err
	}
	return h, nil
}

// Apply sets titles and nests children as h describes. Entries naming unknown
// tutorials are reported and skipped.
func (tr *Tree) Apply(h Hierarchy) error {
	var result *multierror.Error
	tr.apply("", map[string]Entry(h), &result)
	return result.ErrorOrNil()
}

func (tr *Tree) apply(parent string, entries map[string]Entry, result **multierror.Error) {
	names := make([]string, 0, len(entries))
	for n := range entries {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, name := range names {
		entry := entries[name]
		t, ok := tr.byName[name]
		if !ok {
			*result = multierror.Append(*result, errors.TutorialError(fmt.Sprintf("hierarchy names unknown tutorial %q", name)).
				Warning().
				WithContext(logfields.KeyTutorial, name).
				Build())
			continue
		}
		if entry.Title != "" {
			t.Title = entry.Title
		}
		if parent != "" {
			if err := tr.Reparent(parent, name); err != nil {
				*result = multierror.Append(*result, err)
				continue
			}
		}
		tr.apply(name, entry.Children, result)
	}
}
