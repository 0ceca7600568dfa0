package tutorial

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doclinks/internal/foundation/errors"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func TestTreeAddAndLookup(t *testing.T) {
	tr := NewTree()
	require.NoError(t, tr.Add(&Tutorial{Name: "intro"}))
	require.NoError(t, tr.Add(&Tutorial{Name: "advanced", Title: "Advanced usage"}))

	assert.True(t, tr.Has("intro"))
	assert.False(t, tr.Has("missing"))

	got, ok := tr.GetByName("advanced")
	require.True(t, ok)
	assert.Equal(t, "Advanced usage", got.DisplayTitle())
	assert.Same(t, tr.Root(), got.Parent)
	assert.Equal(t, []string{"advanced", "intro"}, tr.Names())

	intro, _ := tr.GetByName("intro")
	assert.Equal(t, "intro", intro.DisplayTitle())

	title, ok := tr.Title("advanced")
	assert.True(t, ok)
	assert.Equal(t, "Advanced usage", title)
	title, ok = tr.Title("intro")
	assert.True(t, ok)
	assert.Equal(t, "intro", title)
	_, ok = tr.Title("missing")
	assert.False(t, ok)
}

func TestTreeAddRejectsDuplicatesAndEmptyNames(t *testing.T) {
	tr := NewTree()
	require.NoError(t, tr.Add(&Tutorial{Name: "intro"}))

	err := tr.Add(&Tutorial{Name: "intro"})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryTutorial))

	require.Error(t, tr.Add(&Tutorial{Name: "  "}))
	assert.Equal(t, 1, tr.Len())
}

func TestReparent(t *testing.T) {
	tr := NewTree()
	for _, n := range []string{"a", "b", "c"} {
		require.NoError(t, tr.Add(&Tutorial{Name: n}))
	}

	require.NoError(t, tr.Reparent("a", "b"))
	require.NoError(t, tr.Reparent("b", "c"))

	a, _ := tr.GetByName("a")
	c, _ := tr.GetByName("c")
	assert.Len(t, tr.Root().Children, 1)
	assert.Equal(t, "b", a.Children[0].Name)
	assert.Equal(t, "b", c.Parent.Name)

	require.Error(t, tr.Reparent("c", "a"), "cycle must be rejected")
	require.Error(t, tr.Reparent("a", "zzz"))
	require.Error(t, tr.Reparent("zzz", "a"))
}

func TestLoadDir(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"intro.md":       "# Intro",
		"setup.html":     "<p>Setup</p>",
		"deep.markdown":  "deep",
		"ignored.png":    "binary",
		"tutorials.yaml": "intro:\n  title: Getting started\n  children:\n    setup:\n      title: Setting up\n      children: [deep]\n",
	})

	tr, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, tr.Len())
	assert.False(t, tr.Has("ignored"))

	intro, ok := tr.GetByName("intro")
	require.True(t, ok)
	assert.Equal(t, "Getting started", intro.Title)
	assert.Equal(t, TypeMarkdown, intro.Type)
	assert.Equal(t, "# Intro", intro.Content)

	setup, _ := tr.GetByName("setup")
	assert.Equal(t, TypeHTML, setup.Type)
	assert.Equal(t, "intro", setup.Parent.Name)

	deep, _ := tr.GetByName("deep")
	assert.Equal(t, "setup", deep.Parent.Name)
	assert.Len(t, tr.Root().Children, 1)
}

func TestLoadDirJSONHierarchy(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.md":           "a",
		"b.md":           "b",
		"tutorials.json": `{"a": {"title": "A", "children": ["b"]}}`,
	})

	tr, err := LoadDir(dir)
	require.NoError(t, err)
	b, _ := tr.GetByName("b")
	assert.Equal(t, "a", b.Parent.Name)
}

func TestLoadDirReportsUnknownEntries(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.md":           "a",
		"tutorials.yaml": "a:\n  children: [ghost]\nnope:\n  title: Nope\n",
	})

	tr, err := LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
	assert.Contains(t, err.Error(), "nope")
	require.NotNil(t, tr)
	assert.True(t, tr.Has("a"))
}

func TestLoadDirMissing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestParseHierarchyRejectsScalarChildren(t *testing.T) {
	_, err := ParseHierarchy([]byte("a:\n  children: 3\n"))
	require.Error(t, err)
}
