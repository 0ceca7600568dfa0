// Package linkid assigns stable output identities to documented symbols.
//
// A Registry owns every table a generation run needs: the filename table, the
// per-file fragment tables, the longname<->URL link map, the longname->fragment
// map and the tutorial link map. Identifiers are allocated on first request and
// never change afterwards; Reset starts a new run.
package linkid

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"git.home.luguber.info/inful/doclinks/internal/doclet"
	"git.home.luguber.info/inful/doclinks/internal/metrics"
)

const (
	// DefaultExtension is appended to every allocated filename.
	DefaultExtension = ".html"
	// TutorialPrefix is prepended to tutorial names before their filename is allocated.
	TutorialPrefix = "tutorial-"
)

var (
	unsafeFileChars = regexp.MustCompile(`[\\/?*:|'"<>]`)
	trailingVariant = regexp.MustCompile(`\([\s\S]*\)$`)
	whitespace      = regexp.MustCompile(`\s`)
)

// Registry is the identity context of one generation run. It is not safe for
// concurrent use; a run resolves links from a single goroutine.
type Registry struct {
	ext      string
	nsPrefix *regexp.Regexp
	fold     cases.Caser
	recorder metrics.Recorder

	files map[string]string            // folded basename -> source string
	ids   map[string]map[string]string // filename -> folded id -> id

	longnameToURL map[string]string
	urlToLongname map[string]string
	longnameToID  map[string]string

	tutorialToURL map[string]string
	urlToTutorial map[string]string
}

// Option configures a Registry.
type Option func(*Registry)

// WithExtension sets the output file extension (default ".html").
func WithExtension(ext string) Option {
	return func(r *Registry) { r.ext = ext }
}

// WithDictionary sets the tag dictionary whose namespaces are rewritten in filenames.
func WithDictionary(d doclet.Dictionary) Option {
	return func(r *Registry) { r.nsPrefix = doclet.NamespacePrefixPattern(d) }
}

// WithRecorder counts identifier collisions.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Registry) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// New returns an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		ext:      DefaultExtension,
		nsPrefix: doclet.NamespacePrefixPattern(doclet.DefaultDictionary()),
		fold:     cases.Fold(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Reset()
	return r
}

// Reset discards every allocation so the registry can serve a new run.
func (r *Registry) Reset() {
	r.files = make(map[string]string)
	r.ids = make(map[string]map[string]string)
	r.longnameToURL = make(map[string]string)
	r.urlToLongname = make(map[string]string)
	r.longnameToID = make(map[string]string)
	r.tutorialToURL = make(map[string]string)
	r.urlToTutorial = make(map[string]string)
}

// Extension returns the output file extension.
func (r *Registry) Extension() string {
	return r.ext
}

func (r *Registry) key(s string) string {
	return r.fold.String(s)
}

// sanitize turns a longname into a filesystem-friendly basename.
func (r *Registry) sanitize(str string) string {
	basename := r.nsPrefix.ReplaceAllString(str, "$1-")
	basename = unsafeFileChars.ReplaceAllString(basename, "_")
	basename = strings.ReplaceAll(basename, "~", "-")
	basename = strings.ReplaceAll(basename, "#", "_")
	basename = trailingVariant.ReplaceAllString(basename, "")
	if strings.HasPrefix(basename, ".") || strings.HasPrefix(basename, "-") {
		basename = basename[1:]
	}
	if basename == "" {
		basename = "_"
	}
	return basename
}

// UniqueFilename sanitizes str and returns a filename, extension included, that
// no earlier call has returned under case-insensitive comparison.
func (r *Registry) UniqueFilename(str string) string {
	filename := r.sanitize(str)
	// Names starting with an underscore are hidden by some static hosts.
	if strings.HasPrefix(filename, "_") {
		filename = "-" + filename
	}
	key := r.key(filename)
	for {
		if _, taken := r.files[key]; !taken {
			break
		}
		r.recorder.IncFilenameCollision()
		filename += "_"
		key = r.key(filename)
	}
	r.files[key] = str
	return filename + r.ext
}

// UniqueID returns a fragment identifier unique within filename under
// case-insensitive comparison. Whitespace is removed from id first.
func (r *Registry) UniqueID(filename, id string) string {
	id = whitespace.ReplaceAllString(id, "")
	scope, ok := r.ids[filename]
	if !ok {
		scope = make(map[string]string)
		r.ids[filename] = scope
	}
	key := r.key(id)
	for {
		if _, taken := scope[key]; !taken {
			break
		}
		r.recorder.IncFragmentCollision()
		id += "_"
		key = r.key(id)
	}
	scope[key] = id
	return id
}

// Filename returns the URL registered for longname, allocating a new filename
// and registering it when the longname has none yet.
func (r *Registry) Filename(longname string) string {
	if url, ok := r.longnameToURL[longname]; ok {
		return url
	}
	url := r.UniqueFilename(longname)
	r.RegisterLink(longname, url)
	return url
}

// FragmentFor returns the fragment identifier of longname inside filename. The
// first registration wins: later calls return it and ignore desired. When the
// longname has no fragment and desired is empty, no fragment is allocated.
func (r *Registry) FragmentFor(longname, filename, desired string) string {
	if id, ok := r.longnameToID[longname]; ok {
		return id
	}
	if desired == "" {
		return ""
	}
	id := r.UniqueID(filename, desired)
	r.longnameToID[longname] = id
	return id
}

// RegisterLink associates longname with url in both directions. url is the
// unencoded filename and fragment; encoding belongs to whoever emits the href.
func (r *Registry) RegisterLink(longname, url string) {
	r.longnameToURL[longname] = url
	r.urlToLongname[url] = longname
}

// Lookup returns the URL registered for longname.
func (r *Registry) Lookup(longname string) (string, bool) {
	url, ok := r.longnameToURL[longname]
	return url, ok
}

// LongnameFor returns the longname registered for url.
func (r *Registry) LongnameFor(url string) (string, bool) {
	longname, ok := r.urlToLongname[url]
	return longname, ok
}

// IDFor returns the fragment identifier registered for longname.
func (r *Registry) IDFor(longname string) (string, bool) {
	id, ok := r.longnameToID[longname]
	return id, ok
}

// TutorialURL returns the URL of the tutorial called name, allocating one on
// first use. Tutorial filenames come from the same table as symbol filenames
// so the two namespaces never share a file.
func (r *Registry) TutorialURL(name string) string {
	if url, ok := r.tutorialToURL[name]; ok {
		return url
	}
	url := r.UniqueFilename(TutorialPrefix + name)
	r.tutorialToURL[name] = url
	r.urlToTutorial[url] = name
	return url
}

// TutorialFor returns the tutorial name registered for url.
func (r *Registry) TutorialFor(url string) (string, bool) {
	name, ok := r.urlToTutorial[url]
	return name, ok
}

// HasFile reports whether filename (extension included) was allocated.
func (r *Registry) HasFile(filename string) bool {
	base, ok := strings.CutSuffix(filename, r.ext)
	if !ok {
		return false
	}
	_, taken := r.files[r.key(base)]
	return taken
}

// HasFragment reports whether id was allocated inside filename. Fragments
// are matched exactly, as browsers do.
func (r *Registry) HasFragment(filename, id string) bool {
	got, ok := r.ids[filename][r.key(id)]
	return ok && got == id
}

// Len returns the number of registered longnames.
func (r *Registry) Len() int {
	return len(r.longnameToURL)
}

// EntryKind distinguishes symbol entries from tutorial entries in a snapshot.
type EntryKind string

const (
	EntrySymbol   EntryKind = "symbol"
	EntryTutorial EntryKind = "tutorial"
)

// Entry is one row of the link map.
type Entry struct {
	Kind     EntryKind `yaml:"kind"`
	Name     string    `yaml:"name"`
	URL      string    `yaml:"url"`
	Fragment string    `yaml:"fragment,omitempty"`
}

// Snapshot returns the link map ordered by kind then name.
func (r *Registry) Snapshot() []Entry {
	out := make([]Entry, 0, len(r.longnameToURL)+len(r.tutorialToURL))
	for longname, url := range r.longnameToURL {
		out = append(out, Entry{Kind: EntrySymbol, Name: longname, URL: url, Fragment: r.longnameToID[longname]})
	}
	for name, url := range r.tutorialToURL {
		out = append(out, Entry{Kind: EntryTutorial, Name: name, URL: url})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Restore replays a snapshot taken by an earlier run so that the same
// longnames keep the same filenames and fragments. Entry URLs are unencoded,
// as the registry produced them. It must be called on a fresh registry,
// before any allocation.
func (r *Registry) Restore(entries []Entry) {
	for _, e := range entries {
		file, _, _ := strings.Cut(e.URL, "#")
		if base, ok := strings.CutSuffix(file, r.ext); ok && base != "" {
			r.files[r.key(base)] = e.Name
		}
		switch e.Kind {
		case EntryTutorial:
			r.tutorialToURL[e.Name] = e.URL
			r.urlToTutorial[e.URL] = e.Name
		default:
			r.RegisterLink(e.Name, e.URL)
			if e.Fragment != "" {
				scope, ok := r.ids[file]
				if !ok {
					scope = make(map[string]string)
					r.ids[file] = scope
				}
				scope[r.key(e.Fragment)] = e.Fragment
				r.longnameToID[e.Name] = e.Fragment
			}
		}
	}
}

// StaticMap is a fixed longname -> URL map, usable wherever a Registry's link
// lookup is expected.
type StaticMap map[string]string

// Lookup returns the URL for longname.
func (m StaticMap) Lookup(longname string) (string, bool) {
	url, ok := m[longname]
	return url, ok
}
