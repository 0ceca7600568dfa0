// Package links turns symbol names, type expressions, URLs and tutorial names
// into hyperlink markup.
//
// A Resolver is bound to one linkid.Registry; every URL it produces comes from
// that registry or from a fixed table of well-known external pages. Problems
// never abort resolution: they are reported to a diagnostics.List and the
// affected text degrades to plain or escaped text.
package links

import (
	"regexp"

	"git.home.luguber.info/inful/doclinks/internal/diagnostics"
	"git.home.luguber.info/inful/doclinks/internal/doclet"
	"git.home.luguber.info/inful/doclinks/internal/linkid"
	"git.home.luguber.info/inful/doclinks/internal/metrics"
)

// LinkMap maps longnames to URLs. *linkid.Registry and linkid.StaticMap satisfy it.
type LinkMap interface {
	Lookup(longname string) (string, bool)
}

// TutorialSource reports which tutorials exist and what they are called.
// *tutorial.Tree satisfies it.
type TutorialSource interface {
	Has(name string) bool
	Title(name string) (string, bool)
}

type noTutorials struct{}

func (noTutorials) Has(string) bool { return false }
func (noTutorials) Title(string) (string, bool) { return "", false }

// Resolver produces link markup for one generation run.
type Resolver struct {
	registry  *linkid.Registry
	dict      doclet.Dictionary
	nsPrefix  *regexp.Regexp
	tutorials TutorialSource
	diags     *diagnostics.List
	recorder  metrics.Recorder

	monospaceLinks bool
	cleverLinks    bool
	globalName     string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDictionary sets the tag dictionary used to recognise namespaced names.
func WithDictionary(d doclet.Dictionary) Option {
	return func(r *Resolver) {
		if d != nil {
			r.dict = d
		}
	}
}

// WithTutorials sets the tutorial source consulted by tutorial links.
func WithTutorials(t TutorialSource) Option {
	return func(r *Resolver) {
		if t != nil {
			r.tutorials = t
		}
	}
}

// WithDiagnostics sets the list that receives resolution problems.
func WithDiagnostics(d *diagnostics.List) Option {
	return func(r *Resolver) {
		if d != nil {
			r.diags = d
		}
	}
}

// WithRecorder counts link outcomes.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Resolver) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithMonospaceLinks renders inline {@link} text in <code> by default, URLs included.
func WithMonospaceLinks(on bool) Option {
	return func(r *Resolver) { r.monospaceLinks = on }
}

// WithCleverLinks renders inline {@link} text in <code> unless the target is a URL.
func WithCleverLinks(on bool) Option {
	return func(r *Resolver) { r.cleverLinks = on }
}

// WithGlobalName sets the longname used for the global scope page.
func WithGlobalName(name string) Option {
	return func(r *Resolver) {
		if name != "" {
			r.globalName = name
		}
	}
}

// DefaultGlobalName is the longname of the page that holds global symbols.
const DefaultGlobalName = "global"

// NewResolver returns a Resolver bound to reg.
func NewResolver(reg *linkid.Registry, opts ...Option) *Resolver {
	r := &Resolver{
		registry:   reg,
		dict:       doclet.DefaultDictionary(),
		tutorials:  noTutorials{},
		recorder:   metrics.NoopRecorder{},
		globalName: DefaultGlobalName,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.diags == nil {
		r.diags = diagnostics.New(diagnostics.WithRecorder(r.recorder))
	}
	r.nsPrefix = doclet.NamespacePrefixPattern(r.dict)
	return r
}

// Registry returns the registry the resolver allocates from.
func (r *Resolver) Registry() *linkid.Registry { return r.registry }

// Diagnostics returns the list that collects resolution problems.
func (r *Resolver) Diagnostics() *diagnostics.List { return r.diags }

// GlobalName returns the longname of the global scope page.
func (r *Resolver) GlobalName() string { return r.globalName }
