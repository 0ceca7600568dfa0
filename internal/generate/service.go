// Package generate runs one link-resolution pass over a doclet dump: it loads
// and prunes the symbol graph, assigns every symbol its URL and fragment,
// decorates doclets with signatures, attributes and rendered descriptions, and
// persists the resulting link map.
package generate

import (
	"log/slog"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/doclinks/internal/config"
	"git.home.luguber.info/inful/doclinks/internal/diagnostics"
	"git.home.luguber.info/inful/doclinks/internal/doclet"
	"git.home.luguber.info/inful/doclinks/internal/linkid"
	"git.home.luguber.info/inful/doclinks/internal/linkstore"
	"git.home.luguber.info/inful/doclinks/internal/metrics"
)

// Request contains all inputs of a generation run.
type Request struct {
	// Config is the loaded configuration for this run.
	Config *config.Config

	// DocletPath is the JSON or YAML doclet dump to resolve.
	DocletPath string

	// TutorialDir optionally names a directory of tutorials.
	TutorialDir string

	// Strict turns error diagnostics into a failed run.
	Strict bool
}

// Result contains the outcome of a generation run.
type Result struct {
	RunID string

	Graph       *doclet.Graph
	Registry    *linkid.Registry
	Diagnostics *diagnostics.List

	// Tutorials maps tutorial names to their rendered HTML.
	Tutorials map[string]string

	// Pruned is the number of doclets dropped before resolution.
	Pruned int

	// Restored reports whether identities were seeded from an earlier run.
	Restored bool

	StartTime time.Time
	Duration  time.Duration
}

// Service executes generation runs.
type Service struct {
	logger   *slog.Logger
	recorder metrics.Recorder
	gatherer prom.Gatherer
	store    linkstore.Store
	newRunID func() string
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the base logger; run attributes are added to it.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder injects a metrics recorder. When g is non-nil it is written to
// the configured textfile after each run.
func WithRecorder(rec metrics.Recorder, g prom.Gatherer) Option {
	return func(s *Service) {
		s.recorder = rec
		s.gatherer = g
	}
}

// WithStore injects a link store, overriding store.path from the configuration.
// The caller keeps ownership and closes it.
func WithStore(st linkstore.Store) Option {
	return func(s *Service) { s.store = st }
}

// WithRunIDFunc replaces the run ID generator (for testing).
func WithRunIDFunc(fn func() string) Option {
	return func(s *Service) { s.newRunID = fn }
}

// NewService returns a Service with default dependencies.
func NewService(opts ...Option) *Service {
	s := &Service{
		logger:   slog.Default(),
		newRunID: newRunID,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
