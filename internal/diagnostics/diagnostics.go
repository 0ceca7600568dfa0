// Package diagnostics collects the non-fatal problems met while resolving links.
//
// Resolution never aborts on a bad reference: unparsable type expressions,
// unknown tutorials and missing arguments degrade a single piece of output and
// are recorded here. Callers decide afterwards whether any entry is fatal.
package diagnostics

import (
	"context"
	"log/slog"

	"github.com/hashicorp/go-multierror"

	"git.home.luguber.info/inful/doclinks/internal/foundation/errors"
	"git.home.luguber.info/inful/doclinks/internal/logfields"
	"git.home.luguber.info/inful/doclinks/internal/metrics"
)

// List accumulates diagnostics in the order they were reported.
type List struct {
	logger   *slog.Logger
	recorder metrics.Recorder
	entries  []*errors.ClassifiedError
}

// Option configures a List.
type Option func(*List)

// WithLogger sets the logger each diagnostic is written to when added.
func WithLogger(l *slog.Logger) Option {
	return func(d *List) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithRecorder counts diagnostics by category and severity.
func WithRecorder(r metrics.Recorder) Option {
	return func(d *List) {
		if r != nil {
			d.recorder = r
		}
	}
}

// New returns an empty list.
func New(opts ...Option) *List {
	d := &List{logger: slog.Default(), recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Add records err and logs it at the level matching its severity.
func (d *List) Add(err *errors.ClassifiedError) {
	if err == nil {
		return
	}
	d.entries = append(d.entries, err)
	d.recorder.IncDiagnostic(string(err.Category()), string(err.Severity()))

	attrs := []slog.Attr{logfields.Category(string(err.Category()))}
	for k, v := range err.Context() {
		attrs = append(attrs, slog.Any(k, v))
	}
	if cause := err.Cause(); cause != nil {
		attrs = append(attrs, logfields.Error(cause))
	}
	d.logger.LogAttrs(context.Background(), errors.SlogLevel(err.Severity()), err.Message(), attrs...)
}

// Entries returns the recorded diagnostics.
func (d *List) Entries() []*errors.ClassifiedError {
	return d.entries
}

// Len returns the number of recorded diagnostics.
func (d *List) Len() int {
	return len(d.entries)
}

// Count returns how many diagnostics belong to category.
func (d *List) Count(category errors.ErrorCategory) int {
	n := 0
	for _, e := range d.entries {
		if e.IsCategory(category) {
			n++
		}
	}
	return n
}

// HasErrors reports whether any entry is more severe than a warning.
func (d *List) HasErrors() bool {
	for _, e := range d.entries {
		if e.Severity() == errors.SeverityError || e.Severity() == errors.SeverityFatal {
			return true
		}
	}
	return false
}

// Err combines every entry of at least minSeverity into one error, or returns nil.
func (d *List) Err(minSeverity errors.ErrorSeverity) error {
	var result *multierror.Error
	for _, e := range d.entries {
		if rank(e.Severity()) >= rank(minSeverity) {
			result = multierror.Append(result, e)
		}
	}
	return result.ErrorOrNil()
}

// Reset drops all entries, for reuse across generation runs.
func (d *List) Reset() {
	d.entries = nil
}

func rank(s errors.ErrorSeverity) int {
	switch s {
	case errors.SeverityInfo:
		return 0
	case errors.SeverityWarning:
		return 1
	case errors.SeverityError:
		return 2
	default:
		return 3
	}
}
