package metrics

import "time"

// LinkOutcome classifies how a single link request was satisfied.
type LinkOutcome string

const (
	LinkInternal   LinkOutcome = "internal"   // found in the link map
	LinkExternal   LinkOutcome = "external"   // absolute URL passed through
	LinkShorthand  LinkOutcome = "shorthand"  // well-known built-in type reference
	LinkTypeExpr   LinkOutcome = "type_expr"  // composite type expression
	LinkUnresolved LinkOutcome = "unresolved" // plain text fallback
)

// Recorder defines observability hooks for link resolution. Implementations
// may forward to Prometheus or elsewhere; NoopRecorder is the default.
type Recorder interface {
	IncLinkOutcome(outcome LinkOutcome)
	IncFilenameCollision()
	IncFragmentCollision()
	IncDiagnostic(category, severity string)
	ObserveRunDuration(d time.Duration)
	SetRegisteredLinks(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncLinkOutcome(LinkOutcome)       {}
func (NoopRecorder) IncFilenameCollision()            {}
func (NoopRecorder) IncFragmentCollision()            {}
func (NoopRecorder) IncDiagnostic(string, string)     {}
func (NoopRecorder) ObserveRunDuration(time.Duration) {}
func (NoopRecorder) SetRegisteredLinks(int)           {}
