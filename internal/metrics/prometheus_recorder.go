package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	linkOutcomes       *prom.CounterVec
	filenameCollisions prom.Counter
	fragmentCollisions prom.Counter
	diagnostics        *prom.CounterVec
	runDuration        prom.Histogram
	registeredLinks    prom.Gauge
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		linkOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "doclinks",
			Name:      "link_outcomes_total",
			Help:      "Link requests by how they were satisfied",
		}, []string{"outcome"}),
		filenameCollisions: prom.NewCounter(prom.CounterOpts{
			Namespace: "doclinks",
			Name:      "filename_collisions_total",
			Help:      "Suffixes appended to de-duplicate output filenames",
		}),
		fragmentCollisions: prom.NewCounter(prom.CounterOpts{
			Namespace: "doclinks",
			Name:      "fragment_collisions_total",
			Help:      "Suffixes appended to de-duplicate fragment identifiers",
		}),
		diagnostics: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "doclinks",
			Name:      "diagnostics_total",
			Help:      "Diagnostics recorded during resolution",
		}, []string{"category", "severity"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "doclinks",
			Name:      "run_duration_seconds",
			Help:      "Duration of a generation run",
			Buckets:   prom.DefBuckets,
		}),
		registeredLinks: prom.NewGauge(prom.GaugeOpts{
			Namespace: "doclinks",
			Name:      "registered_links",
			Help:      "Longnames registered in the link map at the end of the last run",
		}),
	}
	reg.MustRegister(pr.linkOutcomes, pr.filenameCollisions, pr.fragmentCollisions,
		pr.diagnostics, pr.runDuration, pr.registeredLinks)
	return pr
}

func (p *PrometheusRecorder) IncLinkOutcome(outcome LinkOutcome) {
	p.linkOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncFilenameCollision() { p.filenameCollisions.Inc() }

func (p *PrometheusRecorder) IncFragmentCollision() { p.fragmentCollisions.Inc() }

func (p *PrometheusRecorder) IncDiagnostic(category, severity string) {
	p.diagnostics.WithLabelValues(category, severity).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetRegisteredLinks(n int) { p.registeredLinks.Set(float64(n)) }

// WriteTextfile writes the gatherer's metrics in the node exporter textfile format.
func WriteTextfile(path string, g prom.Gatherer) error {
	return prom.WriteToTextfile(path, g)
}
