// Package metrics provides observability hooks for link resolution.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so resolution code never checks whether metrics are enabled:
//
//	reg := prometheus.NewRegistry()
//	recorder := metrics.NewPrometheusRecorder(reg)
//	registry := linkid.New(linkid.WithRecorder(recorder))
//
// Generation runs are short-lived batch processes, so metrics are exported by
// writing a textfile (WriteTextfile) at the end of the run rather than served.
package metrics
