package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.IncLinkOutcome(LinkInternal)
	pr.IncLinkOutcome(LinkInternal)
	pr.IncLinkOutcome(LinkUnresolved)
	pr.IncFilenameCollision()
	pr.IncFragmentCollision()
	pr.IncFragmentCollision()
	pr.IncDiagnostic("typeexpr", "error")
	pr.ObserveRunDuration(150 * time.Millisecond)
	pr.SetRegisteredLinks(7)

	assert.InDelta(t, 2, testutil.ToFloat64(pr.linkOutcomes.WithLabelValues("internal")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.linkOutcomes.WithLabelValues("unresolved")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.filenameCollisions), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(pr.fragmentCollisions), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.diagnostics.WithLabelValues("typeexpr", "error")), 0)
	assert.InDelta(t, 7, testutil.ToFloat64(pr.registeredLinks), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.SetRegisteredLinks(3)

	path := filepath.Join(t.TempDir(), "doclinks.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "doclinks_registered_links 3")
}

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncLinkOutcome(LinkExternal)
	r.ObserveRunDuration(time.Second)
}
