package metrics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 20, 30})
	h.Observe(5)
	h.Observe(15)
	h.Observe(15)
	h.Observe(99)

	snap := h.Snapshot()
	assert.Equal(t, []uint64{1, 2, 0}, snap.counts)
	assert.Equal(t, uint64(4), snap.count)
	assert.Equal(t, 134.0, snap.sum)

	var buf bytes.Buffer
	writeHistogram(&buf, "demo", "demo histogram", snap)
	out := buf.String()
	assert.Contains(t, out, `demo_bucket{le="10"} 1`)
	assert.Contains(t, out, `demo_bucket{le="20"} 3`)
	assert.Contains(t, out, `demo_bucket{le="30"} 3`)
	assert.Contains(t, out, `demo_bucket{le="+Inf"} 4`)
	assert.Contains(t, out, "demo_sum 134")
}

func TestRenderIncludesCounters(t *testing.T) {
	IncAnalysisStarted()
	IncExtractionFailed()
	IncAnalysisJobsEnqueued()
	ObserveScore(72)

	out := Render()
	assert.Contains(t, out, "# TYPE analysis_started_total counter")
	assert.Contains(t, out, "extraction_failed_total")
	assert.Contains(t, out, "analysis_jobs_enqueued_total")
	assert.Contains(t, out, `analysis_score_bucket{le="80"}`)
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "250", formatFloat(250))
	assert.Equal(t, "0.5", formatFloat(0.5))
}
