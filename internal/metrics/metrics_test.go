package metrics

import (
	"strings"
	"testing"
)

func TestRenderExposesPipelineSeries(t *testing.T) {
	IncRunStarted()
	IncRunCompleted()
	ObserveRunDurationMs(120)

	out := Render()
	for _, series := range []string{
		"pipeline_runs_started_total",
		"pipeline_runs_completed_total",
		"pipeline_runs_aborted_total",
		"pipeline_run_duration_ms_bucket",
		"pipeline_run_duration_ms_sum",
		"pipeline_run_duration_ms_count",
	} {
		if !strings.Contains(out, series) {
			t.Errorf("missing series %q in output:\n%s", series, out)
		}
	}
}

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100, 1000})
	h.Observe(5)
	h.Observe(50)
	h.Observe(5000)

	snap := h.Snapshot()
	if snap.count != 3 {
		t.Fatalf("count = %d, want 3", snap.count)
	}
	// Per-bucket counts before cumulation: one sample each under 10 and
	// 100, one over the largest bound.
	if snap.counts[0] != 1 || snap.counts[1] != 1 || snap.counts[2] != 0 {
		t.Fatalf("bucket counts = %v", snap.counts)
	}
	if snap.sum != 5055 {
		t.Fatalf("sum = %v, want 5055", snap.sum)
	}
}
