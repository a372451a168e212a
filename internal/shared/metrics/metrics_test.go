package metrics

import (
	"strings"
	"testing"
)

func TestRenderIncludesCountersAndHistogram(t *testing.T) {
	IncUploads()
	IncRefinementFailed()
	ObserveParseDurationMs(120)
	ObserveParseDurationMs(-5)

	out := Render()
	for _, want := range []string{
		"# TYPE uploads_total counter",
		"# TYPE refinement_failed_total counter",
		"# TYPE parse_duration_ms histogram",
		`parse_duration_ms_bucket{le="+Inf"}`,
		"history_reads_total",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	if snap.count != 3 {
		t.Fatalf("expected count 3, got %d", snap.count)
	}
	if snap.counts[0] != 1 || snap.counts[1] != 2 {
		t.Fatalf("unexpected bucket counts %v", snap.counts)
	}
	if formatFloat(2.5) != "2.5" || formatFloat(3) != "3" {
		t.Fatalf("unexpected float formatting")
	}
}
