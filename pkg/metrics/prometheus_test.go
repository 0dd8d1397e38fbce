package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordCycle("ok")
	r.RecordCycle("ok")
	r.RecordCycle("stale")
	r.RecordError("upstream")
	r.RecordConfidence("base:0xabc", 84)
	r.RecordLatency("analyze", 0.2)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	got := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				label := m.GetLabel()[0].GetValue()
				got[mf.GetName()+"/"+label] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				got[mf.GetName()] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				got[mf.GetName()] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}

	want := map[string]float64{
		"dexpulse_refresh_cycles_total/ok":    2,
		"dexpulse_refresh_cycles_total/stale": 1,
		"dexpulse_errors_total/upstream":      1,
		"dexpulse_signal_confidence":          84,
		"dexpulse_operation_duration_seconds": 1,
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s: expected %v, got %v (all: %v)", k, v, got[k], got)
		}
	}
}
