package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMetricsRegistered(t *testing.T) {
	RunsTotal.WithLabelValues("written").Inc()
	RowsSelected.WithLabelValues("upper_limit", "KOSPI").Add(3)

	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	found := map[string]bool{}
	for _, mf := range mfs {
		found[mf.GetName()] = true
	}
	for _, name := range []string{"note_runs_total", "note_rows_selected_total"} {
		if !found[name] {
			t.Errorf("%s metric not found", name)
		}
	}
}
