package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RunsTotal counts pipeline runs by result: written, exists, holiday, failed.
	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "note_runs_total", Help: "Note pipeline runs by result"},
		[]string{"result"},
	)
	// RowsSelected counts rows kept by each selection per market.
	RowsSelected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "note_rows_selected_total", Help: "Rows kept by a selection"},
		[]string{"selection", "market"},
	)
)

func init() {
	prometheus.MustRegister(RunsTotal, RowsSelected)
}

// Handler serves the registered metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
