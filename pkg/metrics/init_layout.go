package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initLayoutMetrics() {
	r.LayoutRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netmap_layout_runs_total",
			Help: "Total number of layout runs executed",
		},
		[]string{"quality_function", "status"},
	)

	r.LayoutRunDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netmap_layout_run_duration_seconds",
			Help:    "Layout run duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0, 120.0},
		},
		[]string{"quality_function"},
	)

	r.LayoutBestQuality = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "netmap_layout_best_quality",
			Help: "Quality of the best layout found by the last run (lower is better)",
		},
	)
}
