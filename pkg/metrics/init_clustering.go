package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initClusteringMetrics() {
	r.ClusteringRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netmap_clustering_runs_total",
			Help: "Total number of clustering runs executed",
		},
		[]string{"algorithm", "status"},
	)

	r.ClusteringRunDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netmap_clustering_run_duration_seconds",
			Help:    "Clustering run duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0, 120.0},
		},
		[]string{"algorithm"},
	)

	r.ClusteringBestQuality = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "netmap_clustering_best_quality",
			Help: "Quality of the best clustering found by the last run",
		},
	)

	r.ClusteringClustersFound = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "netmap_clustering_clusters_found",
			Help: "Number of clusters in the best clustering of the last run",
		},
	)
}
