// Package metrics provides Prometheus instrumentation for the
// clustering and layout engines.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the library
type Registry struct {
	// Clustering Metrics
	ClusteringRunsTotal     *prometheus.CounterVec
	ClusteringRunDuration   *prometheus.HistogramVec
	ClusteringBestQuality   prometheus.Gauge
	ClusteringClustersFound prometheus.Gauge

	// Layout Metrics
	LayoutRunsTotal   *prometheus.CounterVec
	LayoutRunDuration *prometheus.HistogramVec
	LayoutBestQuality prometheus.Gauge

	// Network Metrics
	NetworkBuildsTotal *prometheus.CounterVec
	NetworkNodes       prometheus.Gauge
	NetworkEdges       prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics registered
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initClusteringMetrics()
	r.initLayoutMetrics()
	r.initNetworkMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
