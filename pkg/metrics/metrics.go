package metrics

import (
	"time"
)

// RecordClusteringRun records a completed clustering run
func (r *Registry) RecordClusteringRun(algorithm, status string, duration time.Duration, quality float64, nClusters int) {
	r.ClusteringRunsTotal.WithLabelValues(algorithm, status).Inc()
	r.ClusteringRunDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
	if status == "ok" {
		r.ClusteringBestQuality.Set(quality)
		r.ClusteringClustersFound.Set(float64(nClusters))
	}
}

// RecordLayoutRun records a completed layout run
func (r *Registry) RecordLayoutRun(qualityFunction, status string, duration time.Duration, quality float64) {
	r.LayoutRunsTotal.WithLabelValues(qualityFunction, status).Inc()
	r.LayoutRunDuration.WithLabelValues(qualityFunction).Observe(duration.Seconds())
	if status == "ok" {
		r.LayoutBestQuality.Set(quality)
	}
}

// RecordNetworkBuild records a network construction attempt
func (r *Registry) RecordNetworkBuild(source, status string) {
	r.NetworkBuildsTotal.WithLabelValues(source, status).Inc()
}

// SetNetwork records the size of the network attached to the engine
func (r *Registry) SetNetwork(nNodes, nEdges int) {
	r.NetworkNodes.Set(float64(nNodes))
	r.NetworkEdges.Set(float64(nEdges))
}
