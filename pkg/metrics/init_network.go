package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initNetworkMetrics() {
	r.NetworkBuildsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netmap_network_builds_total",
			Help: "Total number of derived networks prepared for optimisation runs",
		},
		[]string{"source", "status"},
	)

	r.NetworkNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "netmap_network_nodes",
			Help: "Node count of the network attached to the engine",
		},
	)

	r.NetworkEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "netmap_network_edges",
			Help: "Undirected edge count of the network attached to the engine",
		},
	)
}
