// Package algorithms provides the community detection engine: the
// constant Potts model quality function, the standard and queue-driven
// local moving heuristics, the stochastic local merging routine, the
// Louvain and Leiden multilevel drivers, and small-cluster removal.
package algorithms

import (
	"github.com/dd0wney/cluso-netmap/pkg/clustering"
	"github.com/dd0wney/cluso-netmap/pkg/network"
)

// CPMQuality computes the constant Potts model quality of a clustering:
//
//	Q = [ sum of within-cluster edge weights + S
//	      - resolution * sum over clusters of (cluster weight)^2 ]
//	    / (2W + S)
//
// with W the total undirected edge weight and S the self-link total.
// Within-cluster edge weights count both directions. Modularity is the
// same expression after node weights are set to incident edge weights
// and the resolution is divided by 2W + S.
func CPMQuality(net *network.Network, c *clustering.Clustering, resolution float64) float64 {
	quality := 0.0
	for node := 0; node < net.NNodes(); node++ {
		cluster := c.Cluster(node)
		weights := net.EdgeWeights(node)
		for i, neighbor := range net.Neighbors(node) {
			if c.Cluster(neighbor) == cluster {
				quality += weights[i]
			}
		}
	}
	quality += net.TotalEdgeWeightSelfLinks()

	clusterWeights := make([]float64, c.NClusters())
	for node := 0; node < net.NNodes(); node++ {
		clusterWeights[c.Cluster(node)] += net.NodeWeight(node)
	}
	for _, weight := range clusterWeights {
		quality -= resolution * weight * weight
	}

	return quality / (2*net.TotalEdgeWeight() + net.TotalEdgeWeightSelfLinks())
}
