package algorithms

import (
	"github.com/dd0wney/cluso-netmap/pkg/clustering"
	"github.com/dd0wney/cluso-netmap/pkg/network"
	"github.com/dd0wney/cluso-netmap/pkg/random"
)

// FastLocalMoving is the Leiden inner loop: a queue-driven variant of
// local moving that only revisits nodes whose neighbourhood changed.
// The permutation buffer doubles as a ring buffer for the queue.
type FastLocalMoving struct {
	Resolution float64

	rng *random.Generator
}

// NewFastLocalMoving creates a fast local moving heuristic sharing the
// given random generator.
func NewFastLocalMoving(resolution float64, rng *random.Generator) *FastLocalMoving {
	return &FastLocalMoving{Resolution: resolution, rng: rng}
}

// CalcQuality returns the constant Potts model quality of the clustering.
func (a *FastLocalMoving) CalcQuality(net *network.Network, c *clustering.Clustering) float64 {
	return CPMQuality(net, c, a.Resolution)
}

// ImproveClustering processes the queue of unstable nodes until it
// drains and reports whether the clustering changed. Empty clusters are
// compacted on return.
func (a *FastLocalMoving) ImproveClustering(net *network.Network, c *clustering.Clustering) bool {
	if net.NNodes() == 1 {
		return false
	}

	update := false

	clusterWeights := make([]float64, net.NNodes())
	nNodesPerCluster := make([]int, net.NNodes())
	for node := 0; node < net.NNodes(); node++ {
		clusterWeights[c.Cluster(node)] += net.NodeWeight(node)
		nNodesPerCluster[c.Cluster(node)]++
	}

	nUnusedClusters := 0
	unusedClusters := make([]int, net.NNodes())
	for cluster := net.NNodes() - 1; cluster >= 0; cluster-- {
		if nNodesPerCluster[cluster] == 0 {
			unusedClusters[nUnusedClusters] = cluster
			nUnusedClusters++
		}
	}

	// All nodes start unstable and queued in random order.
	stableNodes := make([]bool, net.NNodes())
	nodeOrder := a.rng.Permutation(net.NNodes())
	edgeWeightPerCluster := make([]float64, net.NNodes())
	neighboringClusters := make([]int, net.NNodes())

	nUnstableNodes := net.NNodes()
	i := 0
	for nUnstableNodes > 0 {
		j := nodeOrder[i]
		currentCluster := c.Cluster(j)

		clusterWeights[currentCluster] -= net.NodeWeight(j)
		nNodesPerCluster[currentCluster]--
		if nNodesPerCluster[currentCluster] == 0 {
			unusedClusters[nUnusedClusters] = currentCluster
			nUnusedClusters++
		}

		neighboringClusters[0] = unusedClusters[nUnusedClusters-1]
		nNeighboringClusters := 1
		weights := net.EdgeWeights(j)
		for k, neighbor := range net.Neighbors(j) {
			cluster := c.Cluster(neighbor)
			if edgeWeightPerCluster[cluster] == 0 {
				neighboringClusters[nNeighboringClusters] = cluster
				nNeighboringClusters++
			}
			edgeWeightPerCluster[cluster] += weights[k]
		}

		bestCluster := currentCluster
		maxQualityIncrement := edgeWeightPerCluster[currentCluster] -
			net.NodeWeight(j)*clusterWeights[currentCluster]*a.Resolution
		for k := 0; k < nNeighboringClusters; k++ {
			cluster := neighboringClusters[k]
			qualityIncrement := edgeWeightPerCluster[cluster] -
				net.NodeWeight(j)*clusterWeights[cluster]*a.Resolution
			if qualityIncrement > maxQualityIncrement {
				bestCluster = cluster
				maxQualityIncrement = qualityIncrement
			}
			edgeWeightPerCluster[cluster] = 0
		}

		clusterWeights[bestCluster] += net.NodeWeight(j)
		nNodesPerCluster[bestCluster]++
		if bestCluster == unusedClusters[nUnusedClusters-1] {
			nUnusedClusters--
		}

		stableNodes[j] = true
		nUnstableNodes--

		if bestCluster != currentCluster {
			c.SetCluster(j, bestCluster)

			// Re-enqueue stable neighbours left in other clusters,
			// appending at the tail of the ring.
			for _, neighbor := range net.Neighbors(j) {
				if stableNodes[neighbor] && c.Cluster(neighbor) != bestCluster {
					stableNodes[neighbor] = false
					nUnstableNodes++
					slot := i + nUnstableNodes
					if slot >= net.NNodes() {
						slot -= net.NNodes()
					}
					nodeOrder[slot] = neighbor
				}
			}
			update = true
		}

		i++
		if i == net.NNodes() {
			i = 0
		}
	}

	if update {
		c.RemoveEmptyClusters()
	}
	return update
}
