package algorithms

import (
	"github.com/dd0wney/cluso-netmap/pkg/clustering"
	"github.com/dd0wney/cluso-netmap/pkg/network"
	"github.com/dd0wney/cluso-netmap/pkg/random"
)

// StandardLocalMoving is the Louvain inner loop: it cycles through a
// random permutation of the nodes, greedily moving each node into the
// neighbouring cluster with the largest quality gain, until a full pass
// makes no move.
type StandardLocalMoving struct {
	Resolution float64

	rng *random.Generator
}

// NewStandardLocalMoving creates a standard local moving heuristic
// sharing the given random generator.
func NewStandardLocalMoving(resolution float64, rng *random.Generator) *StandardLocalMoving {
	return &StandardLocalMoving{Resolution: resolution, rng: rng}
}

// CalcQuality returns the constant Potts model quality of the clustering.
func (a *StandardLocalMoving) CalcQuality(net *network.Network, c *clustering.Clustering) float64 {
	return CPMQuality(net, c, a.Resolution)
}

// ImproveClustering runs local moving until convergence and reports
// whether the clustering changed. Empty clusters are compacted on
// return.
func (a *StandardLocalMoving) ImproveClustering(net *network.Network, c *clustering.Clustering) bool {
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

	// Stack of empty cluster ids. Pushing from high to low ids keeps
	// the smallest unused id on top, so a node can always consider
	// moving into a fresh empty cluster.
	nUnusedClusters := 0
	unusedClusters := make([]int, net.NNodes())
	for cluster := net.NNodes() - 1; cluster >= 0; cluster-- {
		if nNodesPerCluster[cluster] == 0 {
			unusedClusters[nUnusedClusters] = cluster
			nUnusedClusters++
		}
	}

	nodeOrder := a.rng.Permutation(net.NNodes())
	edgeWeightPerCluster := make([]float64, net.NNodes())
	neighboringClusters := make([]int, net.NNodes())

	nUnstableNodes := net.NNodes()
	i := 0
	for nUnstableNodes > 0 {
		j := nodeOrder[i]
		currentCluster := c.Cluster(j)

		// Remove the node from its cluster; the cluster becomes a
		// move candidate through the unused stack if it empties.
		clusterWeights[currentCluster] -= net.NodeWeight(j)
		nNodesPerCluster[currentCluster]--
		if nNodesPerCluster[currentCluster] == 0 {
			unusedClusters[nUnusedClusters] = currentCluster
			nUnusedClusters++
		}

		// Candidate clusters: the top unused cluster plus the clusters
		// of the node's neighbours.
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

		// The node prefers its old cluster on ties.
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

		nUnstableNodes--
		if bestCluster != currentCluster {
			c.SetCluster(j, bestCluster)
			nUnstableNodes = net.NNodes()
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
