package algorithms

import (
	"math"

	"github.com/dd0wney/cluso-netmap/pkg/clustering"
	"github.com/dd0wney/cluso-netmap/pkg/mathutil"
	"github.com/dd0wney/cluso-netmap/pkg/network"
	"github.com/dd0wney/cluso-netmap/pkg/random"
)

// LocalMerging is the stochastic merging routine behind Leiden
// refinement. It runs on a subnetwork with a singleton clustering and
// merges well-connected singleton nodes into well-connected clusters,
// choosing among non-negative-gain candidates with probability
// proportional to exp(gain / randomness).
type LocalMerging struct {
	Resolution float64
	Randomness float64

	rng *random.Generator
}

// NewLocalMerging creates a local merging routine sharing the given
// random generator.
func NewLocalMerging(resolution, randomness float64, rng *random.Generator) *LocalMerging {
	return &LocalMerging{Resolution: resolution, Randomness: randomness, rng: rng}
}

// ImproveClustering makes a single pass over the nodes in random order
// and reports whether the singleton clustering changed. Empty clusters
// are compacted on return.
func (a *LocalMerging) ImproveClustering(net *network.Network, c *clustering.Clustering) bool {
	if net.NNodes() == 1 {
		return false
	}

	update := false
	totalNodeWeight := net.TotalNodeWeight()

	clusterWeights := net.NodeWeights()
	nonSingletonClusters := make([]bool, net.NNodes())

	// A cluster is well-connected while its external edge weight meets
	// the resolution-scaled boundary threshold. For singletons the
	// external weight starts as the node's total incident edge weight.
	externalEdgeWeightPerCluster := make([]float64, net.NNodes())
	for node := 0; node < net.NNodes(); node++ {
		externalEdgeWeightPerCluster[node] = net.TotalEdgeWeightOf(node)
	}

	nodeOrder := a.rng.Permutation(net.NNodes())
	edgeWeightPerCluster := make([]float64, net.NNodes())
	neighboringClusters := make([]int, net.NNodes())
	cumTransformedQualityIncrement := make([]float64, net.NNodes())

	for i := 0; i < net.NNodes(); i++ {
		j := nodeOrder[i]

		// Only well-connected singletons may move; a node that has
		// already absorbed another stays put.
		if nonSingletonClusters[j] {
			continue
		}
		if externalEdgeWeightPerCluster[j] <
			clusterWeights[j]*(totalNodeWeight-clusterWeights[j])*a.Resolution {
			continue
		}

		// Empty the node's own singleton; it remains candidate 0.
		clusterWeights[j] = 0
		externalEdgeWeightPerCluster[j] = 0

		neighboringClusters[0] = j
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

		bestCluster := j
		maxQualityIncrement := 0.0
		totalTransformed := 0.0
		for k := 0; k < nNeighboringClusters; k++ {
			cluster := neighboringClusters[k]
			if externalEdgeWeightPerCluster[cluster] >=
				clusterWeights[cluster]*(totalNodeWeight-clusterWeights[cluster])*a.Resolution {
				qualityIncrement := edgeWeightPerCluster[cluster] -
					net.NodeWeight(j)*clusterWeights[cluster]*a.Resolution
				if qualityIncrement > maxQualityIncrement {
					bestCluster = cluster
					maxQualityIncrement = qualityIncrement
				}
				if qualityIncrement >= 0 {
					totalTransformed += mathutil.FastExp(qualityIncrement / a.Randomness)
				}
			}
			cumTransformedQualityIncrement[k] = totalTransformed
			edgeWeightPerCluster[cluster] = 0
		}

		chosenCluster := bestCluster
		if !math.IsInf(totalTransformed, 1) {
			r := totalTransformed * a.rng.Uniform()
			idx := mathutil.BinarySearch(cumTransformedQualityIncrement, 0, nNeighboringClusters, r)
			chosenCluster = neighboringClusters[idx]
		}

		clusterWeights[chosenCluster] += net.NodeWeight(j)
		for k, neighbor := range net.Neighbors(j) {
			if c.Cluster(neighbor) == chosenCluster {
				externalEdgeWeightPerCluster[chosenCluster] -= weights[k]
			} else {
				externalEdgeWeightPerCluster[chosenCluster] += weights[k]
			}
		}

		if chosenCluster != j {
			c.SetCluster(j, chosenCluster)
			nonSingletonClusters[chosenCluster] = true
			update = true
		}
	}

	if update {
		c.RemoveEmptyClusters()
	}
	return update
}
