package network

import (
	"sort"

	"github.com/dd0wney/cluso-netmap/pkg/clustering"
)

// ReducedNetwork returns the quotient graph of the clustering: one
// super-node per cluster whose weight is the sum of its member weights.
// Inter-cluster edge weights are summed in both directions;
// intra-cluster edge weights fold into the self-link total. Runs in
// O(nEdges) using a dense accumulator that is reset incrementally.
func (n *Network) ReducedNetwork(c *clustering.Clustering) *Network {
	nClusters := c.NClusters()
	nodesPerCluster := c.NodesPerCluster()

	reduced := &Network{
		nNodes:                   nClusters,
		nodeWeights:              make([]float64, nClusters),
		firstNeighborIndices:     make([]int, nClusters+1),
		neighbors:                make([]int, 0),
		edgeWeights:              make([]float64, 0),
		totalEdgeWeightSelfLinks: n.totalEdgeWeightSelfLinks,
	}

	weightToCluster := make([]float64, nClusters)
	neighboringClusters := make([]int, 0, nClusters)

	for cluster := 0; cluster < nClusters; cluster++ {
		neighboringClusters = neighboringClusters[:0]

		for _, node := range nodesPerCluster[cluster] {
			reduced.nodeWeights[cluster] += n.nodeWeights[node]

			for i := n.firstNeighborIndices[node]; i < n.firstNeighborIndices[node+1]; i++ {
				other := c.Cluster(n.neighbors[i])
				if other == cluster {
					// Both directions of an intra-cluster edge land
					// here, matching the doubled within-cluster count
					// the quality function uses.
					reduced.totalEdgeWeightSelfLinks += n.edgeWeights[i]
					continue
				}
				if weightToCluster[other] == 0 {
					neighboringClusters = append(neighboringClusters, other)
				}
				weightToCluster[other] += n.edgeWeights[i]
			}
		}

		sort.Ints(neighboringClusters)
		for _, other := range neighboringClusters {
			reduced.neighbors = append(reduced.neighbors, other)
			reduced.edgeWeights = append(reduced.edgeWeights, weightToCluster[other])
			weightToCluster[other] = 0
		}
		reduced.firstNeighborIndices[cluster+1] = len(reduced.neighbors)
	}

	reduced.nEdges = len(reduced.neighbors)
	return reduced
}
