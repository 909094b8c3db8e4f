package algorithms

import (
	"github.com/dd0wney/cluso-netmap/pkg/clustering"
	"github.com/dd0wney/cluso-netmap/pkg/network"
)

// MergeSmallClustersByNodeCount repeatedly merges the smallest cluster
// with fewer than minSize nodes into the neighbouring cluster with the
// strongest relative connection, until every cluster meets the
// threshold, or the smallest offender has no neighbour or two equally
// strong best neighbours; the loop then stops without looking at any
// other offender. Reports whether the clustering changed.
func MergeSmallClustersByNodeCount(net *network.Network, c *clustering.Clustering, minSize int) bool {
	return mergeSmallClusters(net, c, float64(minSize),
		func(reduced *network.Network, nNodes []int, cluster int) float64 {
			return float64(nNodes[cluster])
		})
}

// MergeSmallClustersByWeight is the weight-based variant: clusters
// whose total node weight is below minWeight are merged away.
func MergeSmallClustersByWeight(net *network.Network, c *clustering.Clustering, minWeight float64) bool {
	return mergeSmallClusters(net, c, minWeight,
		func(reduced *network.Network, nNodes []int, cluster int) float64 {
			return reduced.NodeWeight(cluster)
		})
}

// mergeSmallClusters runs the merge loop on the reduced network, so
// every iteration only touches clusters, not nodes. The reduced network
// is rebuilt after each merge.
func mergeSmallClusters(net *network.Network, c *clustering.Clustering, threshold float64,
	size func(reduced *network.Network, nNodes []int, cluster int) float64) bool {

	update := false
	for {
		c.RemoveEmptyClusters()
		reduced := net.ReducedNetwork(c)
		nNodesPerCluster := c.NNodesPerCluster()

		smallest := -1
		smallestSize := threshold
		for cluster := 0; cluster < reduced.NNodes(); cluster++ {
			if s := size(reduced, nNodesPerCluster, cluster); s < smallestSize {
				smallest = cluster
				smallestSize = s
			}
		}
		if smallest < 0 {
			return update
		}

		// Merge into the neighbour with the strongest connection
		// relative to its weight. An isolated offender ends the loop,
		// and so does a tie between two equally strong neighbours: an
		// ambiguous target means no merge, so the cluster stays.
		target := -1
		best := 0.0
		tied := false
		weights := reduced.EdgeWeights(smallest)
		for i, neighbor := range reduced.Neighbors(smallest) {
			score := weights[i] / reduced.NodeWeight(neighbor)
			if score > best {
				best = score
				target = neighbor
				tied = false
			} else if score == best && target >= 0 {
				tied = true
			}
		}
		if target < 0 || tied {
			return update
		}

		outer := clustering.NewSingleton(reduced.NNodes())
		outer.SetCluster(smallest, target)
		outer.RemoveEmptyClusters()
		c.MergeClusters(outer)
		update = true
	}
}
