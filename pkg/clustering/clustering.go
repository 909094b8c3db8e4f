// Package clustering provides the node-to-cluster assignment container
// shared by the community detection algorithms.
package clustering

import "sort"

// Clustering assigns each node to a cluster. Cluster ids are in
// [0, NClusters) but are not required to be dense until
// RemoveEmptyClusters is called.
type Clustering struct {
	nClusters int
	clusters  []int
}

// NewSingleton creates a clustering with every node in its own cluster.
func NewSingleton(nNodes int) *Clustering {
	clusters := make([]int, nNodes)
	for i := range clusters {
		clusters[i] = i
	}
	return &Clustering{nClusters: nNodes, clusters: clusters}
}

// NewFromSlice creates a clustering from an explicit assignment. The
// slice is copied; the cluster count is one more than the largest id.
func NewFromSlice(clusters []int) *Clustering {
	c := &Clustering{clusters: make([]int, len(clusters))}
	copy(c.clusters, clusters)
	for _, cl := range c.clusters {
		if cl >= c.nClusters {
			c.nClusters = cl + 1
		}
	}
	return c
}

// Clone returns a deep copy.
func (c *Clustering) Clone() *Clustering {
	clone := &Clustering{nClusters: c.nClusters, clusters: make([]int, len(c.clusters))}
	copy(clone.clusters, c.clusters)
	return clone
}

// CopyFrom overwrites this clustering with the contents of other.
func (c *Clustering) CopyFrom(other *Clustering) {
	c.nClusters = other.nClusters
	if len(c.clusters) != len(other.clusters) {
		c.clusters = make([]int, len(other.clusters))
	}
	copy(c.clusters, other.clusters)
}

// NNodes returns the number of nodes.
func (c *Clustering) NNodes() int {
	return len(c.clusters)
}

// NClusters returns the number of clusters.
func (c *Clustering) NClusters() int {
	return c.nClusters
}

// Cluster returns the cluster of the given node.
func (c *Clustering) Cluster(node int) int {
	return c.clusters[node]
}

// Clusters returns a copy of the full assignment.
func (c *Clustering) Clusters() []int {
	clusters := make([]int, len(c.clusters))
	copy(clusters, c.clusters)
	return clusters
}

// SetCluster moves a node into a cluster, widening the cluster count if
// the id has not been used before.
func (c *Clustering) SetCluster(node, cluster int) {
	c.clusters[node] = cluster
	if cluster >= c.nClusters {
		c.nClusters = cluster + 1
	}
}

// NNodesPerCluster returns the node count of every cluster.
func (c *Clustering) NNodesPerCluster() []int {
	counts := make([]int, c.nClusters)
	for _, cl := range c.clusters {
		counts[cl]++
	}
	return counts
}

// NodesPerCluster returns the node ids of every cluster, in increasing
// node order, using two-pass bucketing.
func (c *Clustering) NodesPerCluster() [][]int {
	counts := c.NNodesPerCluster()

	nodes := make([][]int, c.nClusters)
	for i := range nodes {
		nodes[i] = make([]int, 0, counts[i])
	}
	for node, cl := range c.clusters {
		nodes[cl] = append(nodes[cl], node)
	}
	return nodes
}

// RemoveEmptyClusters relabels clusters so that ids are dense in
// [0, NClusters) with all clusters non-empty.
func (c *Clustering) RemoveEmptyClusters() {
	counts := c.NNodesPerCluster()

	newID := make([]int, c.nClusters)
	n := 0
	for cl, count := range counts {
		if count > 0 {
			newID[cl] = n
			n++
		}
	}

	for node, cl := range c.clusters {
		c.clusters[node] = newID[cl]
	}
	c.nClusters = n
}

// OrderClustersByNNodes relabels clusters in order of decreasing node
// count. Empty clusters are dropped. The sort is stable, so equally
// sized clusters keep their relative order.
func (c *Clustering) OrderClustersByNNodes() {
	counts := c.NNodesPerCluster()
	weights := make([]float64, len(counts))
	for cl, count := range counts {
		weights[cl] = float64(count)
	}
	c.orderClusters(weights)
}

// OrderClustersByWeight relabels clusters in order of decreasing total
// node weight. Clusters with zero weight are dropped.
func (c *Clustering) OrderClustersByWeight(nodeWeights []float64) {
	weights := make([]float64, c.nClusters)
	for node, cl := range c.clusters {
		weights[cl] += nodeWeights[node]
	}
	c.orderClusters(weights)
}

func (c *Clustering) orderClusters(weights []float64) {
	order := make([]int, c.nClusters)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return weights[order[i]] > weights[order[j]]
	})

	// Every cluster gets its sorted position as its new id; only the
	// clusters with positive weight count towards the cluster total.
	newID := make([]int, c.nClusters)
	n := 0
	for position, cl := range order {
		newID[cl] = position
		if weights[cl] > 0 {
			n++
		}
	}

	for node, cl := range c.clusters {
		c.clusters[node] = newID[cl]
	}
	c.nClusters = n
}

// MergeClusters composes this clustering with a clustering of its own
// clusters: node i moves to outer.Cluster(c.Cluster(i)).
func (c *Clustering) MergeClusters(outer *Clustering) {
	for node, cl := range c.clusters {
		c.clusters[node] = outer.Cluster(cl)
	}
	c.nClusters = outer.NClusters()
}
