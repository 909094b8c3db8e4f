package network

import "github.com/dd0wney/cluso-netmap/pkg/clustering"

// SubnetworkForNodes returns the subgraph induced by the given nodes,
// with ids relabelled to 0..len(nodes). The nodes should be in
// increasing order so the relabelled adjacency stays sorted.
func (n *Network) SubnetworkForNodes(nodes []int) *Network {
	reverse := make([]int, n.nNodes)
	for i := range reverse {
		reverse[i] = -1
	}
	for i, node := range nodes {
		reverse[node] = i
	}

	sub := &Network{
		nNodes:               len(nodes),
		nodeWeights:          make([]float64, len(nodes)),
		firstNeighborIndices: make([]int, len(nodes)+1),
		neighbors:            make([]int, 0),
		edgeWeights:          make([]float64, 0),
	}

	for i, node := range nodes {
		sub.nodeWeights[i] = n.nodeWeights[node]
		for j := n.firstNeighborIndices[node]; j < n.firstNeighborIndices[node+1]; j++ {
			if reverse[n.neighbors[j]] >= 0 {
				sub.neighbors = append(sub.neighbors, reverse[n.neighbors[j]])
				sub.edgeWeights = append(sub.edgeWeights, n.edgeWeights[j])
			}
		}
		sub.firstNeighborIndices[i+1] = len(sub.neighbors)
	}
	sub.nEdges = len(sub.neighbors)

	return sub
}

// Subnetworks returns the induced subgraph of every cluster. Scratch
// arrays are allocated once and shared across clusters to avoid
// per-cluster reallocation.
func (n *Network) Subnetworks(c *clustering.Clustering) []*Network {
	nodesPerCluster := c.NodesPerCluster()

	// The reverse map is reused without clearing: entries are only read
	// for neighbours in the cluster currently being extracted, and
	// clusters are disjoint.
	subnetworkNodes := make([]int, n.nNodes)
	subnetworkNeighbors := make([]int, n.nEdges)
	subnetworkEdgeWeights := make([]float64, n.nEdges)

	subnetworks := make([]*Network, c.NClusters())
	for cluster := range subnetworks {
		subnetworks[cluster] = n.subnetwork(c, cluster, nodesPerCluster[cluster],
			subnetworkNodes, subnetworkNeighbors, subnetworkEdgeWeights)
	}
	return subnetworks
}

// subnetwork extracts one cluster's induced subgraph using the shared
// scratch arrays.
func (n *Network) subnetwork(c *clustering.Clustering, cluster int, nodes []int,
	subnetworkNodes, subnetworkNeighbors []int, subnetworkEdgeWeights []float64) *Network {

	sub := &Network{
		nNodes:               len(nodes),
		nodeWeights:          make([]float64, len(nodes)),
		firstNeighborIndices: make([]int, len(nodes)+1),
	}

	if len(nodes) == 1 {
		// A single-node cluster has an empty adjacency.
		sub.nodeWeights[0] = n.nodeWeights[nodes[0]]
		sub.neighbors = make([]int, 0)
		sub.edgeWeights = make([]float64, 0)
		return sub
	}

	for i, node := range nodes {
		subnetworkNodes[node] = i
	}

	count := 0
	for i, node := range nodes {
		sub.nodeWeights[i] = n.nodeWeights[node]
		for j := n.firstNeighborIndices[node]; j < n.firstNeighborIndices[node+1]; j++ {
			if c.Cluster(n.neighbors[j]) == cluster {
				subnetworkNeighbors[count] = subnetworkNodes[n.neighbors[j]]
				subnetworkEdgeWeights[count] = n.edgeWeights[j]
				count++
			}
		}
		sub.firstNeighborIndices[i+1] = count
	}

	sub.nEdges = count
	sub.neighbors = make([]int, count)
	sub.edgeWeights = make([]float64, count)
	copy(sub.neighbors, subnetworkNeighbors[:count])
	copy(sub.edgeWeights, subnetworkEdgeWeights[:count])

	return sub
}
