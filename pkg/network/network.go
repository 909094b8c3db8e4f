// Package network provides the immutable compressed-sparse-row graph
// representation used by the clustering and layout algorithms, together
// with its normalisations, pruning, subnetwork extraction, cluster
// reduction and connected-component labelling.
package network

// Network is an undirected weighted graph in compressed-sparse-row
// form. Each undirected edge is stored twice, once per direction, with
// neighbours sorted in increasing order within a node's slice.
// Self-links are not stored in the adjacency; their total weight is
// kept as a scalar. A Network is immutable after construction: all
// transforms return a new Network.
type Network struct {
	nNodes                   int
	nEdges                   int // directed count; each undirected edge counted twice
	nodeWeights              []float64
	firstNeighborIndices     []int
	neighbors                []int
	edgeWeights              []float64
	totalEdgeWeightSelfLinks float64
}

// NNodes returns the number of nodes.
func (n *Network) NNodes() int {
	return n.nNodes
}

// NEdges returns the number of undirected edges.
func (n *Network) NEdges() int {
	return n.nEdges / 2
}

// Degree returns the number of neighbours of a node.
func (n *Network) Degree(node int) int {
	return n.firstNeighborIndices[node+1] - n.firstNeighborIndices[node]
}

// NodeWeight returns the weight of a node.
func (n *Network) NodeWeight(node int) float64 {
	return n.nodeWeights[node]
}

// NodeWeights returns a copy of all node weights.
func (n *Network) NodeWeights() []float64 {
	weights := make([]float64, n.nNodes)
	copy(weights, n.nodeWeights)
	return weights
}

// Neighbors returns the neighbours of a node as a view into the CSR
// arrays. The returned slice must not be modified.
func (n *Network) Neighbors(node int) []int {
	return n.neighbors[n.firstNeighborIndices[node]:n.firstNeighborIndices[node+1]]
}

// EdgeWeights returns the edge weights of a node's incident edges, in
// the same order as Neighbors. The returned slice must not be modified.
func (n *Network) EdgeWeights(node int) []float64 {
	return n.edgeWeights[n.firstNeighborIndices[node]:n.firstNeighborIndices[node+1]]
}

// TotalEdgeWeight returns the total weight of all undirected edges,
// excluding self-links.
func (n *Network) TotalEdgeWeight() float64 {
	total := 0.0
	for _, w := range n.edgeWeights {
		total += w
	}
	return total / 2
}

// TotalEdgeWeightOf returns the total weight of the edges incident to a
// node, excluding self-links.
func (n *Network) TotalEdgeWeightOf(node int) float64 {
	total := 0.0
	for _, w := range n.EdgeWeights(node) {
		total += w
	}
	return total
}

// TotalNodeWeight returns the sum of all node weights.
func (n *Network) TotalNodeWeight() float64 {
	total := 0.0
	for _, w := range n.nodeWeights {
		total += w
	}
	return total
}

// TotalEdgeWeightSelfLinks returns the total weight of all self-links.
func (n *Network) TotalEdgeWeightSelfLinks() float64 {
	return n.totalEdgeWeightSelfLinks
}

// WithNodeWeightsFromEdges returns a copy of the network whose node
// weights equal each node's total incident edge weight. Used to rewrite
// modularity optimisation as constant Potts model optimisation.
func (n *Network) WithNodeWeightsFromEdges() *Network {
	weights := make([]float64, n.nNodes)
	for node := range weights {
		weights[node] = n.TotalEdgeWeightOf(node)
	}

	return &Network{
		nNodes:                   n.nNodes,
		nEdges:                   n.nEdges,
		nodeWeights:              weights,
		firstNeighborIndices:     n.firstNeighborIndices,
		neighbors:                n.neighbors,
		edgeWeights:              n.edgeWeights,
		totalEdgeWeightSelfLinks: n.totalEdgeWeightSelfLinks,
	}
}
