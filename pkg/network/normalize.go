package network

// shareTopology returns a new Network reusing this network's CSR
// topology with fresh edge weights, unit node weights and no
// self-links.
func (n *Network) shareTopology(edgeWeights []float64) *Network {
	nodeWeights := make([]float64, n.nNodes)
	for i := range nodeWeights {
		nodeWeights[i] = 1
	}

	return &Network{
		nNodes:                   n.nNodes,
		nEdges:                   n.nEdges,
		nodeWeights:              nodeWeights,
		firstNeighborIndices:     n.firstNeighborIndices,
		neighbors:                n.neighbors,
		edgeWeights:              edgeWeights,
		totalEdgeWeightSelfLinks: 0,
	}
}

// NormalizedAssociationStrength returns a network whose edge weights
// are divided by the weight expected under a configuration model:
// w' = w / (n_u * n_v / T) with T the total node weight. Node weights
// are reset to 1 and the self-link total to 0.
func (n *Network) NormalizedAssociationStrength() *Network {
	totalNodeWeight := n.TotalNodeWeight()

	edgeWeights := make([]float64, n.nEdges)
	for node := 0; node < n.nNodes; node++ {
		for i := n.firstNeighborIndices[node]; i < n.firstNeighborIndices[node+1]; i++ {
			expected := n.nodeWeights[node] * n.nodeWeights[n.neighbors[i]] / totalNodeWeight
			edgeWeights[i] = n.edgeWeights[i] / expected
		}
	}
	return n.shareTopology(edgeWeights)
}

// NormalizedFractionalization returns a network whose edge weights are
// scaled by the mean of N/n_u and N/n_v, with N the number of nodes.
// Node weights are reset to 1 and the self-link total to 0.
func (n *Network) NormalizedFractionalization() *Network {
	nNodes := float64(n.nNodes)

	edgeWeights := make([]float64, n.nEdges)
	for node := 0; node < n.nNodes; node++ {
		for i := n.firstNeighborIndices[node]; i < n.firstNeighborIndices[node+1]; i++ {
			scale := (nNodes/n.nodeWeights[node] + nNodes/n.nodeWeights[n.neighbors[i]]) / 2
			edgeWeights[i] = n.edgeWeights[i] * scale
		}
	}
	return n.shareTopology(edgeWeights)
}

// NormalizedNone returns a network with unchanged edge weights and node
// weights reset to 1.
func (n *Network) NormalizedNone() *Network {
	edgeWeights := make([]float64, n.nEdges)
	copy(edgeWeights, n.edgeWeights)

	normalized := n.shareTopology(edgeWeights)
	normalized.totalEdgeWeightSelfLinks = n.totalEdgeWeightSelfLinks
	return normalized
}
