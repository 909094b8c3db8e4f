package network

import "sort"

// EdgeListOptions configures construction from an edge list.
type EdgeListOptions struct {
	// EdgeWeights holds one weight per edge. Nil means all edges have
	// weight 1.
	EdgeWeights []float64
	// NodeWeights holds one weight per node. Nil means all nodes have
	// weight 1 unless WeightsFromEdges is set.
	NodeWeights []float64
	// WeightsFromEdges sets each node's weight to the sum of its
	// incident edge weights, excluding self-links. Mutually exclusive
	// with NodeWeights.
	WeightsFromEdges bool
	// SortedEdges indicates the edge list already contains both
	// directions of every edge, sorted lexicographically by (u, v).
	SortedEdges bool
	// CheckIntegrity runs the full integrity check after construction.
	CheckIntegrity bool
}

// AdjacencyOptions configures construction from prebuilt CSR arrays.
type AdjacencyOptions struct {
	EdgeWeights      []float64
	NodeWeights      []float64
	WeightsFromEdges bool
	CheckIntegrity   bool
}

// FromEdges builds a Network from an edge list given as parallel u/v
// slices. Unless SortedEdges is set, the list holds each undirected
// edge once in either direction; the builder symmetrises and sorts it.
// Self-links accumulate into the self-link total and are not stored in
// the adjacency.
func FromEdges(nNodes int, u, v []int, opts *EdgeListOptions) (*Network, error) {
	if opts == nil {
		opts = &EdgeListOptions{}
	}
	if nNodes <= 0 {
		return nil, invalidf("number of nodes must be positive, got %d", nNodes)
	}
	if len(u) != len(v) {
		return nil, invalidf("edge endpoint slices have different lengths (%d and %d)", len(u), len(v))
	}
	if opts.EdgeWeights != nil && len(opts.EdgeWeights) != len(u) {
		return nil, invalidf("expected %d edge weights, got %d", len(u), len(opts.EdgeWeights))
	}
	if opts.NodeWeights != nil && opts.WeightsFromEdges {
		return nil, invalidf("NodeWeights and WeightsFromEdges are mutually exclusive")
	}
	if opts.NodeWeights != nil && len(opts.NodeWeights) != nNodes {
		return nil, invalidf("expected %d node weights, got %d", nNodes, len(opts.NodeWeights))
	}

	for i := range u {
		if u[i] < 0 || u[i] >= nNodes || v[i] < 0 || v[i] >= nNodes {
			return nil, invalidf("edge %d endpoints (%d, %d) outside [0, %d)", i, u[i], v[i], nNodes)
		}
	}

	weights := opts.EdgeWeights
	if weights == nil {
		weights = make([]float64, len(u))
		for i := range weights {
			weights[i] = 1
		}
	}

	su, sv, sw := u, v, weights
	if !opts.SortedEdges {
		su, sv, sw = symmetrizeAndSort(u, v, weights)
	}

	n := &Network{nNodes: nNodes}
	n.firstNeighborIndices = make([]int, nNodes+1)
	n.neighbors = make([]int, 0, len(su))
	n.edgeWeights = make([]float64, 0, len(su))

	// Stream the sorted edges into CSR form, folding self-links into
	// the scalar total.
	node := 0
	for i := range su {
		if su[i] == sv[i] {
			n.totalEdgeWeightSelfLinks += sw[i]
			continue
		}
		for node < su[i] {
			node++
			n.firstNeighborIndices[node] = len(n.neighbors)
		}
		n.neighbors = append(n.neighbors, sv[i])
		n.edgeWeights = append(n.edgeWeights, sw[i])
	}
	for node < nNodes {
		node++
		n.firstNeighborIndices[node] = len(n.neighbors)
	}
	n.nEdges = len(n.neighbors)

	n.setNodeWeights(opts.NodeWeights, opts.WeightsFromEdges)

	if opts.CheckIntegrity {
		if err := n.checkIntegrity(); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// FromAdjacency builds a Network from prebuilt CSR arrays. The arrays
// are copied.
func FromAdjacency(nNodes int, firstNeighborIndices, neighbors []int, opts *AdjacencyOptions) (*Network, error) {
	if opts == nil {
		opts = &AdjacencyOptions{}
	}
	if nNodes <= 0 {
		return nil, invalidf("number of nodes must be positive, got %d", nNodes)
	}
	if len(firstNeighborIndices) != nNodes+1 {
		return nil, invalidf("expected %d neighbour offsets, got %d", nNodes+1, len(firstNeighborIndices))
	}
	if opts.EdgeWeights != nil && len(opts.EdgeWeights) != len(neighbors) {
		return nil, invalidf("expected %d edge weights, got %d", len(neighbors), len(opts.EdgeWeights))
	}
	if opts.NodeWeights != nil && opts.WeightsFromEdges {
		return nil, invalidf("NodeWeights and WeightsFromEdges are mutually exclusive")
	}
	if opts.NodeWeights != nil && len(opts.NodeWeights) != nNodes {
		return nil, invalidf("expected %d node weights, got %d", nNodes, len(opts.NodeWeights))
	}

	n := &Network{
		nNodes:               nNodes,
		nEdges:               len(neighbors),
		firstNeighborIndices: make([]int, nNodes+1),
		neighbors:            make([]int, len(neighbors)),
	}
	copy(n.firstNeighborIndices, firstNeighborIndices)
	copy(n.neighbors, neighbors)

	n.edgeWeights = make([]float64, len(neighbors))
	if opts.EdgeWeights != nil {
		copy(n.edgeWeights, opts.EdgeWeights)
	} else {
		for i := range n.edgeWeights {
			n.edgeWeights[i] = 1
		}
	}

	n.setNodeWeights(opts.NodeWeights, opts.WeightsFromEdges)

	if opts.CheckIntegrity {
		if err := n.checkIntegrity(); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// setNodeWeights fills the node weight array from the given weights,
// from incident edge weights, or with unit weights.
func (n *Network) setNodeWeights(nodeWeights []float64, fromEdges bool) {
	n.nodeWeights = make([]float64, n.nNodes)
	switch {
	case fromEdges:
		for node := range n.nodeWeights {
			n.nodeWeights[node] = n.TotalEdgeWeightOf(node)
		}
	case nodeWeights != nil:
		copy(n.nodeWeights, nodeWeights)
	default:
		for node := range n.nodeWeights {
			n.nodeWeights[node] = 1
		}
	}
}

// symmetrizeAndSort doubles every non-self edge into both directions
// and sorts the result lexicographically by (u, v). Self-links are kept
// once; the CSR streaming step folds them into the scalar total.
func symmetrizeAndSort(u, v []int, weights []float64) ([]int, []int, []float64) {
	su := make([]int, 0, 2*len(u))
	sv := make([]int, 0, 2*len(u))
	sw := make([]float64, 0, 2*len(u))

	for i := range u {
		su = append(su, u[i])
		sv = append(sv, v[i])
		sw = append(sw, weights[i])
		if u[i] != v[i] {
			su = append(su, v[i])
			sv = append(sv, u[i])
			sw = append(sw, weights[i])
		}
	}

	sort.Sort(&edgeSorter{u: su, v: sv, w: sw})
	return su, sv, sw
}

// edgeSorter sorts parallel edge arrays lexicographically by (u, v).
type edgeSorter struct {
	u, v []int
	w    []float64
}

func (s *edgeSorter) Len() int { return len(s.u) }

func (s *edgeSorter) Less(i, j int) bool {
	if s.u[i] != s.u[j] {
		return s.u[i] < s.u[j]
	}
	return s.v[i] < s.v[j]
}

func (s *edgeSorter) Swap(i, j int) {
	s.u[i], s.u[j] = s.u[j], s.u[i]
	s.v[i], s.v[j] = s.v[j], s.v[i]
	s.w[i], s.w[j] = s.w[j], s.w[i]
}

// checkIntegrity validates every structural invariant of the CSR form.
func (n *Network) checkIntegrity() error {
	if len(n.firstNeighborIndices) != n.nNodes+1 {
		return invalidf("expected %d neighbour offsets, got %d", n.nNodes+1, len(n.firstNeighborIndices))
	}
	if n.firstNeighborIndices[0] != 0 {
		return invalidf("first neighbour offset must be 0, got %d", n.firstNeighborIndices[0])
	}
	if n.firstNeighborIndices[n.nNodes] != n.nEdges {
		return invalidf("last neighbour offset must equal %d, got %d", n.nEdges, n.firstNeighborIndices[n.nNodes])
	}
	if len(n.neighbors) != n.nEdges || len(n.edgeWeights) != n.nEdges {
		return invalidf("adjacency arrays have lengths %d and %d, expected %d",
			len(n.neighbors), len(n.edgeWeights), n.nEdges)
	}

	for node := 0; node < n.nNodes; node++ {
		if n.firstNeighborIndices[node] > n.firstNeighborIndices[node+1] {
			return invalidf("neighbour offsets decrease at node %d", node)
		}

		prev := -1
		for i := n.firstNeighborIndices[node]; i < n.firstNeighborIndices[node+1]; i++ {
			neighbor := n.neighbors[i]
			if neighbor < 0 || neighbor >= n.nNodes {
				return invalidf("node %d has neighbour %d outside [0, %d)", node, neighbor, n.nNodes)
			}
			if neighbor == node {
				return invalidf("node %d has a self-loop in the adjacency", node)
			}
			if neighbor <= prev {
				return invalidf("neighbours of node %d are not sorted strictly increasing", node)
			}
			prev = neighbor
		}
	}

	// Every directed edge must have a mirror with the same weight.
	for node := 0; node < n.nNodes; node++ {
		for i := n.firstNeighborIndices[node]; i < n.firstNeighborIndices[node+1]; i++ {
			neighbor := n.neighbors[i]
			j, ok := n.findEdge(neighbor, node)
			if !ok {
				return invalidf("edge (%d, %d) has no reverse edge", node, neighbor)
			}
			if n.edgeWeights[j] != n.edgeWeights[i] {
				return invalidf("edge (%d, %d) has asymmetric weight (%v vs %v)",
					node, neighbor, n.edgeWeights[i], n.edgeWeights[j])
			}
		}
	}
	return nil
}

// findEdge binary-searches for the edge (from, to) and returns its
// index in the adjacency arrays.
func (n *Network) findEdge(from, to int) (int, bool) {
	lo, hi := n.firstNeighborIndices[from], n.firstNeighborIndices[from+1]
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case n.neighbors[mid] == to:
			return mid, true
		case n.neighbors[mid] < to:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0, false
}
