package network

import (
	"sort"

	"github.com/dd0wney/cluso-netmap/pkg/random"
)

// Pruned returns a network keeping at most maxEdges undirected edges,
// those with the largest weights. Ties at the threshold weight are
// broken by a per-pair pseudorandom number drawn from a pre-materialised
// nNodes² table, so tie-breaking is symmetric in (u, v) and reproducible
// under a fixed seed. The table makes this routine suitable for small
// networks only.
func (n *Network) Pruned(maxEdges int, rng *random.Generator) *Network {
	if 2*maxEdges >= n.nEdges {
		return n
	}

	sorted := make([]float64, n.nEdges)
	copy(sorted, n.edgeWeights)
	sort.Float64s(sorted)

	// Threshold weight at the cut rank. Edges strictly above it are
	// kept; edges at it go through tie-breaking.
	threshold := sorted[n.nEdges-2*maxEdges-1]

	nAbove := 0
	for i := n.nEdges - 1; i >= 0 && sorted[i] > threshold; i-- {
		nAbove++
	}
	nPairsAtThresholdToKeep := (2*maxEdges - nAbove) / 2

	// Pre-materialise the full pair table so the stream consumed is
	// independent of which pairs are at the threshold.
	randomNumbers := make([]float64, n.nNodes*n.nNodes)
	for i := range randomNumbers {
		randomNumbers[i] = rng.Uniform()
	}
	pairRandom := func(u, v int) float64 {
		if u > v {
			u, v = v, u
		}
		return randomNumbers[u*n.nNodes+v]
	}

	// Rank the random numbers of the pairs at the threshold weight.
	atThreshold := make([]float64, 0)
	for node := 0; node < n.nNodes; node++ {
		for i := n.firstNeighborIndices[node]; i < n.firstNeighborIndices[node+1]; i++ {
			if n.neighbors[i] > node && n.edgeWeights[i] == threshold {
				atThreshold = append(atThreshold, pairRandom(node, n.neighbors[i]))
			}
		}
	}
	sort.Float64s(atThreshold)

	keep := func(node, neighbor int, weight float64) bool {
		if weight > threshold {
			return true
		}
		if weight < threshold || nPairsAtThresholdToKeep == 0 {
			return false
		}
		return pairRandom(node, neighbor) >= atThreshold[len(atThreshold)-nPairsAtThresholdToKeep]
	}

	pruned := &Network{
		nNodes:                   n.nNodes,
		nodeWeights:              make([]float64, n.nNodes),
		firstNeighborIndices:     make([]int, n.nNodes+1),
		neighbors:                make([]int, 0, 2*maxEdges),
		edgeWeights:              make([]float64, 0, 2*maxEdges),
		totalEdgeWeightSelfLinks: n.totalEdgeWeightSelfLinks,
	}
	copy(pruned.nodeWeights, n.nodeWeights)

	for node := 0; node < n.nNodes; node++ {
		for i := n.firstNeighborIndices[node]; i < n.firstNeighborIndices[node+1]; i++ {
			if keep(node, n.neighbors[i], n.edgeWeights[i]) {
				pruned.neighbors = append(pruned.neighbors, n.neighbors[i])
				pruned.edgeWeights = append(pruned.edgeWeights, n.edgeWeights[i])
			}
		}
		pruned.firstNeighborIndices[node+1] = len(pruned.neighbors)
	}
	pruned.nEdges = len(pruned.neighbors)

	return pruned
}
