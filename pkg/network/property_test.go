package network

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/cluso-netmap/pkg/clustering"
	"github.com/dd0wney/cluso-netmap/pkg/random"
)

// randomEdgeList derives a deterministic random edge list from a seed.
func randomEdgeList(seed int64, nNodes int) ([]int, []int, []float64) {
	rng := random.New(seed)
	seen := make(map[[2]int]bool)
	var u, v []int
	var w []float64

	nEdges := 1 + rng.UniformInt(3*nNodes)
	for i := 0; i < nEdges; i++ {
		a := rng.UniformInt(nNodes)
		b := rng.UniformInt(nNodes)
		if a == b {
			continue
		}
		if a > b {
			a, b = b, a
		}
		if seen[[2]int{a, b}] {
			continue
		}
		seen[[2]int{a, b}] = true
		u = append(u, a)
		v = append(v, b)
		w = append(w, 0.5+rng.Uniform())
	}

	if len(u) == 0 {
		u, v, w = []int{0}, []int{1}, []float64{1}
	}
	return u, v, w
}

// TestNetworkProperties uses property-based testing to verify the CSR
// invariants over randomly generated edge lists
func TestNetworkProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	// Property 1: every directed edge has a matching reverse edge with
	// equal weight, and the directed weight sum is twice the undirected
	// total.
	properties.Property("edges are mirrored with equal weight", prop.ForAll(
		func(seed int64, nNodes int) bool {
			u, v, w := randomEdgeList(seed, nNodes)
			n, err := FromEdges(nNodes, u, v, &EdgeListOptions{EdgeWeights: w, CheckIntegrity: true})
			if err != nil {
				return false
			}

			directedSum := 0.0
			for node := 0; node < n.NNodes(); node++ {
				weights := n.EdgeWeights(node)
				for i, neighbor := range n.Neighbors(node) {
					j, ok := n.findEdge(neighbor, node)
					if !ok || n.edgeWeights[j] != weights[i] {
						return false
					}
					directedSum += weights[i]
				}
			}
			return math.Abs(directedSum-2*n.TotalEdgeWeight()) < 1e-9
		},
		gen.Int64(),
		gen.IntRange(2, 20),
	))

	// Property 2: association-strength normalisation resets node
	// weights, so the total node weight equals the node count.
	properties.Property("association strength gives unit node weights", prop.ForAll(
		func(seed int64, nNodes int) bool {
			u, v, w := randomEdgeList(seed, nNodes)
			n, err := FromEdges(nNodes, u, v, &EdgeListOptions{EdgeWeights: w, WeightsFromEdges: true})
			if err != nil {
				return false
			}

			normalized := n.NormalizedAssociationStrength()
			return math.Abs(normalized.TotalNodeWeight()-float64(nNodes)) < 1e-9
		},
		gen.Int64(),
		gen.IntRange(2, 20),
	))

	// Property 3: reducing by the singleton clustering reproduces the
	// network up to relabelling.
	properties.Property("singleton reduction is the identity", prop.ForAll(
		func(seed int64, nNodes int) bool {
			u, v, w := randomEdgeList(seed, nNodes)
			n, err := FromEdges(nNodes, u, v, &EdgeListOptions{EdgeWeights: w})
			if err != nil {
				return false
			}

			reduced := n.ReducedNetwork(clustering.NewSingleton(nNodes))
			if reduced.NNodes() != n.NNodes() || reduced.NEdges() != n.NEdges() {
				return false
			}
			for node := 0; node < n.NNodes(); node++ {
				a, b := n.Neighbors(node), reduced.Neighbors(node)
				for i := range a {
					if a[i] != b[i] || n.EdgeWeights(node)[i] != reduced.EdgeWeights(node)[i] {
						return false
					}
				}
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(2, 20),
	))

	// Property 4: component labels are dense and every edge stays
	// inside one component.
	properties.Property("components partition the network", prop.ForAll(
		func(seed int64, nNodes int) bool {
			u, v, w := randomEdgeList(seed, nNodes)
			n, err := FromEdges(nNodes, u, v, &EdgeListOptions{EdgeWeights: w})
			if err != nil {
				return false
			}

			components := n.Components()
			for node := 0; node < n.NNodes(); node++ {
				for _, neighbor := range n.Neighbors(node) {
					if components.Cluster(node) != components.Cluster(neighbor) {
						return false
					}
				}
			}
			counts := components.NNodesPerCluster()
			for _, count := range counts {
				if count == 0 {
					return false
				}
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(2, 20),
	))

	properties.TestingRun(t)
}
