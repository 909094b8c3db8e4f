package algorithms

import (
	"github.com/dd0wney/cluso-netmap/pkg/clustering"
	"github.com/dd0wney/cluso-netmap/pkg/network"
	"github.com/dd0wney/cluso-netmap/pkg/random"
)

// Louvain is the two-phase multilevel clustering algorithm: local
// moving followed by aggregation, applied recursively to the reduced
// network.
type Louvain struct {
	Resolution  float64
	NIterations int

	localMoving *StandardLocalMoving
}

// NewLouvain creates a Louvain algorithm. nIterations bounds the
// number of outer iterations; zero means iterate until an iteration
// yields no improvement. The random generator is shared with the inner
// local moving heuristic, so recursion order affects the stream
// consumed at each level.
func NewLouvain(resolution float64, nIterations int, rng *random.Generator) *Louvain {
	return &Louvain{
		Resolution:  resolution,
		NIterations: nIterations,
		localMoving: NewStandardLocalMoving(resolution, rng),
	}
}

// CalcQuality returns the constant Potts model quality of the clustering.
func (l *Louvain) CalcQuality(net *network.Network, c *clustering.Clustering) float64 {
	return CPMQuality(net, c, l.Resolution)
}

// ImproveClustering runs the configured number of outer iterations and
// reports whether the clustering changed.
func (l *Louvain) ImproveClustering(net *network.Network, c *clustering.Clustering) bool {
	update := false
	if l.NIterations > 0 {
		for i := 0; i < l.NIterations; i++ {
			update = l.improveOneIteration(net, c) || update
		}
		return update
	}

	for l.improveOneIteration(net, c) {
		update = true
	}
	return update
}

// improveOneIteration runs local moving and, if clusters merged,
// recurses on the reduced network and projects the result back.
func (l *Louvain) improveOneIteration(net *network.Network, c *clustering.Clustering) bool {
	update := l.localMoving.ImproveClustering(net, c)

	if c.NClusters() < net.NNodes() {
		reducedNetwork := net.ReducedNetwork(c)
		reducedClustering := clustering.NewSingleton(reducedNetwork.NNodes())

		update = l.improveOneIteration(reducedNetwork, reducedClustering) || update

		c.MergeClusters(reducedClustering)
	}
	return update
}
