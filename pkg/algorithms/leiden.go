package algorithms

import (
	"github.com/dd0wney/cluso-netmap/pkg/clustering"
	"github.com/dd0wney/cluso-netmap/pkg/network"
	"github.com/dd0wney/cluso-netmap/pkg/random"
)

// Leiden is the three-phase multilevel clustering algorithm: fast local
// moving, per-cluster refinement through stochastic local merging, and
// aggregation over the refined clustering. Refinement may split a
// cluster but never merges across clusters, so aggregated communities
// stay well-connected.
type Leiden struct {
	Resolution  float64
	Randomness  float64
	NIterations int

	localMoving  *FastLocalMoving
	localMerging *LocalMerging
}

// NewLeiden creates a Leiden algorithm. nIterations bounds the number
// of outer iterations; zero means iterate until an iteration yields no
// improvement. One random generator is shared by the local moving and
// local merging phases.
func NewLeiden(resolution, randomness float64, nIterations int, rng *random.Generator) *Leiden {
	return &Leiden{
		Resolution:   resolution,
		Randomness:   randomness,
		NIterations:  nIterations,
		localMoving:  NewFastLocalMoving(resolution, rng),
		localMerging: NewLocalMerging(resolution, randomness, rng),
	}
}

// CalcQuality returns the constant Potts model quality of the clustering.
func (l *Leiden) CalcQuality(net *network.Network, c *clustering.Clustering) float64 {
	return CPMQuality(net, c, l.Resolution)
}

// ImproveClustering runs the configured number of outer iterations and
// reports whether the clustering changed.
func (l *Leiden) ImproveClustering(net *network.Network, c *clustering.Clustering) bool {
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

func (l *Leiden) improveOneIteration(net *network.Network, c *clustering.Clustering) bool {
	update := l.localMoving.ImproveClustering(net, c)

	if c.NClusters() == net.NNodes() {
		return update
	}

	refinement, nClustersPerSubnetwork := l.refine(net, c)

	var reducedNetwork *network.Network
	var reducedClustering *clustering.Clustering
	if refinement.NClusters() < net.NNodes() {
		// Aggregate over the refinement and start the reduced
		// clustering from the non-refined cluster of each super-node.
		reducedNetwork = net.ReducedNetwork(refinement)

		initial := make([]int, reducedNetwork.NNodes())
		super := 0
		for i, nClusters := range nClustersPerSubnetwork {
			for k := 0; k < nClusters; k++ {
				initial[super] = i
				super++
			}
		}
		reducedClustering = clustering.NewFromSlice(initial)

		c.CopyFrom(refinement)
	} else {
		reducedNetwork = net.ReducedNetwork(c)
		reducedClustering = clustering.NewSingleton(reducedNetwork.NNodes())
	}

	update = l.improveOneIteration(reducedNetwork, reducedClustering) || update

	c.MergeClusters(reducedClustering)
	return update
}

// refine re-clusters every cluster of c on its own subnetwork through
// local merging and returns the refinement over the full node set,
// together with the number of refined clusters per original cluster.
// The refined ids of cluster i land in a contiguous block starting at
// the running offset, so refinement may split a cluster but never
// merges nodes across clusters of c.
func (l *Leiden) refine(net *network.Network, c *clustering.Clustering) (*clustering.Clustering, []int) {
	subnetworks := net.Subnetworks(c)
	nodesPerCluster := c.NodesPerCluster()

	refinedClusters := make([]int, net.NNodes())
	nClustersPerSubnetwork := make([]int, len(subnetworks))
	offset := 0
	for i, subnetwork := range subnetworks {
		subClustering := clustering.NewSingleton(subnetwork.NNodes())
		l.localMerging.ImproveClustering(subnetwork, subClustering)

		for k, node := range nodesPerCluster[i] {
			refinedClusters[node] = offset + subClustering.Cluster(k)
		}
		nClustersPerSubnetwork[i] = subClustering.NClusters()
		offset += subClustering.NClusters()
	}
	return clustering.NewFromSlice(refinedClusters), nClustersPerSubnetwork
}
