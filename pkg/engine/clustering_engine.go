package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-netmap/pkg/algorithms"
	"github.com/dd0wney/cluso-netmap/pkg/clustering"
	"github.com/dd0wney/cluso-netmap/pkg/logging"
	"github.com/dd0wney/cluso-netmap/pkg/metrics"
	"github.com/dd0wney/cluso-netmap/pkg/network"
	"github.com/dd0wney/cluso-netmap/pkg/random"
)

// clusteringAlgorithm is the surface the drivers require from Leiden
// and Louvain.
type clusteringAlgorithm interface {
	ImproveClustering(net *network.Network, c *clustering.Clustering) bool
	CalcQuality(net *network.Network, c *clustering.Clustering) float64
}

// ClusteringResult describes the best clustering found by a run.
type ClusteringResult struct {
	RunID           string
	Algorithm       Algorithm
	Clustering      *clustering.Clustering
	Quality         float64
	NClusters       int
	QualityPerStart []float64
	Duration        time.Duration
}

// ClusteringEngine runs multi-random-start community detection on an
// attached network and keeps the clustering with maximum quality.
type ClusteringEngine struct {
	config  ClusteringConfig
	network *network.Network
	logger  logging.Logger
	metrics *metrics.Registry
}

// NewClusteringEngine creates a clustering engine with a validated
// configuration. A nil logger disables logging; a nil registry creates
// a private one.
func NewClusteringEngine(config ClusteringConfig, logger logging.Logger, registry *metrics.Registry) (*ClusteringEngine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if registry == nil {
		registry = metrics.NewRegistry()
	}

	return &ClusteringEngine{
		config:  config,
		logger:  logger.With(logging.Component("clustering_engine")),
		metrics: registry,
	}, nil
}

// SetNetwork attaches the network to cluster.
func (e *ClusteringEngine) SetNetwork(n *network.Network) {
	e.network = n
	e.metrics.SetNetwork(n.NNodes(), n.NEdges())
}

// Run clusters the attached network starting every random start from a
// singleton clustering.
func (e *ClusteringEngine) Run() (*ClusteringResult, error) {
	return e.run(nil)
}

// RunWithInitial clusters the attached network starting every random
// start from a copy of the given clustering.
func (e *ClusteringEngine) RunWithInitial(initial *clustering.Clustering) (*ClusteringResult, error) {
	return e.run(initial)
}

func (e *ClusteringEngine) run(initial *clustering.Clustering) (*ClusteringResult, error) {
	if e.network == nil {
		return nil, ErrNotInitialized
	}

	runID := uuid.NewString()
	logger := e.logger.With(logging.RunID(runID))
	start := time.Now()

	net, resolution, source := e.prepareNetwork()
	e.metrics.RecordNetworkBuild(source, "ok")

	rng := random.New(e.config.Seed)
	var algorithm clusteringAlgorithm
	if e.config.Algorithm == AlgorithmLouvain {
		algorithm = algorithms.NewLouvain(resolution, e.config.NIterations, rng)
	} else {
		algorithm = algorithms.NewLeiden(resolution, e.config.Randomness, e.config.NIterations, rng)
	}

	logger.Info("clustering run started",
		logging.String("algorithm", string(e.config.Algorithm)),
		logging.String("quality_function", string(e.config.QualityFunction)),
		logging.Float64("resolution", e.config.Resolution),
		logging.Seed(e.config.Seed),
		logging.Nodes(net.NNodes()),
		logging.Edges(net.NEdges()))

	var best *clustering.Clustering
	bestQuality := 0.0
	qualityPerStart := make([]float64, e.config.NRandomStarts)

	for s := 0; s < e.config.NRandomStarts; s++ {
		var c *clustering.Clustering
		if initial != nil {
			c = initial.Clone()
		} else {
			c = clustering.NewSingleton(net.NNodes())
		}

		algorithm.ImproveClustering(net, c)
		quality := algorithm.CalcQuality(net, c)
		qualityPerStart[s] = quality

		logger.Debug("random start finished",
			logging.RandomStart(s),
			logging.Quality(quality),
			logging.Clusters(c.NClusters()))

		if best == nil || quality > bestQuality {
			best = c
			bestQuality = quality
		}
	}

	best.OrderClustersByNNodes()
	if e.config.MinClusterSize > 1 {
		algorithms.MergeSmallClustersByNodeCount(net, best, e.config.MinClusterSize)
		best.OrderClustersByNNodes()
	}

	duration := time.Since(start)
	e.metrics.RecordClusteringRun(string(e.config.Algorithm), "ok", duration, bestQuality, best.NClusters())
	logger.Info("clustering run finished",
		logging.Quality(bestQuality),
		logging.Clusters(best.NClusters()),
		logging.Latency(duration))

	return &ClusteringResult{
		RunID:           runID,
		Algorithm:       e.config.Algorithm,
		Clustering:      best,
		Quality:         bestQuality,
		NClusters:       best.NClusters(),
		QualityPerStart: qualityPerStart,
		Duration:        duration,
	}, nil
}

// prepareNetwork applies the quality-function rewrite and the
// configured normalisation, and returns the network the optimiser runs
// on together with the effective resolution and a label for the build
// metrics. Modularity is constant Potts model optimisation after node
// weights become incident edge weights and the resolution is divided
// by 2W + S.
func (e *ClusteringEngine) prepareNetwork() (*network.Network, float64, string) {
	if e.config.QualityFunction == QualityModularity {
		net := e.network.WithNodeWeightsFromEdges()
		scale := 2*net.TotalEdgeWeight() + net.TotalEdgeWeightSelfLinks()
		return net, e.config.Resolution / scale, "modularity_rewrite"
	}

	switch e.config.Normalization {
	case NormalizationAssociationStrength:
		return e.network.NormalizedAssociationStrength(), e.config.Resolution, string(NormalizationAssociationStrength)
	case NormalizationFractionalization:
		return e.network.NormalizedFractionalization(), e.config.Resolution, string(NormalizationFractionalization)
	default:
		return e.network, e.config.Resolution, string(NormalizationNone)
	}
}
