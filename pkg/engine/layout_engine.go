package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-netmap/pkg/layout"
	"github.com/dd0wney/cluso-netmap/pkg/logging"
	"github.com/dd0wney/cluso-netmap/pkg/metrics"
	"github.com/dd0wney/cluso-netmap/pkg/network"
	"github.com/dd0wney/cluso-netmap/pkg/random"
	"github.com/dd0wney/cluso-netmap/pkg/visualization"
)

// defaultEdgeWeightIncrement is used when the attached network is
// disconnected, so all components attract weakly instead of drifting
// apart.
const defaultEdgeWeightIncrement = 0.01

// LayoutResult describes the best layout found by a run.
type LayoutResult struct {
	RunID           string
	QualityFunction LayoutQualityFunction
	Layout          *layout.Layout
	Quality         float64
	QualityPerStart []float64
	Duration        time.Duration
}

// LayoutEngine runs multi-random-start gradient descent on an attached
// network and keeps the layout with minimum quality, standardised.
type LayoutEngine struct {
	config  LayoutConfig
	network *network.Network
	logger  logging.Logger
	metrics *metrics.Registry
}

// NewLayoutEngine creates a layout engine with a validated
// configuration. A nil logger disables logging; a nil registry creates
// a private one.
func NewLayoutEngine(config LayoutConfig, logger logging.Logger, registry *metrics.Registry) (*LayoutEngine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if registry == nil {
		registry = metrics.NewRegistry()
	}

	return &LayoutEngine{
		config:  config,
		logger:  logger.With(logging.Component("layout_engine")),
		metrics: registry,
	}, nil
}

// SetNetwork attaches the network to lay out.
func (e *LayoutEngine) SetNetwork(n *network.Network) {
	e.network = n
	e.metrics.SetNetwork(n.NNodes(), n.NEdges())
}

// Run computes a standardised layout of the attached network.
func (e *LayoutEngine) Run() (*LayoutResult, error) {
	if e.network == nil {
		return nil, ErrNotInitialized
	}

	runID := uuid.NewString()
	logger := e.logger.With(logging.RunID(runID))
	start := time.Now()

	attraction, repulsion := e.config.Exponents()

	// A disconnected network needs a weak attraction between all node
	// pairs to keep its components together.
	increment := e.config.EdgeWeightIncrement
	if increment == 0 && e.network.Components().NClusters() > 1 {
		increment = defaultEdgeWeightIncrement
		logger.Info("network is disconnected, raising edge weight increment",
			logging.Float64("edge_weight_increment", increment))
	}

	rng := random.New(e.config.Seed)
	descent, err := visualization.NewGradientDescent(visualization.GradientDescentConfig{
		Attraction:           attraction,
		Repulsion:            repulsion,
		EdgeWeightIncrement:  increment,
		MaxIterations:        e.config.MaxIterations,
		InitialStepSize:      e.config.InitialStepSize,
		MinStepSize:          e.config.MinStepSize,
		StepReduction:        e.config.StepReduction,
		RequiredImprovements: e.config.RequiredImprovements,
	}, rng)
	if err != nil {
		return nil, err
	}

	logger.Info("layout run started",
		logging.String("quality_function", string(e.config.QualityFunction)),
		logging.Int("attraction", attraction),
		logging.Int("repulsion", repulsion),
		logging.Seed(e.config.Seed),
		logging.Nodes(e.network.NNodes()),
		logging.Edges(e.network.NEdges()))

	var best *layout.Layout
	bestQuality := 0.0
	qualityPerStart := make([]float64, e.config.NRandomStarts)

	for s := 0; s < e.config.NRandomStarts; s++ {
		l := layout.NewRandom(e.network.NNodes(), rng)
		descent.ImproveLayout(e.network, l)
		quality := descent.CalcQuality(e.network, l)
		qualityPerStart[s] = quality

		logger.Debug("random start finished",
			logging.RandomStart(s),
			logging.Quality(quality))

		// The VOS quality function is minimised.
		if best == nil || quality < bestQuality {
			best = l
			bestQuality = quality
		}
	}

	best.Standardize(e.config.Dilate)

	duration := time.Since(start)
	e.metrics.RecordLayoutRun(string(e.config.QualityFunction), "ok", duration, bestQuality)
	logger.Info("layout run finished",
		logging.Quality(bestQuality),
		logging.Latency(duration))

	return &LayoutResult{
		RunID:           runID,
		QualityFunction: e.config.QualityFunction,
		Layout:          best,
		Quality:         bestQuality,
		QualityPerStart: qualityPerStart,
		Duration:        duration,
	}, nil
}
