package visualization

import (
	"fmt"
	"math"

	"github.com/dd0wney/cluso-netmap/pkg/layout"
	"github.com/dd0wney/cluso-netmap/pkg/mathutil"
	"github.com/dd0wney/cluso-netmap/pkg/network"
	"github.com/dd0wney/cluso-netmap/pkg/random"
)

// GradientDescentConfig configures the layout optimiser. Zero values of
// MaxIterations, InitialStepSize, MinStepSize, StepReduction and
// RequiredImprovements take the defaults applied by NewGradientDescent;
// the exponents and EdgeWeightIncrement have no defaults.
type GradientDescentConfig struct {
	Attraction           int     // attraction exponent, must exceed Repulsion
	Repulsion            int     // repulsion exponent
	EdgeWeightIncrement  float64 // weak attraction between all pairs
	MaxIterations        int
	InitialStepSize      float64
	MinStepSize          float64
	StepReduction        float64 // in (0, 1); divides the step on improvement streaks
	RequiredImprovements int     // streak length before the step grows
}

// GradientDescent minimises the VOS quality function with per-node
// normalised gradient steps and an adaptive step size.
type GradientDescent struct {
	config GradientDescentConfig
	rng    *random.Generator
}

// NewGradientDescent creates an optimiser, applying defaults and
// validating the exponents.
func NewGradientDescent(config GradientDescentConfig, rng *random.Generator) (*GradientDescent, error) {
	if config.MaxIterations == 0 {
		config.MaxIterations = 1000
	}
	if config.InitialStepSize == 0 {
		config.InitialStepSize = 1
	}
	if config.MinStepSize == 0 {
		config.MinStepSize = 0.001
	}
	if config.StepReduction == 0 {
		config.StepReduction = 0.75
	}
	if config.RequiredImprovements == 0 {
		config.RequiredImprovements = 5
	}

	if config.Attraction <= config.Repulsion {
		return nil, fmt.Errorf("%w: attraction (%d) must exceed repulsion (%d)",
			ErrInvalidParameter, config.Attraction, config.Repulsion)
	}
	if config.StepReduction <= 0 || config.StepReduction >= 1 {
		return nil, fmt.Errorf("%w: step reduction %v outside (0, 1)",
			ErrInvalidParameter, config.StepReduction)
	}
	if config.InitialStepSize <= 0 || config.MinStepSize <= 0 {
		return nil, fmt.Errorf("%w: step sizes must be positive", ErrInvalidParameter)
	}
	if config.EdgeWeightIncrement < 0 {
		return nil, fmt.Errorf("%w: edge weight increment must be non-negative", ErrInvalidParameter)
	}

	return &GradientDescent{config: config, rng: rng}, nil
}

// CalcQuality returns the VOS quality of the layout.
func (g *GradientDescent) CalcQuality(net *network.Network, l *layout.Layout) float64 {
	return VOSQuality(net, l, g.config.Attraction, g.config.Repulsion, g.config.EdgeWeightIncrement)
}

// ImproveLayout runs gradient descent sweeps until the iteration limit
// is reached or the step size shrinks below the minimum. Each sweep
// visits the nodes in a fresh random permutation and moves every node a
// fixed step against its normalised gradient; the quality driving the
// step adaptation is accumulated opportunistically during the sweep.
func (g *GradientDescent) ImproveLayout(net *network.Network, l *layout.Layout) {
	x, y := l.X(), l.Y()
	visited := make([]bool, net.NNodes())

	attraction := g.config.Attraction
	repulsion := g.config.Repulsion

	stepSize := g.config.InitialStepSize
	quality := math.Inf(1)
	nImprovements := 0

	for iteration := 0; iteration < g.config.MaxIterations && stepSize >= g.config.MinStepSize; iteration++ {
		oldQuality := quality
		quality = 0
		for i := range visited {
			visited[i] = false
		}

		for _, k := range g.rng.Permutation(net.NNodes()) {
			gradientX, gradientY := 0.0, 0.0
			neighbors := net.Neighbors(k)
			weights := net.EdgeWeights(k)
			p := 0

			for other := 0; other < net.NNodes(); other++ {
				if other == k {
					continue
				}

				a := g.config.EdgeWeightIncrement
				if p < len(neighbors) && neighbors[p] == other {
					a += weights[p]
					p++
				}

				dx := x[k] - x[other]
				dy := y[k] - y[other]
				squaredDistance := dx*dx + dy*dy
				distance := math.Sqrt(squaredDistance)

				// Coincident nodes contribute no gradient; the
				// repulsion term would be infinite.
				if squaredDistance > 0 {
					gradient := a*mathutil.FastPow(distance, attraction-2) -
						net.NodeWeight(k)*net.NodeWeight(other)*mathutil.FastPow(distance, repulsion-2)
					gradientX += gradient * dx
					gradientY += gradient * dy
				}

				// Count each pair once, on whichever end is swept
				// first.
				if !visited[other] {
					if a > 0 {
						quality += a * distanceTransform(distance, attraction)
					}
					quality -= net.NodeWeight(k) * net.NodeWeight(other) *
						distanceTransform(distance, repulsion)
				}
			}

			if norm := math.Hypot(gradientX, gradientY); norm > 0 {
				x[k] -= stepSize * gradientX / norm
				y[k] -= stepSize * gradientY / norm
			}
			visited[k] = true
		}

		if quality < oldQuality {
			nImprovements++
			if nImprovements >= g.config.RequiredImprovements {
				stepSize /= g.config.StepReduction
				nImprovements = 0
			}
		} else {
			stepSize *= g.config.StepReduction
			nImprovements = 0
		}
	}
}
