// Package visualization provides the VOS layout engine: the similarity
// visualisation quality function over pairwise distances and its
// step-size-adaptive gradient-descent optimiser. The LinLog quality
// function is the linear-attraction, logarithmic-repulsion member of
// the same family.
package visualization

import (
	"errors"
	"math"

	"github.com/dd0wney/cluso-netmap/pkg/layout"
	"github.com/dd0wney/cluso-netmap/pkg/mathutil"
	"github.com/dd0wney/cluso-netmap/pkg/network"
)

// ErrInvalidParameter is returned for unusable optimiser parameters.
var ErrInvalidParameter = errors.New("invalid parameter")

// distanceTransform applies f_k(d) = d^k / k, or log d when k is 0.
func distanceTransform(distance float64, exponent int) float64 {
	if exponent == 0 {
		return math.Log(distance)
	}
	return mathutil.FastPow(distance, exponent) / float64(exponent)
}

// VOSQuality computes the layout quality to be minimised:
//
//	E = sum over pairs of (a_ij + increment) * f_attraction(d_ij)
//	    - sum over pairs of n_i * n_j * f_repulsion(d_ij)
//
// with each unordered pair counted once. Edges attract, all pairs
// repel, and the edge-weight increment makes disconnected components
// attract weakly.
func VOSQuality(net *network.Network, l *layout.Layout, attraction, repulsion int, edgeWeightIncrement float64) float64 {
	x, y := l.X(), l.Y()
	quality := 0.0

	for i := 0; i < net.NNodes(); i++ {
		neighbors := net.Neighbors(i)
		weights := net.EdgeWeights(i)
		p := 0
		for p < len(neighbors) && neighbors[p] <= i {
			p++
		}

		for j := i + 1; j < net.NNodes(); j++ {
			a := edgeWeightIncrement
			if p < len(neighbors) && neighbors[p] == j {
				a += weights[p]
				p++
			}

			distance := math.Hypot(x[i]-x[j], y[i]-y[j])
			if a > 0 {
				quality += a * distanceTransform(distance, attraction)
			}
			quality -= net.NodeWeight(i) * net.NodeWeight(j) * distanceTransform(distance, repulsion)
		}
	}
	return quality
}
