package layout

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/dd0wney/cluso-netmap/pkg/mathutil"
)

// Standardize brings the layout into a canonical orientation: the
// centroid is translated to the origin, the coordinates are rotated so
// the principal component of their covariance lies along the x axis,
// each axis whose median coordinate is positive is flipped, and, when
// dilate is set, all coordinates are divided by the mean pairwise
// distance. Idempotent up to floating-point tolerance.
func (l *Layout) Standardize(dilate bool) {
	if l.NNodes() == 0 {
		return
	}

	l.Translate(-mathutil.Mean(l.x), -mathutil.Mean(l.y))

	l.rotateToPrincipalAxis()

	if mathutil.Median(l.x) > 0 {
		l.FlipX()
	}
	if mathutil.Median(l.y) > 0 {
		l.FlipY()
	}

	if dilate {
		if distance := l.AverageDistance(); distance > 0 {
			l.Dilate(1 / distance)
		}
	}
}

// rotateToPrincipalAxis rotates the centred coordinates so that the
// direction of maximum variance aligns with the x axis.
func (l *Layout) rotateToPrincipalAxis() {
	if l.NNodes() < 2 {
		return
	}

	covXX := stat.Variance(l.x, nil)
	covYY := stat.Variance(l.y, nil)
	covXY := stat.Covariance(l.x, l.y, nil)

	var eig mat.EigenSym
	if ok := eig.Factorize(mat.NewSymDense(2, []float64{covXX, covXY, covXY, covYY}), true); !ok {
		return
	}

	// Eigenvalues come out in ascending order; the principal axis is
	// the second eigenvector.
	var vectors mat.Dense
	eig.VectorsTo(&vectors)
	px, py := vectors.At(0, 1), vectors.At(1, 1)

	// Canonicalise the eigenvector sign so repeated standardisation
	// rotates by the identity.
	if px < 0 || (px == 0 && py < 0) {
		px, py = -px, -py
	}

	for i := range l.x {
		x, y := l.x[i], l.y[i]
		l.x[i] = px*x + py*y
		l.y[i] = -py*x + px*y
	}
}
