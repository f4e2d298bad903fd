package stats

import (
	"math"

	"github.com/aclements/go-moremath/stats"
)

// DefaultGridPoints is the number of points a density is evaluated at.
const DefaultGridPoints = 200

// Point is one evaluated point of a density curve.
type Point struct {
	X, Y float64
}

// Density is a Gaussian kernel density estimate evaluated on a grid.
type Density struct {
	Points    []Point
	Bandwidth float64
	Mean      float64
	N         int
}

// MaxY returns the highest density on the grid.
func (d *Density) MaxY() float64 {
	max := 0.0
	for _, p := range d.Points {
		if p.Y > max {
			max = p.Y
		}
	}
	return max
}

// Mean returns the arithmetic mean of xs.
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return math.NaN(), ErrNoData
	}
	return stats.Sample{Xs: xs}.Mean(), nil
}

// EstimateDensity fits a Gaussian KDE with Scott's rule-of-thumb bandwidth
// and evaluates it on gridPoints points spanning three bandwidths past the
// sample's extremes.
func EstimateDensity(xs []float64, gridPoints int) (*Density, error) {
	if len(xs) == 0 {
		return nil, ErrNoData
	}
	if gridPoints < 2 {
		gridPoints = DefaultGridPoints
	}

	sample := stats.Sample{Xs: xs}
	bw := stats.BandwidthScott(sample)
	if bw <= 0 || math.IsNaN(bw) || math.IsInf(bw, 0) {
		// Single value or zero spread.
		bw = 1
	}
	kde := &stats.KDE{
		Sample:    sample,
		Kernel:    stats.GaussianKernel,
		Bandwidth: bw,
	}

	lo, hi := sample.Bounds()
	lo -= 3 * bw
	hi += 3 * bw
	step := (hi - lo) / float64(gridPoints-1)

	points := make([]Point, gridPoints)
	for i := range points {
		x := lo + float64(i)*step
		points[i] = Point{X: x, Y: kde.PDF(x)}
	}

	return &Density{
		Points:    points,
		Bandwidth: bw,
		Mean:      sample.Mean(),
		N:         len(xs),
	}, nil
}
