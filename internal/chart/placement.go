package chart

// LabelPlacer positions the mean annotation of cohort idx given the cohort
// mean and the y-axis maximum at the time that cohort's curve was added:
// the highest point of its own curve and of every curve before it.
type LabelPlacer func(idx int, mean, yMax float64) (x, y float64)

// Offset scales the mean and the y-axis maximum to place a label.
type Offset struct {
	XFactor float64
	YFactor float64
}

// FractionalPlacer places label i at (mean*XFactor, yMax*YFactor) using
// offsets[i]. Cohorts without an offset use fallback.
func FractionalPlacer(offsets []Offset, fallback Offset) LabelPlacer {
	return func(idx int, mean, yMax float64) (float64, float64) {
		o := fallback
		if idx >= 0 && idx < len(offsets) {
			o = offsets[idx]
		}
		return mean * o.XFactor, yMax * o.YFactor
	}
}
