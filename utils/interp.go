package utils

import (
	"fmt"

	"gonum.org/v1/gonum/interp"

	"github.com/notargets/hypersolver/types"
)

// Resample fits a not-a-knot cubic through (xs, ys) and evaluates it at
// every point of grid. Points outside [xs[0], xs[N-1]] are set to fill.
// Fewer than 4 knots fall back to linear interpolation.
func Resample(xs, ys, grid []float64, fill float64) (r []float64, err error) {
	if len(xs) != len(ys) {
		err = fmt.Errorf("%w: %d knots, %d values", types.ErrShape, len(xs), len(ys))
		return
	}
	if len(xs) < 2 {
		err = fmt.Errorf("%w: need at least 2 knots, have %d", types.ErrShape, len(xs))
		return
	}
	if !StrictlyIncreasing(xs) {
		err = fmt.Errorf("%w: knots are not strictly increasing", types.ErrInvalidArgument)
		return
	}
	var pr interp.FittablePredictor
	if len(xs) < 4 {
		pr = &interp.PiecewiseLinear{}
	} else {
		pr = &interp.NotAKnotCubic{}
	}
	if err = pr.Fit(xs, ys); err != nil {
		return
	}
	var (
		lo, hi = xs[0], xs[len(xs)-1]
	)
	r = make([]float64, len(grid))
	for i, x := range grid {
		if x < lo || x > hi {
			r[i] = fill
			continue
		}
		r[i] = pr.Predict(x)
	}
	return
}
