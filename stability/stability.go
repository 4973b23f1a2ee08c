package stability

import (
	"fmt"
	"math"

	"github.com/notargets/hypersolver/types"
	"github.com/notargets/hypersolver/utils"
)

const (
	DefaultFactor = 0.98
	// DefaultFixedSteps is the number of steps taken over the span by the
	// schemes that are not CFL limited when no step count is given
	DefaultFixedSteps = 5
)

// TimeStep returns the CFL limited step
//
//	Δt = λ min(Δx) / max(|f|)
func TimeStep(grid, flux []float64, lambda float64) (dt float64, err error) {
	if err = CheckFactor(lambda); err != nil {
		return
	}
	if len(grid) < 2 {
		err = fmt.Errorf("%w: grid needs at least 2 points, has %d", types.ErrShape, len(grid))
		return
	}
	if len(flux) != len(grid) {
		err = fmt.Errorf("%w: flux has %d values, grid has %d", types.ErrShape, len(flux), len(grid))
		return
	}
	if i := utils.FirstNonFinite(flux); i >= 0 {
		err = fmt.Errorf("%w: flux[%d] = %v at x = %g", types.ErrNumericalDivergence, i, flux[i], grid[i])
		return
	}
	fMax := utils.AbsMax(flux)
	if fMax == 0 {
		err = fmt.Errorf("%w: flux is zero everywhere, supply a nonzero flux or an explicit time step",
			types.ErrDivergentStep)
		return
	}
	dt = lambda * utils.MinSpacing(grid) / fMax
	err = CheckStep(dt)
	return
}

// FixedStep divides the span into steps intervals, or DefaultFixedSteps if steps is 0
func FixedStep(span float64, steps int) (dt float64, err error) {
	if steps < 0 {
		err = fmt.Errorf("%w: step count %d is negative", types.ErrInvalidArgument, steps)
		return
	}
	if steps == 0 {
		steps = DefaultFixedSteps
	}
	dt = span / float64(steps)
	err = CheckStep(dt)
	return
}

// CheckStep fails with ErrDivergentStep unless dt is positive and finite
func CheckStep(dt float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: dt = %v", types.ErrDivergentStep, dt)
	}
	return nil
}

// CheckFactor validates a stability factor λ in (0, 1]
func CheckFactor(lambda float64) error {
	if !(lambda > 0 && lambda <= 1) {
		return fmt.Errorf("%w: stability factor %v outside (0, 1]", types.ErrInvalidArgument, lambda)
	}
	return nil
}
