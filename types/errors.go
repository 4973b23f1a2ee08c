package types

import (
	"errors"
	"fmt"
)

var (
	// ErrShape is returned when a term or array length does not match the state
	ErrShape = errors.New("hypersolver: shape mismatch")

	// ErrDivergentStep is returned when the computed time step is zero, negative or not finite
	ErrDivergentStep = errors.New("hypersolver: divergent time step")

	// ErrIntegration is returned when the implicit ODE integrator fails to
	// converge or the characteristics can not be mapped back onto the grid
	ErrIntegration = errors.New("hypersolver: integration failed")

	// ErrNumericalDivergence is returned when a step produces non-finite values
	ErrNumericalDivergence = errors.New("hypersolver: numerical divergence")

	ErrInvalidArgument = errors.New("hypersolver: invalid argument")
)

// StepError carries the position in the time loop where a solve failed.
// LastSample is the index of the last valid Trajectory sample.
type StepError struct {
	Step       int
	Time       float64
	LastSample int
	Err        error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d, time %.6g (last valid sample %d): %v",
		e.Step, e.Time, e.LastSample, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
