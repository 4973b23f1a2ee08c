/*
Package solver drives a scheme from the start to the end of a time span,

	∂n/∂t + ∂(fn)/∂x = g

re-evaluating state dependent flux and sink terms at every step and
recording a subsampled trajectory.
*/
package solver

import (
	"fmt"

	"github.com/notargets/hypersolver/schemes"
	"github.com/notargets/hypersolver/stability"
	"github.com/notargets/hypersolver/terms"
	"github.com/notargets/hypersolver/types"
	"github.com/notargets/hypersolver/utils"
)

// Solver holds a validated Config and its stepper. It keeps no state between
// calls to Advance and may be shared between goroutines.
type Solver struct {
	cfg     Config
	stepper schemes.Stepper
}

func New(cfg Config) (s *Solver, err error) {
	s = &Solver{}
	if s.cfg, err = cfg.withDefaults(); err != nil {
		return nil, err
	}
	if s.stepper, err = schemes.New(s.cfg.Scheme); err != nil {
		return nil, err
	}
	return
}

func (s *Solver) Config() Config { return s.cfg }

func (s *Solver) Stepper() schemes.Stepper { return s.stepper }

// Advance is a one shot New(cfg).Advance
func Advance(initial, grid []float64, span TimeSpan, flux, sink terms.Term, cfg Config) (tr *Trajectory, err error) {
	var s *Solver
	if s, err = New(cfg); err != nil {
		return
	}
	return s.Advance(initial, grid, span, flux, sink)
}

// Advance integrates initial over the span. Errors raised inside the time
// loop are returned as a *types.StepError holding the step, the time and the
// index of the last recorded sample.
func (s *Solver) Advance(initial, grid []float64, span TimeSpan, flux, sink terms.Term) (tr *Trajectory, err error) {
	if err = validate(initial, grid, span); err != nil {
		return
	}
	var (
		cfg      = s.cfg
		x        = utils.Copy(grid)
		n        = utils.Copy(initial)
		t        = span.Start
		tEnd     = span.End
		f, g     []float64
		prevSink []float64
		dt       float64
		hPrev    float64
		adaptive = s.stepper.CFLLimited() && cfg.TimeStep == 0 && flux.IsFunction()
		sliver   = 1.e-9 * span.Length()
	)
	if f, err = flux.Normalize(n, x, t); err != nil {
		return nil, fmt.Errorf("flux: %w", err)
	}
	if g, err = sink.Normalize(n, x, t); err != nil {
		return nil, fmt.Errorf("sink: %w", err)
	}
	if dt, err = s.timeStep(x, f, span); err != nil {
		return
	}
	s.logf("%s: t = [%g, %g], %d points, dt = %g\n", s.stepper.Name(), t, tEnd, len(x), dt)
	tr = newTrajectory(x, n, span, cfg.SampleCap)
	for step := 1; t < tEnd; step++ {
		if step > cfg.MaxSteps {
			err = s.stepError(step, t, tr,
				fmt.Errorf("%w: step limit %d reached before t = %g", types.ErrDivergentStep, cfg.MaxSteps, tEnd))
			return
		}
		if step > 1 {
			if flux.IsFunction() {
				if f, err = flux.Normalize(n, x, t); err != nil {
					return nil, s.stepError(step, t, tr, fmt.Errorf("flux: %w", err))
				}
			}
			prevSink = g
			if sink.IsFunction() {
				if g, err = sink.Normalize(n, x, t); err != nil {
					return nil, s.stepError(step, t, tr, fmt.Errorf("sink: %w", err))
				}
			}
			if adaptive {
				if dt, err = stability.TimeStep(x, f, cfg.StabilityFactor); err != nil {
					return nil, s.stepError(step, t, tr, err)
				}
			}
		}
		h, last := dt, false
		if t+h >= tEnd-sliver {
			h, last = tEnd-t, true
		}
		var next []float64
		next, err = s.stepper.Next(&schemes.Step{
			State:    n,
			Grid:     x,
			Flux:     f,
			Sink:     g,
			PrevSink: prevSink,
			PrevDt:   hPrev,
			FluxTerm: flux,
			SinkTerm: sink,
			Time:     t,
			Dt:       h,
		})
		if err != nil {
			return nil, s.stepError(step, t, tr, err)
		}
		if i := utils.FirstNonFinite(next); i >= 0 {
			return nil, s.stepError(step, t+h, tr,
				fmt.Errorf("%w: n[%d] = %v at x = %g", types.ErrNumericalDivergence, i, next[i], x[i]))
		}
		if last {
			t = tEnd
		} else {
			t += h
		}
		n, hPrev = next, h
		tr.Steps = step
		tr.record(t, n, last)
		if cfg.Verbosity > 1 || (cfg.Verbosity > 0 && (step%cfg.LogFrequency == 0 || last)) {
			nMin, nMax := utils.MinMax(n)
			s.logf("Time = %8.4f, step[%d], dt = %8.6f, nmin = %8.5f, nmax = %8.5f\n", t, step, h, nMin, nMax)
		}
	}
	return
}

// timeStep picks the initial step: an explicit TimeStep, the CFL step for
// the explicit schemes or a fixed division of the span
func (s *Solver) timeStep(x, f []float64, span TimeSpan) (dt float64, err error) {
	switch {
	case s.cfg.TimeStep > 0:
		dt = s.cfg.TimeStep
	case s.stepper.CFLLimited():
		dt, err = stability.TimeStep(x, f, s.cfg.StabilityFactor)
	default:
		dt, err = stability.FixedStep(span.Length(), s.cfg.StepCount)
	}
	return
}

func (s *Solver) stepError(step int, t float64, tr *Trajectory, err error) error {
	s.logf("step %d failed at t = %g: %v\n", step, t, err)
	return &types.StepError{Step: step, Time: t, LastSample: tr.Len() - 1, Err: err}
}

func (s *Solver) logf(format string, args ...interface{}) {
	if s.cfg.Verbosity > 0 {
		fmt.Fprintf(s.cfg.Log, format, args...)
	}
}

func validate(initial, grid []float64, span TimeSpan) (err error) {
	switch {
	case len(grid) < 3:
		err = fmt.Errorf("%w: need at least 3 grid points, have %d", types.ErrShape, len(grid))
	case len(initial) != len(grid):
		err = fmt.Errorf("%w: initial state has %d values, grid has %d", types.ErrShape, len(initial), len(grid))
	case !utils.StrictlyIncreasing(grid):
		err = fmt.Errorf("%w: grid is not strictly increasing", types.ErrInvalidArgument)
	case !utils.IsFinite(grid):
		err = fmt.Errorf("%w: grid has non-finite coordinates", types.ErrInvalidArgument)
	case !(span.End > span.Start) || !utils.IsFinite([]float64{span.Start, span.End}):
		err = fmt.Errorf("%w: time span [%v, %v]", types.ErrInvalidArgument, span.Start, span.End)
	case !utils.IsFinite(initial):
		i := utils.FirstNonFinite(initial)
		err = fmt.Errorf("%w: initial state n[%d] = %v", types.ErrInvalidArgument, i, initial[i])
	}
	return
}
