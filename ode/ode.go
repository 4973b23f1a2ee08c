/*
Package ode integrates stiff systems dy/dt = F(t, y) whose Jacobian is banded.

The integrator is the implicit trapezoidal rule with a modified Newton
iteration on the banded matrix I - h/2 J. Step size is controlled by step
doubling: every step is taken once with h and twice with h/2, and the
difference between the two estimates the local error.
*/
package ode

import (
	"fmt"
	"math"

	"github.com/notargets/hypersolver/types"
)

// System is the right hand side of dy/dt = F(t, y). Derive must write F into
// dy and must not retain either slice.
type System interface {
	Dim() int
	// Bandwidth returns the number of sub and super diagonals of dF/dy
	Bandwidth() (kl, ku int)
	Derive(t float64, y, dy []float64)
}

// Func adapts a dense right hand side into a System with full bandwidth
type Func struct {
	N  int
	Fn func(t float64, y, dy []float64)
}

func (f Func) Dim() int                          { return f.N }
func (f Func) Bandwidth() (kl, ku int)           { return f.N - 1, f.N - 1 }
func (f Func) Derive(t float64, y, dy []float64) { f.Fn(t, y, dy) }

type Settings struct {
	// InitialStep, if > 0, is the first step attempted, otherwise a fraction
	// of the interval is used
	InitialStep float64
	// MinStep, if > 0, is the smallest step allowed before giving up
	MinStep float64
	// MaxStep, if > 0, caps the step size
	MaxStep float64
	AbsTol  float64
	RelTol  float64
	// MaxSteps bounds the number of accepted plus rejected steps
	MaxSteps int
	// MaxNewton is the iteration limit of a single implicit solve
	MaxNewton int
}

func DefaultSettings() Settings {
	return Settings{
		AbsTol:    1.e-8,
		RelTol:    1.e-6,
		MaxSteps:  100000,
		MaxNewton: 7,
	}
}

type Statistics struct {
	Steps       int
	Rejected    int
	Evaluations int
	Jacobians   int
	LastStep    float64
	CurrentTime float64
}

const (
	safety   = 0.9
	minScale = 0.2
	maxScale = 5.0
	// exponent of the step update for a second order method
	errExponent = -1. / 3.
	newtonTol   = 1.e-3
)

// Integrate advances y0 from t0 to t1 and returns the state at t1. y0 is not
// modified.
func Integrate(sys System, t0, t1 float64, y0 []float64, s Settings) (y []float64, stat Statistics, err error) {
	var (
		n      = sys.Dim()
		span   = t1 - t0
		kl, ku = sys.Bandwidth()
	)
	if n < 1 || n != len(y0) {
		err = fmt.Errorf("%w: system dimension %d, initial state has %d", types.ErrShape, n, len(y0))
		return
	}
	if !(span > 0) || math.IsInf(span, 0) {
		err = fmt.Errorf("%w: integration interval [%v, %v]", types.ErrInvalidArgument, t0, t1)
		return
	}
	if kl < 0 || ku < 0 {
		err = fmt.Errorf("%w: bandwidth (%d, %d)", types.ErrInvalidArgument, kl, ku)
		return
	}
	s = s.withDefaults(span)
	ig := newIntegrator(sys, n, kl, ku, s)

	y = make([]float64, n)
	copy(y, y0)
	var (
		t = t0
		h = s.InitialStep
	)
	for t < t1 {
		if stat.Steps+stat.Rejected >= s.MaxSteps {
			err = fmt.Errorf("%w: step limit %d reached at t = %v", types.ErrIntegration, s.MaxSteps, t)
			break
		}
		last := false
		if t+h >= t1 {
			h, last = t1-t, true
		}
		if h < s.MinStep && !last {
			err = fmt.Errorf("%w: step size %g underflow at t = %v", types.ErrIntegration, h, t)
			break
		}
		var (
			yNew    []float64
			errNorm float64
		)
		yNew, errNorm, err = ig.doubleStep(t, h, y)
		stat.Evaluations, stat.Jacobians = ig.evaluations, ig.jacobians
		if err != nil {
			return nil, stat, err
		}
		if yNew == nil { // Newton failed to converge
			stat.Rejected++
			h /= 4
			if h < s.MinStep {
				err = fmt.Errorf("%w: implicit solve did not converge, step %g at t = %v",
					types.ErrIntegration, h, t)
				break
			}
			continue
		}
		if errNorm > 1 {
			stat.Rejected++
			h *= math.Max(minScale, safety*math.Pow(errNorm, errExponent))
			continue
		}
		stat.Steps++
		stat.LastStep = h
		if last {
			t = t1
		} else {
			t += h
		}
		y = yNew
		scale := maxScale
		if errNorm > 0 {
			scale = math.Min(maxScale, math.Max(minScale, safety*math.Pow(errNorm, errExponent)))
		}
		h = math.Min(h*scale, s.MaxStep)
	}
	stat.CurrentTime = t
	if err != nil {
		return nil, stat, err
	}
	return
}

func (s Settings) withDefaults(span float64) Settings {
	def := DefaultSettings()
	if s.AbsTol <= 0 {
		s.AbsTol = def.AbsTol
	}
	if s.RelTol <= 0 {
		s.RelTol = def.RelTol
	}
	if s.MaxSteps <= 0 {
		s.MaxSteps = def.MaxSteps
	}
	if s.MaxNewton <= 0 {
		s.MaxNewton = def.MaxNewton
	}
	if s.MaxStep <= 0 || s.MaxStep > span {
		s.MaxStep = span
	}
	if s.InitialStep <= 0 {
		s.InitialStep = span / 100
	}
	s.InitialStep = math.Min(s.InitialStep, s.MaxStep)
	if s.MinStep <= 0 {
		s.MinStep = span * 1.e-12
	}
	return s
}
