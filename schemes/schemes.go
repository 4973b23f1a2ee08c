/*
Package schemes advances the state of

	∂n/∂t + ∂(fn)/∂x = g

by a single time step. Every stepper is a stateless value; everything a step
needs, including the sink of the previous step, is carried by Step.
*/
package schemes

import (
	"fmt"

	"github.com/notargets/hypersolver/terms"
	"github.com/notargets/hypersolver/types"
)

type Step struct {
	State, Grid []float64
	// Flux and Sink are normalized to len(State)
	Flux, Sink []float64
	// PrevSink is the sink of the previous step, nil on the first step,
	// evaluated PrevDt before Time
	PrevSink []float64
	PrevDt   float64
	// FluxTerm and SinkTerm are re-evaluated inside the step by the ODE schemes
	FluxTerm, SinkTerm terms.Term
	Time, Dt           float64
}

type Stepper interface {
	Name() string
	Type() types.SchemeType
	// CFLLimited reports whether the step size is bound by the CFL condition
	CFLLimited() bool
	Next(s *Step) (next []float64, err error)
}

func New(st types.SchemeType) (stp Stepper, err error) {
	switch st {
	case types.LaxFriedrichs:
		stp = LaxFriedrichs{}
	case types.LaxWendroff:
		stp = LaxWendroff{}
	case types.MethodOfCharacteristics:
		stp = Characteristics{}
	case types.RungeKutta2:
		stp = RungeKutta2{}
	default:
		err = fmt.Errorf("%w: no stepper for %v", types.ErrInvalidArgument, st)
	}
	return
}

// NewFromName accepts any of the names and aliases of types.NewSchemeType
func NewFromName(label string) (stp Stepper, err error) {
	var st types.SchemeType
	if st, err = types.NewSchemeType(label); err != nil {
		return
	}
	return New(st)
}

// check validates the shapes of a step. The flux and sink are only checked
// for the schemes that consume them.
func (s *Step) check(withTerms bool) (err error) {
	N := len(s.State)
	switch {
	case len(s.Grid) != N:
		err = fmt.Errorf("%w: grid has %d points, state has %d", types.ErrShape, len(s.Grid), N)
	case N < 3:
		err = fmt.Errorf("%w: need at least 3 grid points, have %d", types.ErrShape, N)
	case !(s.Dt > 0):
		err = fmt.Errorf("%w: dt = %v", types.ErrInvalidArgument, s.Dt)
	case withTerms && len(s.Flux) != N:
		err = fmt.Errorf("%w: flux has %d values, state has %d", types.ErrShape, len(s.Flux), N)
	case withTerms && len(s.Sink) != N:
		err = fmt.Errorf("%w: sink has %d values, state has %d", types.ErrShape, len(s.Sink), N)
	}
	return
}
