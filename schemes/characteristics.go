package schemes

import (
	"fmt"
	"math"

	"github.com/notargets/hypersolver/derivative"
	"github.com/notargets/hypersolver/ode"
	"github.com/notargets/hypersolver/terms"
	"github.com/notargets/hypersolver/types"
	"github.com/notargets/hypersolver/utils"
)

// Characteristics follows the characteristic curves of every grid node
// through one step,
//
//	dx/ds = f
//	dn/ds = g - n ∂f/∂x
//
// with f and g evaluated along the curve.
// and interpolates the values carried by the characteristics back onto the
// grid. Nodes left uncovered by the characteristics are set to zero.
type Characteristics struct{}

func (Characteristics) Name() string           { return types.MethodOfCharacteristics.String() }
func (Characteristics) Type() types.SchemeType { return types.MethodOfCharacteristics }
func (Characteristics) CFLLimited() bool       { return false }

func (Characteristics) Next(s *Step) (next []float64, err error) {
	if err = s.check(true); err != nil {
		return
	}
	N := len(s.State)
	y0 := make([]float64, 2*N)
	for i := 0; i < N; i++ {
		y0[2*i], y0[2*i+1] = s.Grid[i], s.State[i]
	}
	set := ode.DefaultSettings()
	set.InitialStep = s.Dt / 10
	sys := newCharacteristicSystem(s)
	var y []float64
	y, _, err = ode.Integrate(sys, 0, s.Dt, y0, set)
	if sys.err != nil {
		return nil, fmt.Errorf("characteristics at t = %v: %w", s.Time, sys.err)
	}
	if err != nil {
		return nil, fmt.Errorf("characteristics at t = %v: %w", s.Time, err)
	}
	xs, ns := make([]float64, N), make([]float64, N)
	for i := 0; i < N; i++ {
		xs[i], ns[i] = y[2*i], y[2*i+1]
	}
	if !utils.StrictlyIncreasing(xs) {
		return nil, fmt.Errorf("%w: characteristics crossed at t = %v", types.ErrIntegration, s.Time+s.Dt)
	}
	if i := utils.FirstNonFinite(ns); i >= 0 {
		return nil, fmt.Errorf("%w: non-finite value carried by characteristic %d", types.ErrIntegration, i)
	}
	if next, err = utils.Resample(xs, ns, s.Grid, 0); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrIntegration, err)
	}
	return
}

// characteristicSystem interleaves positions and values, y = [x0,n0,x1,n1,...].
// Function terms are evaluated along the curves at the carried positions
// and values, constant and array terms are frozen at the start of the step.
// A function term must be local, its value at node i depending on x_i and
// n_i only.
type characteristicSystem struct {
	t0                 float64
	flux, sink         []float64
	fluxTerm, sinkTerm terms.Term
	xs, ns             []float64
	err                error
}

func newCharacteristicSystem(s *Step) *characteristicSystem {
	N := len(s.State)
	return &characteristicSystem{
		t0:       s.Time,
		flux:     s.Flux,
		sink:     s.Sink,
		fluxTerm: s.FluxTerm,
		sinkTerm: s.SinkTerm,
		xs:       make([]float64, N),
		ns:       make([]float64, N),
	}
}

func (cs *characteristicSystem) Dim() int { return 2 * len(cs.xs) }

// Bandwidth couples n_i to x_{i-1} and x_{i+1} through ∂f/∂x, and to
// n_{i-1} and n_{i+1} when the flux depends on the state
func (cs *characteristicSystem) Bandwidth() (kl, ku int) {
	if cs.fluxTerm.IsFunction() {
		return 3, 2
	}
	return 3, 1
}

func (cs *characteristicSystem) Derive(s float64, y, dy []float64) {
	for i := range cs.xs {
		cs.xs[i], cs.ns[i] = y[2*i], y[2*i+1]
	}
	var (
		f, g = cs.flux, cs.sink
		err  error
	)
	if cs.fluxTerm.IsFunction() {
		if f, err = cs.fluxTerm.Normalize(cs.ns, cs.xs, cs.t0+s); err != nil {
			cs.fail(fmt.Errorf("flux: %w", err), dy)
			return
		}
	}
	if cs.sinkTerm.IsFunction() {
		if g, err = cs.sinkTerm.Normalize(cs.ns, cs.xs, cs.t0+s); err != nil {
			cs.fail(fmt.Errorf("sink: %w", err), dy)
			return
		}
	}
	df := derivative.Ord1Acc2(f, cs.xs)
	for i := range cs.xs {
		dy[2*i] = f[i]
		dy[2*i+1] = g[i] - cs.ns[i]*df[i]
	}
}

// fail keeps the first term error and poisons dy so the integrator stops
func (cs *characteristicSystem) fail(err error, dy []float64) {
	if cs.err == nil {
		cs.err = err
	}
	for i := range dy {
		dy[i] = math.NaN()
	}
}
