package schemes

import (
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/hypersolver/derivative"
	"github.com/notargets/hypersolver/types"
)

// LaxWendroff is the second order Taylor expansion in time, with the time
// derivatives replaced using the equation itself:
//
//	R    = g - ∂(fn)/∂x
//	n_tt = -∂f/∂x R - f (-∂²(fn)/∂x² + ∂g/∂x) + ∂g/∂t
//	n(t+Δt) = n + Δt R + Δt²/2 n_tt
//
// ∂g/∂t is the difference between the sink and Step.PrevSink over
// Step.PrevDt, and is zero on the first step where no previous sink exists.
type LaxWendroff struct{}

func (LaxWendroff) Name() string           { return types.LaxWendroff.String() }
func (LaxWendroff) Type() types.SchemeType { return types.LaxWendroff }
func (LaxWendroff) CFLLimited() bool       { return true }

func (LaxWendroff) Next(s *Step) (next []float64, err error) {
	if err = s.check(true); err != nil {
		return
	}
	var (
		n, x, f, g = s.State, s.Grid, s.Flux, s.Sink
		N          = len(n)
		dt         = s.Dt
		nf         = floats.MulTo(make([]float64, N), n, f)
		R          = floats.SubTo(make([]float64, N), g, derivative.Ord1Acc2(nf, x))
		df         = derivative.Ord1Acc2(f, x)
		d2nf       = derivative.Ord2Acc2(nf, x)
		dg         = derivative.Ord1Acc2(g, x)
		dgdt       = make([]float64, N)
	)
	if len(s.PrevSink) == N && s.PrevDt > 0 {
		floats.SubTo(dgdt, g, s.PrevSink)
		floats.Scale(1/s.PrevDt, dgdt)
	}
	next = make([]float64, N)
	for i := range next {
		ntt := -df[i]*R[i] - f[i]*(-d2nf[i]+dg[i]) + dgdt[i]
		next[i] = n[i] + dt*R[i] + 0.5*dt*dt*ntt
	}
	return
}
