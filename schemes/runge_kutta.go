package schemes

import (
	"fmt"

	"github.com/notargets/hypersolver/types"
)

// RungeKutta2 is the midpoint rule for the pointwise ODE dn/dt = f(n, x),
// with f taken from Step.FluxTerm. The sink is not used.
//
//	n(t+Δt) = n + Δt f(n + Δt/2 f(n, x), x)
type RungeKutta2 struct{}

func (RungeKutta2) Name() string           { return types.RungeKutta2.String() }
func (RungeKutta2) Type() types.SchemeType { return types.RungeKutta2 }
func (RungeKutta2) CFLLimited() bool       { return false }

func (RungeKutta2) Next(s *Step) (next []float64, err error) {
	if err = s.check(false); err != nil {
		return
	}
	var (
		n, x = s.State, s.Grid
		dt   = s.Dt
		k1   []float64
		k2   []float64
	)
	if k1, err = s.FluxTerm.Normalize(n, x, s.Time); err != nil {
		return nil, fmt.Errorf("rk2 first stage: %w", err)
	}
	mid := make([]float64, len(n))
	for i := range mid {
		mid[i] = n[i] + 0.5*dt*k1[i]
	}
	if k2, err = s.FluxTerm.Normalize(mid, x, s.Time+0.5*dt); err != nil {
		return nil, fmt.Errorf("rk2 second stage: %w", err)
	}
	next = make([]float64, len(n))
	for i := range next {
		next[i] = n[i] + dt*k2[i]
	}
	return
}
