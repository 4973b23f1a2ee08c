package schemes

import (
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/hypersolver/derivative"
	"github.com/notargets/hypersolver/types"
)

// LaxFriedrichs is first order in time and space:
//
//	n(t+Δt, i) = (n(i-1) + n(i+1))/2 - Δt (Δ(fn)/Δx - g)(i)
//
// The edge nodes average with their single neighbour.
type LaxFriedrichs struct{}

func (LaxFriedrichs) Name() string           { return types.LaxFriedrichs.String() }
func (LaxFriedrichs) Type() types.SchemeType { return types.LaxFriedrichs }
func (LaxFriedrichs) CFLLimited() bool       { return true }

func (LaxFriedrichs) Next(s *Step) (next []float64, err error) {
	if err = s.check(true); err != nil {
		return
	}
	var (
		n   = s.State
		N   = len(n)
		nf  = floats.MulTo(make([]float64, N), n, s.Flux)
		dnf = derivative.Ord1Acc2(nf, s.Grid)
	)
	next = make([]float64, N)
	for i := range next {
		var avg float64
		switch i {
		case 0:
			avg = 0.5 * (n[0] + n[1])
		case N - 1:
			avg = 0.5 * (n[N-1] + n[N-2])
		default:
			avg = 0.5 * (n[i-1] + n[i+1])
		}
		next[i] = avg - s.Dt*(dnf[i]-s.Sink[i])
	}
	return
}
