package model_problems

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/hypersolver/InputParameters"
	"github.com/notargets/hypersolver/solver"
	"github.com/notargets/hypersolver/terms"
	"github.com/notargets/hypersolver/types"
	"github.com/notargets/hypersolver/utils"
)

// Problem is a complete initial value problem ready to Solve
type Problem struct {
	Title         string
	Grid, Initial []float64
	Span          solver.TimeSpan
	Flux, Sink    terms.Term
	Config        solver.Config
}

func (p *Problem) Solve() (*solver.Trajectory, error) {
	return solver.Advance(p.Initial, p.Grid, p.Span, p.Flux, p.Sink, p.Config)
}

type ModelType uint8

const (
	M_Advection ModelType = iota
	M_DecayingPulse
	M_Growth
)

var (
	modelNames = []string{"advection", "decaying_pulse", "growth"}
	def_Points = []int{201, 100, 10}
	def_Time   = []float64{4, 2, 2}
)

func (mt ModelType) String() string {
	if int(mt) < len(modelNames) {
		return modelNames[mt]
	}
	return fmt.Sprintf("ModelType(%d)", mt)
}

func ModelNames() []string { return append([]string{}, modelNames...) }

func NewModelType(label string) (mt ModelType, err error) {
	label = strings.ToLower(strings.TrimSpace(label))
	for i, name := range modelNames {
		if label == name {
			return ModelType(i), nil
		}
	}
	err = fmt.Errorf("%w: unknown model %q, available: %s",
		types.ErrInvalidArgument, label, strings.Join(modelNames, ", "))
	return
}

// Defaults returns the number of grid points and final time of a model
func Defaults(mt ModelType) (points int, finalTime float64) {
	return def_Points[mt], def_Time[mt]
}

// New builds a catalogue model, zero points or final time take the defaults
func New(mt ModelType, points int, finalTime float64) (p *Problem, err error) {
	if int(mt) >= len(modelNames) {
		err = fmt.Errorf("%w: %v", types.ErrInvalidArgument, mt)
		return
	}
	defPoints, defTime := Defaults(mt)
	if points == 0 {
		points = defPoints
	}
	if finalTime == 0 {
		finalTime = defTime
	}
	if points < 3 || !(finalTime > 0) {
		err = fmt.Errorf("%w: %d points, final time %g", types.ErrInvalidArgument, points, finalTime)
		return
	}
	switch mt {
	case M_Advection:
		p = NewAdvection(points, finalTime)
	case M_DecayingPulse:
		p = NewDecayingPulse(points, finalTime)
	case M_Growth:
		p = NewGrowth(points, finalTime)
	}
	return
}

// NewAdvection carries a Gaussian pulse at unit speed with Lax-Wendroff
func NewAdvection(points int, finalTime float64) (p *Problem) {
	x := utils.Linspace(0, 10, points)
	n := make([]float64, points)
	for i, xx := range x {
		arg := (xx - 2) / 0.5
		n[i] = math.Exp(-arg * arg)
	}
	cfg := solver.DefaultConfig()
	cfg.Scheme = types.LaxWendroff
	return &Problem{
		Title:   "Advection of a Gaussian pulse",
		Grid:    x,
		Initial: n,
		Span:    solver.TimeSpan{End: finalTime},
		Flux:    terms.Constant(1),
		Config:  cfg,
	}
}

// NewDecayingPulse is an indicator pulse on (4, 6] transported by f = 5/x
// and decaying with g = -0.01 n, solved with Lax-Friedrichs
func NewDecayingPulse(points int, finalTime float64) (p *Problem) {
	p = &Problem{
		Title: "Decaying pulse in a diverging flux",
		Grid:  utils.Linspace(1, 10, points),
		Span:  solver.TimeSpan{End: finalTime},
	}
	p.Initial = make([]float64, points)
	for i, xx := range p.Grid {
		if xx > 4 && xx <= 6 {
			p.Initial[i] = 1
		}
	}
	p.Flux = terms.Function(func(n, x []float64) (f []float64) {
		f = make([]float64, len(x))
		for i := range x {
			f[i] = 5 / x[i]
		}
		return
	})
	p.Sink = terms.Function(func(n, x []float64) (g []float64) {
		g = make([]float64, len(n))
		for i := range n {
			g[i] = -0.01 * n[i]
		}
		return
	})
	p.Config = solver.DefaultConfig()
	p.Config.StabilityFactor = 0.9
	return
}

// NewGrowth is the pointwise ODE dn/dt = n/x, n(0) = 1, solved with RK2
func NewGrowth(points int, finalTime float64) (p *Problem) {
	p = &Problem{
		Title:   "Growth dn/dt = n/x",
		Grid:    utils.Linspace(1, 10, points),
		Initial: utils.ConstArray(points, 1),
		Span:    solver.TimeSpan{End: finalTime},
	}
	// The RK2 scheme integrates dn/dt = FluxTerm
	p.Flux = terms.Function(func(n, x []float64) (r []float64) {
		r = make([]float64, len(n))
		for i := range n {
			r[i] = n[i] / x[i]
		}
		return
	})
	p.Config = solver.DefaultConfig()
	p.Config.Scheme = types.RungeKutta2
	p.Config.StepCount = 100
	return
}

// NewFromInput builds a problem from a parsed YAML input file
func NewFromInput(ip *InputParameters.InputParameters1D) (p *Problem, err error) {
	p = &Problem{Title: ip.Title}
	if p.Span, err = ip.Span(); err != nil {
		return nil, err
	}
	if p.Grid, err = ip.NewGrid(); err != nil {
		return nil, err
	}
	if p.Initial, err = ip.InitialState(p.Grid); err != nil {
		return nil, err
	}
	if p.Flux, err = InputParameters.NewTerm(ip.Flux); err != nil {
		return nil, fmt.Errorf("flux: %w", err)
	}
	if p.Sink, err = InputParameters.NewTerm(ip.Sink); err != nil {
		return nil, fmt.Errorf("sink: %w", err)
	}
	if p.Config, err = ip.SolverConfig(); err != nil {
		return nil, err
	}
	return
}
