package InputParameters

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/hypersolver/solver"
	"github.com/notargets/hypersolver/stability"
	"github.com/notargets/hypersolver/terms"
	"github.com/notargets/hypersolver/types"
	"github.com/notargets/hypersolver/utils"
)

type GridSpec struct {
	Min    float64 `json:"Min"`
	Max    float64 `json:"Max"`
	Points int     `json:"Points"`
}

// InitialSpec describes the initial state, Type is one of indicator,
// constant, sine or gaussian
type InitialSpec struct {
	Type   string  `json:"Type"`
	Value  float64 `json:"Value"`
	Low    float64 `json:"Low"`
	High   float64 `json:"High"`
	Center float64 `json:"Center"`
	Width  float64 `json:"Width"`
}

// TermSpec describes a flux or sink term, Type is one of constant, array,
// inverse (Value/x), linear (Value·n) or ratio (n/x)
type TermSpec struct {
	Type   string    `json:"Type"`
	Value  float64   `json:"Value"`
	Values []float64 `json:"Values"`
}

// Parameters obtained from the YAML input file
type InputParameters1D struct {
	Title     string      `json:"Title"`
	Scheme    string      `json:"Scheme"`
	Stability float64     `json:"Stability"`
	StepCount int         `json:"StepCount"`
	TimeStep  float64     `json:"TimeStep"`
	TimeSpan  []float64   `json:"TimeSpan"` // [Start, End]
	Grid      GridSpec    `json:"Grid"`
	Initial   InitialSpec `json:"Initial"`
	Flux      TermSpec    `json:"Flux"`
	Sink      TermSpec    `json:"Sink"`
	Verbosity int         `json:"Verbosity"`
}

func (ip *InputParameters1D) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters1D) Print() { ip.Fprint(os.Stdout) }

func (ip *InputParameters1D) Fprint(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "[%s]\t\t= Scheme\n", ip.Scheme)
	fmt.Fprintf(w, "%8.5f\t\t= Stability\n", ip.Stability)
	fmt.Fprintf(w, "%v\t\t= TimeSpan\n", ip.TimeSpan)
	fmt.Fprintf(w, "[%g, %g] x %d\t= Grid\n", ip.Grid.Min, ip.Grid.Max, ip.Grid.Points)
	fmt.Fprintf(w, "[%s]\t\t= Initial\n", ip.Initial.Type)
	fmt.Fprintf(w, "[%s]\t\t= Flux\n", ip.Flux.Type)
	fmt.Fprintf(w, "[%s]\t\t= Sink\n", ip.Sink.Type)
	if ip.StepCount != 0 {
		fmt.Fprintf(w, "%d\t\t= StepCount\n", ip.StepCount)
	}
	if ip.TimeStep != 0 {
		fmt.Fprintf(w, "%8.5f\t\t= TimeStep\n", ip.TimeStep)
	}
}

func (ip *InputParameters1D) Span() (span solver.TimeSpan, err error) {
	if len(ip.TimeSpan) != 2 {
		err = fmt.Errorf("%w: TimeSpan needs [start, end], have %v", types.ErrInvalidArgument, ip.TimeSpan)
		return
	}
	span = solver.TimeSpan{Start: ip.TimeSpan[0], End: ip.TimeSpan[1]}
	return
}

func (ip *InputParameters1D) NewGrid() (x []float64, err error) {
	g := ip.Grid
	if g.Points < 3 || !(g.Max > g.Min) {
		err = fmt.Errorf("%w: grid [%g, %g] with %d points", types.ErrInvalidArgument, g.Min, g.Max, g.Points)
		return
	}
	return utils.Linspace(g.Min, g.Max, g.Points), nil
}

// InitialState evaluates the initial condition on the grid. A zero Value
// means 1 for the indicator, sine and gaussian shapes.
func (ip *InputParameters1D) InitialState(x []float64) (n []float64, err error) {
	var (
		in  = ip.Initial
		amp = in.Value
	)
	if amp == 0 {
		amp = 1
	}
	n = make([]float64, len(x))
	switch strings.ToLower(in.Type) {
	case "indicator":
		for i, xx := range x {
			if xx > in.Low && xx <= in.High {
				n[i] = amp
			}
		}
	case "constant":
		for i := range n {
			n[i] = in.Value
		}
	case "sine":
		if !(in.High > in.Low) {
			return nil, fmt.Errorf("%w: sine initial state needs High > Low", types.ErrInvalidArgument)
		}
		for i, xx := range x {
			if xx >= in.Low && xx <= in.High {
				n[i] = amp * math.Sin(math.Pi*(xx-in.Low)/(in.High-in.Low))
			}
		}
	case "gaussian":
		if !(in.Width > 0) {
			return nil, fmt.Errorf("%w: gaussian initial state needs Width > 0", types.ErrInvalidArgument)
		}
		for i, xx := range x {
			arg := (xx - in.Center) / in.Width
			n[i] = amp * math.Exp(-arg*arg)
		}
	default:
		return nil, fmt.Errorf("%w: unknown initial state type %q", types.ErrInvalidArgument, in.Type)
	}
	return
}

// NewTerm converts a term description into a terms.Term. An empty Type is
// the constant Value.
func NewTerm(ts TermSpec) (tm terms.Term, err error) {
	v := ts.Value
	switch strings.ToLower(ts.Type) {
	case "", "constant":
		tm = terms.Constant(v)
	case "array":
		if len(ts.Values) == 0 {
			err = fmt.Errorf("%w: array term without Values", types.ErrInvalidArgument)
			return
		}
		tm = terms.Array(ts.Values)
	case "inverse":
		tm = terms.Function(func(n, x []float64) (r []float64) {
			r = make([]float64, len(x))
			for i := range x {
				r[i] = v / x[i]
			}
			return
		})
	case "linear":
		tm = terms.Function(func(n, x []float64) (r []float64) {
			r = make([]float64, len(n))
			for i := range n {
				r[i] = v * n[i]
			}
			return
		})
	case "ratio":
		tm = terms.Function(func(n, x []float64) (r []float64) {
			r = make([]float64, len(n))
			for i := range n {
				r[i] = n[i] / x[i]
			}
			return
		})
	default:
		err = fmt.Errorf("%w: unknown term type %q", types.ErrInvalidArgument, ts.Type)
	}
	return
}

// SolverConfig starts from solver.DefaultConfig and applies the file settings
func (ip *InputParameters1D) SolverConfig() (cfg solver.Config, err error) {
	cfg = solver.DefaultConfig()
	if ip.Scheme != "" {
		if cfg.Scheme, err = types.NewSchemeType(ip.Scheme); err != nil {
			return
		}
	}
	if ip.Stability != 0 {
		cfg.StabilityFactor = ip.Stability
	}
	if err = stability.CheckFactor(cfg.StabilityFactor); err != nil {
		return
	}
	cfg.StepCount = ip.StepCount
	cfg.TimeStep = ip.TimeStep
	cfg.Verbosity = ip.Verbosity
	return
}
