package cmd

import (
	"fmt"
	"os"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/viper"

	"github.com/notargets/hypersolver/model_problems"
	"github.com/notargets/hypersolver/solver"
	"github.com/notargets/hypersolver/stability"
	"github.com/notargets/hypersolver/types"
)

// Settings are the command line overrides of a problem configuration. Empty
// values fall back to HS_METHOD, HS_STABILITY and HS_VERBOSITY, then to the
// problem itself.
type Settings struct {
	Scheme    string
	Stability float64
}

func (s Settings) Apply(cfg *solver.Config) (err error) {
	scheme := s.Scheme
	if scheme == "" {
		scheme = viper.GetString("method")
	}
	if scheme != "" {
		if cfg.Scheme, err = types.NewSchemeType(scheme); err != nil {
			return
		}
	}
	lambda := s.Stability
	if lambda == 0 {
		lambda = viper.GetFloat64("stability")
	}
	if lambda != 0 {
		if err = stability.CheckFactor(lambda); err != nil {
			return
		}
		cfg.StabilityFactor = lambda
	}
	if v := viper.GetInt("verbosity"); v != 0 {
		cfg.Verbosity = v
	}
	return
}

func solveAndReport(p *model_problems.Problem, output string, plot bool) (err error) {
	var tr *solver.Trajectory
	if tr, err = p.Solve(); err != nil {
		return
	}
	final := tr.Final()
	fmt.Printf("Time = %8.4f, steps = %d, samples = %d\n", final.Time, tr.Steps, tr.Len())
	if plot {
		fmt.Println(asciigraph.Plot(final.State,
			asciigraph.Height(15), asciigraph.Width(72),
			asciigraph.Caption(fmt.Sprintf("n(x), t = %g", final.Time))))
	}
	return writeOutput(tr, output)
}

func writeOutput(tr *solver.Trajectory, output string) (err error) {
	switch output {
	case "":
		return
	case "-":
		return tr.WriteCSV(os.Stdout)
	}
	var f *os.File
	if f, err = os.Create(output); err != nil {
		return
	}
	if err = tr.WriteCSV(f); err != nil {
		_ = f.Close()
		return
	}
	return f.Close()
}
