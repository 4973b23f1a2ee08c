package solver

import (
	"fmt"
	"io"
	"os"

	"github.com/notargets/hypersolver/stability"
	"github.com/notargets/hypersolver/types"
)

const (
	DefaultSampleCap    = 100
	DefaultLogFrequency = 50
	DefaultMaxSteps     = 10000000
)

type Config struct {
	Scheme types.SchemeType
	// StabilityFactor λ scales the CFL step, in (0, 1]
	StabilityFactor float64
	// StepCount divides the span for the schemes that are not CFL limited,
	// stability.DefaultFixedSteps when zero
	StepCount int
	// TimeStep, if > 0, overrides the step size of every scheme
	TimeStep float64
	// SampleCap is the number of samples recorded after the initial state
	SampleCap    int
	Verbosity    int
	LogFrequency int
	Log          io.Writer
	MaxSteps     int
}

func DefaultConfig() Config {
	return Config{
		Scheme:          types.LaxFriedrichs,
		StabilityFactor: stability.DefaultFactor,
		SampleCap:       DefaultSampleCap,
		LogFrequency:    DefaultLogFrequency,
		Log:             os.Stdout,
		MaxSteps:        DefaultMaxSteps,
	}
}

// withDefaults fills every zero field from DefaultConfig and validates the rest
func (c Config) withDefaults() (cc Config, err error) {
	def := DefaultConfig()
	cc = c
	if cc.StabilityFactor == 0 {
		cc.StabilityFactor = def.StabilityFactor
	}
	if cc.SampleCap == 0 {
		cc.SampleCap = def.SampleCap
	}
	if cc.LogFrequency == 0 {
		cc.LogFrequency = def.LogFrequency
	}
	if cc.Log == nil {
		cc.Log = def.Log
	}
	if cc.MaxSteps == 0 {
		cc.MaxSteps = def.MaxSteps
	}
	switch {
	case cc.StepCount < 0:
		err = fmt.Errorf("%w: StepCount = %d", types.ErrInvalidArgument, cc.StepCount)
	case cc.TimeStep < 0:
		err = fmt.Errorf("%w: TimeStep = %v", types.ErrInvalidArgument, cc.TimeStep)
	case cc.SampleCap < 0:
		err = fmt.Errorf("%w: SampleCap = %d", types.ErrInvalidArgument, cc.SampleCap)
	case cc.LogFrequency < 0:
		err = fmt.Errorf("%w: LogFrequency = %d", types.ErrInvalidArgument, cc.LogFrequency)
	case cc.MaxSteps < 0:
		err = fmt.Errorf("%w: MaxSteps = %d", types.ErrInvalidArgument, cc.MaxSteps)
	default:
		err = stability.CheckFactor(cc.StabilityFactor)
	}
	return
}

type TimeSpan struct {
	Start, End float64
}

func (ts TimeSpan) Length() float64 { return ts.End - ts.Start }
