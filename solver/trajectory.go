package solver

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
)

type Sample struct {
	Time  float64
	State []float64
}

// Trajectory is the subsampled time history of a solve. The first sample is
// the initial state and the last is the state at the end of the span.
type Trajectory struct {
	Grid    []float64
	Samples []Sample
	// Steps is the number of time steps taken
	Steps int

	t0, interval float64
	next         int
}

func newTrajectory(grid, initial []float64, span TimeSpan, sampleCap int) (tr *Trajectory) {
	tr = &Trajectory{
		Grid:     grid,
		Samples:  make([]Sample, 0, sampleCap+1),
		t0:       span.Start,
		interval: span.Length() / float64(sampleCap),
		next:     1,
	}
	tr.Samples = append(tr.Samples, Sample{Time: span.Start, State: initial})
	return
}

// record keeps the state if t has reached the next checkpoint t0 + k·interval
func (tr *Trajectory) record(t float64, state []float64, final bool) {
	checkpoint := tr.t0 + float64(tr.next)*tr.interval
	if !final && t < checkpoint-1.e-9*tr.interval {
		return
	}
	tr.Samples = append(tr.Samples, Sample{Time: t, State: state})
	tr.next = int(math.Floor((t-tr.t0)/tr.interval+1.e-9)) + 1
}

func (tr *Trajectory) Len() int { return len(tr.Samples) }

func (tr *Trajectory) At(i int) Sample { return tr.Samples[i] }

func (tr *Trajectory) Final() Sample { return tr.Samples[len(tr.Samples)-1] }

func (tr *Trajectory) Times() (times []float64) {
	times = make([]float64, len(tr.Samples))
	for i, s := range tr.Samples {
		times[i] = s.Time
	}
	return
}

// States returns the samples as rows of a time by node matrix
func (tr *Trajectory) States() (states [][]float64) {
	states = make([][]float64, len(tr.Samples))
	for i, s := range tr.Samples {
		states[i] = s.State
	}
	return
}

// WriteCSV writes a header of grid coordinates followed by one row per
// sample, the time in the first column
func (tr *Trajectory) WriteCSV(w io.Writer) (err error) {
	cw := csv.NewWriter(w)
	row := make([]string, len(tr.Grid)+1)
	row[0] = "t"
	for i, x := range tr.Grid {
		row[i+1] = format(x)
	}
	if err = cw.Write(row); err != nil {
		return
	}
	for _, s := range tr.Samples {
		row[0] = format(s.Time)
		for i, v := range s.State {
			row[i+1] = format(v)
		}
		if err = cw.Write(row); err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}

func format(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
