package ode

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/hypersolver/types"
)

type diffusion struct {
	n int
}

func (d diffusion) Dim() int                { return d.n }
func (d diffusion) Bandwidth() (kl, ku int) { return 1, 1 }
func (d diffusion) Derive(t float64, y, dy []float64) {
	for i := range y {
		var left, right float64
		if i > 0 {
			left = y[i-1]
		}
		if i < d.n-1 {
			right = y[i+1]
		}
		dy[i] = left - 2*y[i] + right
	}
}

func TestExponentialDecay(t *testing.T) {
	k := 2.
	sys := Func{N: 1, Fn: func(t float64, y, dy []float64) { dy[0] = -k * y[0] }}
	y0 := []float64{1}
	y, stat, err := Integrate(sys, 0, 1, y0, DefaultSettings())
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-k), y[0], 1.e-4)
	assert.Equal(t, 1., y0[0])
	assert.Equal(t, 1., stat.CurrentTime)
	assert.True(t, stat.Steps > 1)
	assert.True(t, stat.Evaluations > stat.Steps)
	{ // Time dependent right hand side, y' = cos(t)
		sys := Func{N: 1, Fn: func(t float64, y, dy []float64) { dy[0] = math.Cos(t) }}
		y, _, err := Integrate(sys, 0, 2, []float64{0}, DefaultSettings())
		require.NoError(t, err)
		assert.InDelta(t, math.Sin(2), y[0], 1.e-4)
	}
}

func TestStiffSystem(t *testing.T) {
	var (
		N    = 10
		rate = make([]float64, N)
		y0   = make([]float64, N)
	)
	for i := range rate {
		rate[i] = 1
		if i%2 == 0 {
			rate[i] = 1.e4
		}
		y0[i] = 1
	}
	sys := Func{N: N, Fn: func(t float64, y, dy []float64) {
		for i := range y {
			dy[i] = -rate[i] * y[i]
		}
	}}
	y, stat, err := Integrate(sys, 0, 1, y0, DefaultSettings())
	require.NoError(t, err)
	for i := range y {
		if i%2 == 0 {
			assert.InDelta(t, 0, y[i], 1.e-4)
		} else {
			assert.InDelta(t, math.Exp(-1), y[i], 1.e-4)
		}
	}
	// An explicit method would need more than 5000 steps to stay stable
	assert.True(t, stat.Steps < 5000)
}

func TestBandedMatchesDense(t *testing.T) {
	N := 20
	y0 := make([]float64, N)
	for i := range y0 {
		y0[i] = math.Sin(math.Pi * float64(i) / float64(N-1))
	}
	banded := diffusion{n: N}
	dense := Func{N: N, Fn: banded.Derive}
	yb, _, err := Integrate(banded, 0, 0.5, y0, DefaultSettings())
	require.NoError(t, err)
	yd, _, err := Integrate(dense, 0, 0.5, y0, DefaultSettings())
	require.NoError(t, err)
	assert.InDeltaSlice(t, yd, yb, 1.e-5)
}

func TestIntegrationErrors(t *testing.T) {
	{
		sys := Func{N: 2, Fn: func(t float64, y, dy []float64) {
			dy[0], dy[1] = math.NaN(), 0
		}}
		_, _, err := Integrate(sys, 0, 1, []float64{1, 1}, DefaultSettings())
		assert.True(t, errors.Is(err, types.ErrIntegration))
	}
	{
		sys := Func{N: 2, Fn: func(t float64, y, dy []float64) {}}
		_, _, err := Integrate(sys, 0, 1, []float64{1}, DefaultSettings())
		assert.True(t, errors.Is(err, types.ErrShape))
		_, _, err = Integrate(sys, 1, 1, []float64{1, 1}, DefaultSettings())
		assert.True(t, errors.Is(err, types.ErrInvalidArgument))
	}
	{ // Finite time blow up of y' = y^2 from y(0) = 1 at t = 1
		sys := Func{N: 1, Fn: func(t float64, y, dy []float64) { dy[0] = y[0] * y[0] }}
		s := DefaultSettings()
		s.MaxSteps = 500
		_, _, err := Integrate(sys, 0, 2, []float64{1}, s)
		assert.True(t, errors.Is(err, types.ErrIntegration))
	}
}
