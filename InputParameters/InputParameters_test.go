package InputParameters

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/hypersolver/types"
)

var fileInput = []byte(`
Title: Decaying Pulse
Scheme: lax_friedrichs
Stability: 0.9
TimeSpan: [0, 2]
Grid:
  Min: 1
  Max: 10
  Points: 100
Initial:
  Type: indicator # Can be constant, sine or gaussian
  Low: 4
  High: 6
Flux:
  Type: inverse
  Value: 5
Sink:
  Type: linear
  Value: -0.01
`)

func TestParse(t *testing.T) {
	var input InputParameters1D
	require.NoError(t, input.Parse(fileInput))
	assert.Equal(t, "Decaying Pulse", input.Title)
	assert.Equal(t, []float64{0, 2}, input.TimeSpan)
	assert.Equal(t, 100, input.Grid.Points)
	assert.Equal(t, "inverse", input.Flux.Type)
	assert.Equal(t, -0.01, input.Sink.Value)

	var buf bytes.Buffer
	input.Fprint(&buf)
	assert.Contains(t, buf.String(), "\"Decaying Pulse\"")
	assert.Contains(t, buf.String(), "[lax_friedrichs]")

	span, err := input.Span()
	require.NoError(t, err)
	assert.Equal(t, 2., span.End)

	x, err := input.NewGrid()
	require.NoError(t, err)
	assert.Equal(t, 100, len(x))

	n, err := input.InitialState(x)
	require.NoError(t, err)
	for i := range x {
		if x[i] > 4 && x[i] <= 6 {
			assert.Equal(t, 1., n[i])
		} else {
			assert.Equal(t, 0., n[i])
		}
	}

	cfg, err := input.SolverConfig()
	require.NoError(t, err)
	assert.Equal(t, types.LaxFriedrichs, cfg.Scheme)
	assert.Equal(t, 0.9, cfg.StabilityFactor)

	flux, err := NewTerm(input.Flux)
	require.NoError(t, err)
	assert.True(t, flux.IsFunction())
	f, err := flux.Normalize(n, x, 0)
	require.NoError(t, err)
	assert.InDelta(t, 5., f[0], 1.e-12)
	assert.InDelta(t, 0.5, f[99], 1.e-12)
	sink, err := NewTerm(input.Sink)
	require.NoError(t, err)
	g, err := sink.Normalize(n, x, 0)
	require.NoError(t, err)
	assert.InDelta(t, -0.01*n[50], g[50], 1.e-15)
}

func TestTermsAndShapes(t *testing.T) {
	x := []float64{1, 2, 4}
	{
		tm, err := NewTerm(TermSpec{})
		require.NoError(t, err)
		v, err := tm.Normalize([]float64{1, 1, 1}, x, 0)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0, 0}, v)
	}
	{
		tm, err := NewTerm(TermSpec{Type: "ratio"})
		require.NoError(t, err)
		v, err := tm.Normalize([]float64{2, 2, 2}, x, 0)
		require.NoError(t, err)
		assert.Equal(t, []float64{2, 1, 0.5}, v)
	}
	{
		tm, err := NewTerm(TermSpec{Type: "Array", Values: []float64{3}})
		require.NoError(t, err)
		v, err := tm.Normalize([]float64{2, 2, 2}, x, 0)
		require.NoError(t, err)
		assert.Equal(t, []float64{3, 3, 3}, v)
	}
	_, err := NewTerm(TermSpec{Type: "array"})
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
	_, err = NewTerm(TermSpec{Type: "cubic"})
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))

	ip := &InputParameters1D{Initial: InitialSpec{Type: "gaussian", Center: 2, Width: 1, Value: 3}}
	n, err := ip.InitialState(x)
	require.NoError(t, err)
	assert.InDelta(t, 3, n[1], 1.e-15)
	assert.InDelta(t, 3*math.Exp(-1), n[0], 1.e-15)
	ip.Initial = InitialSpec{Type: "sine", Low: 1, High: 3}
	n, err = ip.InitialState(x)
	require.NoError(t, err)
	assert.InDelta(t, 1, n[1], 1.e-15)
	assert.Equal(t, 0., n[2])
	ip.Initial = InitialSpec{Type: "constant", Value: 2}
	n, err = ip.InitialState(x)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2, 2}, n)
	ip.Initial = InitialSpec{Type: "step"}
	_, err = ip.InitialState(x)
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))

	_, err = ip.Span()
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
	_, err = ip.NewGrid()
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
	ip.Scheme = "crank_nicolson"
	_, err = ip.SolverConfig()
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
	ip.Scheme, ip.Stability = "rk2", 2
	_, err = ip.SolverConfig()
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
}
