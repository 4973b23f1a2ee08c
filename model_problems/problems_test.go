package model_problems

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/hypersolver/InputParameters"
	"github.com/notargets/hypersolver/types"
	"github.com/notargets/hypersolver/utils"
)

func TestModelTypes(t *testing.T) {
	for i, name := range ModelNames() {
		mt, err := NewModelType(name)
		require.NoError(t, err)
		assert.Equal(t, ModelType(i), mt)
		assert.Equal(t, name, mt.String())
	}
	_, err := NewModelType("burgers")
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
	_, err = New(ModelType(7), 0, 0)
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
	_, err = New(M_Growth, 2, 0)
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
}

func TestAdvection(t *testing.T) {
	p, err := New(M_Advection, 0, 3)
	require.NoError(t, err)
	tr, err := p.Solve()
	require.NoError(t, err)
	assert.Equal(t, 3., tr.Final().Time)
	final := tr.Final().State
	for i, x := range p.Grid {
		arg := (x - 5) / 0.5
		assert.InDelta(t, math.Exp(-arg*arg), final[i], 0.05)
	}
}

func TestDecayingPulse(t *testing.T) {
	p, err := New(M_DecayingPulse, 0, 0)
	require.NoError(t, err)
	require.True(t, p.Flux.IsFunction())
	require.True(t, p.Sink.IsFunction())
	f, err := p.Flux.Normalize(p.Initial, p.Grid, 0)
	require.NoError(t, err)
	assert.InDelta(t, 5., f[0], 1.e-14)
	assert.InDelta(t, 0.5, f[len(f)-1], 1.e-14)
	tr, err := p.Solve()
	require.NoError(t, err)
	assert.Equal(t, 101, tr.Len())
	assert.Equal(t, 2., tr.Final().Time)
	for _, s := range tr.Samples {
		assert.True(t, utils.IsFinite(s.State))
	}
}

func TestDecayingPulseCharacteristics(t *testing.T) {
	p, err := New(M_DecayingPulse, 0, 0)
	require.NoError(t, err)
	p.Config.Scheme = types.MethodOfCharacteristics
	tr, err := p.Solve()
	require.NoError(t, err)
	assert.Equal(t, 5, tr.Steps)
	assert.Equal(t, 2., tr.Final().Time)
	final := tr.Final().State
	require.True(t, utils.IsFinite(final))
	// Each step the characteristic leaving x = 1 reaches sqrt(1 + 10 dt)
	for i, x := range p.Grid {
		if x < math.Sqrt(1+10*0.4) {
			assert.Equal(t, 0., final[i], "node %d", i)
		}
	}
}

func TestGrowth(t *testing.T) {
	p, err := New(M_Growth, 0, 0)
	require.NoError(t, err)
	require.True(t, p.Flux.IsFunction())
	tr, err := p.Solve()
	require.NoError(t, err)
	assert.Equal(t, 100, tr.Steps)
	final := tr.Final().State
	for i, x := range p.Grid {
		exact := math.Exp(2 / x)
		assert.InDelta(t, exact, final[i], 1.e-3*exact)
	}
}

func TestNewFromInput(t *testing.T) {
	ip := &InputParameters.InputParameters1D{}
	require.NoError(t, ip.Parse([]byte(`
Title: Characteristics
Scheme: moc
StepCount: 4
TimeSpan: [0, 1]
Grid: {Min: 0, Max: 10, Points: 101}
Initial: {Type: gaussian, Center: 3, Width: 0.5}
Flux: {Value: 1}
`)))
	p, err := NewFromInput(ip)
	require.NoError(t, err)
	assert.Equal(t, types.MethodOfCharacteristics, p.Config.Scheme)
	tr, err := p.Solve()
	require.NoError(t, err)
	assert.Equal(t, 4, tr.Steps)
	for i, x := range p.Grid {
		arg := (x - 4) / 0.5
		assert.InDelta(t, math.Exp(-arg*arg), tr.Final().State[i], 5.e-3)
	}
	ip.Flux.Type = "quadratic"
	_, err = NewFromInput(ip)
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
}
