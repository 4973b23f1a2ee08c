package utils

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/hypersolver/types"
)

func TestArray(t *testing.T) {
	{
		x := Linspace(1, 10, 100)
		assert.Equal(t, 100, len(x))
		assert.Equal(t, 1., x[0])
		assert.Equal(t, 10., x[99])
		assert.InDelta(t, 9./99., MinSpacing(x), 1.e-12)
		assert.True(t, StrictlyIncreasing(x))
		assert.Equal(t, []float64{3}, Linspace(3, 5, 1))
	}
	{
		assert.False(t, StrictlyIncreasing([]float64{1, 2, 2, 3}))
		assert.True(t, IsFinite([]float64{1, -2, 0}))
		assert.Equal(t, 1, FirstNonFinite([]float64{1, math.NaN(), math.Inf(1)}))
		assert.Equal(t, 2, FirstNonFinite([]float64{1, 0, math.Inf(-1)}))
		assert.Equal(t, 5., AbsMax([]float64{1, -5, 3}))
		min, max := MinMax([]float64{4, -1, 7})
		assert.Equal(t, -1., min)
		assert.Equal(t, 7., max)
	}
	{
		v := []float64{1, 2}
		c := Copy(v)
		c[0] = 9
		assert.Equal(t, 1., v[0])
		assert.Equal(t, []float64{2, 2, 2}, ConstArray(3, 2))
	}
}

func TestResample(t *testing.T) {
	{ // A cubic is reproduced exactly inside the hull
		xs := []float64{0, 0.5, 1.5, 2, 3, 4}
		ys := make([]float64, len(xs))
		for i, x := range xs {
			ys[i] = x*x*x - 2*x + 1
		}
		grid := []float64{-1, 0, 0.25, 1, 2.5, 3.9, 4, 5}
		r, err := Resample(xs, ys, grid, 0)
		require.NoError(t, err)
		for i, x := range grid {
			if x < 0 || x > 4 {
				assert.Equal(t, 0., r[i])
				continue
			}
			assert.InDelta(t, x*x*x-2*x+1, r[i], 1.e-9)
		}
	}
	{ // Linear fallback for short inputs
		r, err := Resample([]float64{0, 1, 2}, []float64{0, 2, 4}, []float64{0.5, 1.5, 3}, -1)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{1, 3, -1}, r, 1.e-12)
	}
	{
		_, err := Resample([]float64{0, 2, 1, 3}, []float64{0, 0, 0, 0}, []float64{1}, 0)
		assert.True(t, errors.Is(err, types.ErrInvalidArgument))
		_, err = Resample([]float64{0, 1}, []float64{0}, []float64{1}, 0)
		assert.True(t, errors.Is(err, types.ErrShape))
	}
}
