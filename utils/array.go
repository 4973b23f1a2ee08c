package utils

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Linspace returns N evenly spaced values from min to max inclusive
func Linspace(min, max float64, N int) (v []float64) {
	if N < 2 {
		return []float64{min}
	}
	v = make([]float64, N)
	return floats.Span(v, min, max)
}

func Copy(v []float64) (r []float64) {
	r = make([]float64, len(v))
	copy(r, v)
	return
}

// IsFinite reports whether every value is neither NaN nor ±Inf
func IsFinite(v []float64) bool {
	return FirstNonFinite(v) < 0
}

// FirstNonFinite returns the index of the first NaN or ±Inf value, or -1
func FirstNonFinite(v []float64) int {
	for i, val := range v {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return i
		}
	}
	return -1
}

// StrictlyIncreasing reports whether x[i+1] > x[i] for all i
func StrictlyIncreasing(x []float64) bool {
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return false
		}
	}
	return true
}

// MinSpacing is the smallest gap between adjacent coordinates
func MinSpacing(x []float64) (dxMin float64) {
	dxMin = math.Inf(1)
	for i := 1; i < len(x); i++ {
		if dx := x[i] - x[i-1]; dx < dxMin {
			dxMin = dx
		}
	}
	return
}

// AbsMax is max(|v|)
func AbsMax(v []float64) (m float64) {
	for _, val := range v {
		if a := math.Abs(val); a > m {
			m = a
		}
	}
	return
}

// MinMax returns floats.Min and floats.Max of a non-empty slice
func MinMax(v []float64) (min, max float64) {
	return floats.Min(v), floats.Max(v)
}

// ConstArray returns N copies of val
func ConstArray(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}
