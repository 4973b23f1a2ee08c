/*
Package derivative implements central finite difference operators on
non-uniform one dimensional grids.

	Ord1Acc2: order=1, accuracy=2
	Ord1Acc4: order=1, accuracy=4
	Ord2Acc2: order=2, accuracy=2
	Ord2Acc4: order=2, accuracy=4
	Central:  order=1|2, any even accuracy

Edge nodes use one-sided formulas. Wider stencils are only applied where the
grid supports them, every other node keeps the lower accuracy value.
*/
package derivative

import (
	"fmt"

	"github.com/notargets/hypersolver/types"
)

// Ord1Acc2 panics if len(f) != len(x) or len(x) < 3
func Ord1Acc2(f, x []float64) (df []float64) {
	N := checkLengths(f, x)
	df = make([]float64, N)
	for i := 1; i < N-1; i++ {
		df[i] = (f[i+1] - f[i-1]) / (x[i+1] - x[i-1])
	}
	df[0] = (f[1] - f[0]) / (x[1] - x[0])
	df[N-1] = (f[N-1] - f[N-2]) / (x[N-1] - x[N-2])
	return
}

// Ord2Acc2 panics if len(f) != len(x) or len(x) < 3
func Ord2Acc2(f, x []float64) (d2f []float64) {
	N := checkLengths(f, x)
	d2f = make([]float64, N)
	for i := 1; i < N-1; i++ {
		h := 0.5 * (x[i+1] - x[i-1])
		d2f[i] = (f[i+1] - 2.*f[i] + f[i-1]) / (h * h)
	}
	h0 := x[1] - x[0]
	d2f[0] = (f[2] - 2.*f[1] + f[0]) / (h0 * h0)
	hN := x[N-1] - x[N-2]
	d2f[N-1] = (f[N-1] - 2.*f[N-2] + f[N-3]) / (hN * hN)
	return
}

func Ord1Acc4(f, x []float64) []float64 { return mustCentral(f, x, 1, 4) }

func Ord2Acc4(f, x []float64) []float64 { return mustCentral(f, x, 2, 4) }

// Central computes the order-th derivative (1 or 2) with the requested even
// accuracy. Accuracy 2 is computed first, then each wider stencil refines
// the nodes at least accuracy/2 away from both edges while the remaining
// nodes keep the previous accuracy.
func Central(f, x []float64, order, accuracy int) (d []float64, err error) {
	if len(f) != len(x) {
		err = fmt.Errorf("%w: len(f) = %d, len(x) = %d", types.ErrShape, len(f), len(x))
		return
	}
	if len(x) < 3 {
		err = fmt.Errorf("%w: need at least 3 grid points, have %d", types.ErrShape, len(x))
		return
	}
	if accuracy < 2 || accuracy%2 == 1 {
		err = fmt.Errorf("%w: accuracy must be a positive even integer, have %d", types.ErrInvalidArgument, accuracy)
		return
	}
	switch order {
	case 1:
		d = Ord1Acc2(f, x)
	case 2:
		d = Ord2Acc2(f, x)
	default:
		err = fmt.Errorf("%w: derivative order %d not supported", types.ErrInvalidArgument, order)
		return
	}
	for acc := 4; acc <= accuracy; acc += 2 {
		d = refine(d, f, x, order, acc)
	}
	return
}

func refine(prev, f, x []float64, order, accuracy int) (d []float64) {
	var (
		N = len(x)
		p = accuracy / 2
		c = CentralWeights(order, accuracy)
	)
	d = make([]float64, N)
	copy(d, prev)
	if N < 2*p+1 {
		return
	}
	for i := p; i < N-p; i++ {
		var sum float64
		for k := 1; k <= p; k++ {
			h := (x[i+k] - x[i-k]) / float64(2*k)
			switch order {
			case 1:
				sum += c[p+k] * (f[i+k] - f[i-k]) / h
			case 2:
				sum += c[p+k] * (f[i+k] - 2.*f[i] + f[i-k]) / (h * h)
			}
		}
		d[i] = sum
	}
	return
}

func mustCentral(f, x []float64, order, accuracy int) (d []float64) {
	var err error
	checkLengths(f, x)
	if d, err = Central(f, x, order, accuracy); err != nil {
		panic(err)
	}
	return
}

func checkLengths(f, x []float64) (N int) {
	N = len(x)
	if len(f) != N {
		panic(fmt.Errorf("%w: len(f) = %d, len(x) = %d", types.ErrShape, len(f), N))
	}
	if N < 3 {
		panic(fmt.Errorf("%w: need at least 3 grid points, have %d", types.ErrShape, N))
	}
	return
}
