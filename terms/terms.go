/*
Package terms normalizes the flux (f) and sink (g) terms of

	∂n/∂t + ∂(fn)/∂x = g

into per-node arrays. A term is either a constant, an array already laid
out on the grid, or a function of the evolving state.
*/
package terms

import (
	"fmt"

	"github.com/notargets/hypersolver/types"
	"github.com/notargets/hypersolver/utils"
)

type Kind uint8

const (
	ConstantKind Kind = iota
	ArrayKind
	FunctionKind
)

func (k Kind) String() string {
	switch k {
	case ConstantKind:
		return "constant"
	case ArrayKind:
		return "array"
	case FunctionKind:
		return "function"
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Func evaluates a term at the current state, grid and time.
type Func func(state, grid []float64, t float64) []float64

// Term is the tagged variant {Constant, Array, Function}. The zero value is
// Constant(0), an absent sink.
type Term struct {
	kind   Kind
	value  float64
	values []float64
	fn     Func
}

func Constant(value float64) Term { return Term{kind: ConstantKind, value: value} }

func Array(values []float64) Term { return Term{kind: ArrayKind, values: values} }

// Function wraps a term that depends on the state and grid only
func Function(fn func(state, grid []float64) []float64) Term {
	return Term{kind: FunctionKind, fn: func(state, grid []float64, _ float64) []float64 {
		return fn(state, grid)
	}}
}

// TimeFunction wraps a term that also depends on time
func TimeFunction(fn Func) Term { return Term{kind: FunctionKind, fn: fn} }

func (tm Term) Kind() Kind { return tm.kind }

// IsFunction reports whether the term must be re-evaluated every step
func (tm Term) IsFunction() bool { return tm.kind == FunctionKind && tm.fn != nil }

func (tm Term) String() string {
	switch tm.kind {
	case ConstantKind:
		return fmt.Sprintf("constant(%g)", tm.value)
	case ArrayKind:
		return fmt.Sprintf("array[%d]", len(tm.values))
	}
	return "function"
}

// Normalize produces an array of len(state). The state is the reference
// array and, for function terms, the argument passed to the function.
// Arrays of matching length are returned as is, without a copy.
func (tm Term) Normalize(state, grid []float64, t float64) (r []float64, err error) {
	switch tm.kind {
	case ConstantKind:
		r = utils.ConstArray(len(state), tm.value)
	case ArrayKind:
		r, err = conform(tm.values, len(state))
	case FunctionKind:
		if tm.fn == nil {
			err = fmt.Errorf("%w: nil term function", types.ErrInvalidArgument)
			return
		}
		if r, err = conform(tm.fn(state, grid, t), len(state)); err != nil {
			err = fmt.Errorf("function term result: %w", err)
		}
	default:
		err = fmt.Errorf("%w: unknown term kind %v", types.ErrInvalidArgument, tm.kind)
	}
	return
}

// Normalize is a convenience for tm.Normalize
func Normalize(tm Term, state, grid []float64, t float64) ([]float64, error) {
	return tm.Normalize(state, grid, t)
}

func conform(values []float64, N int) (r []float64, err error) {
	switch len(values) {
	case N:
		r = values
	case 1:
		r = utils.ConstArray(N, values[0])
	default:
		err = fmt.Errorf("%w: term has %d values, state has %d", types.ErrShape, len(values), N)
	}
	return
}
