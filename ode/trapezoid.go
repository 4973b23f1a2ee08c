package ode

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/hypersolver/types"
	"github.com/notargets/hypersolver/utils"
)

type integrator struct {
	sys                    System
	n, kl, ku              int
	s                      Settings
	jac                    *mat.BandDense
	f0, fz, res            []float64
	evaluations, jacobians int
}

func newIntegrator(sys System, n, kl, ku int, s Settings) *integrator {
	if kl > n-1 {
		kl = n - 1
	}
	if ku > n-1 {
		ku = n - 1
	}
	return &integrator{
		sys: sys, n: n, kl: kl, ku: ku, s: s,
		f0:  make([]float64, n),
		fz:  make([]float64, n),
		res: make([]float64, n),
	}
}

func (ig *integrator) derive(t float64, y, dy []float64) (err error) {
	ig.sys.Derive(t, y, dy)
	ig.evaluations++
	if i := utils.FirstNonFinite(dy); i >= 0 {
		err = fmt.Errorf("%w: non-finite derivative in component %d at t = %v", types.ErrIntegration, i, t)
	}
	return
}

// doubleStep takes one trapezoidal step of h and two of h/2 from (t, y). It
// returns the two half step result with the scaled error norm, or a nil
// state when the implicit solve failed and the step should shrink.
func (ig *integrator) doubleStep(t, h float64, y []float64) (yNew []float64, errNorm float64, err error) {
	if err = ig.jacobian(t, y); err != nil {
		return
	}
	var full, half []float64
	if full, err = ig.trapezoid(t, h, y); err != nil || full == nil {
		return
	}
	if half, err = ig.trapezoid(t, h/2, y); err != nil || half == nil {
		return
	}
	if yNew, err = ig.trapezoid(t+h/2, h/2, half); err != nil || yNew == nil {
		return
	}
	for i := range yNew {
		e := math.Abs(yNew[i]-full[i]) / 3
		sc := ig.s.AbsTol + ig.s.RelTol*math.Max(math.Abs(y[i]), math.Abs(yNew[i]))
		errNorm = math.Max(errNorm, e/sc)
	}
	return
}

// trapezoid solves z = y + h/2 (F(t, y) + F(t+h, z)) with modified Newton
func (ig *integrator) trapezoid(t, h float64, y []float64) (z []float64, err error) {
	if err = ig.derive(t, y, ig.f0); err != nil {
		return
	}
	z = make([]float64, ig.n)
	for i := range z {
		z[i] = y[i] + h*ig.f0[i]
	}
	var (
		M     = ig.newtonMatrix(h)
		delta mat.VecDense
	)
	for it := 0; it < ig.s.MaxNewton; it++ {
		if ig.derive(t+h, z, ig.fz) != nil {
			return nil, nil
		}
		for i := range ig.res {
			ig.res[i] = z[i] - y[i] - 0.5*h*(ig.f0[i]+ig.fz[i])
		}
		if !solved(delta.SolveVec(M, mat.NewVecDense(ig.n, ig.res))) {
			return nil, nil
		}
		var norm float64
		for i := range z {
			d := delta.AtVec(i)
			z[i] -= d
			norm = math.Max(norm, math.Abs(d)/(ig.s.AbsTol+ig.s.RelTol*math.Abs(z[i])))
		}
		if math.IsNaN(norm) || math.IsInf(norm, 0) {
			return nil, nil
		}
		if norm < newtonTol {
			return z, nil
		}
	}
	return nil, nil
}

// solved accepts a solve that only reported poor conditioning
func solved(err error) bool {
	if err == nil {
		return true
	}
	var cond mat.Condition
	return errors.As(err, &cond) && !math.IsInf(float64(cond), 1)
}

func (ig *integrator) newtonMatrix(h float64) (M *mat.BandDense) {
	M = mat.NewBandDense(ig.n, ig.n, ig.kl, ig.ku, nil)
	for j := 0; j < ig.n; j++ {
		iMin, iMax := ig.rows(j)
		for i := iMin; i <= iMax; i++ {
			v := -0.5 * h * ig.jac.At(i, j)
			if i == j {
				v += 1
			}
			M.SetBand(i, j, v)
		}
	}
	return
}

// rows is the range of rows in the band of column j
func (ig *integrator) rows(j int) (iMin, iMax int) {
	iMin, iMax = j-ig.ku, j+ig.kl
	if iMin < 0 {
		iMin = 0
	}
	if iMax > ig.n-1 {
		iMax = ig.n - 1
	}
	return
}

// jacobian forms dF/dy by forward differences. Columns further apart than
// the bandwidth touch disjoint rows, so they are perturbed together.
func (ig *integrator) jacobian(t float64, y []float64) (err error) {
	ig.jacobians++
	var (
		n     = ig.n
		width = ig.kl + ig.ku + 1
		yp    = make([]float64, n)
		f1    = make([]float64, n)
		dy    = make([]float64, n)
		eps   = math.Sqrt(2.2e-16)
	)
	if err = ig.derive(t, y, ig.f0); err != nil {
		return
	}
	if width > n {
		width = n
	}
	ig.jac = mat.NewBandDense(n, n, ig.kl, ig.ku, nil)
	for group := 0; group < width; group++ {
		copy(yp, y)
		for j := group; j < n; j += width {
			yp[j] = y[j] + eps*math.Max(math.Abs(y[j]), 1)
			dy[j] = yp[j] - y[j]
		}
		if err = ig.derive(t, yp, f1); err != nil {
			return
		}
		for j := group; j < n; j += width {
			iMin, iMax := ig.rows(j)
			for i := iMin; i <= iMax; i++ {
				ig.jac.SetBand(i, j, (f1[i]-ig.f0[i])/dy[j])
			}
		}
	}
	return
}
