package derivative

// CentralWeights returns the unit spacing finite difference weights of the
// order-th derivative on the symmetric stencil -accuracy/2 ... accuracy/2.
// Index k of the result is the weight of offset k - accuracy/2.
func CentralWeights(order, accuracy int) (w []float64) {
	var (
		p       = accuracy / 2
		offsets = make([]float64, 2*p+1)
	)
	for k := range offsets {
		offsets[k] = float64(k - p)
	}
	c := fornberg(0, offsets, order)
	w = make([]float64, len(offsets))
	for k := range offsets {
		w[k] = c[k][order]
	}
	return
}

// fornberg computes weights c[j][k] of node j for derivatives k = 0..m at z
// B. Fornberg, "Generation of finite difference formulas on arbitrarily
// spaced grids", Math. Comp. 51 (1988), 699-706.
func fornberg(z float64, x []float64, m int) (c [][]float64) {
	var (
		n  = len(x)
		c1 = 1.
		c4 = x[0] - z
	)
	c = make([][]float64, n)
	for i := range c {
		c[i] = make([]float64, m+1)
	}
	c[0][0] = 1
	for i := 1; i < n; i++ {
		var (
			mn = min(i, m)
			c2 = 1.
			c5 = c4
		)
		c4 = x[i] - z
		for j := 0; j < i; j++ {
			c3 := x[i] - x[j]
			c2 *= c3
			if j == i-1 {
				for k := mn; k >= 1; k-- {
					c[i][k] = c1 * (float64(k)*c[i-1][k-1] - c5*c[i-1][k]) / c2
				}
				c[i][0] = -c1 * c5 * c[i-1][0] / c2
			}
			for k := mn; k >= 1; k-- {
				c[j][k] = (c4*c[j][k] - float64(k)*c[j][k-1]) / c3
			}
			c[j][0] = c4 * c[j][0] / c3
		}
		c1 = c2
	}
	return
}
