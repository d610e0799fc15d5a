package dsp

// Cubic4 performs third-order Lagrange interpolation over four neighboring
// samples, evaluating between x1 and x2 at the fractional offset frac
// (0.0 to 1.0). frac == 0 returns x1 exactly and frac == 1 returns x2
// exactly, so reads at integer positions reproduce the source.
func Cubic4(x0, x1, x2, x3, frac float32) float32 {
	c0 := x1
	c1 := x2 - x0/3.0 - x1/2.0 - x3/6.0
	c2 := x0/2.0 - x1 + x2/2.0
	c3 := x1/2.0 - x2/2.0 + (x3-x0)/6.0

	return c0 + frac*(c1+frac*(c2+frac*c3))
}

// FlushDenormals converts denormal numbers to zero to avoid performance issues
func FlushDenormals(x float32) float32 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0.0
	}
	return x
}
