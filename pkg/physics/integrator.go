package physics

// Derivative computes dx/dt for the state vector x at time t, writing the
// result into xDot. Both slices have the same length and must not be
// retained.
type Derivative func(t float64, x, xDot []float64)

// integrationSubsteps is the number of substeps per integration interval.
const integrationSubsteps = 10

// Integrate advances the state vector x from tStart to tEnd in place using
// the classic fourth-order Runge-Kutta method with a fixed substep size. A
// zero-length interval leaves x untouched.
func Integrate(f Derivative, x []float64, tStart, tEnd float64) {
	if tEnd == tStart {
		return
	}
	dt := (tEnd - tStart) / integrationSubsteps

	n := len(x)
	k1 := make([]float64, n)
	k2 := make([]float64, n)
	k3 := make([]float64, n)
	k4 := make([]float64, n)
	scratch := make([]float64, n)

	t := tStart
	for step := 0; step < integrationSubsteps; step++ {
		f(t, x, k1)

		for i := range x {
			scratch[i] = x[i] + dt/2*k1[i]
		}
		f(t+dt/2, scratch, k2)

		for i := range x {
			scratch[i] = x[i] + dt/2*k2[i]
		}
		f(t+dt/2, scratch, k3)

		for i := range x {
			scratch[i] = x[i] + dt*k3[i]
		}
		f(t+dt, scratch, k4)

		for i := range x {
			x[i] += dt / 6 * (k1[i] + 2*k2[i] + 2*k3[i] + k4[i])
		}
		t += dt
	}
}
