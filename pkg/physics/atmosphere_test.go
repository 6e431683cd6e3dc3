package physics

import (
	"math"
	"testing"
)

const maxErrorTolerance = 1e-6

func TestAirDensityAt(t *testing.T) {
	if got := AirDensityAt(0); got != SeaLevelAirDensity {
		t.Errorf("AirDensityAt(0) = %f, expected %f", got, SeaLevelAirDensity)
	}
	if got := AirDensityAt(100); math.Abs(got-1.192479) > maxErrorTolerance {
		t.Errorf("AirDensityAt(100) = %f, expected 1.192479", got)
	}
}

func TestGravityAt(t *testing.T) {
	if got := GravityAt(0); got != StandardGravity {
		t.Errorf("GravityAt(0) = %f, expected %f", got, StandardGravity)
	}
	if got := GravityAt(100); math.Abs(got-9.806342) > maxErrorTolerance {
		t.Errorf("GravityAt(100) = %f, expected 9.806342", got)
	}
}

func TestIntegrateConstantAcceleration(t *testing.T) {
	// dx/dt = v, dv/dt = 2. Starting from rest at the origin, after one
	// second x = 1 and v = 2.
	x := []float64{0, 0}
	Integrate(func(_ float64, x, xDot []float64) {
		xDot[0] = x[1]
		xDot[1] = 2
	}, x, 0, 1)

	if math.Abs(x[0]-1) > maxErrorTolerance {
		t.Errorf("position = %f, expected 1", x[0])
	}
	if math.Abs(x[1]-2) > maxErrorTolerance {
		t.Errorf("velocity = %f, expected 2", x[1])
	}
}

func TestIntegrateZeroInterval(t *testing.T) {
	x := []float64{3, 4}
	Integrate(func(_ float64, x, xDot []float64) {
		xDot[0] = 1
		xDot[1] = 1
	}, x, 5, 5)

	if x[0] != 3 || x[1] != 4 {
		t.Errorf("state changed over a zero interval: %v", x)
	}
}
