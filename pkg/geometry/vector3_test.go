package geometry

import (
	"math"
	"testing"
)

const maxErrorTolerance = 1e-9

func TestCross(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		expected Vec3
	}{
		{
			name:     "unit axes",
			a:        Vec3{X: 1},
			b:        Vec3{Y: 1},
			expected: Vec3{Z: 1},
		},
		{
			name:     "anticommutative",
			a:        Vec3{Y: 1},
			b:        Vec3{X: 1},
			expected: Vec3{Z: -1},
		},
		{
			name:     "parallel",
			a:        Vec3{X: 2, Y: 4},
			b:        Vec3{X: 1, Y: 2},
			expected: Vec3{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cross(tt.b); got != tt.expected {
				t.Errorf("Cross(%v, %v) = %v, expected %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestNormalized(t *testing.T) {
	v := Vec3{X: 3, Y: 4}
	unit := v.Normalized()
	if math.Abs(unit.Norm()-1) > maxErrorTolerance {
		t.Errorf("Normalized norm = %f, expected 1", unit.Norm())
	}
	if math.Abs(unit.X-0.6) > maxErrorTolerance || math.Abs(unit.Y-0.8) > maxErrorTolerance {
		t.Errorf("Normalized = %v, expected (0.6, 0.8, 0)", unit)
	}
}

func TestNormalizedZeroVector(t *testing.T) {
	if got := (Vec3{}).Normalized(); !got.IsZero() {
		t.Errorf("zero vector normalized to %v, expected zero", got)
	}
}

func TestDistanceTo(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 1}
	b := Vec3{X: 1, Y: 2, Z: 2}
	if got := a.DistanceTo(b); math.Abs(got-1) > maxErrorTolerance {
		t.Errorf("DistanceTo = %f, expected 1", got)
	}
}
