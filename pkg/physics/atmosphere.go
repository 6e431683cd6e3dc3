// Package physics provides the environment model and the fixed-step
// integrator used by the agent kinematics.
package physics

import "math"

const (
	// SeaLevelAirDensity is the air density at sea level in kg/m^3.
	SeaLevelAirDensity = 1.204

	// AirDensityScaleHeight is the air density scale height in km.
	AirDensityScaleHeight = 10.4

	// StandardGravity is the standard gravity in m/s^2.
	StandardGravity = 9.80665

	// EarthMeanRadius is the Earth mean radius in meters.
	EarthMeanRadius = 6378137
)

// AirDensityAt returns the air density at the given altitude in meters,
// following an exponential decay with the scale height.
func AirDensityAt(altitude float64) float64 {
	return SeaLevelAirDensity * math.Exp(-altitude/(AirDensityScaleHeight*1000))
}

// GravityAt returns the gravitational acceleration at the given altitude in
// meters, following an inverse-square falloff with the Earth radius.
func GravityAt(altitude float64) float64 {
	return StandardGravity * math.Pow(EarthMeanRadius/(EarthMeanRadius+altitude), 2)
}
