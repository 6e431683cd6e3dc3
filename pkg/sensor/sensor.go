// Package sensor implements target sensing in the frame of the sensing
// agent.
package sensor

import (
	"math"

	"github.com/talonworks/swarm-sim/pkg/agent"
	"github.com/talonworks/swarm-sim/pkg/geometry"
)

// Spherical holds spherical coordinates, or their time derivatives, in the
// sensing agent's principal-axes frame. Azimuth grows towards starboard and
// elevation grows upwards.
type Spherical struct {
	Range     float64
	Azimuth   float64
	Elevation float64
}

// Output is a single sensor reading of a target.
type Output struct {
	// PositionCartesian is the target's relative position in Cartesian
	// coordinates.
	PositionCartesian geometry.Vec3

	// Position is the target's relative position in spherical coordinates.
	Position Spherical

	// Velocity is the time derivative of the target's relative position in
	// spherical coordinates.
	Velocity Spherical
}

// Sensor senses targets relative to the agent carrying it.
type Sensor interface {
	// Sense senses the target's relative position and velocity.
	Sense(target *agent.Agent) Output

	// SensePosition senses the target's relative position.
	SensePosition(target *agent.Agent) Output

	// SenseVelocity senses the target's relative velocity.
	SenseVelocity(target *agent.Agent) Output
}

// Ideal is a noiseless sensor with unlimited range.
type Ideal struct {
	agent *agent.Agent
}

// NewIdeal creates an ideal sensor mounted on the given agent.
func NewIdeal(a *agent.Agent) *Ideal {
	return &Ideal{agent: a}
}

// Sense senses the target's relative position and velocity.
func (s *Ideal) Sense(target *agent.Agent) Output {
	output := s.SensePosition(target)
	output.Velocity = s.SenseVelocity(target).Velocity
	return output
}

// SensePosition senses the target's relative position in Cartesian and
// spherical coordinates.
func (s *Ideal) SensePosition(target *agent.Agent) Output {
	var output Output
	axes := s.agent.NormalizedPrincipalAxes()

	relativePosition := target.Position().Sub(s.agent.Position())
	output.PositionCartesian = relativePosition
	output.Position.Range = relativePosition.Norm()

	// Decompose the relative position into its projection on the yaw axis
	// and its projection on the roll-pitch plane.
	projectionOnYaw := axes.Yaw.Scale(relativePosition.Dot(axes.Yaw))
	projectionOnRollPitchPlane := relativePosition.Sub(projectionOnYaw)

	elevationSign := 1.0
	if projectionOnYaw.Dot(axes.Yaw) < 0 {
		elevationSign = -1
	}
	output.Position.Elevation = elevationSign *
		math.Atan2(projectionOnYaw.Norm(), projectionOnRollPitchPlane.Norm())

	// Decompose the roll-pitch plane projection along the roll and pitch
	// axes. A target along the yaw axis has no defined azimuth and reads 0.
	projectionOnRoll := axes.Roll.Scale(projectionOnRollPitchPlane.Dot(axes.Roll))
	projectionOnPitch := projectionOnRollPitchPlane.Sub(projectionOnRoll)

	azimuthSign := 1.0
	if projectionOnPitch.Dot(axes.Pitch) < 0 {
		azimuthSign = -1
	}
	output.Position.Azimuth = azimuthSign *
		math.Atan2(projectionOnPitch.Norm(), projectionOnRoll.Norm())
	return output
}

// SenseVelocity senses the time derivatives of the target's relative
// position in spherical coordinates.
func (s *Ideal) SenseVelocity(target *agent.Agent) Output {
	var output Output
	axes := s.agent.NormalizedPrincipalAxes()

	relativePosition := target.Position().Sub(s.agent.Position())
	relativeVelocity := target.Velocity().Sub(s.agent.Velocity())
	rangeNorm := relativePosition.Norm()

	// Project the relative velocity onto the relative position to find the
	// range rate.
	projectionOnRange := relativePosition.Scale(
		relativeVelocity.Dot(relativePosition) / (rangeNorm * rangeNorm))
	rangeRateSign := 1.0
	if projectionOnRange.Dot(relativePosition) < 0 {
		rangeRateSign = -1
	}
	output.Velocity.Range = rangeRateSign * projectionOnRange.Norm()

	// The rest of the relative velocity lies on the sphere through the
	// target around the agent.
	projectionOnSphere := relativeVelocity.Sub(projectionOnRange)

	// The azimuth vector points to starboard of the target along the
	// sphere; the elevation vector points upwards from the target. Either
	// is undefined when the relative position is parallel to the yaw or
	// pitch axis and is then recovered from the other.
	azimuthVector := relativePosition.Cross(axes.Yaw)
	elevationVector := axes.Pitch.Cross(relativePosition)
	if azimuthVector.IsZero() {
		azimuthVector = relativePosition.Cross(elevationVector)
	} else if elevationVector.IsZero() {
		elevationVector = azimuthVector.Cross(relativePosition)
	}

	projectionOnAzimuth := azimuthVector.Scale(
		projectionOnSphere.Dot(azimuthVector) /
			(azimuthVector.Norm() * azimuthVector.Norm()))
	azimuthRateSign := 1.0
	if projectionOnAzimuth.Dot(azimuthVector) < 0 {
		azimuthRateSign = -1
	}
	output.Velocity.Azimuth = azimuthRateSign * projectionOnAzimuth.Norm() / rangeNorm

	projectionOnElevation := projectionOnSphere.Sub(projectionOnAzimuth)
	elevationRateSign := 1.0
	if projectionOnElevation.Dot(elevationVector) < 0 {
		elevationRateSign = -1
	}
	output.Velocity.Elevation = elevationRateSign * projectionOnElevation.Norm() / rangeNorm
	return output
}
