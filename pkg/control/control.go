// Package control implements guidance laws that steer interceptors onto
// their assigned targets.
package control

import (
	"github.com/talonworks/swarm-sim/pkg/agent"
	"github.com/talonworks/swarm-sim/pkg/geometry"
	"github.com/talonworks/swarm-sim/pkg/sensor"
)

// Controller plans acceleration commands for an agent pursuing its assigned
// target.
type Controller interface {
	// Plan computes the next acceleration command.
	Plan()

	// OptimalControl returns the last planned acceleration command.
	OptimalControl() geometry.Vec3
}

// ProportionalNavigationGain is the navigation constant of the proportional
// navigation guidance law.
const ProportionalNavigationGain = 3

// PN implements proportional navigation: the acceleration command is
// proportional to the rate of change of the bearing to the target, scaled
// by the closing velocity. The agent cannot accelerate along its roll axis.
type PN struct {
	agent   *agent.Agent
	sensor  sensor.Sensor
	command geometry.Vec3
}

// NewPN creates a proportional navigation controller for the given agent.
// The controller senses the agent's owned target model, never the live
// target.
func NewPN(a *agent.Agent) *PN {
	return &PN{agent: a, sensor: sensor.NewIdeal(a)}
}

// Plan computes the proportional navigation acceleration command.
func (c *PN) Plan() {
	output := c.sensor.Sense(c.agent.TargetModel())
	azimuthRate := output.Velocity.Azimuth
	elevationRate := output.Velocity.Elevation
	closingVelocity := -output.Velocity.Range

	axes := c.agent.NormalizedPrincipalAxes()
	bearingRate := axes.Pitch.Scale(azimuthRate).Add(axes.Yaw.Scale(elevationRate))
	c.command = bearingRate.Scale(ProportionalNavigationGain * closingVelocity)
}

// OptimalControl returns the last planned acceleration command.
func (c *PN) OptimalControl() geometry.Vec3 { return c.command }

// accelerationInput plans the guidance command for the agent and clamps its
// magnitude to the agent's maximum commandable acceleration.
func accelerationInput(a *agent.Agent) geometry.Vec3 {
	controller := NewPN(a)
	controller.Plan()
	command := controller.OptimalControl()

	maxAcceleration := a.MaxAcceleration()
	if command.Norm() > maxAcceleration {
		return command.Normalized().Scale(maxAcceleration)
	}
	return command
}

// GuidedMidcourse returns the midcourse update handler of a guided
// interceptor. Between sensor refreshes the interceptor extrapolates its
// owned target model; at the configured sensor frequency the model is
// corrected from the live target. A hit within the hit radius is resolved
// against the target's kill probability.
func GuidedMidcourse() agent.UpdateFunc {
	return func(a *agent.Agent, t float64) {
		var command geometry.Vec3
		if a.HasAssignedTarget() {
			// Extrapolate the target model up to the current time.
			model := a.TargetModel()
			modelStep := t - model.StateUpdateTime()
			model.Update(t)
			model.Step(model.StateUpdateTime(), modelStep)

			// Correct the model from the live target at the sensor
			// frequency.
			sensorUpdatePeriod := 1 / a.Dynamic().SensorFrequency
			if t-a.SensorUpdateTime() >= sensorUpdatePeriod {
				model.SetState(a.Target().State())
				a.MarkSensorUpdate(t)
			}

			if a.HasHitTarget() {
				killProbability := a.Target().Static().KillProbability
				if a.Rand().Float64() < killProbability {
					target := a.Target()
					a.MarkAsHit()
					target.MarkAsHit()
					return
				}
			}

			command = accelerationInput(a)
		}

		a.SetAcceleration(a.TotalAcceleration(command, true))
	}
}
