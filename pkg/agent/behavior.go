package agent

import (
	"github.com/talonworks/swarm-sim/pkg/geometry"
	"github.com/talonworks/swarm-sim/pkg/physics"
)

// UpdateFunc computes an agent's acceleration for one flight phase at time t.
type UpdateFunc func(a *Agent, t float64)

// SpawnFunc releases child agents at time t, returning nil when none are due.
type SpawnFunc func(a *Agent, t float64) []*Agent

// Behavior bundles the per-phase update handlers and the spawn hook of an
// agent type. Nil handlers leave the agent's acceleration untouched, which
// is the behavior of threats.
type Behavior struct {
	UpdateReady     UpdateFunc
	UpdateBoost     UpdateFunc
	UpdateMidcourse UpdateFunc
	Spawn           SpawnFunc
}

// AeroReady zeroes the acceleration while the agent waits on its carrier.
func AeroReady(a *Agent, _ float64) {
	a.SetAcceleration(geometry.Vec3{})
}

// AeroBoost accelerates the agent along its roll axis at the configured
// boost acceleration, subject to gravity and drag.
func AeroBoost(a *Agent, _ float64) {
	axes := a.NormalizedPrincipalAxes()
	boost := a.Static().BoostAcceleration * physics.StandardGravity
	command := axes.Roll.Scale(boost)
	a.SetAcceleration(a.TotalAcceleration(command, false))
}

// AeroCoast lets the agent coast under gravity and drag alone.
func AeroCoast(a *Agent, _ float64) {
	a.SetAcceleration(a.TotalAcceleration(geometry.Vec3{}, false))
}

// SpawnAfterLaunch builds a one-shot spawn hook that fires once the given
// delay after the agent's launch has elapsed.
func SpawnAfterLaunch(delay float64, build func(parent *Agent, t float64) []*Agent) SpawnFunc {
	return func(a *Agent, t float64) []*Agent {
		if a.spawned() || t < a.CreationTime()+a.Dynamic().LaunchTime+delay {
			return nil
		}
		a.markSpawned()
		return build(a, t)
	}
}
