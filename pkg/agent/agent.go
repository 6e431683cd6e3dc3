// Package agent implements the simulated flying entity: its flight-phase
// state machine, rigid-body kinematics, principal axes, and target
// assignment bookkeeping.
package agent

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/talonworks/swarm-sim/pkg/geometry"
	"github.com/talonworks/swarm-sim/pkg/physics"
	"github.com/talonworks/swarm-sim/pkg/state"
)

// FlightPhase is the discrete lifecycle stage of an agent's flight. Phases
// only advance forward, except for the jump to PhaseTerminated on a hit.
type FlightPhase int

const (
	PhaseInitialized FlightPhase = iota
	PhaseReady
	PhaseBoost
	PhaseMidcourse
	PhaseTerminal
	PhaseTerminated
)

// String returns the phase name.
func (p FlightPhase) String() string {
	switch p {
	case PhaseInitialized:
		return "INITIALIZED"
	case PhaseReady:
		return "READY"
	case PhaseBoost:
		return "BOOST"
	case PhaseMidcourse:
		return "MIDCOURSE"
	case PhaseTerminal:
		return "TERMINAL"
	case PhaseTerminated:
		return "TERMINATED"
	default:
		return fmt.Sprintf("FlightPhase(%d)", int(p))
	}
}

// Kind is the side an agent fights on.
type Kind int

const (
	// KindInterceptor agents pursue threats and can be assigned targets.
	KindInterceptor Kind = iota

	// KindThreat agents are pursued and never take targets themselves.
	KindThreat
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindInterceptor {
		return "interceptor"
	}
	return "threat"
}

// StaticConfig holds the immutable physical parameters of an agent type.
type StaticConfig struct {
	// Mass in kg.
	Mass float64

	// CrossSectionalArea in m^2.
	CrossSectionalArea float64

	// DragCoefficient of the airframe.
	DragCoefficient float64

	// LiftDragRatio relating lateral acceleration to lift-induced drag.
	LiftDragRatio float64

	// BoostAcceleration in multiples of standard gravity.
	BoostAcceleration float64

	// BoostTime in seconds.
	BoostTime float64

	// MaxReferenceAcceleration in multiples of standard gravity at the
	// reference speed.
	MaxReferenceAcceleration float64

	// ReferenceSpeed in m/s.
	ReferenceSpeed float64

	// HitRadius in meters.
	HitRadius float64

	// KillProbability on a hit within the hit radius.
	KillProbability float64
}

// DynamicConfig holds the per-instance scheduling parameters of an agent.
type DynamicConfig struct {
	// LaunchTime is the launch offset from the creation time in seconds.
	LaunchTime float64

	// SensorFrequency is the sensor update frequency in Hz.
	SensorFrequency float64
}

// SubmunitionsConfig describes the child agents a carrier releases.
type SubmunitionsConfig struct {
	// Type tag of the spawned agents.
	Type string

	// Count of agents released.
	Count int

	// LaunchTime is the release offset from the carrier launch in seconds.
	LaunchTime float64
}

// Config is the full construction-time configuration of an agent.
type Config struct {
	// Type tag, e.g. "micromissile".
	Type string

	// Kind of the agent.
	Kind Kind

	// InitialState of the agent.
	InitialState state.State

	// Static physical parameters.
	Static StaticConfig

	// Dynamic scheduling parameters.
	Dynamic DynamicConfig

	// Submunitions configuration, nil for agents that spawn nothing.
	Submunitions *SubmunitionsConfig

	// Behavior holding the per-phase update handlers and the spawn hook.
	Behavior Behavior

	// Rand is the seeded random source used for kill-probability rolls.
	Rand *rand.Rand
}

// terminalRangeFactor scales the hit radius into the range at which a guided
// agent transitions from the midcourse to the terminal phase.
const terminalRangeFactor = 10

// Agent is a simulated flying entity.
type Agent struct {
	id           uuid.UUID
	typeTag      string
	kind         Kind
	tCreation    float64
	st           state.State
	stUpdateTime float64
	phase        FlightPhase
	static       StaticConfig
	dynamic      DynamicConfig
	submunitions *SubmunitionsConfig
	behavior     Behavior
	history      *state.History
	hit          bool
	rng          *rand.Rand

	// Assigned target and the owned state-only model of it.
	target      *Agent
	targetModel *Agent

	// Time of the last sensor refresh of the target model.
	sensorUpdateTime float64

	hasSpawned bool
}

// New creates an agent from a full configuration. A ready agent starts in
// the READY phase, otherwise it starts INITIALIZED.
func New(cfg Config, tCreation float64, ready bool) *Agent {
	phase := PhaseInitialized
	if ready {
		phase = PhaseReady
	}
	a := &Agent{
		id:               uuid.New(),
		typeTag:          cfg.Type,
		kind:             cfg.Kind,
		tCreation:        tCreation,
		st:               cfg.InitialState,
		phase:            phase,
		static:           cfg.Static,
		dynamic:          cfg.Dynamic,
		submunitions:     cfg.Submunitions,
		behavior:         cfg.Behavior,
		rng:              cfg.Rand,
		sensorUpdateTime: math.Inf(-1),
	}
	a.history = state.NewHistory(state.Record{T: tCreation, Hit: a.hit, State: a.st})
	return a
}

// NewModel creates a state-only agent without any configuration. It is used
// as the owned model of an assigned target and for testing.
func NewModel(initial state.State) *Agent {
	return New(Config{InitialState: initial}, 0, true)
}

// ID returns the agent's identity.
func (a *Agent) ID() uuid.UUID { return a.id }

// Type returns the agent's type tag.
func (a *Agent) Type() string { return a.typeTag }

// Kind returns the agent's kind.
func (a *Agent) Kind() Kind { return a.kind }

// State returns the current state of the agent.
func (a *Agent) State() state.State { return a.st }

// SetState overwrites the agent's state and refreshes the latest history
// record.
func (a *Agent) SetState(st state.State) {
	a.st = st
	a.history.Back().State = st
}

// StateUpdateTime returns the time of the last state update.
func (a *Agent) StateUpdateTime() float64 { return a.stUpdateTime }

// Static returns the static configuration of the agent.
func (a *Agent) Static() StaticConfig { return a.static }

// Dynamic returns the dynamic configuration of the agent.
func (a *Agent) Dynamic() DynamicConfig { return a.dynamic }

// Submunitions returns the submunitions configuration, nil if absent.
func (a *Agent) Submunitions() *SubmunitionsConfig { return a.submunitions }

// History returns the agent's state history.
func (a *Agent) History() *state.History { return a.history }

// CreationTime returns the agent's creation time.
func (a *Agent) CreationTime() float64 { return a.tCreation }

// Phase returns the current flight phase.
func (a *Agent) Phase() FlightPhase { return a.phase }

// Hit returns whether the agent has hit or been hit.
func (a *Agent) Hit() bool { return a.hit }

// HasLaunched returns whether the agent has launched.
func (a *Agent) HasLaunched() bool {
	return a.phase != PhaseInitialized && a.phase != PhaseReady
}

// HasTerminated returns whether the agent's flight has terminated.
func (a *Agent) HasTerminated() bool {
	return a.phase == PhaseTerminated
}

// Rand returns the agent's random source, creating a deterministic one if
// none was configured.
func (a *Agent) Rand() *rand.Rand {
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(0))
	}
	return a.rng
}

// MarkAsHit marks the agent as having hit its target or been hit. It
// back-fills the hit flag of the latest history record and terminates the
// flight. Calling it again has no further effect.
func (a *Agent) MarkAsHit() {
	a.hit = true
	a.history.Back().Hit = true
	a.phase = PhaseTerminated
}

// Assignable returns whether a target can be assigned to the agent.
func (a *Agent) Assignable() bool {
	return a.kind == KindInterceptor && a.HasLaunched() && !a.HasAssignedTarget()
}

// AssignTarget assigns the given target to the agent. The agent keeps an
// owned state-only model of the target for guidance; it never aliases the
// live target state.
func (a *Agent) AssignTarget(target *Agent) {
	a.target = target
	a.targetModel = NewModel(target.State())
}

// UnassignTarget clears the assigned target and the owned target model.
func (a *Agent) UnassignTarget() {
	a.target = nil
	a.targetModel = nil
}

// CheckTarget unassigns the current target if it has already been hit.
func (a *Agent) CheckTarget() {
	if a.HasAssignedTarget() && a.target.Hit() {
		a.UnassignTarget()
	}
}

// HasAssignedTarget returns whether the agent holds an assigned target.
func (a *Agent) HasAssignedTarget() bool { return a.target != nil }

// Target returns the assigned target, nil if unassigned.
func (a *Agent) Target() *Agent { return a.target }

// TargetModel returns the owned model of the assigned target, nil if
// unassigned.
func (a *Agent) TargetModel() *Agent { return a.targetModel }

// SensorUpdateTime returns the time of the last sensor refresh of the
// target model.
func (a *Agent) SensorUpdateTime() float64 { return a.sensorUpdateTime }

// MarkSensorUpdate records a sensor refresh of the target model at time t.
func (a *Agent) MarkSensorUpdate(t float64) { a.sensorUpdateTime = t }

// HasHitTarget returns whether the assigned target lies within the agent's
// hit radius. A distance exactly equal to the hit radius counts as a hit.
func (a *Agent) HasHitTarget() bool {
	if !a.HasAssignedTarget() {
		return false
	}
	distance := a.Position().DistanceTo(a.target.Position())
	return distance <= a.static.HitRadius
}

// Position returns the position vector of the agent.
func (a *Agent) Position() geometry.Vec3 { return a.st.Position }

// Velocity returns the velocity vector of the agent.
func (a *Agent) Velocity() geometry.Vec3 { return a.st.Velocity }

// Acceleration returns the acceleration vector of the agent.
func (a *Agent) Acceleration() geometry.Vec3 { return a.st.Acceleration }

// SetAcceleration overwrites the acceleration vector of the agent.
func (a *Agent) SetAcceleration(acceleration geometry.Vec3) {
	a.st.Acceleration = acceleration
}

// Speed returns the speed of the agent.
func (a *Agent) Speed() float64 { return a.st.Velocity.Norm() }

// PrincipalAxes returns the principal axes of the agent. The roll axis is
// aligned with the velocity vector; the pitch axis is the horizontal-plane
// perpendicular to the agent's starboard; the yaw axis completes the frame.
// A stationary agent has a degenerate frame of zero vectors.
func (a *Agent) PrincipalAxes() geometry.Frame {
	roll := a.Velocity()
	pitch := geometry.Vec3{X: roll.Y, Y: -roll.X}
	return geometry.Frame{
		Roll:  roll,
		Pitch: pitch,
		Yaw:   pitch.Cross(roll),
	}
}

// NormalizedPrincipalAxes returns the normalized principal axes of the
// agent.
func (a *Agent) NormalizedPrincipalAxes() geometry.Frame {
	return a.PrincipalAxes().Normalized()
}

// Gravity returns the gravity acceleration vector at the agent's altitude.
func (a *Agent) Gravity() geometry.Vec3 {
	return geometry.Vec3{Z: -physics.GravityAt(a.st.Position.Z)}
}

// DynamicPressure returns the dynamic air pressure around the agent.
func (a *Agent) DynamicPressure() float64 {
	airDensity := physics.AirDensityAt(a.st.Position.Z)
	flowSpeed := a.Speed()
	return airDensity * flowSpeed * flowSpeed / 2
}

// MaxAcceleration returns the maximum commandable acceleration at the
// agent's current speed. The control authority scales with the squared
// speed relative to the reference speed.
func (a *Agent) MaxAcceleration() float64 {
	maxReferenceAcceleration := a.static.MaxReferenceAcceleration * physics.StandardGravity
	speedRatio := a.Speed() / a.static.ReferenceSpeed
	return speedRatio * speedRatio * maxReferenceAcceleration
}

// TotalAcceleration returns the total acceleration vector for the given
// acceleration command, adding gravity and drag. When compensateForGravity
// is set, the gravity projection on the pitch and yaw axes is subtracted
// from the command first.
func (a *Agent) TotalAcceleration(command geometry.Vec3, compensateForGravity bool) geometry.Vec3 {
	gravity := a.Gravity()
	if compensateForGravity {
		command = command.Sub(a.gravityProjectionOnPitchAndYaw())
	}

	// Total drag deceleration acts along the roll axis.
	axes := a.NormalizedPrincipalAxes()
	drag := a.parasiticDrag() + a.liftInducedDrag(command)
	dragAcceleration := axes.Roll.Scale(-drag)

	return command.Add(gravity).Add(dragAcceleration)
}

// gravityProjectionOnPitchAndYaw projects gravity onto the pitch and yaw
// axes.
func (a *Agent) gravityProjectionOnPitchAndYaw() geometry.Vec3 {
	axes := a.NormalizedPrincipalAxes()
	gravity := a.Gravity()
	pitchCoefficient := gravity.Dot(axes.Pitch)
	yawCoefficient := gravity.Dot(axes.Yaw)
	return axes.Pitch.Scale(pitchCoefficient).Add(axes.Yaw.Scale(yawCoefficient))
}

// parasiticDrag returns the parasitic drag deceleration.
func (a *Agent) parasiticDrag() float64 {
	dragForce := a.static.DragCoefficient * a.DynamicPressure() * a.static.CrossSectionalArea
	return dragForce / a.static.Mass
}

// liftInducedDrag returns the lift-induced drag deceleration for the given
// acceleration command. The lift is the full component of the command
// perpendicular to the roll axis.
func (a *Agent) liftInducedDrag(command geometry.Vec3) float64 {
	axes := a.NormalizedPrincipalAxes()
	lift := command.Sub(axes.Roll.Scale(command.Dot(axes.Roll)))
	return lift.Norm() / a.static.LiftDragRatio
}

// Update recomputes the agent's flight phase at time t and dispatches to the
// phase handler to produce the agent's acceleration. An unrecognized flight
// phase is a programming error and panics.
func (a *Agent) Update(t float64) {
	launchTime := a.dynamic.LaunchTime
	boostTime := a.static.BoostTime

	// Phases only advance forward.
	if t >= a.tCreation+launchTime && a.phase < PhaseBoost {
		a.phase = PhaseBoost
	}
	if t >= a.tCreation+launchTime+boostTime && a.phase < PhaseMidcourse {
		a.phase = PhaseMidcourse
	}
	// An agent with an assigned target enters the terminal phase once the
	// target model comes within a multiple of the hit radius.
	if a.phase == PhaseMidcourse && a.targetModel != nil {
		distance := a.Position().DistanceTo(a.targetModel.Position())
		if distance <= terminalRangeFactor*a.static.HitRadius {
			a.phase = PhaseTerminal
		}
	}

	switch a.phase {
	case PhaseInitialized:
		return
	case PhaseReady:
		if a.behavior.UpdateReady != nil {
			a.behavior.UpdateReady(a, t)
		}
	case PhaseBoost:
		if a.behavior.UpdateBoost != nil {
			a.behavior.UpdateBoost(a, t)
		}
	case PhaseMidcourse, PhaseTerminal:
		if a.behavior.UpdateMidcourse != nil {
			a.behavior.UpdateMidcourse(a, t)
		}
	default:
		panic(fmt.Sprintf("invalid flight phase: %v", a.phase))
	}
}

// Step advances the kinematics ODE dx/dt = v, dv/dt = a from tStart over
// tStep seconds, holding the last computed acceleration constant. The latest
// history record is refreshed to tStart before integrating and a fresh
// record is appended at tStart + tStep. An agent below ground level freezes.
func (a *Agent) Step(tStart, tStep float64) {
	back := a.history.Back()
	back.T = tStart
	back.State = a.st

	if tStep == 0 {
		return
	}

	x := []float64{
		a.st.Position.X, a.st.Position.Y, a.st.Position.Z,
		a.st.Velocity.X, a.st.Velocity.Y, a.st.Velocity.Z,
	}

	kinematics := func(_ float64, x, xDot []float64) {
		// An agent below ground level freezes in place.
		if x[2] < 0 {
			for i := range xDot {
				xDot[i] = 0
			}
			return
		}
		xDot[0] = x[3]
		xDot[1] = x[4]
		xDot[2] = x[5]
		xDot[3] = a.st.Acceleration.X
		xDot[4] = a.st.Acceleration.Y
		xDot[5] = a.st.Acceleration.Z
	}

	tEnd := tStart + tStep
	physics.Integrate(kinematics, x, tStart, tEnd)

	a.st.Position = geometry.Vec3{X: x[0], Y: x[1], Z: x[2]}
	a.st.Velocity = geometry.Vec3{X: x[3], Y: x[4], Z: x[5]}

	a.history.Add(state.Record{T: tEnd, Hit: a.hit, State: a.st})
	a.stUpdateTime = tEnd
}

// Spawn releases any child agents due at time t.
func (a *Agent) Spawn(t float64) []*Agent {
	if a.behavior.Spawn == nil {
		return nil
	}
	return a.behavior.Spawn(a, t)
}

// markSpawned records that the one-shot spawn hook has fired.
func (a *Agent) markSpawned() { a.hasSpawned = true }

// spawned reports whether the one-shot spawn hook has fired.
func (a *Agent) spawned() bool { return a.hasSpawned }
