// Package sim runs the engagement simulation loop, stepping interceptor and
// threat swarms through time on a worker pool.
package sim

import (
	"context"

	"github.com/talonworks/swarm-sim/pkg/agent"
	"github.com/talonworks/swarm-sim/pkg/assignment"
	"github.com/talonworks/swarm-sim/pkg/logger"
)

// defaultWorkers is the worker count used when none is configured.
const defaultWorkers = 8

// logInterval is the number of ticks between progress log lines.
const logInterval = 1000

// EventKind classifies a simulation event.
type EventKind int

const (
	// EventSpawn fires when an agent releases a new agent.
	EventSpawn EventKind = iota

	// EventAssign fires when a threat is assigned to an interceptor.
	EventAssign

	// EventHit fires when a threat is destroyed.
	EventHit
)

// Event is a notable occurrence during a simulation run.
type Event struct {
	Time  float64
	Kind  EventKind
	Agent *agent.Agent

	// Target is the other party of the event, nil for spawn events.
	Target *agent.Agent
}

// EventFunc observes simulation events.
type EventFunc func(Event)

// Config configures a simulator.
type Config struct {
	// StepTime is the simulation step time in seconds.
	StepTime float64

	// Workers is the worker pool size. Zero selects the default.
	Workers int

	// Assignment is the threat assignment strategy. Nil selects
	// distance-based assignment.
	Assignment assignment.Assignment

	// OnEvent observes simulation events, may be nil.
	OnEvent EventFunc

	// Logger for progress output, may be nil.
	Logger logger.Logger
}

// Simulator owns the interceptor and threat swarms and advances them
// through time.
type Simulator struct {
	tStep        float64
	interceptors []*agent.Agent
	threats      []*agent.Agent
	strategy     assignment.Assignment
	assignments  []assignment.Pair
	pool         *WorkerPool
	onEvent      EventFunc
	log          logger.Logger
}

// New creates a simulator over the given swarms and starts its worker pool.
// Call Close to release the workers.
func New(cfg Config, interceptors, threats []*agent.Agent) *Simulator {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	strategy := cfg.Assignment
	if strategy == nil {
		strategy = assignment.NewDistance()
	}
	log := cfg.Logger
	if log == nil {
		log = logger.New()
	}
	s := &Simulator{
		tStep:        cfg.StepTime,
		interceptors: interceptors,
		threats:      threats,
		strategy:     strategy,
		pool:         NewWorkerPool(workers),
		onEvent:      cfg.OnEvent,
		log:          log.WithPrefix("sim"),
	}
	s.pool.Start()
	return s
}

// Close stops the worker pool.
func (s *Simulator) Close() {
	s.pool.Stop()
}

// Interceptors returns the interceptor swarm, including spawned agents.
func (s *Simulator) Interceptors() []*agent.Agent { return s.interceptors }

// Threats returns the threat swarm, including spawned agents.
func (s *Simulator) Threats() []*agent.Agent { return s.threats }

// Assignments returns the pairs produced by the most recent tick.
func (s *Simulator) Assignments() []assignment.Pair { return s.assignments }

// Run advances the simulation from t = 0 until tEnd in steps of the
// configured step time.
func (s *Simulator) Run(tEnd float64) {
	s.RunContext(context.Background(), tEnd)
}

// RunContext runs the simulation until tEnd or until the context is
// canceled, whichever comes first.
func (s *Simulator) RunContext(ctx context.Context, tEnd float64) {
	tick := 0
	for t := 0.0; t < tEnd; t += s.tStep {
		if ctx.Err() != nil {
			s.log.Warnf("simulation canceled at t=%g", t)
			return
		}
		if tick%logInterval == 0 {
			s.log.Debugf("simulating time t=%g", t)
		}
		tick++
		s.step(t)
	}
}

// step advances the simulation by one tick at time t.
func (s *Simulator) step(t float64) {
	// Drop assignments to threats that have been destroyed.
	for _, interceptor := range s.interceptors {
		interceptor.CheckTarget()
	}

	// Release any spawned agents. They join their swarms immediately so
	// they participate in assignment within the same tick.
	var spawnedInterceptors, spawnedThreats []*agent.Agent
	for _, interceptor := range s.interceptors {
		spawnedInterceptors = append(spawnedInterceptors, s.spawn(interceptor, t)...)
	}
	for _, threat := range s.threats {
		spawnedThreats = append(spawnedThreats, s.spawn(threat, t)...)
	}
	s.interceptors = append(s.interceptors, spawnedInterceptors...)
	s.threats = append(s.threats, spawnedThreats...)

	// Assign threats to the free interceptors. The previous tick's pairs
	// are replaced wholesale.
	s.assignments = s.strategy.Assign(s.interceptors, s.threats)
	for _, pair := range s.assignments {
		interceptor := s.interceptors[pair.InterceptorIndex]
		threat := s.threats[pair.ThreatIndex]
		interceptor.AssignTarget(threat)
		s.emit(Event{Time: t, Kind: EventAssign, Agent: interceptor, Target: threat})
	}

	// Update the acceleration of every live agent.
	for _, interceptor := range s.interceptors {
		if !interceptor.HasTerminated() {
			s.update(interceptor, t)
		}
	}
	for _, threat := range s.threats {
		if !threat.HasTerminated() {
			threat.Update(t)
		}
	}

	// Step the kinematics of the flying agents in parallel and fence the
	// tick.
	for _, interceptor := range s.interceptors {
		if interceptor.HasLaunched() && !interceptor.HasTerminated() {
			interceptor := interceptor
			s.pool.QueueJob(func() { interceptor.Step(t, s.tStep) })
		}
	}
	for _, threat := range s.threats {
		if threat.HasLaunched() && !threat.HasTerminated() {
			threat := threat
			s.pool.QueueJob(func() { threat.Step(t, s.tStep) })
		}
	}
	s.pool.Wait()
}

// spawn releases the agent's due children and reports them.
func (s *Simulator) spawn(a *agent.Agent, t float64) []*agent.Agent {
	spawned := a.Spawn(t)
	for _, child := range spawned {
		s.emit(Event{Time: t, Kind: EventSpawn, Agent: child, Target: a})
	}
	return spawned
}

// update advances an interceptor's flight phase and reports a destroyed
// threat.
func (s *Simulator) update(interceptor *agent.Agent, t float64) {
	target := interceptor.Target()
	interceptor.Update(t)
	if interceptor.Hit() && target != nil && target.Hit() {
		s.emit(Event{Time: t, Kind: EventHit, Agent: interceptor, Target: target})
	}
}

func (s *Simulator) emit(event Event) {
	if s.onEvent != nil {
		s.onEvent(event)
	}
}
