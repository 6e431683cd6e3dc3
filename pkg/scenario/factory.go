package scenario

import (
	"fmt"
	"math/rand"

	"github.com/talonworks/swarm-sim/pkg/agent"
	"github.com/talonworks/swarm-sim/pkg/assignment"
	"github.com/talonworks/swarm-sim/pkg/control"
	"github.com/talonworks/swarm-sim/pkg/geometry"
	"github.com/talonworks/swarm-sim/pkg/sim"
	"github.com/talonworks/swarm-sim/pkg/state"
)

// guided reports whether the agent type steers onto an assigned target.
func guided(typeTag string) bool {
	return typeTag == "micromissile"
}

// behaviorFor wires the flight behavior of the given agent type. The rng is
// shared across the scenario so runs with the same seed reproduce exactly.
func behaviorFor(g *AgentGroup, rng *rand.Rand) (agent.Behavior, error) {
	profile, err := agent.ProfileFor(g.Type)
	if err != nil {
		return agent.Behavior{}, err
	}

	// Threats follow their initial trajectory and carry no handlers.
	if profile.Kind == agent.KindThreat {
		return agent.Behavior{}, nil
	}

	behavior := agent.Behavior{
		UpdateReady:     agent.AeroReady,
		UpdateBoost:     agent.AeroBoost,
		UpdateMidcourse: agent.AeroCoast,
	}
	if guided(g.Type) {
		behavior.UpdateMidcourse = control.GuidedMidcourse()
	}
	if g.Submunitions != nil {
		spawn, err := spawnFor(g.Submunitions, rng)
		if err != nil {
			return agent.Behavior{}, err
		}
		behavior.Spawn = agent.SpawnAfterLaunch(g.Submunitions.LaunchTime, spawn)
	}
	return behavior, nil
}

// spawnFor builds the release hook for a carrier's submunitions. Released
// agents copy the carrier's state and are immediately ready.
func spawnFor(sub *Submunitions, rng *rand.Rand) (func(parent *agent.Agent, t float64) []*agent.Agent, error) {
	profile, err := agent.ProfileFor(sub.Type)
	if err != nil {
		return nil, err
	}
	behavior := agent.Behavior{
		UpdateReady:     agent.AeroReady,
		UpdateBoost:     agent.AeroBoost,
		UpdateMidcourse: agent.AeroCoast,
	}
	if guided(sub.Type) {
		behavior.UpdateMidcourse = control.GuidedMidcourse()
	}
	return func(parent *agent.Agent, t float64) []*agent.Agent {
		spawned := make([]*agent.Agent, sub.Count)
		for i := range spawned {
			spawned[i] = agent.New(agent.Config{
				Type:         sub.Type,
				Kind:         profile.Kind,
				InitialState: parent.State(),
				Static:       profile.Static,
				Dynamic:      agent.DynamicConfig{SensorFrequency: sub.SensorFrequency},
				Behavior:     behavior,
				Rand:         rng,
			}, t, true)
		}
		return spawned
	}, nil
}

// perturb draws a normal perturbation of the mean with the given per-axis
// standard deviations.
func perturb(mean geometry.Vec3, stddev Vector, rng *rand.Rand) geometry.Vec3 {
	return geometry.Vec3{
		X: mean.X + rng.NormFloat64()*stddev.X,
		Y: mean.Y + rng.NormFloat64()*stddev.Y,
		Z: mean.Z + rng.NormFloat64()*stddev.Z,
	}
}

// buildGroup creates the agents of one group.
func buildGroup(g *AgentGroup, rng *rand.Rand) ([]*agent.Agent, error) {
	profile, err := agent.ProfileFor(g.Type)
	if err != nil {
		return nil, err
	}
	behavior, err := behaviorFor(g, rng)
	if err != nil {
		return nil, err
	}

	agents := make([]*agent.Agent, g.Count)
	for i := range agents {
		position := perturb(geometry.Vec3{
			X: g.InitialState.Position.X,
			Y: g.InitialState.Position.Y,
			Z: g.InitialState.Position.Z,
		}, g.Spread, rng)
		velocity := perturb(geometry.Vec3{
			X: g.InitialState.Velocity.X,
			Y: g.InitialState.Velocity.Y,
			Z: g.InitialState.Velocity.Z,
		}, g.VelocitySpread, rng)
		agents[i] = agent.New(agent.Config{
			Type: g.Type,
			Kind: profile.Kind,
			InitialState: state.State{
				Position: position,
				Velocity: velocity,
			},
			Static: profile.Static,
			Dynamic: agent.DynamicConfig{
				LaunchTime:      g.LaunchTime,
				SensorFrequency: g.SensorFrequency,
			},
			Submunitions: submunitionsConfig(g.Submunitions),
			Behavior:     behavior,
			Rand:         rng,
		}, 0, g.Ready)
	}
	return agents, nil
}

func submunitionsConfig(sub *Submunitions) *agent.SubmunitionsConfig {
	if sub == nil {
		return nil
	}
	return &agent.SubmunitionsConfig{
		Type:       sub.Type,
		Count:      sub.Count,
		LaunchTime: sub.LaunchTime,
	}
}

// BuildAgents creates the interceptor and threat swarms of the scenario.
func BuildAgents(s *Scenario, rng *rand.Rand) (interceptors, threats []*agent.Agent, err error) {
	for i := range s.Interceptors {
		agents, err := buildGroup(&s.Interceptors[i], rng)
		if err != nil {
			return nil, nil, fmt.Errorf("interceptor group %d: %w", i, err)
		}
		interceptors = append(interceptors, agents...)
	}
	for i := range s.Threats {
		agents, err := buildGroup(&s.Threats[i], rng)
		if err != nil {
			return nil, nil, fmt.Errorf("threat group %d: %w", i, err)
		}
		threats = append(threats, agents...)
	}
	return interceptors, threats, nil
}

// assignmentFor builds the scenario's assignment strategy.
func assignmentFor(s *Scenario) (assignment.Assignment, error) {
	switch s.Assignment {
	case "", "distance":
		return assignment.NewDistance(), nil
	case "round_robin":
		return assignment.NewRoundRobin(), nil
	default:
		return nil, fmt.Errorf("unknown assignment strategy: %q", s.Assignment)
	}
}

// BuildSimulator creates a simulator running the scenario. The caller owns
// the simulator and must Close it.
func BuildSimulator(s *Scenario, cfg sim.Config) (*sim.Simulator, error) {
	strategy, err := assignmentFor(s)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(s.Seed))
	interceptors, threats, err := BuildAgents(s, rng)
	if err != nil {
		return nil, err
	}
	cfg.StepTime = s.StepTime
	cfg.Workers = s.Workers
	cfg.Assignment = strategy
	return sim.New(cfg, interceptors, threats), nil
}
