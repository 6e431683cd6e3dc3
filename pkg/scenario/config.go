// Package scenario loads engagement scenarios from YAML, validates them,
// and builds the agent swarms they describe.
package scenario

import (
	"fmt"

	"github.com/talonworks/swarm-sim/pkg/agent"
)

// Vector is a 3D vector in a scenario file.
type Vector struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// InitialState describes the starting state of an agent group.
type InitialState struct {
	Position Vector `yaml:"position"`
	Velocity Vector `yaml:"velocity"`
}

// Submunitions describes the child agents a carrier group releases.
type Submunitions struct {
	Type  string `yaml:"type"`
	Count int    `yaml:"count"`

	// LaunchTime is the release offset from the carrier launch in seconds.
	LaunchTime float64 `yaml:"launch_time"`

	// SensorFrequency of the released agents in Hz.
	SensorFrequency float64 `yaml:"sensor_frequency"`
}

// AgentGroup describes a group of identical agents.
type AgentGroup struct {
	Type            string       `yaml:"type"`
	Count           int          `yaml:"count"`
	Ready           bool         `yaml:"ready"`
	LaunchTime      float64      `yaml:"launch_time"`
	SensorFrequency float64      `yaml:"sensor_frequency"`
	InitialState    InitialState `yaml:"initial_state"`

	// Spread and VelocitySpread are per-axis standard deviations of a
	// normal perturbation applied to each agent's starting position and
	// velocity.
	Spread         Vector `yaml:"spread"`
	VelocitySpread Vector `yaml:"velocity_spread"`

	Submunitions *Submunitions `yaml:"submunitions,omitempty"`
}

// Scenario is a complete engagement scenario.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// StepTime is the simulation step time in seconds.
	StepTime float64 `yaml:"step_time"`

	// EndTime is the simulation end time in seconds.
	EndTime float64 `yaml:"end_time"`

	// Workers is the worker pool size, 0 for the default.
	Workers int `yaml:"workers"`

	// Assignment strategy: "distance" or "round_robin".
	Assignment string `yaml:"assignment"`

	// Seed for the random number generator.
	Seed int64 `yaml:"seed"`

	Interceptors []AgentGroup `yaml:"interceptors"`
	Threats      []AgentGroup `yaml:"threats"`
}

// Validate checks the scenario for configuration errors.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if s.StepTime <= 0 {
		return fmt.Errorf("step_time must be positive, got %g", s.StepTime)
	}
	if s.EndTime <= 0 {
		return fmt.Errorf("end_time must be positive, got %g", s.EndTime)
	}
	if s.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", s.Workers)
	}
	switch s.Assignment {
	case "", "distance", "round_robin":
	default:
		return fmt.Errorf("unknown assignment strategy: %q", s.Assignment)
	}
	if len(s.Interceptors) == 0 {
		return fmt.Errorf("at least one interceptor group is required")
	}
	if len(s.Threats) == 0 {
		return fmt.Errorf("at least one threat group is required")
	}
	for i := range s.Interceptors {
		if err := s.Interceptors[i].validate(agent.KindInterceptor); err != nil {
			return fmt.Errorf("interceptor group %d: %w", i, err)
		}
	}
	for i := range s.Threats {
		if err := s.Threats[i].validate(agent.KindThreat); err != nil {
			return fmt.Errorf("threat group %d: %w", i, err)
		}
	}
	return nil
}

func (g *AgentGroup) validate(kind agent.Kind) error {
	profile, err := agent.ProfileFor(g.Type)
	if err != nil {
		return err
	}
	if profile.Kind != kind {
		return fmt.Errorf("agent type %q is a %v, not a %v", g.Type, profile.Kind, kind)
	}
	if g.Count <= 0 {
		return fmt.Errorf("count must be positive, got %d", g.Count)
	}
	if g.LaunchTime < 0 {
		return fmt.Errorf("launch_time must not be negative, got %g", g.LaunchTime)
	}
	if guided(g.Type) && g.SensorFrequency <= 0 {
		return fmt.Errorf("agent type %q requires a positive sensor_frequency", g.Type)
	}
	if g.Submunitions != nil {
		sub := g.Submunitions
		subProfile, err := agent.ProfileFor(sub.Type)
		if err != nil {
			return fmt.Errorf("submunitions: %w", err)
		}
		if subProfile.Kind != profile.Kind {
			return fmt.Errorf("submunition type %q is a %v, not a %v",
				sub.Type, subProfile.Kind, profile.Kind)
		}
		if sub.Count <= 0 {
			return fmt.Errorf("submunitions: count must be positive, got %d", sub.Count)
		}
		if sub.LaunchTime < 0 {
			return fmt.Errorf("submunitions: launch_time must not be negative, got %g", sub.LaunchTime)
		}
		if guided(sub.Type) && sub.SensorFrequency <= 0 {
			return fmt.Errorf("submunitions: agent type %q requires a positive sensor_frequency", sub.Type)
		}
	}
	return nil
}
