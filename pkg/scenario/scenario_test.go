package scenario

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/talonworks/swarm-sim/pkg/agent"
)

func validScenario() *Scenario {
	return SwarmDefense()
}

func TestValidateBuiltins(t *testing.T) {
	for _, name := range DefaultRegistry.List() {
		t.Run(name, func(t *testing.T) {
			s, err := DefaultRegistry.Get(name)
			if err != nil {
				t.Fatalf("Get(%q): %v", name, err)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("built-in scenario %q invalid: %v", name, err)
			}
		})
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Scenario)
	}{
		{"missing name", func(s *Scenario) { s.Name = "" }},
		{"zero step time", func(s *Scenario) { s.StepTime = 0 }},
		{"negative end time", func(s *Scenario) { s.EndTime = -1 }},
		{"negative workers", func(s *Scenario) { s.Workers = -1 }},
		{"unknown assignment", func(s *Scenario) { s.Assignment = "nearest" }},
		{"no interceptors", func(s *Scenario) { s.Interceptors = nil }},
		{"no threats", func(s *Scenario) { s.Threats = nil }},
		{"unknown agent type", func(s *Scenario) { s.Interceptors[0].Type = "railgun" }},
		{"threat type as interceptor", func(s *Scenario) { s.Interceptors[0].Type = "drone" }},
		{"zero count", func(s *Scenario) { s.Threats[0].Count = 0 }},
		{"negative launch time", func(s *Scenario) { s.Interceptors[0].LaunchTime = -1 }},
		{"guided without sensor", func(s *Scenario) {
			s.Interceptors[0].Submunitions.SensorFrequency = 0
		}},
		{"unknown submunition type", func(s *Scenario) {
			s.Interceptors[0].Submunitions.Type = "railgun"
		}},
		{"zero submunition count", func(s *Scenario) {
			s.Interceptors[0].Submunitions.Count = 0
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := validScenario()
			test.mutate(s)
			if err := s.Validate(); err == nil {
				t.Error("Validate() = nil, want an error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	const doc = `
name: test-engagement
step_time: 0.01
end_time: 10
assignment: round_robin
seed: 42
interceptors:
  - type: micromissile
    count: 2
    launch_time: 0.5
    sensor_frequency: 100
    initial_state:
      velocity: {y: 200, z: 200}
threats:
  - type: drone
    count: 3
    ready: true
    initial_state:
      position: {y: 1000, z: 500}
      velocity: {y: -40}
`
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "test-engagement" {
		t.Errorf("name = %q, want test-engagement", s.Name)
	}
	if s.Assignment != "round_robin" {
		t.Errorf("assignment = %q, want round_robin", s.Assignment)
	}
	if s.Seed != 42 {
		t.Errorf("seed = %d, want 42", s.Seed)
	}
	if len(s.Interceptors) != 1 || s.Interceptors[0].Count != 2 {
		t.Errorf("interceptor groups = %+v, want one group of 2", s.Interceptors)
	}
	if got := s.Threats[0].InitialState.Position.Y; got != 1000 {
		t.Errorf("threat position y = %v, want 1000", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("SWARM_SIM_STEP_TIME", "0.5")
	t.Setenv("SWARM_SIM_SEED", "7")

	s := validScenario()
	applyEnvironmentOverrides(s)
	if s.StepTime != 0.5 {
		t.Errorf("step time = %v, want the override 0.5", s.StepTime)
	}
	if s.Seed != 7 {
		t.Errorf("seed = %d, want the override 7", s.Seed)
	}
}

func TestBuildAgents(t *testing.T) {
	s := validScenario()
	rng := rand.New(rand.NewSource(s.Seed))
	interceptors, threats, err := BuildAgents(s, rng)
	if err != nil {
		t.Fatalf("BuildAgents: %v", err)
	}
	if len(interceptors) != 7 {
		t.Errorf("interceptor count = %d, want 7", len(interceptors))
	}
	if len(threats) != 49 {
		t.Errorf("threat count = %d, want 49", len(threats))
	}
	for _, interceptor := range interceptors {
		if interceptor.Kind() != agent.KindInterceptor {
			t.Errorf("interceptor kind = %v", interceptor.Kind())
		}
		if interceptor.Submunitions() == nil {
			t.Error("carrier missing submunitions configuration")
		}
	}
	for _, threat := range threats {
		if threat.Kind() != agent.KindThreat {
			t.Errorf("threat kind = %v", threat.Kind())
		}
	}
}

func TestBuildAgentsSpread(t *testing.T) {
	s := validScenario()
	rng := rand.New(rand.NewSource(1))
	_, threats, err := BuildAgents(s, rng)
	if err != nil {
		t.Fatalf("BuildAgents: %v", err)
	}
	positions := make(map[float64]bool)
	velocities := make(map[float64]bool)
	for _, threat := range threats {
		positions[threat.Position().X] = true
		velocities[threat.Velocity().Y] = true
	}
	if len(positions) < 2 {
		t.Error("spread did not disperse the threat positions")
	}
	if len(velocities) < 2 {
		t.Error("velocity spread did not disperse the threat velocities")
	}
}

func TestCarrierSpawnsSubmunitions(t *testing.T) {
	s := validScenario()
	rng := rand.New(rand.NewSource(s.Seed))
	interceptors, _, err := BuildAgents(s, rng)
	if err != nil {
		t.Fatalf("BuildAgents: %v", err)
	}

	carrier := interceptors[0]
	releaseTime := carrier.Dynamic().LaunchTime + carrier.Submunitions().LaunchTime
	if got := carrier.Spawn(releaseTime - 0.1); got != nil {
		t.Errorf("spawned %d agents before the release time", len(got))
	}
	spawned := carrier.Spawn(releaseTime)
	if len(spawned) != 7 {
		t.Fatalf("spawned %d agents, want 7", len(spawned))
	}
	for _, child := range spawned {
		if child.Type() != "micromissile" {
			t.Errorf("spawned type = %q, want micromissile", child.Type())
		}
		if child.Phase() != agent.PhaseReady {
			t.Errorf("spawned phase = %v, want READY", child.Phase())
		}
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register("demo", SwarmDefense); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := registry.Register("demo", SwarmDefense); err == nil {
		t.Error("duplicate Register succeeded")
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	if _, err := DefaultRegistry.Get("absent"); err == nil {
		t.Error("Get of an unknown scenario succeeded")
	}
}
