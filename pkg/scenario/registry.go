package scenario

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages the available scenarios.
type Registry struct {
	mu        sync.RWMutex
	scenarios map[string]func() *Scenario
}

// NewRegistry creates an empty scenario registry.
func NewRegistry() *Registry {
	return &Registry{scenarios: make(map[string]func() *Scenario)}
}

// Register adds a scenario to the registry.
func (r *Registry) Register(name string, factory func() *Scenario) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scenarios[name]; exists {
		return fmt.Errorf("scenario %s already registered", name)
	}
	r.scenarios[name] = factory
	return nil
}

// Get returns a fresh copy of the requested scenario.
func (r *Registry) Get(name string) (*Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.scenarios[name]
	if !exists {
		return nil, fmt.Errorf("scenario %s not found", name)
	}
	return factory(), nil
}

// List returns the registered scenario names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global scenario registry holding the built-in
// scenarios.
var DefaultRegistry = NewRegistry()

func init() {
	for name, factory := range map[string]func() *Scenario{
		"swarm-defense": SwarmDefense,
		"missile-salvo": MissileSalvo,
	} {
		if err := DefaultRegistry.Register(name, factory); err != nil {
			panic(err)
		}
	}
}

// SwarmDefense is the default engagement: rocket carriers release
// micromissile swarms against an incoming drone swarm.
func SwarmDefense() *Scenario {
	return &Scenario{
		Name:        "swarm-defense",
		Description: "Carrier rockets release micromissile swarms against an incoming drone swarm",
		StepTime:    0.01,
		EndTime:     60,
		Assignment:  "distance",
		Seed:        1,
		Interceptors: []AgentGroup{
			{
				Type:       "hydra70",
				Count:      7,
				LaunchTime: 1,
				InitialState: InitialState{
					Velocity: Vector{Y: 170, Z: 100},
				},
				Spread: Vector{X: 20, Y: 20},
				Submunitions: &Submunitions{
					Type:            "micromissile",
					Count:           7,
					LaunchTime:      4,
					SensorFrequency: 100,
				},
			},
		},
		Threats: []AgentGroup{
			{
				Type:  "drone",
				Count: 49,
				Ready: true,
				InitialState: InitialState{
					Position: Vector{Y: 4000, Z: 600},
					Velocity: Vector{Y: -50, Z: -5},
				},
				Spread:         Vector{X: 200, Y: 200, Z: 100},
				VelocitySpread: Vector{X: 5, Y: 5, Z: 2},
			},
		},
	}
}

// MissileSalvo pits directly launched micromissiles against a salvo of
// incoming missiles.
func MissileSalvo() *Scenario {
	return &Scenario{
		Name:        "missile-salvo",
		Description: "Directly launched micromissiles against a salvo of incoming missiles",
		StepTime:    0.005,
		EndTime:     30,
		Assignment:  "round_robin",
		Seed:        1,
		Interceptors: []AgentGroup{
			{
				Type:            "micromissile",
				Count:           16,
				LaunchTime:      0.5,
				SensorFrequency: 100,
				InitialState: InitialState{
					Velocity: Vector{Y: 250, Z: 250},
				},
				Spread: Vector{X: 50},
			},
		},
		Threats: []AgentGroup{
			{
				Type:  "missile",
				Count: 8,
				Ready: true,
				InitialState: InitialState{
					Position: Vector{Y: 6000, Z: 1500},
					Velocity: Vector{Y: -300, Z: -70},
				},
				Spread:         Vector{X: 100, Y: 300, Z: 100},
				VelocitySpread: Vector{X: 10, Y: 20, Z: 10},
			},
		},
	}
}
