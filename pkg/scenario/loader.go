package scenario

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a scenario from a YAML file. Environment
// variables override selected fields after parsing.
func Load(path string) (*Scenario, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("scenario file not found: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading scenario file: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("error parsing scenario file: %w", err)
	}

	applyEnvironmentOverrides(&s)

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

// applyEnvironmentOverrides overrides selected scenario fields from the
// environment.
func applyEnvironmentOverrides(s *Scenario) {
	if stepTime := os.Getenv("SWARM_SIM_STEP_TIME"); stepTime != "" {
		if v, err := strconv.ParseFloat(stepTime, 64); err == nil {
			s.StepTime = v
		}
	}
	if endTime := os.Getenv("SWARM_SIM_END_TIME"); endTime != "" {
		if v, err := strconv.ParseFloat(endTime, 64); err == nil {
			s.EndTime = v
		}
	}
	if workers := os.Getenv("SWARM_SIM_WORKERS"); workers != "" {
		if v, err := strconv.Atoi(workers); err == nil {
			s.Workers = v
		}
	}
	if seed := os.Getenv("SWARM_SIM_SEED"); seed != "" {
		if v, err := strconv.ParseInt(seed, 10, 64); err == nil {
			s.Seed = v
		}
	}
}
