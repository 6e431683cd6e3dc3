package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/talonworks/swarm-sim/pkg/logger"
	"github.com/talonworks/swarm-sim/pkg/reporting"
	"github.com/talonworks/swarm-sim/pkg/scenario"
	"github.com/talonworks/swarm-sim/pkg/sim"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an engagement scenario",
	Long:  `Run an engagement scenario interactively or with specified parameters`,
	RunE:  runScenario,
}

func init() {
	runCmd.Flags().StringP("scenario", "s", "", "built-in scenario name to run")
	runCmd.Flags().StringP("file", "f", "", "scenario file (YAML)")
	runCmd.Flags().Float64("duration", 0, "override the scenario end time in seconds")
	runCmd.Flags().Float64("step", 0, "override the scenario step time in seconds")
	runCmd.Flags().Int64("seed", -1, "override the scenario random seed")
	runCmd.Flags().Bool("quiet", false, "record events without printing them")
}

func runScenario(cmd *cobra.Command, _ []string) error {
	s, err := selectScenario(cmd)
	if err != nil {
		return fmt.Errorf("failed to select scenario: %w", err)
	}
	if err := applyOverrides(cmd, s); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	log := reporting.NewEngagementLogWriter(os.Stdout, quiet)

	var simulator *sim.Simulator
	err = logger.WithSpinner("Building scenario...", func() error {
		var err error
		simulator, err = scenario.BuildSimulator(s, sim.Config{OnEvent: log.Observe})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to build scenario: %w", err)
	}
	defer simulator.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		logger.Warn("\nReceived interrupt signal, stopping simulation...")
		cancel()
	}()

	logger.LogSection(fmt.Sprintf("Running %s", s.Name))
	logger.LogKeyValue("Description", s.Description)
	logger.LogKeyValue("Duration", fmt.Sprintf("%gs at %gs steps", s.EndTime, s.StepTime))
	logger.LogKeyValue("Seed", s.Seed)

	simulator.RunContext(ctx, s.EndTime)

	summary := log.Summarize(simulator.Interceptors(), simulator.Threats())
	log.PrintSummary(summary)

	logger.Success("Simulation completed")
	return nil
}

// selectScenario resolves the scenario from the flags, falling back to an
// interactive picker over the built-in scenarios.
func selectScenario(cmd *cobra.Command) (*scenario.Scenario, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		return scenario.Load(path)
	}
	if name, _ := cmd.Flags().GetString("scenario"); name != "" {
		return scenario.DefaultRegistry.Get(name)
	}

	names := scenario.DefaultRegistry.List()
	if len(names) == 0 {
		return nil, fmt.Errorf("no scenarios registered")
	}

	descriptions := make(map[string]string, len(names))
	for _, name := range names {
		if s, err := scenario.DefaultRegistry.Get(name); err == nil {
			descriptions[name] = s.Description
		}
	}

	var selected string
	prompt := &survey.Select{
		Message: "Select scenario:",
		Options: names,
		Description: func(value string, index int) string {
			return descriptions[value]
		},
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return nil, err
	}
	return scenario.DefaultRegistry.Get(selected)
}

// applyOverrides applies the run flags on top of the scenario.
func applyOverrides(cmd *cobra.Command, s *scenario.Scenario) error {
	if duration, _ := cmd.Flags().GetFloat64("duration"); duration > 0 {
		s.EndTime = duration
	}
	if step, _ := cmd.Flags().GetFloat64("step"); step > 0 {
		s.StepTime = step
	}
	if seed, _ := cmd.Flags().GetInt64("seed"); seed >= 0 {
		s.Seed = seed
	}
	return nil
}
