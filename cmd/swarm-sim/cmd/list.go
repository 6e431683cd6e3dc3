package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/talonworks/swarm-sim/pkg/scenario"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available scenarios",
	Long:  `List the built-in engagement scenarios with their descriptions`,
	RunE:  listScenarios,
}

func listScenarios(cmd *cobra.Command, args []string) error {
	names := scenario.DefaultRegistry.List()
	if len(names) == 0 {
		fmt.Println("No scenarios found")
		return nil
	}

	// Create tabwriter for formatted output
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tASSIGNMENT\tINTERCEPTORS\tTHREATS\tDESCRIPTION")
	_, _ = fmt.Fprintln(w, "----\t----------\t------------\t-------\t-----------")

	for _, name := range names {
		s, err := scenario.DefaultRegistry.Get(name)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			s.Name,
			s.Assignment,
			groupCount(s.Interceptors),
			groupCount(s.Threats),
			s.Description,
		)
	}

	return w.Flush()
}

func groupCount(groups []scenario.AgentGroup) int {
	total := 0
	for _, g := range groups {
		total += g.Count
	}
	return total
}
