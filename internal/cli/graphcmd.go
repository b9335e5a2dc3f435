package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/screenflow/pkg/graph"
)

// graphCommand creates the graph command group for snapshot management.
func (c *CLI) graphCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Manage screen graph snapshots",
	}

	cmd.AddCommand(c.graphSeedCommand())
	cmd.AddCommand(c.graphStatsCommand())
	cmd.AddCommand(c.graphExportCommand())

	return cmd
}

// graphSeedCommand creates the "graph seed" subcommand.
func (c *CLI) graphSeedCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed [output.json]",
		Short: "Write the built-in demo graph to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			g := graph.Seed()
			if err := graph.WriteFile(g, path); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			printSuccess("Seed graph written")
			printFile(path)
			printStats(len(g.Screens), len(g.Transitions), false)
			printNewline()
			printNextStep("Lay out", "screenflow layout "+path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// graphStatsCommand creates the "graph stats" subcommand.
func (c *CLI) graphStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [graph.json]",
		Short: "Print screen and transition counts plus edge density",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}

			n := len(g.Screens)
			e := len(g.Transitions)
			density := 0.0
			if n > 1 {
				density = float64(e) / float64(n*(n-1))
			}

			printKeyValue("screens", fmt.Sprintf("%d", n))
			printKeyValue("transitions", fmt.Sprintf("%d", e))
			printKeyValue("density", fmt.Sprintf("%.4f", density))
			return nil
		},
	}
}

// graphExportCommand creates the "graph export" subcommand. It normalizes a
// snapshot through the canonical codec, which fills generated transition ids
// and default weights.
func (c *CLI) graphExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [graph.json]",
		Short: "Re-encode a graph snapshot in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}

			if output == "" {
				return graph.Write(g, os.Stdout)
			}
			if err := graph.WriteFile(g, output); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Snapshot exported")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
