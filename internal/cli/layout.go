package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/screenflow/pkg/engine"
)

// layoutCommand creates the layout command for computing screen placements.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := engine.Options{}

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute a layout pass over a screen graph",
		Long: `Compute a layout pass over a screen graph.

The layout command takes a graph.json file and runs the full pass: connected
component partitioning, degree-derived scaling, layered placement per
component, and parallel-edge disambiguation. The output is a layout.json
with node rectangles, edge routes and component bounds.

Pass "seed" instead of a file to lay out the built-in demo graph.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Layout flags
	cmd.Flags().IntVar(&opts.OrderingEpochs, "ordering-epochs", 0, "crossing-reduction sweeps (0 = default)")
	cmd.Flags().Float64Var(&opts.ComponentGap, "component-gap", 0, "gap between components (0 = default)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache and recompute")

	return cmd
}

// runLayout loads the graph, runs the pass, and writes the result.
func (c *CLI) runLayout(ctx context.Context, input string, opts engine.Options, output string, noCache bool) error {
	g, err := loadGraph(input)
	if err != nil {
		return err
	}

	eng := c.newEngine(noCache)
	defer eng.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := eng.LayoutPassWithOptions(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(g.Screens), len(g.Transitions), false)
	printDetail("%d networks, bounds %.0fx%.0f", len(result.Components), result.Bounds.W, result.Bounds.H)
	printNewline()
	printNextStep("Render", "screenflow render "+input)

	return nil
}
