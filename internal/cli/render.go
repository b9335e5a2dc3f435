package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/screenflow/pkg/render"
)

// renderCommand creates the render command for producing diagram artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		network    int
		labels     bool
	)

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a screen graph as DOT, SVG, PDF, or PNG",
		Long: `Render a screen graph as DOT, SVG, PDF, or PNG.

The render command runs a layout pass and converts the result into one or
more artifacts. Positions come from the layout engine; Graphviz only routes
edges and rasterizes, so the picture matches the interactive layout.

Pass "seed" instead of a file to render the built-in demo graph. Use
--network to restrict output to a single connected component.

PDF and PNG output require librsvg (rsvg-convert).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := validateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], formats, output, noCache, render.Options{
				Network: network,
				Labels:  labels,
			})
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, pdf, png (comma-separated)")
	cmd.Flags().IntVar(&network, "network", render.AllNetworks, "restrict to one connected component (-1 = all)")
	cmd.Flags().BoolVar(&labels, "labels", false, "label edges with action type and weight")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, formats []string, output string, noCache bool, opts render.Options) error {
	g, err := loadGraph(input)
	if err != nil {
		return err
	}

	ca := newCache(noCache)
	eng := c.newEngine(noCache)
	defer eng.Close()

	result, err := eng.LayoutPass(ctx, g)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	renderer := render.NewRenderer(ca, nil, c.Logger)
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if input == "seed" {
		base = "seed"
	}

	for _, format := range formats {
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", format))
		spinner.Start()

		data, err := renderer.Render(ctx, result, g, format, opts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		spinner.Stop()

		path := artifactPath(base, output, format, len(formats) > 1)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}

	printSuccess("Render complete")
	printStats(len(g.Screens), len(g.Transitions), false)
	return nil
}

// artifactPath picks the output path for one format. A single format honors
// --output verbatim; multiple formats treat it as a base path.
func artifactPath(base, output, format string, multi bool) string {
	if output == "" {
		return strings.TrimSuffix(base, filepath.Ext(base)) + "." + format
	}
	if multi {
		return strings.TrimSuffix(output, filepath.Ext(output)) + "." + format
	}
	return output
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{render.FormatSVG}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

func validateFormats(formats []string) error {
	for _, f := range formats {
		switch f {
		case render.FormatDOT, render.FormatSVG, render.FormatPNG, render.FormatPDF:
		default:
			return fmt.Errorf("unsupported format %q (want dot, svg, png, or pdf)", f)
		}
	}
	return nil
}
