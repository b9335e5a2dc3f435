package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/screenflow/pkg/paths"
)

// pathCommand creates the path command for querying routes between screens.
func (c *CLI) pathCommand() *cobra.Command {
	var (
		graphPath string
		all       bool
		maxDepth  int
		maxPaths  int
	)

	cmd := &cobra.Command{
		Use:   "path [from] [to]",
		Short: "Find routes between two screens",
		Long: `Find routes between two screens.

By default the cheapest route (by transition weight) is printed. With --all,
alternative simple paths are enumerated up to a hop budget above the
shortest route and listed best-first.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPath(graphPath, args[0], args[1], all, maxDepth, maxPaths)
		},
	}

	cmd.Flags().StringVarP(&graphPath, "graph", "g", "seed", "graph file (or \"seed\" for the demo graph)")
	cmd.Flags().BoolVar(&all, "all", false, "enumerate alternative simple paths")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "hop cutoff for alternatives (0 for automatic)")
	cmd.Flags().IntVar(&maxPaths, "max-paths", paths.DefaultMaxPaths, "cap on enumerated alternatives")

	return cmd
}

func (c *CLI) runPath(graphPath, from, to string, all bool, maxDepth, maxPaths int) error {
	g, err := loadGraph(graphPath)
	if err != nil {
		return err
	}
	finder := paths.NewFinder(g)

	if !all {
		p, err := finder.Shortest(from, to)
		if err != nil {
			return err
		}
		printPath(p, "")
		return nil
	}

	found, err := finder.Simple(from, to, maxDepth, maxPaths)
	if err != nil {
		return err
	}
	printSuccess("%d route(s) from %s to %s", len(found), from, to)
	for i, p := range found {
		printPath(p, fmt.Sprintf("%d. ", i+1))
	}
	return nil
}

func printPath(p paths.Path, prefix string) {
	route := strings.Join(p.Screens, " "+iconArrow+" ")
	fmt.Println(prefix + StyleValue.Render(route))
	printDetail("%d hops, weight %d", p.Hops(), p.Weight)
}
