package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"gridnav"
	"gridnav/internal/logging"
	"gridnav/layout"
)

var compareFlags struct {
	layoutPath string
	depthLimit int
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run all five algorithms on one layout and compare their statistics",
	Long: `Compare runs A*, BFS, DFS, UCS and DLS on the same layout and prints a
side-by-side statistics table. Each run gets its own copy of the grid, so the
runs execute concurrently without sharing mutable state.`,
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.StringVarP(&compareFlags.layoutPath, "layout", "f", "", "Path to grid layout file (required)")
	f.IntVar(&compareFlags.depthLimit, "depth-limit", gridnav.DefaultDepthLimit, "Depth limit for dls")
	_ = compareCmd.MarkFlagRequired("layout")
}

func runCompare(cmd *cobra.Command, args []string) error {
	log := logging.New("compare")

	grid, err := layout.LoadFromPath(compareFlags.layoutPath)
	if err != nil {
		return err
	}

	algorithms := gridnav.Algorithms()
	runs := make([]*gridnav.Run, len(algorithms))

	group, ctx := errgroup.WithContext(cmd.Context())
	for i, algorithm := range algorithms {
		i, algorithm := i, algorithm
		snapshot := grid.Clone()
		group.Go(func() error {
			run, err := gridnav.Search(ctx, snapshot, algorithm,
				gridnav.WithDepthLimit(compareFlags.depthLimit))
			if err != nil {
				return fmt.Errorf("%s: %w", algorithm, err)
			}
			runs[i] = run
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	log.Debug("all runs complete", "layout", compareFlags.layoutPath)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tOUTCOME\tPATH\tVISITED\tEXPLORED\tTIME\tOPTIMAL")
	for _, run := range runs {
		optimal := "no"
		if run.Stats.Optimal {
			optimal = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			run.Algorithm, run.Outcome, run.Stats.PathLength,
			run.Stats.NodesVisited, run.Stats.NodesExplored,
			run.Stats.Duration, optimal)
	}
	return w.Flush()
}
