package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gridnav"
	"gridnav/internal/logging"
	"gridnav/layout"
)

var solveFlags struct {
	layoutPath string
	algorithm  string
	depthLimit int
	showPath   bool
}

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Run one algorithm on a grid layout and print the result",
	Long: `Solve loads a grid layout (JSON or YAML), runs the selected algorithm
and prints the outcome and run statistics.

Usage:
  gridnav solve -f warehouse.json
  gridnav solve -f warehouse.yaml --algo bfs
  gridnav solve -f warehouse.json --algo dls --depth-limit 20`,
	RunE: runSolve,
}

func init() {
	f := solveCmd.Flags()
	f.StringVarP(&solveFlags.layoutPath, "layout", "f", "", "Path to grid layout file (required)")
	f.StringVar(&solveFlags.algorithm, "algo", "astar", "Algorithm: astar, bfs, dfs, ucs, dls")
	f.IntVar(&solveFlags.depthLimit, "depth-limit", gridnav.DefaultDepthLimit, "Depth limit for dls")
	f.BoolVar(&solveFlags.showPath, "show-path", false, "Print the path cell by cell")
	_ = solveCmd.MarkFlagRequired("layout")
}

func runSolve(cmd *cobra.Command, args []string) error {
	log := logging.New("solve")

	grid, err := layout.LoadFromPath(solveFlags.layoutPath)
	if err != nil {
		return err
	}
	algorithm, err := gridnav.ParseAlgorithm(solveFlags.algorithm)
	if err != nil {
		return err
	}
	log.Debug("layout loaded", "rows", grid.Rows(), "cols", grid.Cols(), "algorithm", algorithm.String())

	run, err := gridnav.Search(cmd.Context(), grid, algorithm,
		gridnav.WithDepthLimit(solveFlags.depthLimit))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), run.Outcome)
	fmt.Fprint(cmd.OutOrStdout(), run.Stats)
	if solveFlags.showPath && run.Found() {
		cells := make([]string, len(run.Path))
		for i, p := range run.Path {
			cells[i] = p.String()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Path: %s\n", strings.Join(cells, " -> "))
	}
	return nil
}
