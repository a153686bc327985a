package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gridnav"
	"gridnav/layout"
)

var replayFlags struct {
	layoutPath string
	algorithm  string
	depthLimit int
	interval   time.Duration
}

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Run an algorithm and animate its exploration in the terminal",
	Long: `Replay runs the selected algorithm to completion, then plays the recorded
trace back frame by frame: first the exploration in visitation order, then the
robot walking the found path. The search itself runs at full speed; only the
playback is paced.`,
	RunE: runReplay,
}

func init() {
	f := replayCmd.Flags()
	f.StringVarP(&replayFlags.layoutPath, "layout", "f", "", "Path to grid layout file (required)")
	f.StringVar(&replayFlags.algorithm, "algo", "astar", "Algorithm: astar, bfs, dfs, ucs, dls")
	f.IntVar(&replayFlags.depthLimit, "depth-limit", gridnav.DefaultDepthLimit, "Depth limit for dls")
	f.DurationVar(&replayFlags.interval, "interval", 50*time.Millisecond, "Delay between frames")
	_ = replayCmd.MarkFlagRequired("layout")
}

func runReplay(cmd *cobra.Command, args []string) error {
	grid, err := layout.LoadFromPath(replayFlags.layoutPath)
	if err != nil {
		return err
	}
	algorithm, err := gridnav.ParseAlgorithm(replayFlags.algorithm)
	if err != nil {
		return err
	}

	run, err := gridnav.Search(cmd.Context(), grid, algorithm,
		gridnav.WithDepthLimit(replayFlags.depthLimit))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	b := newBoard(grid)
	replay := gridnav.NewReplay(run)
	err = replay.Play(cmd.Context(), replayFlags.interval, func(frame gridnav.Frame) {
		fmt.Fprint(out, "\033[H\033[2J") // clear terminal between frames
		b.apply(frame)
		b.render(out)
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, run.Outcome)
	fmt.Fprint(out, run.Stats)
	return nil
}
