package gridnav

import (
	"fmt"
	"strings"
	"time"
)

// RunStats summarizes a single completed run. It is immutable once the run
// finishes.
type RunStats struct {
	Algorithm     string        `json:"algorithm"`
	PathLength    int           `json:"path_length"`
	NodesVisited  int           `json:"nodes_visited"`
	NodesExplored int           `json:"nodes_explored"`
	Duration      time.Duration `json:"algorithm_time"`
	DepthLimit    int           `json:"depth_limit,omitempty"`
	Optimal       bool          `json:"optimal"`
}

func (s RunStats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Algorithm: %s\n", s.Algorithm)
	fmt.Fprintf(&b, "Path Length: %d\n", s.PathLength)
	fmt.Fprintf(&b, "Nodes Visited: %d\n", s.NodesVisited)
	fmt.Fprintf(&b, "Nodes Explored: %d\n", s.NodesExplored)
	fmt.Fprintf(&b, "Algorithm Time: %s\n", s.Duration)
	if s.DepthLimit > 0 {
		fmt.Fprintf(&b, "Depth Limit: %d\n", s.DepthLimit)
	}
	if s.PathLength > 0 {
		if s.Optimal {
			b.WriteString("Optimal: Yes\n")
		} else {
			b.WriteString("Optimal: No\n")
		}
	}
	return b.String()
}

// collector accumulates the per-run counters while the search loop executes.
// It is algorithm-agnostic: the engine calls visit once per accepted pop and
// generate once per node newly added to the frontier.
type collector struct {
	visited  int
	explored int
	started  time.Time
}

func newCollector() *collector {
	return &collector{started: time.Now()}
}

func (c *collector) visit()    { c.visited++ }
func (c *collector) generate() { c.explored++ }

// finish freezes the counters into RunStats. The duration covers only the
// interval since the collector was created, which the engine arranges to be
// the search loop itself, never replay or rendering.
func (c *collector) finish(algorithm Algorithm, pathLength, depthLimit int) RunStats {
	return RunStats{
		Algorithm:     algorithm.String(),
		PathLength:    pathLength,
		NodesVisited:  c.visited,
		NodesExplored: c.explored,
		Duration:      time.Since(c.started),
		DepthLimit:    depthLimit,
		Optimal:       algorithm.Optimal(),
	}
}
