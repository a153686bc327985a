package gridnav

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func search(t *testing.T, g *Grid, algorithm Algorithm, options ...Option) *Run {
	t.Helper()
	run, err := Search(context.Background(), g, algorithm, options...)
	if err != nil {
		t.Fatalf("Search(%s): %v", algorithm, err)
	}
	return run
}

func TestParseAlgorithm(t *testing.T) {
	cases := map[string]Algorithm{
		"astar": AStar, "A*": AStar,
		"bfs": BreadthFirst, "BFS": BreadthFirst,
		"dfs": DepthFirst,
		"ucs": UniformCost,
		"dls": DepthLimited,
	}
	for name, want := range cases {
		got, err := ParseAlgorithm(name)
		if err != nil || got != want {
			t.Errorf("ParseAlgorithm(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := ParseAlgorithm("dijkstra"); err == nil {
		t.Error("ParseAlgorithm(dijkstra): want error")
	}
}

func TestSearch_InvalidPositions(t *testing.T) {
	g, err := NewGrid(3, 3)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Search(context.Background(), g, BreadthFirst); !errors.Is(err, ErrInvalidPositions) {
		t.Errorf("missing start: want ErrInvalidPositions, got %v", err)
	}
	if err := g.SetStart(Position{0, 0}); err != nil {
		t.Fatal(err)
	}
	if _, err := Search(context.Background(), g, BreadthFirst); !errors.Is(err, ErrInvalidPositions) {
		t.Errorf("missing goal: want ErrInvalidPositions, got %v", err)
	}
}

func TestSearch_InvalidDepthLimit(t *testing.T) {
	g := mustGrid(t, 2, 2, Position{0, 0}, Position{1, 1})
	if _, err := Search(context.Background(), g, DepthLimited, WithDepthLimit(-3)); err == nil {
		t.Error("negative depth limit: want error")
	}
}

func TestSearch_Canceled(t *testing.T) {
	g := mustGrid(t, 10, 10, Position{0, 0}, Position{9, 9})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Search(ctx, g, BreadthFirst); !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}

// Straight unobstructed line: the optimal algorithms return a path of
// Manhattan distance + 1 cells.
func TestStraightLine_OptimalLength(t *testing.T) {
	g := mustGrid(t, 1, 6, Position{0, 0}, Position{0, 5})
	for _, algorithm := range []Algorithm{AStar, BreadthFirst, UniformCost} {
		run := search(t, g, algorithm)
		if !run.Found() {
			t.Fatalf("%s: no path on open corridor", algorithm)
		}
		if len(run.Path) != 6 {
			t.Errorf("%s: path length = %d, want 6", algorithm, len(run.Path))
		}
	}
}

// 5x5 open grid, corner to corner: BFS finds a 9-cell path and, because the
// goal is the single deepest cell and the goal test runs at dequeue, visits
// all 25 cells.
func TestBFS_OpenGridCornerToCorner(t *testing.T) {
	g := mustGrid(t, 5, 5, Position{0, 0}, Position{4, 4})
	run := search(t, g, BreadthFirst)
	if !run.Found() {
		t.Fatal("no path on open grid")
	}
	if len(run.Path) != 9 {
		t.Errorf("path length = %d, want 9", len(run.Path))
	}
	if run.Stats.NodesVisited != 25 {
		t.Errorf("visited = %d, want 25", run.Stats.NodesVisited)
	}
	if run.Stats.PathLength != 9 {
		t.Errorf("stats path length = %d, want 9", run.Stats.PathLength)
	}
}

// Adjacent start and goal: every algorithm pops exactly the start and the
// goal, so the path has 2 cells and the visited count is 2.
func TestAdjacentStartGoal_AllAlgorithms(t *testing.T) {
	for _, algorithm := range Algorithms() {
		g := mustGrid(t, 1, 2, Position{0, 0}, Position{0, 1})
		run := search(t, g, algorithm)
		if !run.Found() {
			t.Fatalf("%s: no path", algorithm)
		}
		if len(run.Path) != 2 {
			t.Errorf("%s: path length = %d, want 2", algorithm, len(run.Path))
		}
		if run.Stats.NodesVisited != 2 {
			t.Errorf("%s: visited = %d, want 2", algorithm, run.Stats.NodesVisited)
		}
	}
}

// Deterministic 2x2 traces, pinned per algorithm. BFS explores in enqueue
// order; the stack algorithms expand up/right/down/left because neighbors are
// pushed reversed; the heap algorithms break priority ties by insertion order.
func TestVisitOrder_2x2(t *testing.T) {
	cases := []struct {
		algorithm    Algorithm
		wantVisited  []Position
		wantExplored int
		wantFrontier map[Position]bool
	}{
		{
			algorithm:    BreadthFirst,
			wantVisited:  []Position{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
			wantExplored: 4,
			wantFrontier: map[Position]bool{},
		},
		{
			algorithm:    DepthFirst,
			wantVisited:  []Position{{0, 0}, {0, 1}, {1, 1}},
			wantExplored: 4,
			wantFrontier: map[Position]bool{{1, 0}: true},
		},
		{
			algorithm:    UniformCost,
			wantVisited:  []Position{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
			wantExplored: 4,
			wantFrontier: map[Position]bool{},
		},
		{
			algorithm:    AStar,
			wantVisited:  []Position{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
			wantExplored: 4,
			wantFrontier: map[Position]bool{},
		},
		{
			algorithm:    DepthLimited,
			wantVisited:  []Position{{0, 0}, {0, 1}, {1, 1}},
			wantExplored: 4,
			wantFrontier: map[Position]bool{{1, 0}: true},
		},
	}
	for _, tc := range cases {
		t.Run(tc.algorithm.String(), func(t *testing.T) {
			g := mustGrid(t, 2, 2, Position{0, 0}, Position{1, 1})
			run := search(t, g, tc.algorithm)
			if !run.Found() {
				t.Fatal("no path")
			}
			if diff := cmp.Diff(tc.wantVisited, run.Trace.Visited); diff != "" {
				t.Errorf("visit order mismatch:\n%s", diff)
			}
			if run.Stats.NodesExplored != tc.wantExplored {
				t.Errorf("explored = %d, want %d", run.Stats.NodesExplored, tc.wantExplored)
			}
			if diff := cmp.Diff(tc.wantFrontier, run.Trace.Frontier); diff != "" {
				t.Errorf("final frontier mismatch:\n%s", diff)
			}
		})
	}
}

// Walling in the goal: every algorithm exhausts the reachable cells and
// reports the no-path outcome, having visited each reachable cell exactly once.
func TestEnclosedGoal_NoPath(t *testing.T) {
	walls := []Position{{1, 2}, {3, 2}, {2, 1}, {2, 3}}
	// 25 cells minus 4 walls minus the unreachable goal.
	const reachable = 20

	for _, algorithm := range []Algorithm{AStar, BreadthFirst, DepthFirst, UniformCost} {
		g := mustGrid(t, 5, 5, Position{0, 0}, Position{2, 2}, walls...)
		run := search(t, g, algorithm)
		if run.Outcome != NoPath {
			t.Errorf("%s: outcome = %v, want NoPath", algorithm, run.Outcome)
		}
		if run.Path != nil {
			t.Errorf("%s: path should be nil", algorithm)
		}
		if run.Stats.NodesVisited != reachable {
			t.Errorf("%s: visited = %d, want %d", algorithm, run.Stats.NodesVisited, reachable)
		}
		if run.Stats.PathLength != 0 {
			t.Errorf("%s: stats path length = %d, want 0", algorithm, run.Stats.PathLength)
		}
	}

	// With a limit generous enough that nothing is pruned, DLS reports plain
	// NoPath too; a tight limit makes the failure a limit failure instead.
	g := mustGrid(t, 5, 5, Position{0, 0}, Position{2, 2}, walls...)
	run := search(t, g, DepthLimited, WithDepthLimit(100))
	if run.Outcome != NoPath {
		t.Errorf("DLS limit 100: outcome = %v, want NoPath", run.Outcome)
	}
	if run.Stats.NodesVisited != reachable {
		t.Errorf("DLS limit 100: visited = %d, want %d", run.Stats.NodesVisited, reachable)
	}

	g = mustGrid(t, 5, 5, Position{0, 0}, Position{2, 2}, walls...)
	run = search(t, g, DepthLimited, WithDepthLimit(1))
	if run.Outcome != NoPathWithinLimit {
		t.Errorf("DLS limit 1: outcome = %v, want NoPathWithinLimit", run.Outcome)
	}
}

// Depth-limited search on a corridor: the goal sits at depth 9, so limit 8
// fails with the limit as the cause and limit 9 finds the 10-cell path.
func TestDepthLimited_CorridorBoundary(t *testing.T) {
	g := mustGrid(t, 1, 10, Position{0, 0}, Position{0, 9})
	run := search(t, g, DepthLimited, WithDepthLimit(8))
	if run.Outcome != NoPathWithinLimit {
		t.Errorf("limit 8: outcome = %v, want NoPathWithinLimit", run.Outcome)
	}

	g = mustGrid(t, 1, 10, Position{0, 0}, Position{0, 9})
	run = search(t, g, DepthLimited, WithDepthLimit(9))
	if !run.Found() {
		t.Fatalf("limit 9: outcome = %v, want PathFound", run.Outcome)
	}
	if len(run.Path) != 10 {
		t.Errorf("limit 9: path length = %d, want 10", len(run.Path))
	}
	if run.Stats.DepthLimit != 9 {
		t.Errorf("stats depth limit = %d, want 9", run.Stats.DepthLimit)
	}
}

// obstacleCourse is a 6x6 layout with a wall that forces a detour.
func obstacleCourse(t *testing.T) *Grid {
	t.Helper()
	return mustGrid(t, 6, 6, Position{0, 0}, Position{5, 5},
		Position{0, 3}, Position{1, 3}, Position{2, 3}, Position{3, 3}, Position{4, 3},
		Position{3, 0}, Position{3, 1},
	)
}

// BFS never returns a longer path than DFS.
func TestOptimality_BFSBeatsDFS(t *testing.T) {
	bfs := search(t, obstacleCourse(t), BreadthFirst)
	dfs := search(t, obstacleCourse(t), DepthFirst)
	if !bfs.Found() || !dfs.Found() {
		t.Fatalf("expected both to find a path: bfs=%v dfs=%v", bfs.Outcome, dfs.Outcome)
	}
	if len(bfs.Path) > len(dfs.Path) {
		t.Errorf("BFS path (%d) longer than DFS path (%d)", len(bfs.Path), len(dfs.Path))
	}
}

// The three optimal algorithms agree on path length wherever a path exists.
func TestOptimality_AgreeOnLength(t *testing.T) {
	want := len(search(t, obstacleCourse(t), BreadthFirst).Path)
	for _, algorithm := range []Algorithm{AStar, UniformCost} {
		got := len(search(t, obstacleCourse(t), algorithm).Path)
		if got != want {
			t.Errorf("%s path length = %d, BFS = %d", algorithm, got, want)
		}
	}
}

// A zero heuristic degrades A* to uniform-cost ordering: it visits at least as
// many nodes as Manhattan-guided A* and still finds an optimal path.
func TestAStar_ZeroHeuristic(t *testing.T) {
	zero := func(from, to Position) int { return 0 }

	guided := search(t, obstacleCourse(t), AStar)
	blind := search(t, obstacleCourse(t), AStar, WithHeuristic(zero))
	ucs := search(t, obstacleCourse(t), UniformCost)

	if blind.Stats.NodesVisited < guided.Stats.NodesVisited {
		t.Errorf("zero-heuristic A* visited %d < guided %d",
			blind.Stats.NodesVisited, guided.Stats.NodesVisited)
	}
	if len(guided.Path) > len(ucs.Path) {
		t.Errorf("A* path (%d) longer than UCS path (%d)", len(guided.Path), len(ucs.Path))
	}
	if len(blind.Path) != len(ucs.Path) {
		t.Errorf("zero-heuristic A* path (%d) differs from UCS (%d)", len(blind.Path), len(ucs.Path))
	}
}

// Running the same algorithm twice on an unmodified grid yields an identical
// path and exploration.
func TestIdempotence(t *testing.T) {
	for _, algorithm := range Algorithms() {
		g := obstacleCourse(t)
		first := search(t, g, algorithm)
		second := search(t, g, algorithm)
		if diff := cmp.Diff(first.Path, second.Path); diff != "" {
			t.Errorf("%s: path changed between runs:\n%s", algorithm, diff)
		}
		if diff := cmp.Diff(first.Trace.Visited, second.Trace.Visited); diff != "" {
			t.Errorf("%s: visit order changed between runs:\n%s", algorithm, diff)
		}
		if first.Stats.NodesVisited != second.Stats.NodesVisited {
			t.Errorf("%s: visited count changed: %d vs %d",
				algorithm, first.Stats.NodesVisited, second.Stats.NodesVisited)
		}
	}
}

// Every found path starts at the start cell, ends at the goal cell, and moves
// one orthogonal step at a time through non-obstacle cells.
func TestPathContiguity(t *testing.T) {
	for _, algorithm := range Algorithms() {
		g := obstacleCourse(t)
		run := search(t, g, algorithm, WithDepthLimit(30))
		if !run.Found() {
			t.Fatalf("%s: outcome = %v", algorithm, run.Outcome)
		}
		start, _ := g.Start()
		goal, _ := g.Goal()
		if run.Path[0] != start {
			t.Errorf("%s: path starts at %v, want %v", algorithm, run.Path[0], start)
		}
		if run.Path[len(run.Path)-1] != goal {
			t.Errorf("%s: path ends at %v, want %v", algorithm, run.Path[len(run.Path)-1], goal)
		}
		for i := 1; i < len(run.Path); i++ {
			if Manhattan(run.Path[i-1], run.Path[i]) != 1 {
				t.Errorf("%s: non-adjacent step %v -> %v", algorithm, run.Path[i-1], run.Path[i])
			}
			if g.IsObstacle(run.Path[i]) {
				t.Errorf("%s: path crosses obstacle at %v", algorithm, run.Path[i])
			}
		}
	}
}

func TestOptimalFlag(t *testing.T) {
	optimal := map[Algorithm]bool{
		AStar: true, BreadthFirst: true, UniformCost: true,
		DepthFirst: false, DepthLimited: false,
	}
	for algorithm, want := range optimal {
		if algorithm.Optimal() != want {
			t.Errorf("%s.Optimal() = %v, want %v", algorithm, algorithm.Optimal(), want)
		}
		g := mustGrid(t, 1, 2, Position{0, 0}, Position{0, 1})
		if run := search(t, g, algorithm); run.Stats.Optimal != want {
			t.Errorf("%s: stats optimal = %v, want %v", algorithm, run.Stats.Optimal, want)
		}
	}
}
