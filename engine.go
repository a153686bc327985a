package gridnav

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Algorithm selects one of the five search strategies.
type Algorithm int

const (
	AStar Algorithm = iota
	BreadthFirst
	DepthFirst
	UniformCost
	DepthLimited
)

// Algorithms lists every supported algorithm, in display order.
func Algorithms() []Algorithm {
	return []Algorithm{AStar, BreadthFirst, DepthFirst, UniformCost, DepthLimited}
}

func (a Algorithm) String() string {
	switch a {
	case AStar:
		return "A*"
	case BreadthFirst:
		return "BFS"
	case DepthFirst:
		return "DFS"
	case UniformCost:
		return "UCS"
	case DepthLimited:
		return "DLS"
	default:
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
}

// ParseAlgorithm maps a user-facing name ("astar", "a*", "bfs", ...) to an
// Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "a*", "astar":
		return AStar, nil
	case "bfs", "breadth-first":
		return BreadthFirst, nil
	case "dfs", "depth-first":
		return DepthFirst, nil
	case "ucs", "uniform-cost":
		return UniformCost, nil
	case "dls", "depth-limited":
		return DepthLimited, nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q", name)
	}
}

// Optimal reports whether the algorithm guarantees a shortest path on an
// unweighted grid. This is metadata derived from the algorithm's identity,
// not verified per run.
func (a Algorithm) Optimal() bool {
	switch a {
	case AStar, BreadthFirst, UniformCost:
		return true
	default:
		return false
	}
}

// Outcome is the terminal state of a run.
type Outcome int

const (
	// PathFound means the goal was reached and Run.Path holds the result.
	PathFound Outcome = iota
	// NoPath means the frontier was exhausted without reaching the goal.
	// It is a normal terminal outcome, not an error.
	NoPath
	// NoPathWithinLimit is reported by depth-limited search when the frontier
	// was exhausted but at least one expansion was pruned by the depth bound,
	// so a deeper path may still exist.
	NoPathWithinLimit
)

func (o Outcome) String() string {
	switch o {
	case PathFound:
		return "path found"
	case NoPath:
		return "no path found"
	case NoPathWithinLimit:
		return "no path within depth limit"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Heuristic estimates the remaining cost from one position to another.
type Heuristic func(from, to Position) int

// Manhattan is the default heuristic for A*: |Δrow| + |Δcol|. It is admissible
// on a 4-connected grid with unit step cost.
func Manhattan(from, to Position) int {
	dr := from.Row - to.Row
	if dr < 0 {
		dr = -dr
	}
	dc := from.Col - to.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// DefaultDepthLimit is used by depth-limited search when no limit is given.
const DefaultDepthLimit = 15

// ErrInvalidPositions is returned when start or goal is missing, out of
// bounds, or sits on an obstacle. It is signaled before any expansion happens.
var ErrInvalidPositions = errors.New("invalid start or goal position")

// Options defines parameters for a search run.
type Options struct {
	DepthLimit int
	Heuristic  Heuristic
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithDepthLimit bounds the expansion depth for depth-limited search.
// The limit must be at least 1. Other algorithms ignore it.
func WithDepthLimit(limit int) Option {
	return func(options *Options) { options.DepthLimit = limit }
}

// WithHeuristic overrides the A* heuristic. Other algorithms ignore it.
func WithHeuristic(h Heuristic) Option {
	return func(options *Options) { options.Heuristic = h }
}

// Run bundles everything a single search produced: the terminal outcome, the
// start-to-goal path when one was found, the exploration trace for replay,
// and the run statistics.
type Run struct {
	Algorithm Algorithm
	Outcome   Outcome
	Path      []Position
	Trace     *Trace
	Stats     RunStats
}

// Found reports whether the run produced a path.
func (r *Run) Found() bool { return r.Outcome == PathFound }

// policy captures how one algorithm deviates from the shared loop: its
// frontier ordering, whether neighbors are pushed in reverse (so LIFO pops
// still expand up/right/down/left), when nodes are marked visited, and its
// cost bookkeeping.
type policy struct {
	newFrontier func() frontier
	reversePush bool // push neighbors reversed; stack frontiers only
	eagerMark   bool // mark visited at generation instead of at pop
	relaxCost   bool // track best-known g and regenerate on improvement
	heuristic   bool // order by f = g + h instead of g
	suppressDup bool // never re-push a node already in the open set
	depthBound  bool // prune expansion past the depth limit
}

func (a Algorithm) policy() (policy, error) {
	switch a {
	case AStar:
		return policy{
			newFrontier: func() frontier {
				return newHeapFrontier(func(n searchNode) int { return n.FCost })
			},
			relaxCost:   true,
			heuristic:   true,
			suppressDup: true,
		}, nil
	case BreadthFirst:
		return policy{
			newFrontier: func() frontier { return &fifoFrontier{} },
			eagerMark:   true,
		}, nil
	case DepthFirst:
		return policy{
			newFrontier: func() frontier { return &lifoFrontier{} },
			reversePush: true,
		}, nil
	case UniformCost:
		return policy{
			newFrontier: func() frontier {
				return newHeapFrontier(func(n searchNode) int { return n.GCost })
			},
			relaxCost: true,
		}, nil
	case DepthLimited:
		return policy{
			newFrontier: func() frontier { return &lifoFrontier{} },
			reversePush: true,
			depthBound:  true,
		}, nil
	default:
		return policy{}, fmt.Errorf("unknown algorithm %d", int(a))
	}
}

// Search runs the selected algorithm on the grid to completion and returns the
// resulting Run. The grid must carry a start and a goal cell; pass a Clone if
// the original may be mutated while the run executes.
//
// NoPath and NoPathWithinLimit are reported through Run.Outcome, never as
// errors. The returned error covers invalid input and context cancellation
// only; on cancellation the partial run is discarded.
func Search(ctx context.Context, grid *Grid, algorithm Algorithm, options ...Option) (*Run, error) {
	if grid == nil {
		return nil, errors.New("nil grid")
	}
	searchOptions := Options{Heuristic: Manhattan}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Heuristic == nil {
		searchOptions.Heuristic = Manhattan
	}

	start, ok := grid.Start()
	if !ok {
		return nil, fmt.Errorf("%w: start not set", ErrInvalidPositions)
	}
	goal, ok := grid.Goal()
	if !ok {
		return nil, fmt.Errorf("%w: goal not set", ErrInvalidPositions)
	}
	for _, p := range []Position{start, goal} {
		if !grid.InBounds(p) {
			return nil, fmt.Errorf("%w: %v out of bounds", ErrInvalidPositions, p)
		}
		if grid.IsObstacle(p) {
			return nil, fmt.Errorf("%w: %v is an obstacle", ErrInvalidPositions, p)
		}
	}

	pol, err := algorithm.policy()
	if err != nil {
		return nil, err
	}

	depthLimit := 0
	if pol.depthBound {
		depthLimit = searchOptions.DepthLimit
		if depthLimit == 0 {
			depthLimit = DefaultDepthLimit
		}
		if depthLimit < 1 {
			return nil, fmt.Errorf("depth limit must be >= 1, got %d", depthLimit)
		}
	}

	return runSearch(ctx, grid, algorithm, pol, searchOptions.Heuristic, start, goal, depthLimit)
}

// runSearch is the single loop shared by all five algorithms. The timing in
// the collector covers exactly this function, so reported durations exclude
// validation and any replay the caller performs later.
func runSearch(
	ctx context.Context,
	grid *Grid,
	algorithm Algorithm,
	pol policy,
	heuristic Heuristic,
	start, goal Position,
	depthLimit int,
) (*Run, error) {
	stats := newCollector()
	trace := newTrace()
	open := pol.newFrontier()

	// visited doubles as BFS's enqueue-time marker and as the closed set for
	// the lazy-marking algorithms.
	visited := make(map[Position]bool)
	gScore := map[Position]int{start: 0}
	var inOpen map[Position]bool
	if pol.suppressDup {
		inOpen = map[Position]bool{start: true}
	}

	startNode := searchNode{Pos: start}
	if pol.heuristic {
		startNode.FCost = heuristic(start, goal)
	}
	open.Push(startNode)
	trace.Frontier[start] = true
	stats.generate()
	if pol.eagerMark {
		visited[start] = true
	}

	pruned := false
	for open.Len() > 0 {
		// Cancellation checkpoint between node expansions.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		node, _ := open.Pop()
		current := node.Pos
		delete(trace.Frontier, current)
		if pol.suppressDup {
			delete(inOpen, current)
		}
		if !pol.eagerMark {
			if visited[current] {
				continue // stale duplicate pop
			}
			visited[current] = true
		}
		trace.Visited = append(trace.Visited, current)
		stats.visit()

		if current == goal {
			path := trace.PathTo(goal)
			return &Run{
				Algorithm: algorithm,
				Outcome:   PathFound,
				Path:      path,
				Trace:     trace,
				Stats:     stats.finish(algorithm, len(path), depthLimit),
			}, nil
		}

		if pol.depthBound && node.Depth >= depthLimit {
			pruned = true
			continue
		}

		neighbors := grid.Neighbors(current)
		if pol.reversePush {
			for i, j := 0, len(neighbors)-1; i < j; i, j = i+1, j-1 {
				neighbors[i], neighbors[j] = neighbors[j], neighbors[i]
			}
		}
		for _, neighbor := range neighbors {
			if visited[neighbor] {
				continue
			}
			if pol.relaxCost {
				// Read the map, not the popped node: a suppressed duplicate
				// pops with a stale stored cost while the map holds the best
				// known one.
				tentative := gScore[current] + 1
				if known, ok := gScore[neighbor]; ok && tentative >= known {
					continue
				}
				gScore[neighbor] = tentative
				trace.CameFrom[neighbor] = current
				// A* keeps the improved cost but never re-pushes a node that
				// is already waiting in the open set, even at a worse stored
				// priority; the stale entry pops with its old priority and the
				// map supplies the corrected cost.
				if pol.suppressDup && inOpen[neighbor] {
					continue
				}
				child := searchNode{Pos: neighbor, GCost: tentative}
				if pol.heuristic {
					child.FCost = tentative + heuristic(neighbor, goal)
				}
				open.Push(child)
				trace.Frontier[neighbor] = true
				if pol.suppressDup {
					inOpen[neighbor] = true
				}
				stats.generate()
				continue
			}
			if pol.eagerMark {
				visited[neighbor] = true
			}
			trace.CameFrom[neighbor] = current
			open.Push(searchNode{Pos: neighbor, GCost: node.GCost + 1, Depth: node.Depth + 1})
			trace.Frontier[neighbor] = true
			stats.generate()
		}
	}

	outcome := NoPath
	if pol.depthBound && pruned {
		outcome = NoPathWithinLimit
	}
	return &Run{
		Algorithm: algorithm,
		Outcome:   outcome,
		Trace:     trace,
		Stats:     stats.finish(algorithm, 0, depthLimit),
	}, nil
}
