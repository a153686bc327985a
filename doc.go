// Package gridnav implements grid pathfinding for a simulated warehouse robot.
//
// It exposes three main entry points:
//
//   - Grid: a rectangular board of cells with obstacle, start and goal placement.
//   - Search: run one of five algorithms (A*, BFS, DFS, UCS, DLS) to completion
//     and get back a path, an exploration trace and run statistics.
//   - Replay: iterate a completed trace frame by frame to drive UIs or debugging
//     tools at a caller-chosen pace.
//
// All five algorithms share a single search loop parameterized by a frontier
// strategy, so they differ only in frontier ordering, visited-marking timing and
// cost bookkeeping. The engine is synchronous and single-threaded; a trace is
// never mutated once its run completes.
package gridnav
