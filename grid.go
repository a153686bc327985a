package gridnav

import (
	"errors"
	"fmt"
	"math/rand"
)

// Position identifies a cell by row and column, 0-indexed.
// It is a value type and may be used as a map key.
type Position struct {
	Row int
	Col int
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

// CellState is the traversability state of a single cell. Rendering overlays
// (path, visited, frontier, robot) are not cell states; only Obstacle blocks
// movement.
type CellState uint8

const (
	Empty CellState = iota
	Obstacle
	Start
	Goal
)

func (s CellState) String() string {
	switch s {
	case Empty:
		return "empty"
	case Obstacle:
		return "obstacle"
	case Start:
		return "start"
	case Goal:
		return "goal"
	default:
		return fmt.Sprintf("cellstate(%d)", uint8(s))
	}
}

// ErrMalformedGrid is returned when a cell matrix violates the grid invariants,
// e.g. two start cells or ragged rows.
var ErrMalformedGrid = errors.New("malformed grid")

// ErrOutOfBounds is returned by mutations addressed outside the grid.
var ErrOutOfBounds = errors.New("position out of bounds")

// Movement directions in fixed up, right, down, left order. The order is part
// of the engine contract: it decides which of several equally good paths the
// stack-based algorithms find.
var directions = [4]Position{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}

// Grid is a rectangular board of cells. Dimensions are fixed at construction.
// At most one cell holds Start and at most one holds Goal; the mutators keep
// that invariant by clearing any prior occupant of the role.
type Grid struct {
	rows, cols int
	cells      [][]CellState

	start, goal       Position
	hasStart, hasGoal bool
}

// NewGrid returns an empty grid with the given dimensions.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrMalformedGrid, rows, cols)
	}
	cells := make([][]CellState, rows)
	for i := range cells {
		cells[i] = make([]CellState, cols)
	}
	return &Grid{rows: rows, cols: cols, cells: cells}, nil
}

// NewGridFromCells builds a grid from a cell matrix, validating the invariants:
// rectangular shape, at most one Start and at most one Goal. A snapshot with
// two starts is rejected rather than silently picking one.
func NewGridFromCells(cells [][]CellState) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, fmt.Errorf("%w: empty cell matrix", ErrMalformedGrid)
	}
	g, err := NewGrid(len(cells), len(cells[0]))
	if err != nil {
		return nil, err
	}
	for i, row := range cells {
		if len(row) != g.cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedGrid, i, len(row), g.cols)
		}
		for j, state := range row {
			p := Position{Row: i, Col: j}
			switch state {
			case Empty, Obstacle:
				g.cells[i][j] = state
			case Start:
				if g.hasStart {
					return nil, fmt.Errorf("%w: start at both %v and %v", ErrMalformedGrid, g.start, p)
				}
				g.cells[i][j] = Start
				g.start, g.hasStart = p, true
			case Goal:
				if g.hasGoal {
					return nil, fmt.Errorf("%w: goal at both %v and %v", ErrMalformedGrid, g.goal, p)
				}
				g.cells[i][j] = Goal
				g.goal, g.hasGoal = p, true
			default:
				return nil, fmt.Errorf("%w: unknown cell state %d at %v", ErrMalformedGrid, state, p)
			}
		}
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// At returns the state of the cell at p. Out-of-bounds positions read as Obstacle.
func (g *Grid) At(p Position) CellState {
	if !g.InBounds(p) {
		return Obstacle
	}
	return g.cells[p.Row][p.Col]
}

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// IsObstacle reports whether the cell at p blocks movement.
func (g *Grid) IsObstacle(p Position) bool {
	return g.InBounds(p) && g.cells[p.Row][p.Col] == Obstacle
}

// Neighbors returns the in-bounds, non-obstacle cells adjacent to p, always in
// up, right, down, left order.
func (g *Grid) Neighbors(p Position) []Position {
	neighbors := make([]Position, 0, 4)
	for _, d := range directions {
		n := Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
		if g.InBounds(n) && g.cells[n.Row][n.Col] != Obstacle {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// Start returns the start position, if one is set.
func (g *Grid) Start() (Position, bool) { return g.start, g.hasStart }

// Goal returns the goal position, if one is set.
func (g *Grid) Goal() (Position, bool) { return g.goal, g.hasGoal }

// SetObstacle marks the cell at p as an obstacle. Start and goal cells cannot
// be overwritten; clear them first.
func (g *Grid) SetObstacle(p Position) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	if s := g.cells[p.Row][p.Col]; s == Start || s == Goal {
		return fmt.Errorf("cannot place obstacle on %s cell %v", s, p)
	}
	g.cells[p.Row][p.Col] = Obstacle
	return nil
}

// ClearCell resets the cell at p to Empty, dropping any role it held.
func (g *Grid) ClearCell(p Position) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	switch g.cells[p.Row][p.Col] {
	case Start:
		g.hasStart = false
	case Goal:
		g.hasGoal = false
	}
	g.cells[p.Row][p.Col] = Empty
	return nil
}

// SetStart places the start marker at p, clearing any previous start cell.
func (g *Grid) SetStart(p Position) error {
	return g.setRole(p, Start)
}

// SetGoal places the goal marker at p, clearing any previous goal cell.
func (g *Grid) SetGoal(p Position) error {
	return g.setRole(p, Goal)
}

func (g *Grid) setRole(p Position, role CellState) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	if g.cells[p.Row][p.Col] == Obstacle {
		return fmt.Errorf("cannot place %s on obstacle cell %v", role, p)
	}
	if role == Start {
		if g.hasStart {
			g.cells[g.start.Row][g.start.Col] = Empty
		}
		if g.hasGoal && g.goal == p {
			g.hasGoal = false
		}
		g.cells[p.Row][p.Col] = Start
		g.start, g.hasStart = p, true
		return nil
	}
	if g.hasGoal {
		g.cells[g.goal.Row][g.goal.Col] = Empty
	}
	if g.hasStart && g.start == p {
		g.hasStart = false
	}
	g.cells[p.Row][p.Col] = Goal
	g.goal, g.hasGoal = p, true
	return nil
}

// Clone returns a deep copy of the grid. Callers pass clones into concurrent
// runs so that no two runs share mutable state.
func (g *Grid) Clone() *Grid {
	cells := make([][]CellState, g.rows)
	for i := range cells {
		cells[i] = make([]CellState, g.cols)
		copy(cells[i], g.cells[i])
	}
	clone := *g
	clone.cells = cells
	return &clone
}

// Cells returns a copy of the cell matrix, suitable for serialization.
func (g *Grid) Cells() [][]CellState {
	return g.Clone().cells
}

// ScatterObstacles turns each Empty cell into an Obstacle with the given
// probability, leaving start and goal untouched. It returns the number of
// obstacles placed. Pass a seeded rand.Rand for reproducible layouts.
func (g *Grid) ScatterObstacles(density float64, rng *rand.Rand) int {
	placed := 0
	for i := 0; i < g.rows; i++ {
		for j := 0; j < g.cols; j++ {
			if g.cells[i][j] == Empty && rng.Float64() < density {
				g.cells[i][j] = Obstacle
				placed++
			}
		}
	}
	return placed
}

// RandomEndpoints places start and goal on two distinct randomly chosen Empty
// cells. It fails when fewer than two Empty cells exist.
func (g *Grid) RandomEndpoints(rng *rand.Rand) error {
	empty := make([]Position, 0, g.rows*g.cols)
	for i := 0; i < g.rows; i++ {
		for j := 0; j < g.cols; j++ {
			if g.cells[i][j] == Empty {
				empty = append(empty, Position{Row: i, Col: j})
			}
		}
	}
	if len(empty) < 2 {
		return errors.New("need at least 2 empty cells for start and goal")
	}
	startIdx := rng.Intn(len(empty))
	goalIdx := rng.Intn(len(empty))
	for goalIdx == startIdx {
		goalIdx = rng.Intn(len(empty))
	}
	if err := g.SetStart(empty[startIdx]); err != nil {
		return err
	}
	return g.SetGoal(empty[goalIdx])
}
