// Package layout persists grid snapshots as flat files.
//
// The on-disk format is the flat matrix layout the desktop tool writes:
// rows, cols, a cell matrix of small integers, and optional start_pos and
// goal_pos pairs. JSON and YAML are both accepted; the format is detected by
// extension or, failing that, by content. Every loaded snapshot is
// re-validated against the grid invariants before a Grid is handed back.
package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"gridnav"
)

// Cell values in layout files. Values 4 through 8 are rendering overlays
// (path, visited, robot, frontier, current) that older files may contain;
// they carry no traversability meaning and load as Empty.
const (
	cellEmpty      = 0
	cellObstacle   = 1
	cellStart      = 2
	cellGoal       = 3
	cellOverlayMax = 8
)

// File is the serialized form of a grid snapshot.
type File struct {
	Rows  int     `json:"rows" yaml:"rows"`
	Cols  int     `json:"cols" yaml:"cols"`
	Grid  [][]int `json:"grid" yaml:"grid"`
	Start []int   `json:"start_pos" yaml:"start_pos"`
	Goal  []int   `json:"goal_pos" yaml:"goal_pos"`
}

// FromGrid captures a grid into its serialized form.
func FromGrid(g *gridnav.Grid) *File {
	f := &File{Rows: g.Rows(), Cols: g.Cols()}
	f.Grid = make([][]int, f.Rows)
	for i, row := range g.Cells() {
		f.Grid[i] = make([]int, f.Cols)
		for j, state := range row {
			f.Grid[i][j] = int(state)
		}
	}
	if start, ok := g.Start(); ok {
		f.Start = []int{start.Row, start.Col}
	}
	if goal, ok := g.Goal(); ok {
		f.Goal = []int{goal.Row, goal.Col}
	}
	return f
}

// ToGrid validates the snapshot and builds a Grid from it. Inconsistent
// snapshots (ragged rows, dimension mismatch, duplicate starts, endpoint
// markers that contradict the cell matrix) are rejected with an error
// wrapping gridnav.ErrMalformedGrid.
func (f *File) ToGrid() (*gridnav.Grid, error) {
	if len(f.Grid) != f.Rows {
		return nil, fmt.Errorf("%w: rows=%d but matrix has %d rows", gridnav.ErrMalformedGrid, f.Rows, len(f.Grid))
	}
	cells := make([][]gridnav.CellState, f.Rows)
	for i, row := range f.Grid {
		if len(row) != f.Cols {
			return nil, fmt.Errorf("%w: cols=%d but row %d has %d cells", gridnav.ErrMalformedGrid, f.Cols, i, len(row))
		}
		cells[i] = make([]gridnav.CellState, f.Cols)
		for j, v := range row {
			switch {
			case v == cellEmpty:
				cells[i][j] = gridnav.Empty
			case v == cellObstacle:
				cells[i][j] = gridnav.Obstacle
			case v == cellStart:
				cells[i][j] = gridnav.Start
			case v == cellGoal:
				cells[i][j] = gridnav.Goal
			case v > cellGoal && v <= cellOverlayMax:
				cells[i][j] = gridnav.Empty // rendering overlay, not traversability
			default:
				return nil, fmt.Errorf("%w: unknown cell value %d at (%d,%d)", gridnav.ErrMalformedGrid, v, i, j)
			}
		}
	}
	g, err := gridnav.NewGridFromCells(cells)
	if err != nil {
		return nil, err
	}
	if err := applyEndpoint(g, f.Start, "start_pos", g.SetStart, g.Start); err != nil {
		return nil, err
	}
	if err := applyEndpoint(g, f.Goal, "goal_pos", g.SetGoal, g.Goal); err != nil {
		return nil, err
	}
	return g, nil
}

// applyEndpoint reconciles a start_pos/goal_pos pair with the cell matrix:
// absent pairs are fine, pairs matching the matrix are fine, and a pair on an
// unmarked cell places the marker there. A pair contradicting a marker already
// in the matrix means the snapshot disagrees with itself.
func applyEndpoint(
	g *gridnav.Grid,
	pair []int,
	field string,
	set func(gridnav.Position) error,
	get func() (gridnav.Position, bool),
) error {
	if pair == nil {
		return nil
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: %s must be a [row, col] pair, got %v", gridnav.ErrMalformedGrid, field, pair)
	}
	p := gridnav.Position{Row: pair[0], Col: pair[1]}
	if !g.InBounds(p) {
		return fmt.Errorf("%w: %s %v out of bounds", gridnav.ErrMalformedGrid, field, p)
	}
	if existing, ok := get(); ok {
		if existing != p {
			return fmt.Errorf("%w: %s %v contradicts cell matrix marker at %v", gridnav.ErrMalformedGrid, field, p, existing)
		}
		return nil
	}
	if err := set(p); err != nil {
		return fmt.Errorf("%w: %s: %v", gridnav.ErrMalformedGrid, field, err)
	}
	return nil
}

// Load parses a snapshot from bytes and validates it. ext is the file
// extension (".json", ".yaml") as a format hint; empty means detect from
// content (JSON starts with '{', anything else is tried as YAML).
func Load(data []byte, ext string) (*gridnav.Grid, error) {
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	var f File
	switch ext {
	case ".yaml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse layout yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse layout json: %w", err)
		}
	default:
		if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
			if err := json.Unmarshal(data, &f); err != nil {
				return nil, fmt.Errorf("parse layout json: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse layout yaml: %w", err)
		}
	}
	return f.ToGrid()
}

// LoadFromPath reads and parses a snapshot file.
func LoadFromPath(path string) (*gridnav.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Save writes the grid to path, as YAML when the extension is .yaml/.yml and
// as JSON otherwise.
func Save(path string, g *gridnav.Grid) error {
	f := FromGrid(g)
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(f)
	default:
		data, err = json.Marshal(f)
	}
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	return nil
}
