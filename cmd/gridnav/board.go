package main

import (
	"fmt"
	"io"

	"gridnav"
)

// board renders a grid plus replay overlays as ASCII. The overlays mirror the
// desktop tool's legend: visited cells, the traced path and the moving robot,
// drawn over the static empty/obstacle/start/goal base layer.
type board struct {
	grid     *gridnav.Grid
	overlay  map[gridnav.Position]rune
	robot    gridnav.Position
	hasRobot bool
}

func newBoard(g *gridnav.Grid) *board {
	return &board{grid: g, overlay: make(map[gridnav.Position]rune)}
}

// apply folds one replay frame into the overlay state.
func (b *board) apply(frame gridnav.Frame) {
	switch frame.Phase {
	case gridnav.PhaseSearch:
		b.overlay[frame.Cell] = 'o'
	case gridnav.PhasePath:
		if b.hasRobot {
			b.overlay[b.robot] = '*'
		}
		b.robot = frame.Cell
		b.hasRobot = true
	}
}

func (b *board) render(w io.Writer) {
	for i := 0; i < b.grid.Rows(); i++ {
		for j := 0; j < b.grid.Cols(); j++ {
			p := gridnav.Position{Row: i, Col: j}
			fmt.Fprintf(w, "%c ", b.symbol(p))
		}
		fmt.Fprintln(w)
	}
}

func (b *board) symbol(p gridnav.Position) rune {
	if b.hasRobot && p == b.robot {
		return '@'
	}
	switch b.grid.At(p) {
	case gridnav.Obstacle:
		return '#'
	case gridnav.Start:
		return 'S'
	case gridnav.Goal:
		return 'G'
	}
	if r, ok := b.overlay[p]; ok {
		return r
	}
	return '.'
}
