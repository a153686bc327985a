package gridnav

// Trace records what a run explored, for replay by a renderer. It is built
// incrementally while the search executes and never mutated afterwards.
//
// Visited preserves visitation order (meaningful for replay). Frontier is
// membership only: cells discovered but not yet finalized when the run ended.
// CameFrom maps each discovered cell to its predecessor.
type Trace struct {
	Visited  []Position
	Frontier map[Position]bool
	CameFrom map[Position]Position
}

func newTrace() *Trace {
	return &Trace{
		Frontier: make(map[Position]bool),
		CameFrom: make(map[Position]Position),
	}
}

// PathTo walks the predecessor map backwards from goal until a cell with no
// predecessor (the start) and returns the ordered start-to-goal path. On a
// failed run the chain never reaches the start and the result is meaningless;
// call it only for runs that found the goal.
func (t *Trace) PathTo(goal Position) []Position {
	path := []Position{goal}
	current := goal
	for {
		previous, ok := t.CameFrom[current]
		if !ok {
			break
		}
		path = append(path, previous)
		current = previous
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
