package gridnav

import (
	"context"
	"time"
)

// FramePhase says what a replay frame is showing.
type FramePhase int

const (
	// PhaseSearch frames reveal visited cells in visitation order.
	PhaseSearch FramePhase = iota
	// PhasePath frames move the robot along the found path.
	PhasePath
)

// Frame is one step of a replayed run.
type Frame struct {
	Phase FramePhase
	Cell  Position // the newly revealed cell, or the robot's position
	Index int      // 0-based index within the phase
	Done  bool     // set on the final frame of the replay
}

// Replay iterates a completed run frame by frame: first the exploration in
// visitation order, then the robot walking the path. It only reads the trace,
// so several replays may share one run.
type Replay struct {
	visited []Position
	path    []Position
	next    int
}

// NewReplay creates a replay over a completed run. For a failed run the
// replay contains only search frames.
func NewReplay(run *Run) *Replay {
	return &Replay{visited: run.Trace.Visited, path: run.Path}
}

// Len returns the total number of frames.
func (r *Replay) Len() int { return len(r.visited) + len(r.path) }

// Reset rewinds the replay to the first frame.
func (r *Replay) Reset() { r.next = 0 }

// Next returns the next frame. The second result is false once the replay is
// exhausted.
func (r *Replay) Next() (Frame, bool) {
	total := r.Len()
	if r.next >= total {
		return Frame{}, false
	}
	i := r.next
	r.next++
	frame := Frame{Done: r.next == total}
	if i < len(r.visited) {
		frame.Phase = PhaseSearch
		frame.Cell = r.visited[i]
		frame.Index = i
		return frame, true
	}
	frame.Phase = PhasePath
	frame.Index = i - len(r.visited)
	frame.Cell = r.path[frame.Index]
	return frame, true
}

// Play emits the remaining frames at the given interval until the replay is
// exhausted or the context is canceled. An interval of zero emits frames
// without pausing.
func (r *Replay) Play(ctx context.Context, interval time.Duration, emit func(Frame)) error {
	var ticker *time.Ticker
	if interval > 0 {
		ticker = time.NewTicker(interval)
		defer ticker.Stop()
	}
	for {
		frame, ok := r.Next()
		if !ok {
			return nil
		}
		emit(frame)
		if frame.Done {
			return nil
		}
		if ticker == nil {
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
