package gridnav

import "container/heap"

// searchNode is one frontier entry: a position plus the bookkeeping the
// different strategies need (accumulated cost, f-score, depth).
type searchNode struct {
	Pos   Position
	GCost int
	FCost int
	Depth int
}

// frontier is the pluggable ordering strategy behind the shared search loop.
// FIFO yields breadth-first, LIFO depth-first, and a min-heap keyed by g or f
// yields uniform-cost and A* respectively.
type frontier interface {
	Push(node searchNode)
	Pop() (searchNode, bool)
	Len() int
}

// fifoFrontier is a plain queue.
type fifoFrontier struct {
	nodes []searchNode
}

func (q *fifoFrontier) Push(node searchNode) { q.nodes = append(q.nodes, node) }

func (q *fifoFrontier) Pop() (searchNode, bool) {
	if len(q.nodes) == 0 {
		return searchNode{}, false
	}
	node := q.nodes[0]
	q.nodes = q.nodes[1:]
	return node, true
}

func (q *fifoFrontier) Len() int { return len(q.nodes) }

// lifoFrontier is a plain stack.
type lifoFrontier struct {
	nodes []searchNode
}

func (s *lifoFrontier) Push(node searchNode) { s.nodes = append(s.nodes, node) }

func (s *lifoFrontier) Pop() (searchNode, bool) {
	if len(s.nodes) == 0 {
		return searchNode{}, false
	}
	node := s.nodes[len(s.nodes)-1]
	s.nodes = s.nodes[:len(s.nodes)-1]
	return node, true
}

func (s *lifoFrontier) Len() int { return len(s.nodes) }

// heapFrontier is a min-priority frontier over container/heap. The priority
// function maps a node to its key (g for uniform-cost, f for A*); ties are
// broken by insertion sequence so that equal-priority nodes pop FIFO, keeping
// runs deterministic for a fixed input.
type heapFrontier struct {
	items    heapItems
	priority func(searchNode) int
	nextSeq  int
}

func newHeapFrontier(priority func(searchNode) int) *heapFrontier {
	f := &heapFrontier{priority: priority}
	heap.Init(&f.items)
	return f
}

func (h *heapFrontier) Push(node searchNode) {
	item := &heapItem{Node: node, Priority: h.priority(node), Sequence: h.nextSeq}
	h.nextSeq++
	heap.Push(&h.items, item)
}

func (h *heapFrontier) Pop() (searchNode, bool) {
	if h.items.Len() == 0 {
		return searchNode{}, false
	}
	item := heap.Pop(&h.items).(*heapItem)
	return item.Node, true
}

func (h *heapFrontier) Len() int { return h.items.Len() }

type heapItem struct {
	Node     searchNode
	Priority int
	Sequence int
}

type heapItems []*heapItem

func (items heapItems) Len() int { return len(items) }

func (items heapItems) Less(i, j int) bool {
	if items[i].Priority != items[j].Priority {
		return items[i].Priority < items[j].Priority
	}
	return items[i].Sequence < items[j].Sequence
}

func (items heapItems) Swap(i, j int) { items[i], items[j] = items[j], items[i] }

func (items *heapItems) Push(x any) {
	*items = append(*items, x.(*heapItem))
}

func (items *heapItems) Pop() any {
	old := *items
	n := len(old)
	item := old[n-1]
	*items = old[:n-1]
	return item
}
