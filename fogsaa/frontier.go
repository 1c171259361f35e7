package fogsaa

import "container/heap"

// Frontier is a priority queue of node IDs. The ordering is supplied as a
// comparator over the nodes themselves, so nodes stay plain values.
type Frontier struct {
	h frontierHeap
}

// NewFrontier builds an empty frontier. lookup resolves an ID to its node at
// comparison time; less orders the nodes (ByLowerBound if nil).
func NewFrontier(lookup func(NodeID) *Node, less Less) *Frontier {
	if less == nil {
		less = ByLowerBound
	}

	return &Frontier{h: frontierHeap{lookup: lookup, less: less}}
}

// Len returns the number of queued nodes.
func (f *Frontier) Len() int { return len(f.h.ids) }

// Push inserts id.
func (f *Frontier) Push(id NodeID) { heap.Push(&f.h, id) }

// Pop removes and returns the most promising node. It panics on an empty frontier.
func (f *Frontier) Pop() NodeID { return heap.Pop(&f.h).(NodeID) }

// Peek returns the most promising node without removing it. It panics on an empty frontier.
func (f *Frontier) Peek() NodeID { return f.h.ids[0] }

// frontierHeap implements heap.Interface over node IDs.
type frontierHeap struct {
	ids    []NodeID
	lookup func(NodeID) *Node
	less   Less
}

func (h frontierHeap) Len() int { return len(h.ids) }

func (h frontierHeap) Less(i, j int) bool { return h.less(h.lookup(h.ids[i]), h.lookup(h.ids[j])) }

func (h frontierHeap) Swap(i, j int) { h.ids[i], h.ids[j] = h.ids[j], h.ids[i] }

func (h *frontierHeap) Push(x interface{}) { h.ids = append(h.ids, x.(NodeID)) }

func (h *frontierHeap) Pop() interface{} {
	old := h.ids
	n := len(old)
	id := old[n-1]
	h.ids = old[:n-1]

	return id
}
