package fogsaa

// NodeID addresses a Node inside its Tree arena.
type NodeID int32

// Node is one state of the implicit alignment tree: the prefixes
// a[0..IndexA] and b[0..IndexB] have been consumed. The root sits at
// IndexA = IndexB = -1.
//
// Bounds are fixed at construction. Children are filled in by Tree.Expand
// and never recomputed.
type Node struct {
	IndexA int // last consumed position in the first sequence
	IndexB int // last consumed position in the second sequence

	Op          Operation // move that produced this node
	PresentCost int       // cost of the path from the root

	BestCaseRemaining  int // cheapest possible completion cost
	WorstCaseRemaining int // cost of a known completion, bounds the optimum from above

	firstChild  NodeID
	numChildren uint8
	expanded    bool
}

// LowerBound is PresentCost + BestCaseRemaining.
func (n *Node) LowerBound() int { return n.PresentCost + n.BestCaseRemaining }

// UpperBound is PresentCost + WorstCaseRemaining.
func (n *Node) UpperBound() int { return n.PresentCost + n.WorstCaseRemaining }

// Tree is the arena holding every node generated for one comparison of a and b.
// Nodes reference children by index only; there are no parent pointers.
//
// A Tree is not safe for concurrent use.
type Tree[T comparable] struct {
	a, b  []T
	model ScoreModel
	bound BoundKind
	nodes []Node
}

// NewTree allocates the arena and places the root node at index 0.
// The model is assumed to be valid (see ScoreModel.Validate).
func NewTree[T comparable](a, b []T, model ScoreModel, bound BoundKind) *Tree[T] {
	t := &Tree[T]{
		a:     a,
		b:     b,
		model: model,
		bound: bound,
		nodes: make([]Node, 0, 64),
	}
	t.add(-1, -1, Root, 0)

	return t
}

// Root returns the ID of the root node.
func (t *Tree[T]) Root() NodeID { return 0 }

// Len returns the number of nodes generated so far.
func (t *Tree[T]) Len() int { return len(t.nodes) }

// Node returns the node with the given ID. The pointer is only valid until
// the next call to Expand, which may grow the arena.
func (t *Tree[T]) Node(id NodeID) *Node { return &t.nodes[id] }

// IsTerminal reports whether both sequences are fully consumed at id.
func (t *Tree[T]) IsTerminal(id NodeID) bool {
	n := &t.nodes[id]

	return n.IndexA == len(t.a)-1 && n.IndexB == len(t.b)-1
}

// Expand returns the children of id, generating them on the first call.
//
// Children, in order:
//  1. consume a[IndexA+1] only (GapInSecond), if a has characters left;
//  2. consume b[IndexB+1] only (GapInFirst), if b has characters left;
//  3. consume both (Match or Mismatch), if both have characters left.
//
// A gap move costs GapExtension when the parent move was a gap of either
// direction, GapOpen otherwise. Terminal nodes have no children.
func (t *Tree[T]) Expand(id NodeID) []NodeID {
	if !t.nodes[id].expanded {
		t.generate(id)
	}
	n := &t.nodes[id]
	ids := make([]NodeID, n.numChildren)
	for k := range ids {
		ids[k] = n.firstChild + NodeID(k)
	}

	return ids
}

// generate appends the children of id to the arena as one contiguous run.
func (t *Tree[T]) generate(id NodeID) {
	parent := t.nodes[id] // copy; append below may move the arena
	first := NodeID(len(t.nodes))

	moreA := parent.IndexA < len(t.a)-1
	moreB := parent.IndexB < len(t.b)-1

	gap := t.model.GapOpen
	if parent.Op.IsGap() {
		gap = t.model.GapExtension
	}

	if moreA {
		t.add(parent.IndexA+1, parent.IndexB, GapInSecond, parent.PresentCost+gap)
	}
	if moreB {
		t.add(parent.IndexA, parent.IndexB+1, GapInFirst, parent.PresentCost+gap)
	}
	if moreA && moreB {
		op, cost := Mismatch, t.model.Mismatch
		if t.a[parent.IndexA+1] == t.b[parent.IndexB+1] {
			op, cost = Match, t.model.Match
		}
		t.add(parent.IndexA+1, parent.IndexB+1, op, parent.PresentCost+cost)
	}

	n := &t.nodes[id]
	n.firstChild = first
	n.numChildren = uint8(NodeID(len(t.nodes)) - first)
	n.expanded = true
}

// add constructs a node, computing both completion bounds from the
// remaining suffix lengths.
func (t *Tree[T]) add(i, j int, op Operation, cost int) NodeID {
	x := len(t.a) - 1 - i
	y := len(t.b) - 1 - j
	t.nodes = append(t.nodes, Node{
		IndexA:             i,
		IndexB:             j,
		Op:                 op,
		PresentCost:        cost,
		BestCaseRemaining:  bestCase(t.model, t.bound, x, y, op),
		WorstCaseRemaining: worstCase(t.model, x, y),
	})

	return NodeID(len(t.nodes) - 1)
}

// bestCase returns a lower bound on the cost of aligning x remaining characters
// of one sequence against y of the other, starting after a move op.
//
// With d diagonal steps there are g = x+y-2d gap characters. The first of them
// costs GapOpen unless op already is a gap; every other one costs at least
// min(GapOpen, GapExtension). The bound is linear in d apart from the g = 0 point,
// so the minimum over d sits at d = 0, at the largest d with g > 0, or at g = 0.
func bestCase(m ScoreModel, kind BoundKind, x, y int, op Operation) int {
	shorter, excess := minMax(x, y)
	excess -= shorter

	if kind == BoundPerSymbolGap {
		return shorter*m.Match + excess*(m.GapOpen+m.GapExtension)
	}

	pairLo, _ := m.pairCost()
	perGap := m.minGap()
	firstGap := m.GapOpen
	if op.IsGap() {
		firstGap = perGap
	}
	at := func(d int) int {
		g := x + y - 2*d
		if g == 0 {
			return d * pairLo
		}

		return d*pairLo + firstGap + (g-1)*perGap
	}

	best := min(at(shorter), at(0))
	if excess == 0 && shorter > 0 {
		best = min(best, at(shorter-1))
	}

	return best
}

// worstCase is the cost bound of pairing every remaining character of the
// shorter suffix as a mismatch and charging each excess character a full
// gap open plus extension. Some concrete completion costs no more than this.
func worstCase(m ScoreModel, x, y int) int {
	shorter, longer := minMax(x, y)
	_, pairHi := m.pairCost()

	return shorter*pairHi + (longer-shorter)*(m.GapOpen+m.GapExtension)
}

func minMax(x, y int) (int, int) {
	if x < y {
		return x, y
	}

	return y, x
}
