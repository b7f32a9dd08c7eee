package mcts

// Read-only view over a search tree, meant for external serializers
// (see the dot subpackage), the search never goes through it
type TreeView[M comparable] interface {
	Root() NodeID
	Size() int
	Node(NodeID) (Node[M], bool)
	Children(NodeID) ([]NodeID, bool)
}

// Growth-only arena of nodes, addressed by NodeID. Nodes never hold
// references to each other, the only relation is the per-node list of
// child indices.
type Tree[M comparable] struct {
	nodes    []Node[M]
	children [][]NodeID
}

// Create a tree containing only the root node
func NewTree[M comparable]() *Tree[M] {
	var noMove M
	return &Tree[M]{
		nodes:    []Node[M]{{Move: noMove}},
		children: [][]NodeID{nil},
	}
}

func (t *Tree[M]) Root() NodeID {
	return RootID
}

// Number of nodes in the tree (including the root)
func (t *Tree[M]) Size() int {
	return len(t.nodes)
}

func (t *Tree[M]) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Append a new child with given move to 'parent', returns false if the parent
// doesn't exist
func (t *Tree[M]) AddChild(parent NodeID, move M) (NodeID, bool) {
	if !t.valid(parent) {
		return 0, false
	}

	id := NodeID(len(t.nodes))
	t.children[parent] = append(t.children[parent], id)
	t.nodes = append(t.nodes, Node[M]{Move: move})
	t.children = append(t.children, nil)
	return id, true
}

// Child indices of given node, in insertion order. The returned slice
// must not be modified.
func (t *Tree[M]) Children(id NodeID) ([]NodeID, bool) {
	if !t.valid(id) {
		return nil, false
	}
	return t.children[id], true
}

// Copy of the node with given index
func (t *Tree[M]) Node(id NodeID) (Node[M], bool) {
	if !t.valid(id) {
		return Node[M]{}, false
	}
	return t.nodes[id], true
}

// Backpropagation is the only writer of the statistics
func (t *Tree[M]) update(id NodeID, score float64) error {
	if !t.valid(id) {
		return ErrInvalidNodeIndex
	}
	t.nodes[id].Score += score
	t.nodes[id].Visits++
	return nil
}
