package mcts

// Stable index of a node in the tree, assigned on creation and never reused
type NodeID int

// Index of the root node, always present
const RootID NodeID = 0

// Single search tree node, the parent->children relation lives in the Tree
type Node[M comparable] struct {
	// Move played to reach this node from its parent, zero value for the root
	Move M
	// Sum of every backpropagated amount that passed through this node
	Score float64
	// Number of backpropagation passes through this node
	Visits uint32
}

// Average backpropagated score, 0 for an unvisited node
func (n Node[M]) AvgScore() float64 {
	if n.Visits == 0 {
		return 0
	}
	return n.Score / float64(n.Visits)
}
