package mcts

// One step of a traversal: the node entered and the outcome of the move
// that led to it (NoScore for the root)
type PathStep struct {
	ID      NodeID
	Outcome MoveScore
}

// Fold the result of one iteration back into the tree.
//
// Walking from the leaf to the root, the accumulator starts at the rollout
// contribution and picks up every step's score before it's added to the
// node. A node is credited with the rollout plus all step rewards from itself
// down to the leaf, so the credit compounds towards the root.
func backpropagate[M comparable](tree *Tree[M], path []PathStep, rollout float64) error {
	acc := rollout
	for i := len(path) - 1; i >= 0; i-- {
		acc += path[i].Outcome.Score()
		if err := tree.update(path[i].ID, acc); err != nil {
			return err
		}
	}
	return nil
}
