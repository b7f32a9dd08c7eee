package mcts

import "math"

// UCT selection policy over a parent's children
type UCB1[M comparable] struct {
	ExplorationParam float64
}

func NewUCB1[M comparable](explorationParam float64) *UCB1[M] {
	return &UCB1[M]{ExplorationParam: max(0, explorationParam)}
}

func (u *UCB1[M]) SetExplorationParam(c float64) {
	u.ExplorationParam = max(0, c)
}

// UCT priority of a child. Unvisited children get +Inf, so every child is
// tried once before any exploitation.
//
// totalVisits is the parent's own visit count: each visit to the parent
// continues through exactly one child, so it equals the sum of child visits
func UCT(score float64, visits, totalVisits uint32, c float64) float64 {
	if visits == 0 {
		return math.Inf(1)
	}

	// UCB 1 : score/visits + C * sqrt(ln(parent_visits)/visits)
	return score/float64(visits) +
		c*math.Sqrt(math.Log(float64(totalVisits))/float64(visits))
}

// Pick the candidate with the highest UCT priority, ties go to the first
// one in the list. Fails with ErrInvalidNodeIndex if the parent or
// any of the candidates is not in the tree.
func (u *UCB1[M]) Select(tree *Tree[M], parent NodeID, candidates []NodeID) (NodeID, error) {
	parentNode, ok := tree.Node(parent)
	if !ok {
		return 0, ErrInvalidNodeIndex
	}
	if len(candidates) == 0 {
		return 0, ErrNoMoves
	}

	best := candidates[0]
	bestPriority := math.Inf(-1)
	for _, id := range candidates {
		child, ok := tree.Node(id)
		if !ok {
			return 0, ErrInvalidNodeIndex
		}

		priority := UCT(child.Score, child.Visits, parentNode.Visits, u.ExplorationParam)
		if priority > bestPriority {
			bestPriority = priority
			best = id
		}
	}

	return best, nil
}
