package mcts

import "fmt"

func (e *Engine[G, M, S, P]) invokeListener(f ListenerFunc[M]) {
	if f == nil {
		return
	}

	stats := ListenerTreeStats[M]{
		MaxDepth:   e.MaxDepth(),
		Cycles:     e.Cycles(),
		TimeMs:     e.Limiter.Elapsed(),
		Size:       e.tree.Size(),
		StopReason: e.Limiter.StopReason(),
	}
	if best, ok := e.BestChild(RootID, BestChildMostVisits); ok {
		stats.BestMove = best.Move
		stats.BestVisits = best.Visits
	}
	f(stats)
}

// Run the search iterations on clones of 'base' until the limiter stops it:
//
// 1. selection - walk down the tree by UCT, reconciling hidden information
//
// 2. expansion - add the new children and step into a random one
//
// 3. rollout - play random moves until a terminal outcome
//
// 4. backpropagate - credit every node on the path
//
// Any game error aborts the whole search.
func (e *Engine[G, M, S, P]) Search(base G) error {
	for e.Limiter.Ok(e.cycles) {
		depth, err := e.iterate(base)
		if err != nil {
			e.Limiter.SetStop(true)
			e.Limiter.EvaluateStopReason(e.cycles)
			return err
		}

		e.cycles++
		if depth > e.maxdepth {
			e.maxdepth = depth
			e.invokeListener(e.listener.onDepth)
		}
		if e.listener.shouldInvokeCycle(e.cycles) {
			e.invokeListener(e.listener.onCycle)
		}
	}

	e.Limiter.EvaluateStopReason(e.cycles)
	e.invokeListener(e.listener.onStop)
	return nil
}

// Single iteration, returns the depth of the traversal
func (e *Engine[G, M, S, P]) iterate(base G) (int, error) {
	game := base.Clone()

	// For random (light) playouts, set the random number generator
	if rg, ok := any(game).(RandGame); ok {
		rg.SetRand(e.rand)
	}
	if rs, ok := any(game).(Resampler[P]); ok {
		rs.Resample(e.player)
	}

	path, err := e.Selection(game)
	if err != nil {
		return 0, err
	}

	rollout := 0.0
	if !path[len(path)-1].Outcome.IsTerminal() {
		if rollout, err = e.Rollout(game); err != nil {
			return 0, err
		}
	}

	if err := backpropagate(e.tree, path, rollout); err != nil {
		return 0, fmt.Errorf("backpropagation: %w", err)
	}
	return len(path) - 1, nil
}

// Walk down from the root, applying the moves to 'game', then expand the
// reached node. Returns the traversal path.
func (e *Engine[G, M, S, P]) Selection(game G) ([]PathStep, error) {
	path := make([]PathStep, 1, e.maxdepth+2)
	path[0] = PathStep{ID: RootID, Outcome: NoScore()}

	node := RootID
	var revealed []M
	for {
		children, ok := e.tree.Children(node)
		if !ok {
			return nil, fmt.Errorf("selection: %w", ErrInvalidNodeIndex)
		}
		if len(children) == 0 {
			break
		}

		candidates := children
		if !e.perfect {
			revealed, candidates = e.reconcile(children, game.PossibleMoves())
			if len(revealed) > 0 {
				// Existing statistics don't cover these moves, expand them here
				break
			}
		}

		next, err := e.policy.Select(e.tree, node, candidates)
		if err != nil {
			return nil, fmt.Errorf("selection: %w", err)
		}

		outcome, err := e.play(game, next)
		if err != nil {
			return nil, fmt.Errorf("selection: %w", err)
		}

		path = append(path, PathStep{ID: next, Outcome: outcome})
		node = next
		if outcome.IsTerminal() {
			return path, nil
		}
	}

	return e.Expansion(game, path, revealed)
}

// Compare the expanded children with the moves legal in this iteration.
// Returns the legal moves without a child (in the 'legal' order), or if
// there are none, the children whose moves are legal right now.
func (e *Engine[G, M, S, P]) reconcile(children []NodeID, legal []M) ([]M, []NodeID) {
	known := make(map[M]NodeID, len(children))
	for _, id := range children {
		if node, ok := e.tree.Node(id); ok {
			known[node.Move] = id
		}
	}

	var revealed []M
	for _, move := range legal {
		if _, ok := known[move]; !ok {
			revealed = append(revealed, move)
		}
	}
	if len(revealed) > 0 {
		return revealed, nil
	}

	available := make([]NodeID, 0, len(legal))
	for _, id := range children {
		node, _ := e.tree.Node(id)
		for _, move := range legal {
			if move == node.Move {
				available = append(available, id)
				break
			}
		}
	}
	return nil, available
}

// Add new children to the last node of the path and step into a random one.
// If 'revealed' is not empty only those moves are added (and chosen from),
// otherwise all legal moves of 'game'
func (e *Engine[G, M, S, P]) Expansion(game G, path []PathStep, revealed []M) ([]PathStep, error) {
	node := path[len(path)-1].ID
	moves := revealed
	if len(moves) == 0 {
		moves = game.PossibleMoves()
	} else {
		e.logger.Debug().
			Int("node", int(node)).
			Int("revealed", len(revealed)).
			Msg("new moves at expanded node")
	}

	if len(moves) == 0 {
		return nil, fmt.Errorf("expansion: %w", ErrNoMoves)
	}

	added := make([]NodeID, 0, len(moves))
	seen := make(map[M]struct{}, len(moves))
	for _, move := range moves {
		if _, dup := seen[move]; dup {
			continue
		}
		seen[move] = struct{}{}

		id, ok := e.tree.AddChild(node, move)
		if !ok {
			return nil, fmt.Errorf("expansion: %w", ErrInvalidNodeIndex)
		}
		added = append(added, id)
	}

	// Select child at random
	next := added[e.rand.Intn(len(added))]
	outcome, err := e.play(game, next)
	if err != nil {
		return nil, fmt.Errorf("expansion: %w", err)
	}

	return append(path, PathStep{ID: next, Outcome: outcome}), nil
}

// Play uniformly random moves until a terminal outcome (or the cutoff),
// returns the sum of all the collected scores
func (e *Engine[G, M, S, P]) Rollout(game G) (float64, error) {
	total := 0.0
	for depth := 0; e.rolloutCutoff == 0 || depth < e.rolloutCutoff; depth++ {
		moves := game.PossibleMoves()
		if len(moves) == 0 {
			return 0, fmt.Errorf("rollout: %w", ErrNoMoves)
		}

		state, err := game.PlaceMove(moves[e.rand.Intn(len(moves))])
		if err != nil {
			return 0, fmt.Errorf("rollout: %w", err)
		}

		score := game.ScoreState(state, e.player)
		total += score.Score()
		if score.IsTerminal() {
			break
		}
	}
	return total, nil
}

// Apply the move of the node to the game
func (e *Engine[G, M, S, P]) play(game G, id NodeID) (MoveScore, error) {
	node, ok := e.tree.Node(id)
	if !ok {
		return MoveScore{}, ErrInvalidNodeIndex
	}

	state, err := game.PlaceMove(node.Move)
	if err != nil {
		return MoveScore{}, err
	}
	return game.ScoreState(state, e.player), nil
}
