package mcts

import "errors"

var (
	// The move is not legal in the current position
	ErrInvalidMove = errors.New("invalid move")
	// A move was placed after the game has ended
	ErrGameAlreadyEnded = errors.New("game already ended")
	// Out-of-range node reference, unreachable with correct tree usage
	ErrInvalidNodeIndex = errors.New("invalid node index")
	// The searched position has no legal moves, or the budget is empty
	ErrNoMoves = errors.New("no moves to search")
	// The limits would never stop the decision
	ErrUnboundedSearch = errors.New("unbounded search, set cycles or movetime")
)
