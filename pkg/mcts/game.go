package mcts

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Game is the capability set the engine needs from a turn-based game.
//
// G is the concrete game type itself (returned by Clone), M the move,
// S the opaque outcome token returned by PlaceMove and P the player type
// used as the evaluation perspective.
type Game[G any, M comparable, S any, P any] interface {
	// All legal moves for the player to move, empty only if the game
	// has no legal continuation
	PossibleMoves() []M
	// Apply the move for the current player, mutating the game in place.
	// Must fail with ErrInvalidMove if the move is not legal right now,
	// or ErrGameAlreadyEnded if the game is over
	PlaceMove(M) (S, error)
	// Map the outcome token to a score, from the 'player' perspective
	ScoreState(S, P) MoveScore
	// Whether the legal moves at a fixed tree position are the same across
	// independent clones. Must be constant for a given game type
	IsPerfectInformation() bool
	// Deep copy, without any shared memory with the original
	Clone() G
}

// Random-based games (shuffles, draws), the engine will attach its own
// generator to every cloned position, so the search stays reproducible
type RandGame interface {
	SetRand(*rand.Rand)
}

// Games with hidden information, after cloning the base position the engine
// calls Resample, so that everything 'observer' can't see is sampled again
type Resampler[P any] interface {
	Resample(observer P)
}

type ScoreKind uint8

const (
	// Placeholder, used only by the root before any move is made
	ScoreNone ScoreKind = iota
	// Game continues, the value is an intermediate reward
	ScoreNonTerminal
	// Game has ended, the value is the final outcome
	ScoreTerminal
)

func (k ScoreKind) String() string {
	switch k {
	case ScoreNonTerminal:
		return "NonTerminal"
	case ScoreTerminal:
		return "Terminal"
	}
	return "None"
}

// Result of applying a single move, see Game.ScoreState
type MoveScore struct {
	Kind  ScoreKind
	Value float64
}

func Terminal(value float64) MoveScore {
	return MoveScore{Kind: ScoreTerminal, Value: value}
}

func NonTerminal(value float64) MoveScore {
	return MoveScore{Kind: ScoreNonTerminal, Value: value}
}

func NoScore() MoveScore {
	return MoveScore{}
}

func (ms MoveScore) IsTerminal() bool {
	return ms.Kind == ScoreTerminal
}

// Numeric value of the score, 0 for the placeholder
func (ms MoveScore) Score() float64 {
	if ms.Kind == ScoreNone {
		return 0
	}
	return ms.Value
}

func (ms MoveScore) String() string {
	if ms.Kind == ScoreNone {
		return ms.Kind.String()
	}
	return fmt.Sprintf("%s(%g)", ms.Kind, ms.Value)
}
