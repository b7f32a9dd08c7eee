package bench

import (
	"context"
	"fmt"
	"slices"

	"github.com/IlikeChooros/go-ismcts/pkg/mcts"
	"golang.org/x/exp/rand"
)

// Play 'game' to the end, agents[i] sits at seat i. Every seat with
// a budget gets its own engine, sharing the game's generator 'r'.
// 'onMove' (may be nil) is called after each move.
func PlayGame[G Playable[G, M, S, P], M comparable, S any, P comparable](
	ctx context.Context, game G, agents []Agent, r *rand.Rand,
	onMove func(moves []M), opts ...mcts.Option,
) (GameRecord[M], error) {
	record := GameRecord[M]{Agents: agents, Winner: SeatDraw}

	seats := game.Seats()
	if len(seats) != len(agents) {
		return record, fmt.Errorf("bench: %d agents for %d seats", len(agents), len(seats))
	}

	engineOpts := append([]mcts.Option{mcts.WithRand(r)}, opts...)
	engines := make([]*mcts.Engine[G, M, S, P], len(seats))
	for i, agent := range agents {
		if agent.Budget > 0 {
			engines[i] = mcts.New[G, M, S, P](seats[i], engineOpts...)
		}
	}

	for {
		moves := game.PossibleMoves()
		if len(moves) == 0 {
			break
		}
		if err := ctx.Err(); err != nil {
			return record, err
		}

		seat := slices.Index(seats, game.ToMove())
		if seat < 0 {
			return record, fmt.Errorf("bench: unknown player to move %v", game.ToMove())
		}

		var move M
		if engine := engines[seat]; engine != nil {
			var err error
			if move, err = engine.Decide(game, agents[seat].Budget); err != nil {
				return record, fmt.Errorf("bench: seat %d: %w", seat, err)
			}
		} else {
			move = moves[r.Intn(len(moves))]
		}

		if _, err := game.PlaceMove(move); err != nil {
			return record, fmt.Errorf("bench: seat %d: %w", seat, err)
		}
		record.Moves = append(record.Moves, move)
		if onMove != nil {
			onMove(record.Moves)
		}
	}

	if winner, ok := game.Winner(); ok {
		record.Winner = slices.Index(seats, winner)
	}
	return record, nil
}
