package bench

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/IlikeChooros/go-ismcts/pkg/mcts"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

/*
Arena benchmark subpackage, allows to play a series of games between two
agents with different iteration budgets.

Every game is independent: it gets its own position from the factory, its
own engines and a generator seeded with 'Seed + game index', so the whole
run is reproducible regardless of the number of workers. Agents alternate
seats, Player1 moves first in the even games. In games with more than two
seats, every seat after the first is played by the second agent.
*/

type VersusArena[G Playable[G, M, S, P], M comparable, S any, P comparable] struct {
	VersusArenaStats
	Player1  Agent
	Player2  Agent
	NGames   uint
	NThreads uint
	Seed     uint64
	factory  GameFactory[G]
	listener ListenerLike[M]
	opts     []mcts.Option
	logger   zerolog.Logger
	mu       sync.Mutex
	records  []GameRecord[M]
}

func NewVersusArena[G Playable[G, M, S, P], M comparable, S any, P comparable](
	factory GameFactory[G], player1, player2 Agent,
) *VersusArena[G, M, S, P] {
	return &VersusArena[G, M, S, P]{
		Player1:  player1,
		Player2:  player2,
		NGames:   100,
		NThreads: 2,
		Seed:     mcts.SeedGeneratorFn(),
		factory:  factory,
		listener: DefaultListener[M]{},
		logger:   log.Logger,
	}
}

func (va *VersusArena[G, M, S, P]) Setup(nGames, nThreads uint) *VersusArena[G, M, S, P] {
	va.NGames = nGames
	va.NThreads = max(1, nThreads)
	return va
}

func (va *VersusArena[G, M, S, P]) SetSeed(seed uint64) *VersusArena[G, M, S, P] {
	va.Seed = seed
	return va
}

func (va *VersusArena[G, M, S, P]) SetListener(listener ListenerLike[M]) *VersusArena[G, M, S, P] {
	if listener == nil {
		listener = DefaultListener[M]{}
	}
	va.listener = listener
	return va
}

func (va *VersusArena[G, M, S, P]) SetLogger(logger zerolog.Logger) *VersusArena[G, M, S, P] {
	va.logger = logger
	return va
}

// Options passed to every engine created by the arena
func (va *VersusArena[G, M, S, P]) SetEngineOptions(opts ...mcts.Option) *VersusArena[G, M, S, P] {
	va.opts = opts
	return va
}

// Play all the games, blocking until they finish. The first game error
// cancels the remaining games and is returned with the partial summary.
func (va *VersusArena[G, M, S, P]) Run(ctx context.Context) (VersusSummaryInfo, error) {
	va.VersusArenaStats = VersusArenaStats{}
	va.records = va.records[:0]

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(int(max(1, va.NThreads)))
	for i := range int(va.NGames) {
		g.Go(func() error {
			return va.playOne(ctx, i)
		})
	}

	err := g.Wait()
	summary := va.Summary()
	va.listener.Summary(summary)
	va.logger.Info().
		Str("player1", summary.P1Name).
		Str("player2", summary.P2Name).
		Int("games", summary.TotalGames).
		Int("player1_wins", summary.P1Wins).
		Int("player2_wins", summary.P2Wins).
		Int("draws", summary.Draws).
		Msg("arena finished")
	return summary, err
}

func (va *VersusArena[G, M, S, P]) playOne(ctx context.Context, index int) error {
	seed := va.Seed + uint64(index)
	r := rand.New(rand.NewSource(seed))

	game, err := va.factory(r)
	if err != nil {
		return fmt.Errorf("game %d: %w", index, err)
	}

	p1First := index%2 == 0
	agents := []Agent{va.Player1, va.Player2}
	if !p1First {
		agents[0], agents[1] = agents[1], agents[0]
	}
	// Seat 0 against everyone else
	for len(agents) < len(game.Seats()) {
		agents = append(agents, agents[1])
	}

	info := func(moves []M) VersusWorkerInfo[M] {
		return VersusWorkerInfo[M]{
			GameIndex:     index,
			NGames:        int(va.NGames),
			FinishedGames: va.Total(),
			GameMoveNum:   len(moves),
			Moves:         moves,
			P1Wins:        va.P1Wins(),
			P2Wins:        va.P2Wins(),
			Draws:         va.Draws(),
			P1Name:        va.Player1.Name,
			P2Name:        va.Player2.Name,
		}
	}

	record, err := PlayGame[G, M, S, P](ctx, game, agents, r, func(moves []M) {
		va.listener.OnMoveMade(info(moves))
	}, va.opts...)
	if err != nil {
		return fmt.Errorf("game %d: %w", index, err)
	}
	record.Index, record.Seed = index, seed

	va.add(toAgentResult(record.Winner, p1First), record.Winner)
	va.mu.Lock()
	va.records = append(va.records, record)
	va.mu.Unlock()

	va.logger.Debug().
		Int("game", index).
		Str("first", agents[0].Name).
		Int("winner_seat", record.Winner).
		Int("moves", len(record.Moves)).
		Msg("game finished")
	va.listener.OnFinishedGame(info(record.Moves))
	return nil
}

func (va *VersusArena[G, M, S, P]) Summary() VersusSummaryInfo {
	return VersusSummaryInfo{
		TotalGames:       va.Total(),
		P1Wins:           va.P1Wins(),
		P2Wins:           va.P2Wins(),
		FirstToMoveWins:  va.FirstToMoveWins(),
		SecondToMoveWins: va.SecondToMoveWins(),
		Draws:            va.Draws(),
		Workers:          int(va.NThreads),
		P1Name:           va.Player1.Name,
		P2Name:           va.Player2.Name,
	}
}

// Finished games, ordered by their index
func (va *VersusArena[G, M, S, P]) Records() []GameRecord[M] {
	va.mu.Lock()
	defer va.mu.Unlock()
	records := slices.Clone(va.records)
	slices.SortFunc(records, func(a, b GameRecord[M]) int {
		return a.Index - b.Index
	})
	return records
}

// Finished games as export rows
func (va *VersusArena[G, M, S, P]) Rows() []MatchRow {
	records := va.Records()
	rows := make([]MatchRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, recordRow(record))
	}
	return rows
}
