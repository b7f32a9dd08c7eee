package bench

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/IlikeChooros/go-ismcts/pkg/mcts"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Budgets used by the mcts-bench command by default
var DefaultBudgets = []int{0, 32, 128, 1024, 2048, 4096}

// Single game of an arena or a budget matrix, flattened for export
type MatchRow struct {
	Game    int32  `parquet:"game"`
	Seed    int64  `parquet:"seed"`
	Agent1  string `parquet:"agent1,dict"`
	Budget1 int32  `parquet:"budget1"`
	Agent2  string `parquet:"agent2,dict"`
	Budget2 int32  `parquet:"budget2"`
	Winner  int32  `parquet:"winner"`
	Moves   int32  `parquet:"moves"`
}

func recordRow[M comparable](record GameRecord[M]) MatchRow {
	row := MatchRow{
		Game:   int32(record.Index),
		Seed:   int64(record.Seed),
		Winner: int32(record.Winner),
		Moves:  int32(len(record.Moves)),
	}
	if len(record.Agents) > 0 {
		row.Agent1, row.Budget1 = record.Agents[0].Name, int32(record.Agents[0].Budget)
	}
	if len(record.Agents) > 1 {
		row.Agent2, row.Budget2 = record.Agents[1].Name, int32(record.Agents[1].Budget)
	}
	return row
}

type MatrixResult struct {
	Budgets []int
	Samples int
	// Wins[i][j] is the number of games won by seat 0 playing with
	// Budgets[i] against seat 1 playing with Budgets[j]
	Wins [][]int
	Rows []MatchRow
}

// Win rate of seat 0 for given pair of budget indices
func (mr *MatrixResult) WinRate(i, j int) float64 {
	if mr.Samples == 0 {
		return 0
	}
	return float64(mr.Wins[i][j]) / float64(mr.Samples)
}

// Play 'samples' two-player games for every ordered pair of budgets,
// seat 0 always gets the row budget. Game k of the pair (i, j) is seeded
// with seed + (i*len(budgets)+j)*samples + k.
func BudgetMatrix[G Playable[G, M, S, P], M comparable, S any, P comparable](
	ctx context.Context, factory GameFactory[G], budgets []int,
	samples, workers int, seed uint64, opts ...mcts.Option,
) (*MatrixResult, error) {
	if samples <= 0 || len(budgets) == 0 {
		return nil, fmt.Errorf("bench: empty budget matrix (%d budgets, %d samples)", len(budgets), samples)
	}

	n := len(budgets)
	wins := make([]int64, n*n)
	var (
		mu   sync.Mutex
		rows = make([]MatchRow, 0, n*n*samples)
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))
	for i := range n {
		for j := range n {
			for k := range samples {
				g.Go(func() error {
					index := (i*n+j)*samples + k
					gameSeed := seed + uint64(index)
					r := rand.New(rand.NewSource(gameSeed))

					game, err := factory(r)
					if err != nil {
						return fmt.Errorf("game %d: %w", index, err)
					}

					agents := []Agent{
						{Name: fmt.Sprintf("mcts-%d", budgets[i]), Budget: budgets[i]},
						{Name: fmt.Sprintf("mcts-%d", budgets[j]), Budget: budgets[j]},
					}
					record, err := PlayGame[G, M, S, P](ctx, game, agents, r, nil, opts...)
					if err != nil {
						return fmt.Errorf("game %d (%d vs %d): %w", index, budgets[i], budgets[j], err)
					}
					record.Index, record.Seed = index, gameSeed

					if record.Winner == 0 {
						atomic.AddInt64(&wins[i*n+j], 1)
					}
					mu.Lock()
					rows = append(rows, recordRow(record))
					mu.Unlock()
					return nil
				})
			}
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &MatrixResult{
		Budgets: slices.Clone(budgets),
		Samples: samples,
		Wins:    make([][]int, n),
		Rows:    rows,
	}
	for i := range n {
		result.Wins[i] = make([]int, n)
		for j := range n {
			result.Wins[i][j] = int(wins[i*n+j])
		}
	}
	slices.SortFunc(result.Rows, func(a, b MatchRow) int {
		return int(a.Game - b.Game)
	})
	return result, nil
}
