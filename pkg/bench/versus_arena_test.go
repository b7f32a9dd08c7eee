package bench

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/IlikeChooros/go-ismcts/examples/tic-tac-toe/ttt"
	"github.com/IlikeChooros/go-ismcts/pkg/mcts"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type tttArena = VersusArena[*ttt.Position, ttt.PosType, ttt.Termination, ttt.PlayerType]

func tttFactory(*rand.Rand) (*ttt.Position, error) {
	return ttt.NewPosition(), nil
}

func newTttArena(p1, p2 Agent) *tttArena {
	return NewVersusArena[*ttt.Position, ttt.PosType, ttt.Termination, ttt.PlayerType](tttFactory, p1, p2).
		SetLogger(zerolog.Nop())
}

// Counts the callbacks
type countingListener struct {
	mu       sync.Mutex
	moves    int
	finished int
	summary  *VersusSummaryInfo
}

func (c *countingListener) OnMoveMade(VersusWorkerInfo[ttt.PosType]) {
	c.mu.Lock()
	c.moves++
	c.mu.Unlock()
}

func (c *countingListener) OnFinishedGame(VersusWorkerInfo[ttt.PosType]) {
	c.mu.Lock()
	c.finished++
	c.mu.Unlock()
}

func (c *countingListener) Summary(s VersusSummaryInfo) {
	c.summary = &s
}

func TestMain(m *testing.M) {
	mcts.SetSeedGeneratorFn(func() uint64 {
		return 42
	})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	fmt.Printf("Using seed %d\n", mcts.SeedGeneratorFn())

	os.Exit(m.Run())
}

func TestPlayGameRandom(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	game := ttt.NewPosition()
	agents := []Agent{{Name: "random-1"}, {Name: "random-2"}}

	moveCalls := 0
	record, err := PlayGame[*ttt.Position, ttt.PosType, ttt.Termination, ttt.PlayerType](
		context.Background(), game, agents, r, func([]ttt.PosType) { moveCalls++ })
	require.NoError(t, err)
	require.True(t, game.IsTerminated())
	require.GreaterOrEqual(t, len(record.Moves), 5)
	require.LessOrEqual(t, len(record.Moves), 9)
	require.Equal(t, len(record.Moves), moveCalls)
	require.Contains(t, []int{SeatDraw, 0, 1}, record.Winner)

	if winner, ok := game.Winner(); ok {
		require.Equal(t, winner, game.Seats()[record.Winner])
	}
}

func TestPlayGameSeats(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	_, err := PlayGame[*ttt.Position, ttt.PosType, ttt.Termination, ttt.PlayerType](
		context.Background(), ttt.NewPosition(), []Agent{{}, {}, {}}, r, nil)
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = PlayGame[*ttt.Position, ttt.PosType, ttt.Termination, ttt.PlayerType](
		ctx, ttt.NewPosition(), []Agent{{}, {}}, r, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestVersusArena(t *testing.T) {
	counter := &countingListener{}
	buf := &bytes.Buffer{}
	printer := NewSummaryPrinter[ttt.PosType](buf, termenv.WithProfile(termenv.Ascii))

	arena := newTttArena(Agent{Name: "mcts-300", Budget: 300}, Agent{Name: "random"}).
		Setup(10, 3).
		SetSeed(11).
		SetListener(NewArenaListener[ttt.PosType](counter, printer))

	summary, err := arena.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, summary.TotalGames)
	require.Equal(t, 10, summary.P1Wins+summary.P2Wins+summary.Draws)
	require.Equal(t, summary.P1Wins+summary.P2Wins, summary.FirstToMoveWins+summary.SecondToMoveWins)
	require.Greater(t, summary.P1Wins, summary.P2Wins)

	require.Equal(t, 10, counter.finished)
	require.NotNil(t, counter.summary)
	require.Equal(t, summary, *counter.summary)

	records := arena.Records()
	require.Len(t, records, 10)
	moves := 0
	for i, record := range records {
		require.Equal(t, i, record.Index)
		require.Equal(t, uint64(11+i), record.Seed)
		// Player1 moves first in the even games
		require.Equal(t, i%2 == 0, record.Agents[0].Name == "mcts-300")
		moves += len(record.Moves)
	}
	require.Equal(t, moves, counter.moves)

	out := buf.String()
	require.Contains(t, out, "Summary")
	require.Contains(t, out, "mcts-300")
	require.NotContains(t, out, "\x1b[")
}

func TestVersusArenaReproducible(t *testing.T) {
	run := func(threads uint) []MatchRow {
		arena := newTttArena(Agent{Name: "a", Budget: 50}, Agent{Name: "b", Budget: 20}).
			Setup(6, threads).
			SetSeed(5)
		_, err := arena.Run(context.Background())
		require.NoError(t, err)
		return arena.Rows()
	}

	require.Equal(t, run(1), run(4))
}

func TestBudgetMatrix(t *testing.T) {
	budgets := []int{0, 64}
	result, err := BudgetMatrix[*ttt.Position, ttt.PosType, ttt.Termination, ttt.PlayerType](
		context.Background(), tttFactory, budgets, 4, 4, 1, mcts.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	require.Equal(t, budgets, result.Budgets)
	require.Len(t, result.Wins, 2)
	for _, row := range result.Wins {
		require.Len(t, row, 2)
		for _, wins := range row {
			require.GreaterOrEqual(t, wins, 0)
			require.LessOrEqual(t, wins, 4)
		}
	}

	require.Len(t, result.Rows, 16)
	for k, row := range result.Rows {
		require.Equal(t, int32(k), row.Game)
		require.Equal(t, int64(1+k), row.Seed)
	}
	// pair (1, 0) is games 8..11
	require.Equal(t, int32(64), result.Rows[8].Budget1)
	require.Equal(t, int32(0), result.Rows[8].Budget2)

	_, err = BudgetMatrix[*ttt.Position, ttt.PosType, ttt.Termination, ttt.PlayerType](
		context.Background(), tttFactory, budgets, 0, 1, 1)
	require.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteCSV(buf, [][]int{{1, 2, 3}, {4, 5, 6}}))
	require.Equal(t, "1,2,3\n4,5,6\n", buf.String())

	path := filepath.Join(t.TempDir(), "uno.csv")
	require.NoError(t, WriteCSVFile(path, [][]int{{7}}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "7\n", string(data))
}

func TestWriteParquet(t *testing.T) {
	rows := []MatchRow{
		{Game: 0, Seed: 10, Agent1: "mcts-32", Budget1: 32, Agent2: "mcts-0", Winner: 0, Moves: 7},
		{Game: 1, Seed: 11, Agent1: "mcts-0", Agent2: "mcts-32", Budget2: 32, Winner: SeatDraw, Moves: 9},
	}

	path := filepath.Join(t.TempDir(), "out", "matches.parquet")
	require.NoError(t, WriteParquet(path, rows))
	_, err := os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))

	read, err := ReadParquet(path)
	require.NoError(t, err)
	require.Equal(t, rows, read)
}

func TestSummaryMatrix(t *testing.T) {
	buf := &bytes.Buffer{}
	printer := NewSummaryPrinter[int](buf, termenv.WithProfile(termenv.Ascii))
	printer.Matrix(&MatrixResult{
		Budgets: []int{0, 32},
		Samples: 4,
		Wins:    [][]int{{2, 0}, {4, 3}},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, []string{"p1\\p2", "0", "32"}, strings.Fields(lines[0]))
	require.Equal(t, []string{"32", "1.00", "0.75"}, strings.Fields(lines[2]))
}
