package bench

import (
	"sync/atomic"

	"github.com/IlikeChooros/go-ismcts/pkg/mcts"
	"golang.org/x/exp/rand"
)

// Game the arena is able to drive from the start to the end
type Playable[G any, M comparable, S any, P comparable] interface {
	mcts.Game[G, M, S, P]
	// Player to move
	ToMove() P
	// Players in the seat order, seat 0 moves first
	Seats() []P
	// Winner of a finished game, false for a draw
	Winner() (P, bool)
}

// Creates the starting position of a single game. 'r' belongs to that game
// only, so the factory may use it for dealing or shuffling
type GameFactory[G any] func(r *rand.Rand) (G, error)

// Contestant of the arena
type Agent struct {
	Name string
	// Iterations per decision, 0 plays uniformly random moves
	Budget int
}

// Seat index of the winner of a game, or the draw marker
const SeatDraw = -1

// Result of a single played game
type GameRecord[M comparable] struct {
	Index  int
	Seed   uint64
	Agents []Agent
	Moves  []M
	Winner int
}

type VersusMatchResult int

const (
	VersusPl1Win VersusMatchResult = 1
	VersusPl2Win VersusMatchResult = -1
	VersusDraw   VersusMatchResult = 0
)

type VersusArenaStats struct {
	p1Wins           uint32
	p2Wins           uint32
	draws            uint32
	firstToMoveWins  uint32
	secondToMoveWins uint32
}

func (vas *VersusArenaStats) Total() int {
	return int(vas.P1Wins() + vas.P2Wins() + vas.Draws())
}

func (vas *VersusArenaStats) P1Wins() int {
	return int(atomic.LoadUint32(&vas.p1Wins))
}

func (vas *VersusArenaStats) P2Wins() int {
	return int(atomic.LoadUint32(&vas.p2Wins))
}

func (vas *VersusArenaStats) Draws() int {
	return int(atomic.LoadUint32(&vas.draws))
}

func (vas *VersusArenaStats) FirstToMoveWins() int {
	return int(atomic.LoadUint32(&vas.firstToMoveWins))
}

func (vas *VersusArenaStats) SecondToMoveWins() int {
	return int(atomic.LoadUint32(&vas.secondToMoveWins))
}

func (vas *VersusArenaStats) add(result VersusMatchResult, winnerSeat int) {
	switch result {
	case VersusPl1Win:
		atomic.AddUint32(&vas.p1Wins, 1)
	case VersusPl2Win:
		atomic.AddUint32(&vas.p2Wins, 1)
	default:
		atomic.AddUint32(&vas.draws, 1)
	}

	switch winnerSeat {
	case 0:
		atomic.AddUint32(&vas.firstToMoveWins, 1)
	case 1:
		atomic.AddUint32(&vas.secondToMoveWins, 1)
	}
}

type VersusWorkerInfo[M comparable] struct {
	GameIndex     int
	NGames        int
	FinishedGames int
	GameMoveNum   int
	Moves         []M
	P1Wins        int
	P2Wins        int
	Draws         int
	P1Name        string
	P2Name        string
}

type VersusSummaryInfo struct {
	TotalGames       int    `json:"total_games"`
	P1Wins           int    `json:"player1_wins"`
	P2Wins           int    `json:"player2_wins"`
	FirstToMoveWins  int    `json:"first_to_move_wins"`
	SecondToMoveWins int    `json:"second_to_move_wins"`
	Draws            int    `json:"draws"`
	Workers          int    `json:"workers"`
	P1Name           string `json:"player1_name"`
	P2Name           string `json:"player2_name"`
}

// maps the winning seat to the agent that won, given the seat assignment
func toAgentResult(winnerSeat int, p1WentFirst bool) VersusMatchResult {
	if winnerSeat == SeatDraw {
		return VersusDraw
	}

	if p1WentFirst == (winnerSeat == 0) {
		return VersusPl1Win
	}
	return VersusPl2Win
}
