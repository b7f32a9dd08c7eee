package mcts

import "fmt"

// Snapshot of a root child, used for reporting the search result
type ChildStats[M comparable] struct {
	ID     NodeID
	Move   M
	Score  float64
	Visits uint32
}

func (cs ChildStats[M]) AvgScore() float64 {
	if cs.Visits == 0 {
		return 0
	}
	return cs.Score / float64(cs.Visits)
}

func (cs ChildStats[M]) String() string {
	return fmt.Sprintf("%v v=%d (avg=%.3f)", cs.Move, cs.Visits, cs.AvgScore())
}

// Counters of the current (or last) decision
type TreeStats struct {
	maxdepth int
	cycles   uint32
}

// Maximum depth reached during the search
func (ts *TreeStats) MaxDepth() int {
	return ts.maxdepth
}

// Total number of iterations run during the search
func (ts *TreeStats) Cycles() uint32 {
	return ts.cycles
}

func (ts *TreeStats) reset() {
	ts.maxdepth = 0
	ts.cycles = 0
}
