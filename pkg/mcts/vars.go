package mcts

import (
	"math"
	"time"
)

// Exploration parameter used in the UCT formula, higher values increase exploration
// while lower values increase exploitation. Default is sqrt(2), the UCB1 constant
const DefaultExplorationParam float64 = math.Sqrt2

type SeedGeneratorFnType func() uint64

// Used to seed the engine's random number generator, when none was injected
// with WithRand or WithSeed
var SeedGeneratorFn SeedGeneratorFnType = func() uint64 {
	return uint64(time.Now().UnixNano())
}

// Set custom seed generator function for random number generators in MCTS,
// by default uses current time in nanoseconds
func SetSeedGeneratorFn(f SeedGeneratorFnType) {
	if f != nil {
		SeedGeneratorFn = f
	}
}

const (
	// When choosing the best child, choose the one with most visits,
	// this is the go-to method for MCTS
	BestChildMostVisits BestChildPolicy = iota

	// Experimental: choose the child with the best average score
	BestChildAvgScore
)

type BestChildPolicy int
