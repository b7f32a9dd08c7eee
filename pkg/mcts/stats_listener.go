package mcts

type ListenerTreeStats[M comparable] struct {
	MaxDepth   int
	Cycles     uint32
	TimeMs     uint32
	Size       int
	BestMove   M
	BestVisits uint32
	StopReason StopReason
}

// Listener function callback, will recieve current tree statistics, like
// max depth of tree, number of iterations so far
type ListenerFunc[M comparable] func(ListenerTreeStats[M])

type StatsListener[M comparable] struct {
	// called when 'max depth' increases
	onDepth ListenerFunc[M]

	// called every N full iterations
	onCycle ListenerFunc[M]
	nCycles uint32

	// called when the search stops
	onStop ListenerFunc[M]
}

func NewStatsListener[M comparable]() StatsListener[M] {
	return StatsListener[M]{nCycles: 1}
}

// Attach new on max depth change callback
func (listener *StatsListener[M]) OnDepth(onDepth ListenerFunc[M]) *StatsListener[M] {
	listener.onDepth = onDepth
	return listener
}

// Attach new on iteration callback, called every SetCycleInterval iterations
func (listener *StatsListener[M]) OnCycle(onCycle ListenerFunc[M]) *StatsListener[M] {
	listener.onCycle = onCycle
	return listener
}

func (listener *StatsListener[M]) SetCycleInterval(n int) *StatsListener[M] {
	if n < 1 {
		n = 1
	}
	listener.nCycles = uint32(n)
	return listener
}

// Attach 'on search end' callback, makes 'StopReason' available in the stats
func (listener *StatsListener[M]) OnStop(onStop ListenerFunc[M]) *StatsListener[M] {
	listener.onStop = onStop
	return listener
}

func (listener *StatsListener[M]) shouldInvokeCycle(cycles uint32) bool {
	return listener.onCycle != nil && listener.nCycles > 0 && cycles%listener.nCycles == 0
}
