package bench

// Callbacks of the versus arena. Games run in parallel, so implementations
// must not assume calls come from a single goroutine, see ArenaListener
type ListenerLike[M comparable] interface {
	OnMoveMade(info VersusWorkerInfo[M])
	OnFinishedGame(info VersusWorkerInfo[M])
	Summary(summary VersusSummaryInfo)
}

type DefaultListener[M comparable] struct{}

func (d DefaultListener[M]) OnMoveMade(info VersusWorkerInfo[M]) {

}

func (d DefaultListener[M]) OnFinishedGame(info VersusWorkerInfo[M]) {

}

func (d DefaultListener[M]) Summary(summary VersusSummaryInfo) {

}
