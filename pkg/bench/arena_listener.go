package bench

import "sync"

// Distributes the arena callbacks to several listeners, one call at a time
type ArenaListener[M comparable] struct {
	mu        sync.Mutex
	listeners []ListenerLike[M]
}

func NewArenaListener[M comparable](listeners ...ListenerLike[M]) *ArenaListener[M] {
	return &ArenaListener[M]{listeners: listeners}
}

func (al *ArenaListener[M]) Add(listener ListenerLike[M]) {
	al.mu.Lock()
	defer al.mu.Unlock()
	al.listeners = append(al.listeners, listener)
}

func (al *ArenaListener[M]) OnMoveMade(info VersusWorkerInfo[M]) {
	al.mu.Lock()
	defer al.mu.Unlock()
	for _, l := range al.listeners {
		l.OnMoveMade(info)
	}
}

func (al *ArenaListener[M]) OnFinishedGame(info VersusWorkerInfo[M]) {
	al.mu.Lock()
	defer al.mu.Unlock()
	for _, l := range al.listeners {
		l.OnFinishedGame(info)
	}
}

func (al *ArenaListener[M]) Summary(summary VersusSummaryInfo) {
	al.mu.Lock()
	defer al.mu.Unlock()
	for _, l := range al.listeners {
		l.Summary(summary)
	}
}
