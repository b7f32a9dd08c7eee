package mcts

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type options struct {
	explorationParam float64
	rand             *rand.Rand
	logger           zerolog.Logger
	rolloutCutoff    int
}

type Option func(o *options)

// Exploration constant of the UCT formula, see DefaultExplorationParam
func WithExplorationParam(c float64) Option {
	return func(o *options) {
		o.explorationParam = max(0, c)
	}
}

// Use given random number generator for every random choice of the search
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		if r != nil {
			o.rand = r
		}
	}
}

// Seed the engine's random number generator
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.rand = rand.New(rand.NewSource(seed))
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Stop the rollout after 'depth' random moves, crediting only the rewards
// collected so far. 0 (default) plays until a terminal outcome
func WithRolloutCutoff(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.rolloutCutoff = depth
		}
	}
}

// Engine picks a move for the 'player' in a game implementing Game.
// It owns a single search tree, which is rebuilt on every decision and
// stays readable (see Tree) until the next one.
type Engine[G Game[G, M, S, P], M comparable, S any, P any] struct {
	TreeStats
	Limiter       LimiterLike
	listener      StatsListener[M]
	policy        *UCB1[M]
	tree          *Tree[M]
	player        P
	perfect       bool
	rand          *rand.Rand
	logger        zerolog.Logger
	rolloutCutoff int
}

// Create new engine, evaluating positions from the 'player' perspective
func New[G Game[G, M, S, P], M comparable, S any, P any](player P, opts ...Option) *Engine[G, M, S, P] {
	o := &options{
		explorationParam: DefaultExplorationParam,
		logger:           log.Logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.rand == nil {
		o.rand = rand.New(rand.NewSource(SeedGeneratorFn()))
	}

	return &Engine[G, M, S, P]{
		Limiter:       NewLimiter(),
		listener:      NewStatsListener[M](),
		policy:        NewUCB1[M](o.explorationParam),
		tree:          NewTree[M](),
		player:        player,
		perfect:       true,
		rand:          o.rand,
		logger:        o.logger,
		rolloutCutoff: o.rolloutCutoff,
	}
}

func (e *Engine[G, M, S, P]) Player() P {
	return e.player
}

// Read-only view of the tree built by the last decision
func (e *Engine[G, M, S, P]) Tree() TreeView[M] {
	return e.tree
}

func (e *Engine[G, M, S, P]) SetListener(listener StatsListener[M]) {
	e.listener = listener
}

func (e *Engine[G, M, S, P]) ResetListener() {
	e.listener = NewStatsListener[M]()
}

// Get the reason why the search was stopped, valid after search ends
func (e *Engine[G, M, S, P]) StopReason() StopReason {
	return e.Limiter.StopReason()
}

// Stop the running decision, it will still return the best move found so far
func (e *Engine[G, M, S, P]) Stop() {
	e.Limiter.SetStop(true)
}

// Discard the tree and the counters
func (e *Engine[G, M, S, P]) Reset() {
	e.tree = NewTree[M]()
	e.TreeStats.reset()
}

func (e *Engine[G, M, S, P]) String() string {
	return fmt.Sprintf("MCTS={Player=%v, Size=%d, Stats:{maxdepth=%d, cycles=%d}, StopReason=%s}",
		e.player, e.tree.Size(), e.MaxDepth(), e.Cycles(), e.StopReason())
}

// Run 'iterations' search iterations from the 'base' position and return
// the recommended move for the engine's player
func (e *Engine[G, M, S, P]) Decide(base G, iterations int) (M, error) {
	if iterations <= 0 {
		var noMove M
		return noMove, fmt.Errorf("%w: iteration budget %d", ErrNoMoves, iterations)
	}
	return e.DecideContext(context.Background(), base, DefaultLimits().SetCycles(uint32(iterations)))
}

// Same as Decide, but the search runs until the limits are reached or ctx
// is done. Fails with ErrUnboundedSearch if neither can ever stop it.
func (e *Engine[G, M, S, P]) DecideContext(ctx context.Context, base G, limits *Limits) (M, error) {
	var noMove M
	if ctx == nil {
		ctx = context.Background()
	}
	if limits == nil {
		limits = DefaultLimits()
	}
	if !limits.Bounded() && ctx.Done() == nil {
		return noMove, ErrUnboundedSearch
	}
	if len(base.PossibleMoves()) == 0 {
		return noMove, ErrNoMoves
	}

	e.Reset()
	e.perfect = base.IsPerfectInformation()
	e.Limiter.SetContext(ctx)
	e.Limiter.SetLimits(limits)
	e.Limiter.Reset()

	e.logger.Debug().
		Str("player", fmt.Sprint(e.player)).
		Bool("perfect_information", e.perfect).
		Str("limits", limits.String()).
		Msg("decision started")

	if err := e.Search(base); err != nil {
		return noMove, err
	}

	best, ok := e.BestChild(RootID, BestChildMostVisits)
	if !ok {
		return noMove, ErrNoMoves
	}

	e.logger.Info().
		Str("player", fmt.Sprint(e.player)).
		Str("move", fmt.Sprint(best.Move)).
		Uint32("visits", best.Visits).
		Uint32("cycles", e.Cycles()).
		Int("size", e.tree.Size()).
		Stringer("stop_reason", e.StopReason()).
		Msg("decision")

	return best.Move, nil
}

// Return the best child of given node, based on the policy, false if
// the node has no children
func (e *Engine[G, M, S, P]) BestChild(id NodeID, policy BestChildPolicy) (ChildStats[M], bool) {
	children, ok := e.tree.Children(id)
	if !ok || len(children) == 0 {
		return ChildStats[M]{}, false
	}

	var best ChildStats[M]
	found := false
	for _, childID := range children {
		child, _ := e.tree.Node(childID)
		candidate := ChildStats[M]{ID: childID, Move: child.Move, Score: child.Score, Visits: child.Visits}
		if !found {
			best, found = candidate, true
			continue
		}

		switch policy {
		case BestChildAvgScore:
			if candidate.Visits > 0 && (best.Visits == 0 || candidate.AvgScore() > best.AvgScore()) {
				best = candidate
			}
		default:
			if candidate.Visits > best.Visits {
				best = candidate
			}
		}
	}

	return best, found
}

// Statistics of the root's children, in expansion order
func (e *Engine[G, M, S, P]) RootChildren() []ChildStats[M] {
	children, _ := e.tree.Children(RootID)
	stats := make([]ChildStats[M], 0, len(children))
	for _, id := range children {
		node, _ := e.tree.Node(id)
		stats = append(stats, ChildStats[M]{ID: id, Move: node.Move, Score: node.Score, Visits: node.Visits})
	}
	return stats
}

// Principal variation, following the most visited child from the root
func (e *Engine[G, M, S, P]) Pv() []M {
	pv := make([]M, 0, e.MaxDepth())
	node := RootID
	for {
		best, ok := e.BestChild(node, BestChildMostVisits)
		if !ok || best.Visits == 0 {
			return pv
		}
		pv = append(pv, best.Move)
		node = best.ID
	}
}
