// Command mcts-play plays a single game of tic-tac-toe or uno between engines
// (or random players), printing the position after every move.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/IlikeChooros/go-ismcts/examples/tic-tac-toe/ttt"
	"github.com/IlikeChooros/go-ismcts/examples/uno/uno"
	"github.com/IlikeChooros/go-ismcts/pkg/bench"
	"github.com/IlikeChooros/go-ismcts/pkg/mcts"
	"github.com/IlikeChooros/go-ismcts/pkg/mcts/dot"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type config struct {
	game     string
	budget   int
	budget2  int
	seed     uint64
	players  int
	dotPath  string
	logLevel string
}

func main() {
	cfg := config{}
	flag.StringVar(&cfg.game, "game", "ttt", "game to play: ttt or uno")
	flag.IntVar(&cfg.budget, "budget", 2048, "iterations per decision of the first player, 0 plays randomly")
	flag.IntVar(&cfg.budget2, "budget2", 2048, "iterations per decision of the other players")
	flag.Uint64Var(&cfg.seed, "seed", 0, "random seed, 0 picks one from the clock")
	flag.IntVar(&cfg.players, "players", 2, "number of uno players")
	flag.StringVar(&cfg.dotPath, "dot", "", "write the tree of the first player's last decision to this file")
	flag.StringVar(&cfg.logLevel, "log-level", "info", "zerolog level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	level, err := zerolog.ParseLevel(cfg.logLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	if cfg.seed == 0 {
		cfg.seed = mcts.SeedGeneratorFn()
	}
	log.Info().Uint64("seed", cfg.seed).Str("game", cfg.game).Msg("starting")

	out := termenv.NewOutput(os.Stdout)
	r := rand.New(rand.NewSource(cfg.seed))

	switch cfg.game {
	case "ttt":
		err = play[*ttt.Position, ttt.PosType, ttt.Termination, ttt.PlayerType](
			out, cfg, ttt.NewPosition(), r, renderTtt(out))
	case "uno":
		var game *uno.Uno
		if game, err = uno.NewStandard(cfg.players, r); err == nil {
			err = play[*uno.Uno, uno.Move, uno.State, uno.Player](out, cfg, game, r, renderUno(out))
		}
	default:
		err = fmt.Errorf("unknown game %q", cfg.game)
	}

	if err != nil {
		log.Error().Err(err).Msg("game aborted")
		os.Exit(1)
	}
}

func play[G bench.Playable[G, M, S, P], M comparable, S any, P comparable](
	out *termenv.Output, cfg config, game G, r *rand.Rand, render func(G) string,
) error {
	seats := game.Seats()
	engines := make([]*mcts.Engine[G, M, S, P], len(seats))
	budgets := make([]int, len(seats))
	for i, player := range seats {
		budgets[i] = cfg.budget2
		if i == 0 {
			budgets[i] = cfg.budget
		}
		if budgets[i] > 0 {
			engines[i] = mcts.New[G, M, S, P](player, mcts.WithSeed(cfg.seed+uint64(i)+1))
		}
	}

	fmt.Fprintln(out, render(game))
	for len(game.PossibleMoves()) > 0 {
		player := game.ToMove()
		seat := slices.Index(seats, player)
		if seat < 0 {
			return fmt.Errorf("unknown player to move %v", player)
		}

		var move M
		if engine := engines[seat]; engine != nil {
			var err error
			move, err = engine.DecideContext(context.Background(), game, mcts.DefaultLimits().SetCycles(uint32(budgets[seat])))
			if err != nil {
				return fmt.Errorf("player %v: %w", player, err)
			}
			best, _ := engine.BestChild(mcts.RootID, mcts.BestChildMostVisits)
			fmt.Fprintf(out, "%s %v plays %s  %s  pv %v\n",
				out.String("engine").Faint(), player,
				out.String(fmt.Sprint(move)).Bold(), best, engine.Pv())

			if seat == 0 && cfg.dotPath != "" {
				if err := dot.WriteFile(cfg.dotPath, engine.Tree()); err != nil {
					return err
				}
			}
		} else {
			moves := game.PossibleMoves()
			move = moves[r.Intn(len(moves))]
			fmt.Fprintf(out, "%s %v plays %s\n", out.String("random").Faint(), player, out.String(fmt.Sprint(move)).Bold())
		}

		if _, err := game.PlaceMove(move); err != nil {
			return fmt.Errorf("player %v: %w", player, err)
		}
		fmt.Fprintln(out, render(game))
	}

	if winner, ok := game.Winner(); ok {
		fmt.Fprintln(out, out.String(fmt.Sprintf("player %v wins", winner)).Bold().Foreground(termenv.ANSIGreen))
	} else {
		fmt.Fprintln(out, out.String("draw").Bold())
	}
	return nil
}

func renderTtt(out *termenv.Output) func(*ttt.Position) string {
	return func(p *ttt.Position) string {
		builder := strings.Builder{}
		for sq := ttt.A3; sq <= ttt.C1; sq++ {
			cell := out.String(p.At(sq).String())
			switch p.At(sq) {
			case ttt.Cross:
				cell = cell.Foreground(termenv.ANSIRed).Bold()
			case ttt.Circle:
				cell = cell.Foreground(termenv.ANSIBlue).Bold()
			default:
				cell = cell.Faint()
			}
			builder.WriteString(cell.String())
			if sq%3 == 2 {
				builder.WriteByte('\n')
			}
		}
		return builder.String()
	}
}

var _colours = map[uno.Colour]termenv.ANSIColor{
	uno.Red:    termenv.ANSIRed,
	uno.Yellow: termenv.ANSIYellow,
	uno.Green:  termenv.ANSIGreen,
	uno.Blue:   termenv.ANSIBlue,
}

func renderUno(out *termenv.Output) func(*uno.Uno) string {
	return func(g *uno.Uno) string {
		top := g.Top()
		colour := g.LastPlay().Colour
		header := out.String(fmt.Sprintf("top: %v", top)).Foreground(_colours[colour]).Bold()

		sizes := make([]string, g.Players())
		for p := range g.Players() {
			hand := g.Hand(uno.Player(p))
			sizes[p] = fmt.Sprintf("p%d=%d", p, hand.Count())
		}

		line := fmt.Sprintf("%s  (%s) cards: %s", header, colour, strings.Join(sizes, " "))
		if g.Pending() > 0 {
			line += out.String(fmt.Sprintf("  pending +%d", g.Pending())).Foreground(termenv.ANSIRed).String()
		}
		return line
	}
}
