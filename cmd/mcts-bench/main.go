// Command mcts-bench measures how the iteration budget affects the playing
// strength: either a full matrix of budgets (seat 0 wins for every pair) or
// a versus arena between two budgets.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/IlikeChooros/go-ismcts/examples/tic-tac-toe/ttt"
	"github.com/IlikeChooros/go-ismcts/examples/uno/uno"
	"github.com/IlikeChooros/go-ismcts/pkg/bench"
	"github.com/IlikeChooros/go-ismcts/pkg/mcts"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type config struct {
	game        string
	mode        string
	budgets     []int
	games       int
	workers     int
	seed        uint64
	players     int
	csvPath     string
	parquetPath string
}

func parseBudgets(s string) ([]int, error) {
	var budgets []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		budget, err := strconv.Atoi(field)
		if err != nil || budget < 0 {
			return nil, fmt.Errorf("invalid budget %q", field)
		}
		budgets = append(budgets, budget)
	}
	if len(budgets) == 0 {
		return nil, fmt.Errorf("no budgets given")
	}
	return budgets, nil
}

func main() {
	cfg := config{}
	var budgets, logLevel string
	defaultBudgets := make([]string, len(bench.DefaultBudgets))
	for i, b := range bench.DefaultBudgets {
		defaultBudgets[i] = strconv.Itoa(b)
	}

	flag.StringVar(&cfg.game, "game", "uno", "game to benchmark: ttt or uno")
	flag.StringVar(&cfg.mode, "mode", "matrix", "matrix (every pair of budgets) or arena (first two budgets)")
	flag.StringVar(&budgets, "budgets", strings.Join(defaultBudgets, ","), "comma separated iteration budgets, 0 plays randomly")
	flag.IntVar(&cfg.games, "games", 50, "games per pair of budgets")
	flag.IntVar(&cfg.workers, "workers", 4, "games played in parallel")
	flag.Uint64Var(&cfg.seed, "seed", 0, "base random seed, 0 picks one from the clock")
	flag.IntVar(&cfg.players, "players", 2, "number of uno players in the arena mode")
	flag.StringVar(&cfg.csvPath, "csv", "", "write the win matrix to this csv file")
	flag.StringVar(&cfg.parquetPath, "parquet", "", "write every game to this parquet file")
	flag.StringVar(&logLevel, "log-level", "info", "zerolog level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	if cfg.budgets, err = parseBudgets(budgets); err != nil {
		log.Fatal().Err(err).Msg("invalid budgets")
	}
	if cfg.seed == 0 {
		cfg.seed = mcts.SeedGeneratorFn()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info().
		Str("game", cfg.game).
		Str("mode", cfg.mode).
		Ints("budgets", cfg.budgets).
		Int("games", cfg.games).
		Uint64("seed", cfg.seed).
		Msg("starting benchmark")

	switch cfg.game {
	case "ttt":
		err = run[*ttt.Position, ttt.PosType, ttt.Termination, ttt.PlayerType](ctx, cfg,
			func(*rand.Rand) (*ttt.Position, error) { return ttt.NewPosition(), nil })
	case "uno":
		players := 2
		if cfg.mode == "arena" {
			players = cfg.players
		}
		err = run[*uno.Uno, uno.Move, uno.State, uno.Player](ctx, cfg,
			func(r *rand.Rand) (*uno.Uno, error) { return uno.NewStandard(players, r) })
	default:
		err = fmt.Errorf("unknown game %q", cfg.game)
	}

	if err != nil {
		log.Error().Err(err).Msg("benchmark failed")
		os.Exit(1)
	}
}

func run[G bench.Playable[G, M, S, P], M comparable, S any, P comparable](
	ctx context.Context, cfg config, factory bench.GameFactory[G],
) error {
	printer := bench.NewSummaryPrinter[M](termenv.NewOutput(os.Stdout))
	quiet := mcts.WithLogger(log.Logger.Level(zerolog.WarnLevel))

	var rows []bench.MatchRow
	switch cfg.mode {
	case "matrix":
		result, err := bench.BudgetMatrix[G, M, S, P](ctx, factory, cfg.budgets, cfg.games, cfg.workers, cfg.seed, quiet)
		if err != nil {
			return err
		}
		printer.Matrix(result)
		rows = result.Rows

		if cfg.csvPath != "" {
			if err := bench.WriteCSVFile(cfg.csvPath, result.Wins); err != nil {
				return err
			}
			log.Info().Str("path", cfg.csvPath).Msg("stored win matrix")
		}

	case "arena":
		if len(cfg.budgets) < 2 {
			return fmt.Errorf("arena needs two budgets, got %v", cfg.budgets)
		}
		agent := func(budget int) bench.Agent {
			return bench.Agent{Name: fmt.Sprintf("mcts-%d", budget), Budget: budget}
		}

		arena := bench.NewVersusArena[G, M, S, P](factory, agent(cfg.budgets[0]), agent(cfg.budgets[1])).
			Setup(uint(cfg.games), uint(cfg.workers)).
			SetSeed(cfg.seed).
			SetEngineOptions(quiet).
			SetListener(bench.NewArenaListener[M](printer))
		if _, err := arena.Run(ctx); err != nil {
			return err
		}
		rows = arena.Rows()

	default:
		return fmt.Errorf("unknown mode %q", cfg.mode)
	}

	if cfg.parquetPath != "" {
		if err := bench.WriteParquet(cfg.parquetPath, rows); err != nil {
			return err
		}
		log.Info().Str("path", cfg.parquetPath).Int("rows", len(rows)).Msg("stored games")
	}
	return nil
}
