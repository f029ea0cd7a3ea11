// Package sim runs batches of independent games and tabulates who won.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/peterkuimelis/cya/internal/game"
	"github.com/peterkuimelis/cya/internal/log"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Options configures a batch.
type Options struct {
	Games     int
	Players   int
	Seed      int64 // master seed (0 for random)
	Workers   int   // parallel games (0 = NumCPU); ignored by Run
	Catalog   *game.Catalog
	Rules     game.Rules
	MaxRounds int

	CheckEveryTurn bool

	// Logger receives per-failure warnings and a debug line per game. Nil is silent.
	Logger *logrus.Entry
}

// Failure is a game that ended in an error instead of a result.
type Failure struct {
	Index int
	Seed  int64
	Err   error
}

// BatchReport aggregates the results of a batch.
type BatchReport struct {
	ID         uuid.UUID
	Games      int
	Players    int
	Seed       int64
	Wins       []int     // games won, by player id
	MeanScores []float64 // mean asset value, by player id
	MeanRounds float64
	Failures   []Failure
	Elapsed    time.Duration
}

// Completed is the number of games that produced a result.
func (r *BatchReport) Completed() int {
	return r.Games - len(r.Failures)
}

// WinRates returns each player's share of completed games.
func (r *BatchReport) WinRates() []float64 {
	rates := make([]float64, len(r.Wins))
	n := r.Completed()
	if n == 0 {
		return rates
	}
	for i, w := range r.Wins {
		rates[i] = float64(w) / float64(n)
	}
	return rates
}

// Seeds derives n per-game seeds from a master seed. The same master seed
// always yields the same sequence; every derived seed is in [1, game.MaxSeed].
func Seeds(master int64, n int) []int64 {
	rng := rand.New(rand.NewSource(master))
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = rng.Int63n(game.MaxSeed) + 1
	}
	return seeds
}

type outcome struct {
	res *game.Result
	err error
}

// Run plays the batch one game at a time.
func Run(opts Options) (*BatchReport, error) {
	return run(context.Background(), opts, 1)
}

// RunParallel plays the batch on a bounded pool of goroutines. Games share
// no state, and outcomes are aggregated in game order, so the report
// matches Run for the same master seed.
func RunParallel(ctx context.Context, opts Options) (*BatchReport, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return run(ctx, opts, workers)
}

func run(ctx context.Context, opts Options, workers int) (*BatchReport, error) {
	if opts.Games < 1 {
		return nil, fmt.Errorf("%w: need at least one game, got %d", game.ErrBadConfig, opts.Games)
	}
	if opts.Players == 0 {
		opts.Players = game.DefaultPlayers
	}
	master := opts.Seed
	if master == 0 {
		master = game.RandomSeed()
	}

	start := time.Now()
	seeds := Seeds(master, opts.Games)
	outcomes := make([]outcome, opts.Games)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, seed := range seeds {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := playOne(opts, seed)
			if errors.Is(err, game.ErrBadConfig) {
				return err
			}
			outcomes[i] = outcome{res: res, err: err}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	report := aggregate(opts, master, seeds, outcomes)
	report.Elapsed = time.Since(start)
	return report, nil
}

func playOne(opts Options, seed int64) (*game.Result, error) {
	g, err := game.NewGame(game.Config{
		Players:        opts.Players,
		Seed:           seed,
		Catalog:        opts.Catalog,
		Rules:          opts.Rules,
		Logger:         log.NopLogger{},
		MaxRounds:      opts.MaxRounds,
		CheckEveryTurn: opts.CheckEveryTurn,
	})
	if err != nil {
		return nil, err
	}
	res, err := g.Play()
	if err == nil && opts.Logger != nil {
		opts.Logger.WithFields(logrus.Fields{
			"seed":   seed,
			"rounds": res.Rounds,
			"winner": res.Winner,
		}).Debug("game finished")
	}
	return res, err
}

func aggregate(opts Options, master int64, seeds []int64, outcomes []outcome) *BatchReport {
	r := &BatchReport{
		ID:         uuid.New(),
		Games:      opts.Games,
		Players:    opts.Players,
		Seed:       master,
		Wins:       make([]int, opts.Players),
		MeanScores: make([]float64, opts.Players),
	}
	totals := make([]int, opts.Players)
	rounds := 0
	for i, o := range outcomes {
		if o.err != nil {
			r.Failures = append(r.Failures, Failure{Index: i, Seed: seeds[i], Err: o.err})
			if opts.Logger != nil {
				opts.Logger.WithFields(logrus.Fields{
					"game": i,
					"seed": seeds[i],
				}).WithError(o.err).Warn("game failed")
			}
			continue
		}
		r.Wins[o.res.Winner]++
		rounds += o.res.Rounds
		for id, score := range o.res.Scores {
			totals[id] += score
		}
	}
	if n := r.Completed(); n > 0 {
		for i, t := range totals {
			r.MeanScores[i] = float64(t) / float64(n)
		}
		r.MeanRounds = float64(rounds) / float64(n)
	}
	return r
}
