package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/peterkuimelis/cya/internal/config"
	"github.com/peterkuimelis/cya/internal/game"
	"github.com/peterkuimelis/cya/internal/log"
	"github.com/peterkuimelis/cya/internal/sim"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to config YAML")
	games := flag.Int("games", 0, "number of games (overrides config)")
	players := flag.Int("players", 0, "number of players (overrides config)")
	seed := flag.Int64("seed", 0, "master seed, or game seed with -single (overrides config)")
	workers := flag.Int("workers", -1, "parallel games, 0 = one per CPU (overrides config)")
	catalog := flag.String("catalog", "", "catalog YAML (overrides config)")
	counter := flag.Bool("counter-steal", false, "let attackers answer a defense")
	single := flag.Bool("single", false, "play one game and print its log")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "games":
			cfg.Games = *games
		case "players":
			cfg.Players = *players
		case "seed":
			cfg.Seed = *seed
		case "workers":
			cfg.Workers = *workers
		case "catalog":
			cfg.Catalog = *catalog
		case "counter-steal":
			cfg.CounterSteal = *counter
		}
	})
	if *verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := logrus.New()
	logger.SetLevel(cfg.Level())
	entry := logger.WithField("app", "cya-sim")

	cat, err := cfg.LoadCatalog()
	if err != nil {
		entry.WithError(err).Fatal("load catalog")
	}

	if *single {
		if err := playSingle(cfg, cat); err != nil {
			entry.WithError(err).Fatal("game failed")
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	entry.WithFields(logrus.Fields{
		"games":   cfg.Games,
		"players": cfg.Players,
		"seed":    cfg.Seed,
	}).Info("starting batch")

	report, err := sim.RunParallel(ctx, sim.Options{
		Games:          cfg.Games,
		Players:        cfg.Players,
		Seed:           cfg.Seed,
		Workers:        cfg.Workers,
		Catalog:        cat,
		Rules:          cfg.Rules(),
		CheckEveryTurn: cfg.CheckEveryTurn,
		Logger:         entry,
	})
	if err != nil {
		entry.WithError(err).Fatal("batch failed")
	}
	printReport(report)
	if len(report.Failures) > 0 {
		os.Exit(2)
	}
}

func playSingle(cfg config.Config, cat *game.Catalog) error {
	g, err := game.NewGame(game.Config{
		Players:        cfg.Players,
		Seed:           cfg.Seed,
		Catalog:        cat,
		Rules:          cfg.Rules(),
		Logger:         log.NewTextLogger(os.Stdout),
		CheckEveryTurn: cfg.CheckEveryTurn,
	})
	if err != nil {
		return err
	}
	res, err := g.Play()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Seed %d, %d rounds\n", res.Seed, res.Rounds)
	for _, p := range g.Players {
		fmt.Printf("  %s: %4d  %s\n", p, p.Total(), p.Assets)
	}
	fmt.Printf("  Discard:  %4d\n", res.DiscardValue)
	fmt.Printf("Winner: Player %d\n", res.Winner)
	return nil
}

func printReport(r *sim.BatchReport) {
	fmt.Printf("Batch %s: %d games, %d players, seed %d, %s\n", r.ID, r.Games, r.Players, r.Seed, r.Elapsed.Round(time.Millisecond))
	fmt.Printf("%-8s %6s %7s %10s\n", "Player", "Wins", "Rate", "MeanScore")
	rates := r.WinRates()
	for i, w := range r.Wins {
		fmt.Printf("%-8d %6d %6.1f%% %10.1f\n", i, w, rates[i]*100, r.MeanScores[i])
	}
	fmt.Printf("Mean rounds: %.1f\n", r.MeanRounds)
	for _, f := range r.Failures {
		fmt.Printf("FAILED game %d (seed %d): %v\n", f.Index, f.Seed, f.Err)
	}
}
