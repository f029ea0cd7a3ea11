package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/peterkuimelis/cya/internal/config"
	"github.com/peterkuimelis/cya/internal/web"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to config YAML")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	logger := logrus.New()
	logger.SetLevel(cfg.Level())
	entry := logger.WithField("app", "cya-web")

	cat, err := cfg.LoadCatalog()
	if err != nil {
		entry.WithError(err).Fatal("load catalog")
	}

	srv := web.NewServer(web.Options{
		Catalog:        cat,
		Players:        cfg.Players,
		Rules:          cfg.Rules(),
		Workers:        cfg.Workers,
		CheckEveryTurn: cfg.CheckEveryTurn,
		Logger:         entry,
	})

	entry.Infof("cya web UI listening on http://localhost%s", cfg.Addr)
	if err := srv.ListenAndServe(cfg.Addr); err != nil {
		entry.WithError(err).Fatal("server stopped")
	}
}
