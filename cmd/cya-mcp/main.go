package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/peterkuimelis/cya/internal/config"
	cyamcp "github.com/peterkuimelis/cya/internal/mcp"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to config YAML")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cat, err := cfg.LoadCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the protocol; logs go to stderr.
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(cfg.Level())

	cyamcp.SetDefaults(cyamcp.Defaults{
		Catalog:        cat,
		Players:        cfg.Players,
		Rules:          cfg.Rules(),
		Workers:        cfg.Workers,
		CheckEveryTurn: cfg.CheckEveryTurn,
		Logger:         logger.WithField("app", "cya-mcp"),
	})

	s := server.NewMCPServer("cya", "1.0.0")
	cyamcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
