package mcp

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/peterkuimelis/cya/internal/config"
	"github.com/peterkuimelis/cya/internal/game"
	"github.com/peterkuimelis/cya/internal/sim"
	"github.com/peterkuimelis/cya/internal/view"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

const maxBatchGames = 10000

// Defaults for every tool call, set by main.
type Defaults struct {
	Catalog        *game.Catalog
	Players        int
	Rules          game.Rules
	Workers        int
	CheckEveryTurn bool
	Logger         *logrus.Entry
}

var (
	// mu guards activeSession and defaults.
	mu sync.Mutex

	// activeSession is the game being stepped (one per stdio process).
	activeSession *GameSession

	defaults = withFallbacks(Defaults{})
)

// SetDefaults sets the catalog, table size and rules the tools use when a
// call does not override them.
func SetDefaults(d Defaults) {
	mu.Lock()
	defer mu.Unlock()
	defaults = withFallbacks(d)
}

func withFallbacks(d Defaults) Defaults {
	if d.Catalog == nil {
		d.Catalog = game.DefaultCatalog()
	}
	if d.Players == 0 {
		d.Players = game.DefaultPlayers
	}
	if d.Logger == nil {
		d.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return d
}

func current() Defaults {
	mu.Lock()
	defer mu.Unlock()
	return defaults
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(getCatalogTool(), handleGetCatalog)
	s.AddTool(playGameTool(), handlePlayGame)
	s.AddTool(runBatchTool(), handleRunBatch)
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(stepRoundTool(), handleStepRound)
	s.AddTool(getGameStateTool(), handleGetGameState)
}

// --- Tool definitions ---

func getCatalogTool() mcp.Tool {
	return mcp.NewTool("get_catalog",
		mcp.WithDescription("List the asset kinds in the deck with their point value, copy count and whether they are wild."),
	)
}

func playGameTool() mcp.Tool {
	return mcp.NewTool("play_game",
		mcp.WithDescription("Simulate one complete game and return the final table, the full event log and the result."),
		mcp.WithNumber("players", mcp.Description("Number of players, 2-6 (default from server config)")),
		mcp.WithNumber("seed", mcp.Description("Shuffle seed as reported in a result or batch failure; 0 or omitted picks one at random")),
	)
}

func runBatchTool() mcp.Tool {
	return mcp.NewTool("run_batch",
		mcp.WithDescription("Simulate many independent games and return win counts, win rates and mean scores per seat."),
		mcp.WithNumber("games", mcp.Required(), mcp.Description("Number of games to play (1-10000)")),
		mcp.WithNumber("players", mcp.Description("Number of players, 2-6 (default from server config)")),
		mcp.WithNumber("seed", mcp.Description("Master seed; per-game seeds are derived from it. 0 picks one at random")),
	)
}

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Deal a new game to step through with step_round. Replaces any game already in progress. "+
			"Returns the dealt table and the deal events."),
		mcp.WithNumber("players", mcp.Description("Number of players, 2-6 (default from server config)")),
		mcp.WithNumber("seed", mcp.Description("Shuffle seed as reported in a result or batch failure; 0 or omitted picks one at random")),
	)
}

func stepRoundTool() mcp.Tool {
	return mcp.NewTool("step_round",
		mcp.WithDescription("Play the next round(s) of the current game. Returns the events of those rounds and the table afterwards."),
		mcp.WithNumber("rounds", mcp.Description("How many rounds to play (default 1)")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current table and any undelivered events without playing. Read-only."),
	)
}

// --- Tool handlers ---

func handleGetCatalog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(respondJSON(view.Catalog(current().Catalog))), nil
}

func handlePlayGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d := current()
	cfg, err := gameConfig(d, request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sess, err := NewGameSession(cfg)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	resp := sess.Finish()
	if resp.Error != "" {
		d.Logger.WithField("seed", resp.State.Seed).Error(resp.Error)
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleRunBatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d := current()
	games := request.GetInt("games", 0)
	if games < 1 || games > maxBatchGames {
		return mcp.NewToolResultErrorf("games must be between 1 and %d", maxBatchGames), nil
	}
	players, seed, err := tableParams(d, request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := sim.RunParallel(ctx, sim.Options{
		Games:          games,
		Players:        players,
		Seed:           seed,
		Workers:        d.Workers,
		Catalog:        d.Catalog,
		Rules:          d.Rules,
		CheckEveryTurn: d.CheckEveryTurn,
		Logger:         d.Logger,
	})
	if err != nil {
		return mcp.NewToolResultErrorf("Batch failed: %v", err), nil
	}
	d.Logger.WithFields(logrus.Fields{
		"batch": report.ID,
		"games": report.Games,
	}).Info("batch finished")
	return mcp.NewToolResultText(respondJSON(view.Batch(report))), nil
}

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := gameConfig(current(), request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sess, err := NewGameSession(cfg)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}

	mu.Lock()
	activeSession = sess
	mu.Unlock()

	return mcp.NewToolResultText(respondJSON(sess.State())), nil
}

func handleStepRound(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := session()
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	if sess.Done() {
		return mcp.NewToolResultError("The game is over. Use start_game to deal a new one."), nil
	}

	rounds := request.GetInt("rounds", 1)
	if rounds < 1 {
		return mcp.NewToolResultErrorf("rounds must be positive, got %d", rounds), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.Step(rounds))), nil
}

func handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := session()
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.State())), nil
}

func session() *GameSession {
	mu.Lock()
	defer mu.Unlock()
	return activeSession
}

func gameConfig(d Defaults, request mcp.CallToolRequest) (game.Config, error) {
	players, seed, err := tableParams(d, request)
	if err != nil {
		return game.Config{}, err
	}
	return game.Config{
		Players:        players,
		Seed:           seed,
		Catalog:        d.Catalog,
		Rules:          d.Rules,
		CheckEveryTurn: d.CheckEveryTurn,
	}, nil
}

// tableParams reads the players and seed arguments. Seeds may be sent as
// numbers up to game.MaxSeed, or as decimal strings for any int64.
func tableParams(d Defaults, request mcp.CallToolRequest) (int, int64, error) {
	players := request.GetInt("players", d.Players)
	if players < game.MinPlayers || players > config.MaxPlayers {
		return 0, 0, fmt.Errorf("players must be between %d and %d, got %d", game.MinPlayers, config.MaxPlayers, players)
	}

	var seed int64
	switch v := request.GetArguments()["seed"].(type) {
	case nil:
	case float64:
		if v != math.Trunc(v) || v < 0 || v > game.MaxSeed {
			return 0, 0, fmt.Errorf("seed %v must be a whole number between 0 and %d; pass larger seeds as a string", v, int64(game.MaxSeed))
		}
		seed = int64(v)
	default:
		n, err := cast.ToInt64E(v)
		if err != nil {
			return 0, 0, fmt.Errorf("seed: %w", err)
		}
		seed = n
	}
	return players, seed, nil
}
