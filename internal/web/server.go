package web

import (
	"bufio"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/peterkuimelis/cya/internal/config"
	"github.com/peterkuimelis/cya/internal/game"
	"github.com/peterkuimelis/cya/internal/log"
	"github.com/peterkuimelis/cya/internal/sim"
	"github.com/peterkuimelis/cya/internal/view"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

//go:embed static
var staticFiles embed.FS

const (
	defaultMaxGames = 10000
	maxReplayDelay  = 5 * time.Second
)

// Options configures the server. Zero values fall back to the defaults of
// the game and sim packages.
type Options struct {
	Catalog        *game.Catalog
	Players        int
	Rules          game.Rules
	Workers        int
	MaxGames       int // upper bound for /api/batch
	CheckEveryTurn bool
	Logger         *logrus.Entry
}

// Server is the spectator UI: it plays games on request and streams them.
type Server struct {
	opts Options
	log  *logrus.Entry
	mux  *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(opts Options) *Server {
	if opts.Catalog == nil {
		opts.Catalog = game.DefaultCatalog()
	}
	if opts.Players == 0 {
		opts.Players = game.DefaultPlayers
	}
	if opts.MaxGames == 0 {
		opts.MaxGames = defaultMaxGames
	}
	if opts.Logger == nil {
		opts.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	s := &Server{
		opts: opts,
		log:  opts.Logger.WithField("component", "web"),
		mux:  http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/catalog", s.handleCatalog)
	s.mux.HandleFunc("GET /api/game", s.handleGame)
	s.mux.HandleFunc("GET /api/batch", s.handleBatch)
	s.mux.HandleFunc("GET /ws/replay", s.handleReplay)
}

// Handler returns the routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.Handler())
}

// --- API ---

// GameResponse is the body of /api/game.
type GameResponse struct {
	Result *view.ResultView `json:"result"`
	State  *view.StateView  `json:"state"`
	Events []view.EventView `json:"events"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, view.Catalog(s.opts.Catalog))
}

func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	players, seed, err := s.tableParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logger := log.NewMemoryLogger()
	g, err := s.newGame(players, seed, logger)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := g.Play()
	if err != nil {
		s.log.WithError(err).WithField("seed", g.Seed).Error("game failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, GameResponse{
		Result: view.Result(res),
		State:  view.State(g),
		Events: view.Events(logger.Events()),
	})
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	players, seed, err := s.tableParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	games, err := intParam(r, "games", 100)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if games < 1 || games > s.opts.MaxGames {
		http.Error(w, fmt.Sprintf("games must be between 1 and %d", s.opts.MaxGames), http.StatusBadRequest)
		return
	}

	report, err := sim.RunParallel(r.Context(), sim.Options{
		Games:          games,
		Players:        players,
		Seed:           seed,
		Workers:        s.opts.Workers,
		Catalog:        s.opts.Catalog,
		Rules:          s.opts.Rules,
		CheckEveryTurn: s.opts.CheckEveryTurn,
		Logger:         s.log,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.log.WithFields(logrus.Fields{
		"batch":    report.ID,
		"games":    report.Games,
		"failures": len(report.Failures),
		"elapsed":  report.Elapsed,
	}).Info("batch finished")
	writeJSON(w, view.Batch(report))
}

// --- Replay stream ---

// ReplayMessage is one websocket frame of /ws/replay.
type ReplayMessage struct {
	Type   string           `json:"type"` // "state", "event", "game_over" or "error"
	Event  *view.EventView  `json:"event,omitempty"`
	State  *view.StateView  `json:"state,omitempty"`
	Result *view.ResultView `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// handleReplay plays one game a round at a time, streaming every event, with
// an optional pause between rounds (delay_ms).
func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	players, seed, err := s.tableParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	delayMS, err := intParam(r, "delay_ms", 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	delay := min(time.Duration(delayMS)*time.Millisecond, maxReplayDelay)

	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.log.WithError(err).Warn("websocket accept")
		return
	}
	defer wsConn.CloseNow()

	ctx := wsConn.CloseRead(r.Context())
	if err := s.replay(ctx, wsConn, players, seed, delay); err != nil {
		s.log.WithError(err).Debug("replay ended")
		return
	}
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}

func (s *Server) replay(ctx context.Context, conn *websocket.Conn, players int, seed int64, delay time.Duration) error {
	logger := log.NewMemoryLogger()
	g, err := s.newGame(players, seed, logger)
	if err != nil {
		return wsjson.Write(ctx, conn, ReplayMessage{Type: "error", Error: err.Error()})
	}

	send := func() error {
		for _, ev := range logger.Drain() {
			ev := view.Event(ev)
			if err := wsjson.Write(ctx, conn, ReplayMessage{Type: "event", Event: &ev}); err != nil {
				return err
			}
		}
		return wsjson.Write(ctx, conn, ReplayMessage{Type: "state", State: view.State(g)})
	}

	if err := send(); err != nil {
		return err
	}
	for !g.Over() {
		if delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		if _, err := g.PlayRound(); err != nil {
			return wsjson.Write(ctx, conn, ReplayMessage{Type: "error", Error: err.Error()})
		}
		if err := send(); err != nil {
			return err
		}
	}

	res, err := g.Play()
	if err != nil {
		return wsjson.Write(ctx, conn, ReplayMessage{Type: "error", Error: err.Error()})
	}
	if err := send(); err != nil {
		return err
	}
	return wsjson.Write(ctx, conn, ReplayMessage{Type: "game_over", Result: view.Result(res)})
}

// --- Helpers ---

func (s *Server) newGame(players int, seed int64, logger log.EventLogger) (*game.Game, error) {
	return game.NewGame(game.Config{
		Players:        players,
		Seed:           seed,
		Catalog:        s.opts.Catalog,
		Rules:          s.opts.Rules,
		Logger:         logger,
		CheckEveryTurn: s.opts.CheckEveryTurn,
	})
}

func (s *Server) tableParams(r *http.Request) (int, int64, error) {
	players, err := intParam(r, "players", s.opts.Players)
	if err != nil {
		return 0, 0, err
	}
	if players < game.MinPlayers || players > config.MaxPlayers {
		return 0, 0, fmt.Errorf("players must be between %d and %d, got %d", game.MinPlayers, config.MaxPlayers, players)
	}
	seed := int64(0)
	if v := r.URL.Query().Get("seed"); v != "" {
		seed, err = cast.ToInt64E(v)
		if err != nil {
			return 0, 0, fmt.Errorf("seed: %w", err)
		}
	}
	return players, seed, nil
}

func intParam(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// --- Request logging ---

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Hijack lets websocket upgrades through the recorder.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	r.status = http.StatusSwitchingProtocols
	return http.NewResponseController(r.ResponseWriter).Hijack()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start),
		}).Debug("request")
	})
}
