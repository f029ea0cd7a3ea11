package mcp

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/peterkuimelis/cya/internal/game"
	"github.com/peterkuimelis/cya/internal/log"
	"github.com/peterkuimelis/cya/internal/view"
)

// ToolResponse is the JSON envelope returned by the game tools.
type ToolResponse struct {
	Events   []view.EventView `json:"events"`
	State    *view.StateView  `json:"state,omitempty"`
	GameOver bool             `json:"game_over"`
	Result   *view.ResultView `json:"result,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// GameSession is one game being stepped through round by round. Events
// logged since the previous call are handed back with every response.
type GameSession struct {
	mu     sync.Mutex
	game   *game.Game
	logger *log.MemoryLogger
	result *game.Result
	err    error
}

// NewGameSession deals a new game.
func NewGameSession(cfg game.Config) (*GameSession, error) {
	logger := log.NewMemoryLogger()
	cfg.Logger = logger
	g, err := game.NewGame(cfg)
	if err != nil {
		return nil, err
	}
	return &GameSession{game: g, logger: logger}, nil
}

// Step plays up to n rounds, stopping early when the game ends.
func (s *GameSession) Step(n int) *ToolResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < n && s.result == nil && s.err == nil; i++ {
		if _, err := s.game.PlayRound(); err != nil {
			s.err = err
			break
		}
		if s.game.Over() {
			s.finish()
		}
	}
	return s.response()
}

// Finish plays the game to the end.
func (s *GameSession) Finish() *ToolResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result == nil && s.err == nil {
		s.finish()
	}
	return s.response()
}

// State returns the table and any undelivered events without playing.
func (s *GameSession) State() *ToolResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.response()
}

// Done reports whether the game has ended, successfully or not.
func (s *GameSession) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result != nil || s.err != nil
}

func (s *GameSession) finish() {
	res, err := s.game.Play()
	if err != nil {
		s.err = err
		return
	}
	s.result = res
}

func (s *GameSession) response() *ToolResponse {
	resp := &ToolResponse{
		Events:   view.Events(s.logger.Drain()),
		State:    view.State(s.game),
		GameOver: s.result != nil || s.err != nil,
	}
	if s.result != nil {
		resp.Result = view.Result(s.result)
	}
	if s.err != nil {
		resp.Error = s.err.Error()
	}
	return resp
}

// respondJSON marshals a response value to a JSON string.
func respondJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
