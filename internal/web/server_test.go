package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/peterkuimelis/cya/internal/view"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return NewServer(Options{Workers: 2, MaxGames: 200, Logger: logrus.NewEntry(logger)})
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestIndex(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cover Your Assets")

	assert.Equal(t, http.StatusNotFound, get(t, s, "/nope").Code)
}

func TestCatalogEndpoint(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/catalog")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var cv view.CatalogView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cv))
	assert.Equal(t, 110, cv.TotalCount)
	assert.Equal(t, 1360, cv.TotalValue)
}

func TestGameEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/game?players=3&seed=5")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp GameResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.Result.Seed)
	assert.Len(t, resp.Result.Scores, 3)
	assert.True(t, resp.State.Over)
	require.NotEmpty(t, resp.Events)
	assert.Equal(t, "GameOver", resp.Events[len(resp.Events)-1].Type)

	// Same seed, same game.
	var again GameResponse
	require.NoError(t, json.Unmarshal(get(t, s, "/api/game?players=3&seed=5").Body.Bytes(), &again))
	assert.Equal(t, resp.Result.Scores, again.Result.Scores)
}

func TestGameEndpointBadParams(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/game?players=x").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/game?seed=abc").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/game?players=1").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/game?players=20").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/batch?games=5&players=21").Code)
}

func TestBatchEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/batch?games=20&players=4&seed=9")
	require.Equal(t, http.StatusOK, rec.Code)

	var bv view.BatchView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bv))
	assert.Equal(t, 20, bv.Games)
	assert.Equal(t, 20, bv.Completed)
	assert.Equal(t, int64(9), bv.Seed)
	wins := 0
	for _, w := range bv.Wins {
		wins += w
	}
	assert.Equal(t, 20, wins)

	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/batch?games=0").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/batch?games=201").Code)
}

func TestReplayStream(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/replay?players=2&seed=4"
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.CloseNow()
	conn.SetReadLimit(1 << 20)

	var (
		events int
		states int
		result *view.ResultView
	)
	for result == nil {
		var msg ReplayMessage
		require.NoError(t, wsjson.Read(ctx, conn, &msg))
		switch msg.Type {
		case "event":
			events++
		case "state":
			states++
		case "game_over":
			result = msg.Result
		case "error":
			t.Fatalf("replay error: %s", msg.Error)
		}
	}

	assert.Equal(t, int64(4), result.Seed)
	assert.Equal(t, result.Rounds+2, states, "initial state, one per round, final state")
	assert.Greater(t, events, 10+1, "at least the deal and seed discard")
}
