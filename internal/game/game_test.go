package game

import (
	"errors"
	"fmt"
	"testing"

	"github.com/peterkuimelis/cya/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameDeals(t *testing.T) {
	g, err := New(5, 42)
	require.NoError(t, err)

	for _, p := range g.Players {
		assert.Equal(t, DefaultHandSize, p.Hand.Len(), p.String())
		assert.Zero(t, p.Assets.Len())
	}
	assert.Len(t, g.Discard(), 1)
	assert.Equal(t, 110-25-1, g.Deck().Len())
	assert.Equal(t, int64(42), g.Seed)
	require.NoError(t, g.CheckCensus())
}

func TestNewGameNoShuffleDealsFromTheEnd(t *testing.T) {
	g, err := NewGame(Config{Players: 2, Seed: 1, NoShuffle: true})
	require.NoError(t, err)

	// Catalog order ends with ten Piggy cards, then ten Stamps.
	for _, p := range g.Players {
		assert.Equal(t, 5, p.Hand.Count(KindPiggy))
	}
	top, ok := g.DiscardTop()
	require.True(t, ok)
	assert.Equal(t, KindStamps, top.Kind)
}

func TestNewGameRandomSeedIsRecorded(t *testing.T) {
	g, err := New(3, 0)
	require.NoError(t, err)
	assert.NotZero(t, g.Seed)
	assert.LessOrEqual(t, g.Seed, int64(MaxSeed))
}

func TestNewGameBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"one player", Config{Players: 1}},
		{"negative hand size", Config{Players: 3, Rules: Rules{HandSize: -1}}},
		{"deck too small", Config{Players: 5, Rules: Rules{HandSize: 30}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGame(tt.cfg)
			assert.ErrorIs(t, err, ErrBadConfig)
		})
	}
}

func TestPlayConservesCards(t *testing.T) {
	cat := DefaultCatalog()
	for seed := int64(1); seed <= 200; seed++ {
		g, err := NewGame(Config{
			Players:        5,
			Seed:           seed,
			Logger:         log.NopLogger{},
			CheckEveryTurn: true,
		})
		require.NoError(t, err, "seed %d", seed)

		res, err := g.Play()
		require.NoError(t, err, "seed %d", seed)

		total := res.DiscardValue
		for _, s := range res.Scores {
			total += s
		}
		require.Equal(t, cat.TotalValue(), total, "seed %d", seed)
		require.Zero(t, g.Deck().Len(), "seed %d", seed)
		for _, p := range g.Players {
			require.True(t, p.Hand.Empty(), "seed %d %s", seed, p)
		}
	}
}

func TestPlayCounterStealConservesCards(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		g, err := NewGame(Config{
			Players:        4,
			Seed:           seed,
			Rules:          Rules{CounterSteal: true},
			Logger:         log.NopLogger{},
			CheckEveryTurn: true,
		})
		require.NoError(t, err)
		_, err = g.Play()
		require.NoError(t, err, "seed %d", seed)
	}
}

func TestPlayIsDeterministic(t *testing.T) {
	play := func() (*Result, []log.GameEvent) {
		logger := log.NewMemoryLogger()
		g, err := NewGame(Config{Players: 4, Seed: 7, Logger: logger})
		require.NoError(t, err)
		res, err := g.Play()
		require.NoError(t, err)
		return res, logger.Events()
	}

	a, aEvents := play()
	b, bEvents := play()
	assert.Equal(t, a.Scores, b.Scores)
	assert.Equal(t, a.Rounds, b.Rounds)
	assert.Equal(t, a.Winner, b.Winner)
	assert.Equal(t, a.DiscardValue, b.DiscardValue)
	assert.Equal(t, log.FormatAll(aEvents), log.FormatAll(bEvents))
}

func TestPlayTerminates(t *testing.T) {
	cat := DefaultCatalog()
	for players := 2; players <= 6; players++ {
		bound := (cat.TotalCount()-1)/players + DefaultHandSize + 3
		t.Run(fmt.Sprintf("%d players", players), func(t *testing.T) {
			for seed := int64(1); seed <= 20; seed++ {
				g, err := NewGame(Config{Players: players, Seed: seed, Logger: log.NopLogger{}})
				require.NoError(t, err)
				res, err := g.Play()
				require.NoError(t, err)
				assert.LessOrEqual(t, res.Rounds, bound, "seed %d", seed)
				assert.True(t, g.Over())
			}
		})
	}
}

func TestPlayRoundAfterGameOver(t *testing.T) {
	g, err := New(3, 11)
	require.NoError(t, err)
	_, err = g.Play()
	require.NoError(t, err)

	rounds := g.Round()
	active, err := g.PlayRound()
	assert.NoError(t, err)
	assert.False(t, active)
	assert.Equal(t, rounds, g.Round())
}

func TestRoundLimit(t *testing.T) {
	g, err := NewGame(Config{Players: 5, Seed: 3, MaxRounds: 1})
	require.NoError(t, err)

	_, err = g.Play()
	assert.ErrorIs(t, err, ErrRoundLimit)
}

func TestWinnerTiesGoToLowestID(t *testing.T) {
	g, _ := newTable(t, 3, Rules{})
	giveGroup(t, g.Players[0], KindCash, KindCash)
	giveGroup(t, g.Players[1], KindHouse, KindHouse)
	giveGroup(t, g.Players[2], KindHouse, KindHouse)

	res := g.result()
	assert.Equal(t, 1, res.Winner)
	assert.Equal(t, map[int]int{0: 10, 1: 40, 2: 40}, res.Scores)
}

func TestWinnerWithNoAssets(t *testing.T) {
	g, _ := newTable(t, 3, Rules{})
	assert.Equal(t, 0, g.result().Winner)
}

func TestConservationViolation(t *testing.T) {
	g, err := New(4, 99)
	require.NoError(t, err)
	_, err = g.Play()
	require.NoError(t, err)

	g.discard = append(g.discard, card(KindGold))

	err = g.CheckConservation()
	require.ErrorIs(t, err, ErrInvariant)
	var inv *InvariantError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, int64(99), inv.Seed)
	assert.Equal(t, g.ID, inv.GameID)
	assert.Equal(t, 1360, inv.Want)
	assert.Equal(t, 1410, inv.Got)

	assert.ErrorIs(t, g.CheckCensus(), ErrInvariant)
}

func TestCensusTracksMovedCards(t *testing.T) {
	g, err := New(5, 5)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := g.PlayRound()
		require.NoError(t, err)
	}

	c := g.Census()
	assert.Equal(t, 110, c.Total())
	assert.Equal(t, 1360, c.Value)
	assert.Equal(t, 4, c.ByKind[KindGold])
	assert.Equal(t, 8, c.ByKind[KindSilver])
}

func TestEventLog(t *testing.T) {
	logger := log.NewMemoryLogger()
	g, err := NewGame(Config{Players: 5, Seed: 21, Logger: logger})
	require.NoError(t, err)
	res, err := g.Play()
	require.NoError(t, err)

	assert.Len(t, logger.EventsOfType(log.EventDeal), 25)
	assert.Len(t, logger.EventsOfType(log.EventSeedDiscard), 1)
	assert.Len(t, logger.EventsOfType(log.EventNewRound), res.Rounds)

	last := logger.LastEvent()
	assert.Equal(t, log.EventGameOver, last.Type)
	assert.Equal(t, res.DiscardValue, last.Value)

	// The final round is the inactive one: every seat passes.
	var passes int
	for _, e := range logger.EventsOfType(log.EventPass) {
		if e.Round == res.Rounds {
			passes++
		}
	}
	assert.Equal(t, 5, passes)
}

func TestSmallCatalog(t *testing.T) {
	cat, err := NewCatalog([]CatalogEntry{
		{Kind: KindGold, Value: 50, Count: 2, Wild: true},
		{Kind: KindHouse, Value: 20, Count: 6},
		{Kind: KindCash, Value: 5, Count: 6},
	})
	require.NoError(t, err)

	for seed := int64(1); seed <= 30; seed++ {
		g, err := NewGame(Config{
			Players:        2,
			Seed:           seed,
			Catalog:        cat,
			Rules:          Rules{HandSize: 3},
			Logger:         log.NopLogger{},
			CheckEveryTurn: true,
		})
		require.NoError(t, err)
		res, err := g.Play()
		require.NoError(t, err, "seed %d", seed)
		assert.Equal(t, 250, res.Scores[0]+res.Scores[1]+res.DiscardValue)
	}
}
