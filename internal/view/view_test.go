package view

import (
	"encoding/json"
	"testing"

	"github.com/peterkuimelis/cya/internal/game"
	"github.com/peterkuimelis/cya/internal/log"
	"github.com/peterkuimelis/cya/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsNeverNil(t *testing.T) {
	data, err := json.Marshal(Events(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestEventView(t *testing.T) {
	ev := log.NewStealEvent(3, 1, 2, []string{"House", "House", "House"}, 60)
	ev.Seq = 17

	v := Event(ev)
	assert.Equal(t, EventView{
		Seq:     17,
		Round:   3,
		Player:  1,
		Target:  2,
		Type:    "Steal",
		Cards:   []string{"House", "House", "House"},
		Value:   60,
		Details: "Player 1 steals [House House House] from Player 2 (60)",
	}, v)
}

func TestStateAfterDeal(t *testing.T) {
	g, err := game.New(4, 8)
	require.NoError(t, err)

	sv := State(g)
	assert.Equal(t, g.ID.String(), sv.GameID)
	assert.Equal(t, int64(8), sv.Seed)
	assert.Equal(t, 110-20-1, sv.DeckCount)
	assert.Equal(t, 1, sv.DiscardCount)
	assert.NotEmpty(t, sv.DiscardTop)
	require.Len(t, sv.Players, 4)
	for i, p := range sv.Players {
		assert.Equal(t, i, p.ID)
		assert.Len(t, p.Hand, 5)
		assert.Equal(t, 5, p.HandCount)
		assert.Empty(t, p.Assets)
		assert.Zero(t, p.Total)
	}
	assert.False(t, sv.Over)
}

func TestResultAndState(t *testing.T) {
	g, err := game.New(3, 12)
	require.NoError(t, err)
	res, err := g.Play()
	require.NoError(t, err)

	rv := Result(res)
	require.Len(t, rv.Scores, 3)
	total := rv.DiscardValue
	for _, s := range rv.Scores {
		total += s
	}
	assert.Equal(t, 1360, total)
	assert.Equal(t, res.Winner, rv.Winner)

	sv := State(g)
	assert.True(t, sv.Over)
	for i, p := range sv.Players {
		assert.Equal(t, rv.Scores[i], p.Total)
		sum := 0
		for _, grp := range p.Assets {
			sum += grp.Value
			assert.GreaterOrEqual(t, len(grp.Cards), 2)
		}
		assert.Equal(t, p.Total, sum)
	}
}

func TestBatchView(t *testing.T) {
	r, err := sim.Run(sim.Options{Games: 4, Players: 2, Seed: 3, MaxRounds: 1})
	require.NoError(t, err)

	bv := Batch(r)
	assert.Equal(t, 4, bv.Games)
	assert.Zero(t, bv.Completed)
	require.Len(t, bv.Failures, 4)
	assert.Contains(t, bv.Failures[0].Error, "round limit")
}

func TestCatalogView(t *testing.T) {
	cv := Catalog(game.DefaultCatalog())
	assert.Equal(t, 110, cv.TotalCount)
	assert.Equal(t, 1360, cv.TotalValue)
	require.Len(t, cv.Entries, 12)
	assert.Equal(t, CatalogEntryView{Kind: "Gold", Value: 50, Count: 4, Wild: true}, cv.Entries[0])
}
